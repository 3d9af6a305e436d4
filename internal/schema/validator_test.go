package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["name", "score"],
  "properties": {
    "name": {"type": "string"},
    "score": {"type": "integer", "minimum": 0, "maximum": 100}
  }
}`

func TestValidateConformingDocument(t *testing.T) {
	v, err := New([]byte(testSchema))
	require.NoError(t, err)

	ok, diag, err := v.Validate([]byte(`{"name": "parser", "score": 42}`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, diag)
}

func TestValidateShapeViolation(t *testing.T) {
	v, err := New([]byte(testSchema))
	require.NoError(t, err)

	ok, diag, err := v.Validate([]byte(`{"name": "parser", "score": 150}`))
	require.NoError(t, err)
	assert.False(t, ok)
	// The diagnostic names the offending field so it can be pasted into a
	// repair prompt verbatim.
	assert.Contains(t, diag, "score")
}

func TestValidateMissingRequiredField(t *testing.T) {
	v, err := New([]byte(testSchema))
	require.NoError(t, err)

	ok, diag, err := v.Validate([]byte(`{"name": "parser"}`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, diag, "score")
}

func TestValidateMalformedJSONIsDistinct(t *testing.T) {
	v, err := New([]byte(testSchema))
	require.NoError(t, err)

	ok, _, err := v.Validate([]byte(`{"name": "parser",`))
	assert.False(t, ok)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSchemaReturnsRawSource(t *testing.T) {
	v, err := New([]byte(testSchema))
	require.NoError(t, err)
	assert.Equal(t, []byte(testSchema), v.Schema())
}

func TestBuiltinMasterSchemaCompiles(t *testing.T) {
	v, err := New(MasterComplexityReportSchema)
	require.NoError(t, err)

	valid := `{
  "files": [
    {
      "file_path": "src/parser.go",
      "components": [
        {
          "name": "parseExpr",
          "line_range": [10, 95],
          "complexity_reason": "deeply nested state machine",
          "changeability_score": 35,
          "improvement_suggestions": "split per state",
          "llm_improvement_prompt": "Refactor parseExpr into per-state functions."
        }
      ]
    }
  ],
  "summary": {
    "total_files_analyzed": 1,
    "total_components_analyzed": 1,
    "average_changeability_score": 35,
    "most_complex_components": [
      {"file_path": "src/parser.go", "name": "parseExpr", "changeability_score": 35}
    ]
  }
}`
	ok, diag, err := v.Validate([]byte(valid))
	require.NoError(t, err)
	assert.True(t, ok, diag)
}

func TestBuiltinMasterSchemaRejectsBadScore(t *testing.T) {
	v, err := New(MasterComplexityReportSchema)
	require.NoError(t, err)

	invalid := `{
  "files": [],
  "summary": {
    "total_files_analyzed": 0,
    "total_components_analyzed": 0,
    "average_changeability_score": 250,
    "most_complex_components": []
  }
}`
	ok, diag, err := v.Validate([]byte(invalid))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, diag, "average_changeability_score")
}
