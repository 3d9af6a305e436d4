package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPlainObject(t *testing.T) {
	out, err := ExtractJSON(`{"a": 1}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(out))
}

func TestExtractJSONFencedBlock(t *testing.T) {
	out, err := ExtractJSON("```json\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(out))
}

func TestExtractJSONBareFence(t *testing.T) {
	out, err := ExtractJSON("```\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(out))
}

func TestExtractJSONWithCommentaryPrefix(t *testing.T) {
	out, err := ExtractJSON("Here is the corrected document:\n{\"a\": {\"b\": 2}}\nHope that helps!")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": 2}}`, string(out))
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	out, err := ExtractJSON(`noise {"msg": "closing } inside", "q": "\" {"} trailing`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"msg": "closing } inside", "q": "\" {"}`, string(out))
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not produce a corrected document.")
	assert.Error(t, err)
}

func TestExtractJSONUnbalanced(t *testing.T) {
	_, err := ExtractJSON(`{"a": 1`)
	assert.Error(t, err)
}
