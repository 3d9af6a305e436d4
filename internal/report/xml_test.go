package report

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buglens/buglens/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		CommitID:  "3f2a91c",
		Timestamp: "2024-05-01T10:30:00",
		AffectedFiles: domain.FileList{Files: []string{
			"internal/server/handler.go",
			"internal/server/handler_test.go",
		}},
		Bugs: domain.FindingList{Items: []domain.Finding{
			{
				FilePath:     "internal/server/handler.go",
				LineNumber:   "88",
				Description:  "response body is never closed",
				Severity:     domain.LevelHigh,
				Confidence:   domain.LevelHigh,
				SuggestedFix: "defer resp.Body.Close() after the error check",
				CodeSnippet:  "resp, err := client.Do(req)",
			},
			{
				FilePath:     "internal/server/handler.go",
				LineNumber:   "120",
				Description:  "error from strconv.Atoi ignored",
				Severity:     domain.LevelMedium,
				Confidence:   domain.LevelLow,
				SuggestedFix: "handle the conversion error",
			},
		}},
		Summary: "Two issues in the request handler.",
	}
}

func assertReportsEqual(t *testing.T, want, got *domain.Report) {
	t.Helper()
	assert.Equal(t, want.CommitID, got.CommitID)
	assert.Equal(t, want.Timestamp, got.Timestamp)
	assert.Equal(t, want.AffectedFiles.Files, got.AffectedFiles.Files)
	assert.Equal(t, want.Bugs.Items, got.Bugs.Items)
	assert.Equal(t, want.Summary, got.Summary)
}

func TestRoundTrip(t *testing.T) {
	rep := sampleReport()

	data, err := Encode(rep)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assertReportsEqual(t, rep, decoded)
}

func TestRoundTripEmptyBugs(t *testing.T) {
	rep := &domain.Report{
		CommitID:  "HEAD",
		Timestamp: "2024-05-01T10:30:00",
	}

	data, err := Encode(rep)
	require.NoError(t, err)

	// Empty sequences serialize as present-but-empty containers.
	text := string(data)
	assert.Contains(t, text, "<affected_files></affected_files>")
	assert.Contains(t, text, "<bugs></bugs>")

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.Bugs.Items)
	assert.Empty(t, decoded.AffectedFiles.Files)
}

func TestAbsentSummaryStaysAbsent(t *testing.T) {
	rep := sampleReport()
	rep.Summary = ""

	data, err := Encode(rep)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<summary>")

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.Summary)
}

func TestEncodeWritesXMLHeader(t *testing.T) {
	data, err := Encode(sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestAffectedFilesOrderAndDuplicatesPreserved(t *testing.T) {
	rep := sampleReport()
	rep.AffectedFiles.Files = []string{"b.go", "a.go", "b.go"}

	data, err := Encode(rep)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go", "a.go", "b.go"}, decoded.AffectedFiles.Files)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte("<bug_analysis_report><bugs>"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing bug analysis report")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")
	rep := sampleReport()

	require.NoError(t, Save(path, rep))

	loaded, err := Load(path)
	require.NoError(t, err)
	assertReportsEqual(t, rep, loaded)
}

func TestSaveTemp(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	first, err := SaveTemp(dir, rep)
	require.NoError(t, err)
	second, err := SaveTemp(dir, rep)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "_single_bug.xml"))

	loaded, err := Load(first)
	require.NoError(t, err)
	assertReportsEqual(t, rep, loaded)
}
