package domain

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRank(t *testing.T) {
	assert.Equal(t, 3, LevelHigh.Rank())
	assert.Equal(t, 2, LevelMedium.Rank())
	assert.Equal(t, 1, LevelLow.Rank())

	// Case-insensitive
	assert.Equal(t, 3, Level("HIGH").Rank())
	assert.Equal(t, 2, Level("Medium").Rank())

	// Unrecognized labels rank 0
	assert.Equal(t, 0, Level("critical").Rank())
	assert.Equal(t, 0, Level("").Rank())
}

func TestLevelKnown(t *testing.T) {
	assert.True(t, LevelLow.Known())
	assert.False(t, Level("severe").Known())
}

func TestLevelNormalizedOnDecode(t *testing.T) {
	raw := `<bug>
  <file_path>main.go</file_path>
  <line_number>42</line_number>
  <description>off by one</description>
  <severity>High</severity>
  <confidence>MEDIUM</confidence>
  <suggested_fix>use &lt;=</suggested_fix>
</bug>`

	var f Finding
	require.NoError(t, xml.Unmarshal([]byte(raw), &f))
	assert.Equal(t, LevelHigh, f.Severity)
	assert.Equal(t, LevelMedium, f.Confidence)
}

func TestFindingLocation(t *testing.T) {
	f := Finding{FilePath: "pkg/x.go", LineNumber: "17"}
	assert.Equal(t, "pkg/x.go:17", f.Location())

	f.LineNumber = ""
	assert.Equal(t, "pkg/x.go", f.Location())
}

func TestReportCounts(t *testing.T) {
	rep := Report{
		Bugs: FindingList{Items: []Finding{
			{Severity: LevelHigh},
			{Severity: LevelHigh},
			{Severity: LevelLow},
		}},
	}
	assert.Equal(t, 3, rep.TotalFindings())
	assert.True(t, rep.HasFindings())
	assert.Equal(t, 2, rep.CountBySeverity(LevelHigh))
	assert.Equal(t, 0, rep.CountBySeverity(LevelMedium))

	empty := Report{}
	assert.False(t, empty.HasFindings())
}
