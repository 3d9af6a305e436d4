package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buglens/buglens/internal/domain"
)

func TestDecomposeEveryIndex(t *testing.T) {
	parent := sampleReport()

	for i := range parent.Bugs.Items {
		unit, err := Decompose(parent, i)
		require.NoError(t, err)

		require.Len(t, unit.Bugs.Items, 1)
		assert.Equal(t, parent.Bugs.Items[i], unit.Bugs.Items[0])
		assert.Equal(t, parent.CommitID, unit.CommitID)
		assert.Equal(t, parent.Timestamp, unit.Timestamp)
		assert.Equal(t, parent.AffectedFiles.Files, unit.AffectedFiles.Files)
		assert.Equal(t, parent.Summary, unit.Summary)
	}
}

func TestDecomposeDoesNotMutateParent(t *testing.T) {
	parent := sampleReport()
	before := *parent
	beforeBugs := append([]domain.Finding(nil), parent.Bugs.Items...)
	beforeFiles := append([]string(nil), parent.AffectedFiles.Files...)

	_, err := Decompose(parent, 0)
	require.NoError(t, err)

	assert.Equal(t, before.CommitID, parent.CommitID)
	assert.Equal(t, beforeBugs, parent.Bugs.Items)
	assert.Equal(t, beforeFiles, parent.AffectedFiles.Files)
}

func TestDecomposeUnitsDoNotAlias(t *testing.T) {
	parent := sampleReport()

	first, err := Decompose(parent, 0)
	require.NoError(t, err)
	second, err := Decompose(parent, 1)
	require.NoError(t, err)

	first.AffectedFiles.Files[0] = "mutated.go"
	first.Bugs.Items[0].Description = "mutated"

	assert.Equal(t, parent.AffectedFiles.Files[0], second.AffectedFiles.Files[0])
	assert.NotEqual(t, "mutated", parent.Bugs.Items[0].Description)
	assert.NotEqual(t, "mutated", second.Bugs.Items[0].Description)
}

func TestDecomposeIndexOutOfRange(t *testing.T) {
	parent := sampleReport()

	_, err := Decompose(parent, -1)
	assert.Error(t, err)

	_, err = Decompose(parent, len(parent.Bugs.Items))
	assert.Error(t, err)
}

func TestDecomposeUnitSerializesAsNormalReport(t *testing.T) {
	parent := sampleReport()

	unit, err := Decompose(parent, 1)
	require.NoError(t, err)

	data, err := Encode(unit)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Bugs.Items, 1)
	assert.Equal(t, parent.Bugs.Items[1], decoded.Bugs.Items[0])
	assert.Equal(t, parent.CommitID, decoded.CommitID)
}
