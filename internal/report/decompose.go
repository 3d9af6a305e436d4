package report

import (
	"fmt"

	"github.com/buglens/buglens/internal/domain"
)

// Decompose builds a new report containing exactly one finding from the
// parent. The commit id, timestamp, affected files and summary are carried
// over verbatim so the downstream fixer sees a structurally normal report.
// The parent is never mutated and the result shares no backing storage with
// it, so decomposing the same parent once per finding is safe.
func Decompose(parent *domain.Report, index int) (*domain.Report, error) {
	if index < 0 || index >= len(parent.Bugs.Items) {
		return nil, fmt.Errorf("finding index %d out of range, report has %d finding(s)",
			index, len(parent.Bugs.Items))
	}

	files := make([]string, len(parent.AffectedFiles.Files))
	copy(files, parent.AffectedFiles.Files)

	return &domain.Report{
		CommitID:      parent.CommitID,
		Timestamp:     parent.Timestamp,
		AffectedFiles: domain.FileList{Files: files},
		Bugs:          domain.FindingList{Items: []domain.Finding{parent.Bugs.Items[index]}},
		Summary:       parent.Summary,
	}, nil
}
