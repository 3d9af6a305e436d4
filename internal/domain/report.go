package domain

import "encoding/xml"

// Report is a bug analysis report: an ordered batch of findings plus the
// provenance shared by all of them. The order of Bugs is the presentation
// order and is significant; AffectedFiles keeps the generator's discovery
// order and is never deduplicated here.
type Report struct {
	XMLName       xml.Name    `xml:"bug_analysis_report" json:"-"`
	CommitID      string      `xml:"commit_id" json:"commit_id"`
	Timestamp     string      `xml:"timestamp" json:"timestamp"`
	AffectedFiles FileList    `xml:"affected_files" json:"affected_files"`
	Bugs          FindingList `xml:"bugs" json:"bugs"`
	Summary       string      `xml:"summary,omitempty" json:"summary,omitempty"`
}

// FileList wraps the affected_files container. The wrapper type keeps the
// container element present in the XML even when it holds no files.
type FileList struct {
	Files []string `xml:"file" json:"files"`
}

// FindingList wraps the bugs container, present even when empty.
type FindingList struct {
	Items []Finding `xml:"bug" json:"items"`
}

// TotalFindings returns the number of findings in the report.
func (r *Report) TotalFindings() int {
	return len(r.Bugs.Items)
}

// HasFindings returns true if there are any findings.
func (r *Report) HasFindings() bool {
	return len(r.Bugs.Items) > 0
}

// CountBySeverity returns the number of findings at the given severity.
func (r *Report) CountBySeverity(level Level) int {
	count := 0
	for i := range r.Bugs.Items {
		if r.Bugs.Items[i].Severity == level {
			count++
		}
	}
	return count
}
