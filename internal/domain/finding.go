package domain

import "strings"

// Level is a severity or confidence rating on the low/medium/high scale.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Rank maps a level onto an ordinal scale: low=1, medium=2, high=3.
// Unrecognized labels rank 0, which means they can never clear a threshold.
// This fails open on purpose: a generator emitting a label outside the
// contract must not break a build on its own.
func (l Level) Rank() int {
	switch Level(strings.ToLower(string(l))) {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// Known reports whether the level is one of the three contract values.
func (l Level) Known() bool {
	return l.Rank() > 0
}

// UnmarshalText normalizes levels to lower case on input.
func (l *Level) UnmarshalText(text []byte) error {
	*l = Level(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}

// MarshalText writes the level as stored.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l), nil
}

// Finding represents one issue reported by the bug analyzer.
type Finding struct {
	FilePath     string `xml:"file_path" json:"file_path"`
	LineNumber   string `xml:"line_number" json:"line_number"`
	Description  string `xml:"description" json:"description"`
	Severity     Level  `xml:"severity" json:"severity"`
	Confidence   Level  `xml:"confidence" json:"confidence"`
	SuggestedFix string `xml:"suggested_fix" json:"suggested_fix"`
	CodeSnippet  string `xml:"code_snippet" json:"code_snippet,omitempty"`
}

// Location returns the finding's file:line label used in single-line output.
func (f *Finding) Location() string {
	if f.LineNumber == "" {
		return f.FilePath
	}
	return f.FilePath + ":" + f.LineNumber
}
