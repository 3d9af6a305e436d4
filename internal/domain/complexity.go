package domain

// Component is one complex code region identified by the complexity analyzer.
type Component struct {
	Name                   string `json:"name"`
	LineRange              [2]int `json:"line_range"`
	ComplexityReason       string `json:"complexity_reason"`
	ChangeabilityScore     int    `json:"changeability_score"`
	ImprovementSuggestions string `json:"improvement_suggestions"`
	LLMImprovementPrompt   string `json:"llm_improvement_prompt"`
}

// FileComplexityReport groups the complex components found in one file.
type FileComplexityReport struct {
	FilePath   string      `json:"file_path"`
	Components []Component `json:"components"`
}

// RankedComponent is an entry in the master report's ranking, lowest
// changeability (most fragile) first.
type RankedComponent struct {
	FilePath           string `json:"file_path"`
	Name               string `json:"name"`
	ChangeabilityScore int    `json:"changeability_score"`
}

// ComplexitySummary aggregates statistics across all analyzed files.
type ComplexitySummary struct {
	TotalFilesAnalyzed        int               `json:"total_files_analyzed"`
	TotalComponentsAnalyzed   int               `json:"total_components_analyzed"`
	AverageChangeabilityScore float64           `json:"average_changeability_score"`
	MostComplexComponents     []RankedComponent `json:"most_complex_components"`
}

// MasterComplexityReport aggregates per-file complexity reports.
type MasterComplexityReport struct {
	Files   []FileComplexityReport `json:"files"`
	Summary ComplexitySummary      `json:"summary"`
}
