// Package gate decides whether a bug analysis report should break a build.
//
// A finding trips the gate only when its severity AND its confidence each
// rank at or above the corresponding threshold on the low=1, medium=2,
// high=3 scale. Labels outside that scale rank 0 and can never trip the
// gate; that fail-open behavior is deliberate policy for unrecognized
// generator output, at the acknowledged cost of possible false negatives.
package gate

import "github.com/buglens/buglens/internal/domain"

// Verdict is the per-finding gate decision.
type Verdict struct {
	Finding domain.Finding
	Exceeds bool
}

// Result is the gate decision for a whole report: the OR across all
// per-finding verdicts.
type Result struct {
	Exceeded bool
	Verdicts []Verdict
}

// Evaluate inspects every finding in the report against the thresholds.
// It never mutates the report.
func Evaluate(rep *domain.Report, severityThreshold, confidenceThreshold domain.Level) Result {
	sevBar := severityThreshold.Rank()
	confBar := confidenceThreshold.Rank()

	result := Result{Verdicts: make([]Verdict, 0, len(rep.Bugs.Items))}
	for _, finding := range rep.Bugs.Items {
		exceeds := finding.Severity.Rank() >= sevBar &&
			finding.Severity.Rank() > 0 &&
			finding.Confidence.Rank() >= confBar &&
			finding.Confidence.Rank() > 0
		if exceeds {
			result.Exceeded = true
		}
		result.Verdicts = append(result.Verdicts, Verdict{Finding: finding, Exceeds: exceeds})
	}
	return result
}
