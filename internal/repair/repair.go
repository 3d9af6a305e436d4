// Package repair implements the bounded LLM-assisted correction of a
// schema-invalid JSON report.
package repair

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/buglens/buglens/internal/schema"
)

// TextGenerator is the remote model boundary: one prompt in, raw text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Repairer corrects schema-invalid documents with a remote model and
// re-validates the result before accepting it.
type Repairer struct {
	validator   *schema.Validator
	model       TextGenerator
	maxAttempts int
	logger      hclog.Logger
}

// New creates a Repairer. maxAttempts bounds the model round trips per
// Repair call; the pipeline default is one.
func New(validator *schema.Validator, model TextGenerator, maxAttempts int, logger hclog.Logger) *Repairer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Repairer{
		validator:   validator,
		model:       model,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Repair asks the model to correct a document that failed validation with
// the given diagnostic. Only a corrected document that passes re-validation
// is returned; anything else is a terminal repair failure and the caller
// decides whether to abort or proceed with the invalid original.
func (r *Repairer) Repair(ctx context.Context, document []byte, diagnostic string) ([]byte, error) {
	current := document
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		r.logger.Info("attempting repair", "attempt", attempt, "max_attempts", r.maxAttempts)

		answer, err := r.model.Generate(ctx, r.buildPrompt(current, diagnostic))
		if err != nil {
			lastErr = fmt.Errorf("calling model: %w", err)
			continue
		}

		candidate, err := ExtractJSON(answer)
		if err != nil {
			// Malformed model output is a failed attempt, never coerced
			// into a guessed structure.
			lastErr = fmt.Errorf("model response: %w", err)
			continue
		}

		ok, diag, err := r.validator.Validate(candidate)
		if err != nil {
			lastErr = fmt.Errorf("corrected document: %w", err)
			continue
		}
		if ok {
			r.logger.Info("repaired document validates")
			return candidate, nil
		}

		r.logger.Warn("corrected document still fails validation", "diagnostic", diag)
		lastErr = fmt.Errorf("corrected document still fails validation: %s", diag)
		current = candidate
		diagnostic = diag
	}

	return nil, fmt.Errorf("repair failed after %d attempt(s): %w", r.maxAttempts, lastErr)
}

// RepairFile validates the report at reportPath and repairs it when needed.
// A report that already validates passes through untouched with no model
// call. On a successful repair the corrected document is written to
// outputPath, or over the original when outputPath is empty. On any failure
// the original file is left exactly as it was. Returns the path holding the
// valid document.
func (r *Repairer) RepairFile(ctx context.Context, reportPath, outputPath string) (string, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return "", fmt.Errorf("reading report %s: %w", reportPath, err)
	}

	ok, diagnostic, err := r.validator.Validate(data)
	if err != nil {
		return "", fmt.Errorf("report %s: %w", reportPath, err)
	}
	if ok {
		r.logger.Info("report is valid according to the schema", "path", reportPath)
		return reportPath, nil
	}

	r.logger.Warn("report fails schema validation", "path", reportPath, "diagnostic", diagnostic)

	fixed, err := r.Repair(ctx, data, diagnostic)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = reportPath
	}

	var pretty []byte
	var obj interface{}
	if uerr := json.Unmarshal(fixed, &obj); uerr == nil {
		if pretty, err = json.MarshalIndent(obj, "", "  "); err != nil {
			pretty = fixed
		}
	} else {
		pretty = fixed
	}

	if err := os.WriteFile(outputPath, pretty, 0644); err != nil {
		return "", fmt.Errorf("writing repaired report %s: %w", outputPath, err)
	}

	r.logger.Info("saved repaired report", "path", outputPath)
	return outputPath, nil
}

func (r *Repairer) buildPrompt(document []byte, diagnostic string) string {
	return fmt.Sprintf(`I have a JSON object that fails validation against this schema:

`+"```json\n%s\n```"+`

The validation error is:
%s

Here is the current JSON content:

`+"```json\n%s\n```"+`

Please fix the JSON to make it conform to the schema.
Return only the fixed JSON with no additional explanation.`,
		r.validator.Schema(), diagnostic, document)
}
