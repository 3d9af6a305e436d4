// Package session drives the interactive remediation walk: presenting
// findings one at a time and handing accepted ones to the external fix
// worker as isolated single-finding reports.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/buglens/buglens/internal/domain"
	"github.com/buglens/buglens/internal/report"
)

// Worker is the external remediation boundary: it consumes a single-finding
// report file and applies the code change, optionally committing it.
type Worker interface {
	Fix(ctx context.Context, unitPath string, autoCommit bool) error
}

type decision int

const (
	decisionApply decision = iota
	decisionSkip
	decisionAutoCommit
)

// Controller walks a report's findings sequentially. Remediation is never
// concurrent: the worker mutates the shared working tree.
type Controller struct {
	worker  Worker
	unitDir string // where ephemeral single-finding reports are written
	in      *bufio.Reader
	out     io.Writer
	logger  hclog.Logger
}

// NewController creates a Controller. unitDir must be visible to the
// worker (for a dockerized worker, the mounted working tree).
func NewController(worker Worker, unitDir string, in io.Reader, out io.Writer, logger hclog.Logger) *Controller {
	return &Controller{
		worker:  worker,
		unitDir: unitDir,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run loads the report and walks its findings. Only a missing or
// unparseable report is fatal; a worker failure for one finding is
// reported and the walk continues. A report with no findings terminates
// successfully without prompting.
func (c *Controller) Run(ctx context.Context, reportPath string) error {
	rep, err := report.Load(reportPath)
	if err != nil {
		return err
	}

	if !rep.HasFindings() {
		fmt.Fprintln(c.out, color.GreenString("No bugs found in the analysis report."))
		return nil
	}

	total := rep.TotalFindings()
	fmt.Fprintln(c.out, color.GreenString("Found %d bug(s) in the analysis report.", total))
	fmt.Fprintln(c.out)

	for i := 0; i < total; i++ {
		c.present(i+1, total, &rep.Bugs.Items[i])

		dec, err := c.promptDecision()
		if err != nil {
			return fmt.Errorf("reading decision: %w", err)
		}
		if dec == decisionSkip {
			continue
		}
		c.apply(ctx, rep, i, dec == decisionAutoCommit)
	}
	return nil
}

// apply decomposes finding index into an ephemeral unit, hands it to the
// worker and releases the unit's backing file no matter how the worker
// call ends.
func (c *Controller) apply(ctx context.Context, rep *domain.Report, index int, autoCommit bool) {
	unit, err := report.Decompose(rep, index)
	if err != nil {
		fmt.Fprintln(c.out, color.RedString("Could not isolate finding: %v", err))
		return
	}

	unitPath, err := report.SaveTemp(c.unitDir, unit)
	if err != nil {
		fmt.Fprintln(c.out, color.RedString("Could not write single-finding report: %v", err))
		return
	}
	defer func() {
		if rmErr := os.Remove(unitPath); rmErr != nil {
			c.logger.Warn("could not delete single-finding report", "path", unitPath, "error", rmErr)
		}
	}()

	fmt.Fprintln(c.out, color.CyanString("Applying fix..."))
	if err := c.worker.Fix(ctx, unitPath, autoCommit); err != nil {
		// Non-fatal: report it and keep walking the remaining findings.
		fmt.Fprintln(c.out, color.RedString("Fix failed: %v", err))
		c.logger.Error("fix worker failed", "finding", index+1, "error", err)
		return
	}
	fmt.Fprintln(c.out, color.GreenString("Fix applied."))
}

func (c *Controller) promptDecision() (decision, error) {
	for {
		fmt.Fprint(c.out, color.New(color.FgYellow, color.Bold).Sprint("Apply this fix? [Y/n/a]: "))
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return decisionSkip, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y":
			return decisionApply, nil
		case "n":
			return decisionSkip, nil
		case "a":
			return decisionAutoCommit, nil
		}
		fmt.Fprintln(c.out, color.RedString("Please answer 'Y' (yes), 'n' (no), or 'a' (yes-with-auto-commit)."))
	}
}

func (c *Controller) present(idx, total int, f *domain.Finding) {
	label := color.New(color.FgYellow, color.Bold).SprintFunc()

	fmt.Fprintln(c.out, color.MagentaString(strings.Repeat("━", 64)))
	fmt.Fprintln(c.out, color.New(color.FgCyan, color.Bold).Sprintf("Bug %d/%d", idx, total))
	fmt.Fprintf(c.out, "%s %s\n", label("File:       "), f.FilePath)
	fmt.Fprintf(c.out, "%s %s\n", label("Line:       "), f.LineNumber)
	fmt.Fprintf(c.out, "%s %s\n", label("Severity:   "), severityColor(f.Severity))
	fmt.Fprintf(c.out, "%s %s\n", label("Confidence: "), confidenceColor(f.Confidence))
	fmt.Fprintf(c.out, "%s %s\n", label("Description:"), f.Description)
	fmt.Fprintf(c.out, "%s %s\n", label("Fix:        "), f.SuggestedFix)
	if f.CodeSnippet != "" {
		fmt.Fprintln(c.out, label("Code snippet:"))
		for _, line := range strings.Split(f.CodeSnippet, "\n") {
			fmt.Fprintln(c.out, color.BlueString("  %s", line))
		}
	}
	fmt.Fprintln(c.out, color.MagentaString(strings.Repeat("━", 64)))
}

func severityColor(l domain.Level) string {
	switch l {
	case domain.LevelHigh:
		return color.New(color.FgRed, color.Bold).Sprint("High")
	case domain.LevelMedium:
		return color.New(color.FgYellow, color.Bold).Sprint("Medium")
	case domain.LevelLow:
		return color.New(color.FgCyan, color.Bold).Sprint("Low")
	}
	return string(l)
}

func confidenceColor(l domain.Level) string {
	switch l {
	case domain.LevelHigh:
		return color.New(color.FgGreen, color.Bold).Sprint("High")
	case domain.LevelMedium:
		return color.New(color.FgYellow, color.Bold).Sprint("Medium")
	case domain.LevelLow:
		return color.New(color.FgRed, color.Bold).Sprint("Low")
	}
	return string(l)
}
