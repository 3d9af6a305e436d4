package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/buglens/buglens/internal/domain"
	"github.com/buglens/buglens/internal/gate"
	"github.com/buglens/buglens/internal/report"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Run the bug analyzer and fail the build on findings over the thresholds",
	Long: `Run the external bug analyzer (unless --skip-analyzer is given), print each
finding on a single line and exit 1 when any finding meets both the severity
and the confidence threshold. A finding must clear both bars independently:
a high-severity finding with low confidence does not trip a high/high gate.`,
	Example: `  buglens gate --working-tree
  buglens gate --severity-threshold medium --confidence-threshold high
  buglens gate --skip-analyzer -o bug_analysis_report.xml`,
	RunE: runGate,
}

var (
	flagSeverityThreshold   string
	flagConfidenceThreshold string
	flagSkipAnalyzer        bool
	flagKeepReport          bool
)

func init() {
	addTargetFlags(gateCmd)
	gateCmd.Flags().StringVar(&flagSeverityThreshold, "severity-threshold", "", "Severity threshold at or above which to break the build (high, medium, low)")
	gateCmd.Flags().StringVar(&flagConfidenceThreshold, "confidence-threshold", "", "Confidence threshold at or above which to break the build (high, medium, low)")
	gateCmd.Flags().BoolVar(&flagSkipAnalyzer, "skip-analyzer", false, "Skip running the bug analyzer and use the report at the output path directly")
	gateCmd.Flags().BoolVar(&flagKeepReport, "keep-report", false, "Keep the bug analysis report file after gating")
}

func runGate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	severity := cfg.Gate.SeverityThreshold
	if flagSeverityThreshold != "" {
		severity = flagSeverityThreshold
	}
	confidence := cfg.Gate.ConfidenceThreshold
	if flagConfidenceThreshold != "" {
		confidence = flagConfidenceThreshold
	}

	sevLevel, err := parseLevel("severity threshold", severity)
	if err != nil {
		return err
	}
	confLevel, err := parseLevel("confidence threshold", confidence)
	if err != nil {
		return err
	}

	if !flagSkipAnalyzer {
		if err := runAnalyzer(cmd, analysisTarget()); err != nil {
			return err
		}
	}

	rep, err := report.Load(cfg.Output)
	if err != nil {
		return err
	}

	if !rep.HasFindings() {
		fmt.Println(color.GreenString("No bugs found in the analysis report."))
		removeReport()
		return nil
	}

	fmt.Println(color.GreenString("Found %d bug(s) in the analysis report.", rep.TotalFindings()))

	result := gate.Evaluate(rep, sevLevel, confLevel)
	for _, v := range result.Verdicts {
		printVerdict(v)
	}

	removeReport()

	if result.Exceeded {
		fmt.Println()
		fmt.Println(color.RedString("Issues found that exceed specified thresholds. Build failed."))
		os.Exit(1)
	}
	return nil
}

func printVerdict(v gate.Verdict) {
	prefix := color.YellowString("[INFO]")
	if v.Exceeds {
		prefix = color.RedString("[THRESHOLD EXCEEDED]")
	}
	fmt.Printf("%s %s - %s [Severity: %s, Confidence: %s]\n",
		prefix,
		v.Finding.Location(),
		v.Finding.Description,
		levelDisplay(v.Finding.Severity, false),
		levelDisplay(v.Finding.Confidence, true),
	)
}

// levelDisplay colorizes a level label. Confidence inverts the palette:
// low confidence is the alarming case there.
func levelDisplay(l domain.Level, confidence bool) string {
	if !l.Known() {
		return string(l)
	}
	upper := strings.ToUpper(string(l))
	switch l {
	case domain.LevelHigh:
		if confidence {
			return color.GreenString(upper)
		}
		return color.RedString(upper)
	case domain.LevelMedium:
		return color.YellowString(upper)
	default:
		if confidence {
			return color.RedString(upper)
		}
		return color.CyanString(upper)
	}
}

func parseLevel(name, value string) (domain.Level, error) {
	l := domain.Level(strings.ToLower(value))
	if !l.Known() {
		return "", fmt.Errorf("invalid %s %q: must be one of high, medium, low", name, value)
	}
	return l, nil
}

// removeReport deletes the report file after gating. Failing to delete it
// never alters the gate's exit code.
func removeReport() {
	if flagKeepReport {
		return
	}
	if err := os.Remove(cfg.Output); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not delete bug analysis report", "path", cfg.Output, "error", err)
	}
}
