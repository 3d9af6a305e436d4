package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buglens/buglens/internal/session"
	"github.com/buglens/buglens/internal/tool"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Walk findings interactively and apply fixes one at a time",
	Long: `Run the external bug analyzer (unless --skip-analyzer is given), then present
each finding and ask whether to apply its fix: Y or enter applies it, n skips
it, a applies it and lets the fix worker commit the change. Each accepted
finding is handed to the worker as an isolated single-finding report; a
worker failure is reported and the walk continues with the next finding.`,
	Example: `  buglens fix --working-tree
  buglens fix --commit 3f2a91c
  buglens fix --skip-analyzer -o bug_analysis_report.xml`,
	RunE: runFix,
}

var flagFixSkipAnalyzer bool

func init() {
	addTargetFlags(fixCmd)
	fixCmd.Flags().BoolVar(&flagFixSkipAnalyzer, "skip-analyzer", false, "Skip running the bug analyzer and use the report at the output path directly")
}

func runFix(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !flagFixSkipAnalyzer {
		if err := runAnalyzer(cmd, analysisTarget()); err != nil {
			return err
		}
	}

	fixer := tool.NewFixer(cfg.Fixer, cfg.Directory, cfg.Debug, logger.Named("fixer"))
	controller := session.NewController(fixer, cfg.Directory, os.Stdin, os.Stdout, logger.Named("session"))

	return controller.Run(cmd.Context(), cfg.Output)
}
