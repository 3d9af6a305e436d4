package cli

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the bug analyzer and write the report",
	Long: `Run the external bug analyzer against a commit, the working tree, a branch
diff or the remote counterpart of the current branch, writing the bug
analysis report to the output path.`,
	Example: `  buglens analyze --commit HEAD
  buglens analyze --working-tree -o report.xml
  buglens analyze --branch-diff main`,
	RunE: runAnalyze,
}

func init() {
	addTargetFlags(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	return runAnalyzer(cmd, analysisTarget())
}
