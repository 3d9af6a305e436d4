// Package cli wires the buglens commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/buglens/buglens/internal/config"
	"github.com/buglens/buglens/internal/gitx"
	"github.com/buglens/buglens/internal/progress"
	"github.com/buglens/buglens/internal/tool"
)

// Version can be set via build flags: -ldflags "-X 'github.com/buglens/buglens/internal/cli.Version=v1.0.0'"
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "buglens",
		Short: "LLM-backed bug analysis, build gating and interactive fixing",
		Long: `buglens drives a bug analysis pipeline: it runs the external bug analyzer
against a commit, the working tree or a branch diff, gates builds on the
severity and confidence of the reported findings, walks findings
interactively to apply fixes one at a time, and validates (and repairs)
complexity reports against their JSON schema.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	cfg    *config.Config
	logger hclog.Logger
)

// Persistent flags
var (
	flagConfig    string
	flagDirectory string
	flagOutput    string
	flagDebug     bool
)

// Target flags shared by analyze, gate and fix
var (
	flagCommit      string
	flagWorkingTree bool
	flagBranchDiff  string
	flagRemoteDiff  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (default: ~/.config/buglens/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagDirectory, "directory", "d", "", "Working tree the tools operate on (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Bug analysis report path (default: bug_analysis_report.xml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and pass --debug to external tools")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags
	if flagDirectory != "" {
		cfg.Directory = config.ExpandPath(flagDirectory)
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	cfg.Debug = flagDebug

	level := hclog.Info
	if flagDebug {
		level = hclog.Debug
	}
	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "buglens",
		Level:  level,
		Output: os.Stderr,
	})

	return nil
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCommit, "commit", "", "Commit ID to analyze (default: HEAD)")
	cmd.Flags().BoolVar(&flagWorkingTree, "working-tree", false, "Analyze diff between working tree and HEAD instead of a specific commit")
	cmd.Flags().StringVar(&flagBranchDiff, "branch-diff", "", "Analyze diff between current branch and the specified branch (e.g. 'main')")
	cmd.Flags().BoolVar(&flagRemoteDiff, "remote-diff", false, "Analyze diff between local branch and its remote counterpart")
}

func analysisTarget() gitx.Target {
	return gitx.Target{
		Commit:      flagCommit,
		WorkingTree: flagWorkingTree,
		BranchDiff:  flagBranchDiff,
		RemoteDiff:  flagRemoteDiff,
	}
}

// runAnalyzer invokes the external finding generator with a liveness
// spinner. A generator failure is fatal to the invoking workflow.
func runAnalyzer(cmd *cobra.Command, target gitx.Target) error {
	git := gitx.NewClient(logger.Named("git"))
	if !git.IsRepository(cmd.Context(), cfg.Directory) {
		return fmt.Errorf("%s is not a git repository", cfg.Directory)
	}

	logger.Info("analyzing", "target", target.Describe(), "directory", cfg.Directory)

	analyzer := tool.NewAnalyzer(cfg.Analyzer, cfg.Directory, cfg.Debug, logger.Named("analyzer"))

	sp := progress.Start("Running bug analyzer...")
	err := analyzer.Run(cmd.Context(), target, cfg.Output)
	if err != nil {
		sp.Stop("")
		return err
	}
	sp.Stop("Bug analysis complete!")
	return nil
}
