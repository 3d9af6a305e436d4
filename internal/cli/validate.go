package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/buglens/buglens/internal/llm"
	"github.com/buglens/buglens/internal/repair"
	"github.com/buglens/buglens/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a master complexity report against its schema, repairing it if needed",
	Long: `Validate a MASTER_COMPLEXITY_REPORT.json against its JSON schema. When the
report fails validation, ask the configured model to correct it, re-validate
the corrected document and persist it over the original (or to --fixed-output
when given). A report that is not parseable as JSON at all is a distinct
failure and is never sent for repair.`,
	Example: `  buglens validate --report MASTER_COMPLEXITY_REPORT.json
  buglens validate --report report.json --schema custom_schema.json
  buglens validate --report report.json --fixed-output repaired.json`,
	RunE: runValidate,
}

var (
	flagReport      string
	flagSchema      string
	flagFixedOutput string
)

func init() {
	validateCmd.Flags().StringVar(&flagReport, "report", "", "Path to the master complexity report JSON file")
	validateCmd.Flags().StringVar(&flagSchema, "schema", "", "Path to the JSON schema file (default: built-in schema)")
	validateCmd.Flags().StringVar(&flagFixedOutput, "fixed-output", "", "Path to save the repaired JSON (default: overwrites the original)")
	_ = validateCmd.MarkFlagRequired("report")
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaData := schema.MasterComplexityReportSchema
	schemaPath := flagSchema
	if schemaPath == "" {
		schemaPath = cfg.Repair.SchemaPath
	}
	if schemaPath != "" {
		data, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", schemaPath, err)
		}
		schemaData = data
	}

	validator, err := schema.New(schemaData)
	if err != nil {
		return err
	}

	model, err := llm.NewClient(cfg.LLM, logger.Named("llm"))
	if err != nil {
		return fmt.Errorf("initializing model client: %w", err)
	}

	repairer := repair.New(validator, model, cfg.Repair.MaxAttempts, logger.Named("repair"))

	savedPath, err := repairer.RepairFile(cmd.Context(), flagReport, flagFixedOutput)
	if err != nil {
		return err
	}

	fmt.Println(color.GreenString("Report is valid. Saved at: %s", savedPath))
	return nil
}
