package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prospectforge/prospectforge/internal/app"
	"github.com/prospectforge/prospectforge/internal/config"
	"github.com/prospectforge/prospectforge/internal/enrich"
	"github.com/prospectforge/prospectforge/internal/logging"
	"github.com/prospectforge/prospectforge/internal/util"
)

var (
	verbose bool
	quiet   bool

	inputPath    string
	workbookPath string
	documentPath string
	rulesPath    string
	title        string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "prospectforge",
	Short: "Turn raw prospect exports into polished, AI-summarized deliverables",
	Long: `prospectforge reads a company-prospect export (CSV or XLSX), generates a
quality-gated one-sentence summary per company, resolves a logo for each,
and renders a formatted workbook plus a paginated PDF report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enrich an export and render both deliverables",
	Example: `  prospectforge run --input prospects.csv --workbook out.xlsx --document out.pdf
  prospectforge run --input prospects.xlsx --workbook out.xlsx --rules quality.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if workbookPath == "" && documentPath == "" {
			return fmt.Errorf("at least one of --workbook and --document is required")
		}

		var progress enrich.Progress = app.StderrProgress{W: os.Stderr}
		if quiet {
			progress = enrich.NopProgress{}
		}

		err = app.Run(cmd.Context(), cfg, app.Params{
			InputPath:    inputPath,
			WorkbookPath: workbookPath,
			DocumentPath: documentPath,
			RulesPath:    rulesPath,
			Title:        title,
		}, progress, logger)
		if err != nil {
			return fmt.Errorf("%s", util.RedactSecrets(err.Error()))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().StringVar(&inputPath, "input", "", "input export path (.csv or .xlsx)")
	runCmd.Flags().StringVar(&workbookPath, "workbook", "", "output workbook path (.xlsx)")
	runCmd.Flags().StringVar(&documentPath, "document", "", "output document path (.pdf)")
	runCmd.Flags().StringVar(&rulesPath, "rules", "", "optional YAML quality-rules file")
	runCmd.Flags().StringVar(&title, "title", "", "document title")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
