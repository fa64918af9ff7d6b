package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospectforge/prospectforge/internal/config"
	"github.com/prospectforge/prospectforge/internal/enrich"
	"github.com/prospectforge/prospectforge/internal/gen"
	"github.com/prospectforge/prospectforge/internal/logo"
	"github.com/prospectforge/prospectforge/internal/quality"
	"github.com/prospectforge/prospectforge/internal/render"
	"github.com/prospectforge/prospectforge/internal/row"
	"github.com/prospectforge/prospectforge/internal/summary"
	"github.com/prospectforge/prospectforge/internal/util"
)

// Params names the file paths for one run.
type Params struct {
	InputPath    string
	WorkbookPath string
	DocumentPath string
	RulesPath    string
	Title        string
}

// Run executes the full pipeline: parse and validate the input table,
// enrich every row, and render both deliverables.
func Run(ctx context.Context, cfg config.Config, params Params, progress enrich.Progress, logger *zap.Logger) error {
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	runStart := time.Now()

	rows, validation, err := readInput(params.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	for _, warning := range validation.Warnings {
		log.Warn("input warning", zap.String("detail", warning))
	}
	if !validation.OK {
		return fmt.Errorf("input rejected: %s", strings.Join(validation.Errors, "; "))
	}
	log.Info("input parsed",
		zap.String("path", params.InputPath),
		zap.Int("rows", validation.RowCount),
		zap.Int("warnings", len(validation.Warnings)))

	rules := quality.DefaultRules()
	if params.RulesPath != "" {
		rules, err = quality.LoadRules(params.RulesPath)
		if err != nil {
			return err
		}
	}

	client, err := gen.New(ctx, gen.Config{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		BaseURL:     cfg.Gemini.BaseURL,
		Temperature: cfg.Gemini.Temperature,
	})
	if err != nil {
		return fmt.Errorf("generation client: %s", util.RedactSecrets(err.Error()))
	}

	controller := summary.NewController(client, quality.NewEvaluator(rules), summary.Options{
		MaxAttempts:      cfg.Pipeline.MaxAttempts,
		RateLimitBackoff: cfg.Pipeline.RateLimitBackoff,
		OverloadBackoff:  cfg.Pipeline.OverloadBackoff,
		RejectionDelay:   cfg.Pipeline.RejectionDelay,
	}, log)

	fetcher := logo.NewFetcher(logo.Config{
		PrimaryBaseURL:   cfg.Assets.PrimaryBaseURL,
		SecondaryBaseURL: cfg.Assets.SecondaryBaseURL,
		Timeout:          cfg.Assets.FetchTimeout,
		MinBodySize:      cfg.Assets.MinBodySize,
	}, log)

	runner := enrich.NewRunner(controller, fetcher, progress, enrich.Options{
		RowPacing:    cfg.Pipeline.RowPacing,
		WindowSize:   cfg.Pipeline.WindowSize,
		WindowPause:  cfg.Pipeline.WindowPause,
		FetchTimeout: cfg.Assets.FetchTimeout,
	}, log)

	records, err := runner.Enrich(ctx, rows)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	stats := enrich.Summarize(records)
	log.Info("enrichment complete",
		zap.Int("total", stats.Total),
		zap.Int("excellent", stats.Excellent),
		zap.Int("good", stats.Good),
		zap.Int("needs_review", stats.NeedsReview),
		zap.Int("retries", stats.TotalRetries),
		zap.Int("logos_primary", stats.AssetPrimary),
		zap.Int("logos_secondary", stats.AssetSecondary),
		zap.Int("logos_synthesized", stats.AssetSynthesized))

	if params.WorkbookPath != "" {
		if err := render.WriteWorkbook(records, params.WorkbookPath); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		log.Info("workbook written", zap.String("path", params.WorkbookPath))
	}
	if params.DocumentPath != "" {
		title := params.Title
		if title == "" {
			title = "Prospect Report"
		}
		if err := render.WriteDocument(records, title, params.DocumentPath); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		log.Info("document written", zap.String("path", params.DocumentPath))
	}

	log.Info("run complete", zap.Duration("elapsed", time.Since(runStart).Round(time.Millisecond)))
	return nil
}

func readInput(path string) ([]row.NormalizedRow, row.Validation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return row.ReadXLSX(path)
	case ".csv":
		return readCSVFile(path)
	default:
		return nil, row.Validation{}, fmt.Errorf("unsupported input format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
