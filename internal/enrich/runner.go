package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prospectforge/prospectforge/internal/logo"
	"github.com/prospectforge/prospectforge/internal/prompt"
	"github.com/prospectforge/prospectforge/internal/row"
	"github.com/prospectforge/prospectforge/internal/summary"
	"github.com/prospectforge/prospectforge/pkg/pipeline/worker"
)

// Summarizer yields the summary decision for one row. Never errors; see the
// retry controller's fallback policy.
type Summarizer interface {
	Run(ctx context.Context, in prompt.Inputs) summary.Outcome
}

// AssetFetcher resolves one auxiliary asset through the fallback chain.
type AssetFetcher interface {
	Fetch(ctx context.Context, item logo.Item) (logo.Asset, error)
}

// Progress receives fire-and-forget callbacks during both phases. Observers
// must not block; the runner applies no backpressure.
type Progress interface {
	// OnRow fires when Phase A starts a row: (current index, total, name).
	OnRow(index, total int, name string)
	// OnAsset fires as Phase B items resolve: (completed, total).
	OnAsset(done, total int)
}

// NopProgress discards all callbacks.
type NopProgress struct{}

func (NopProgress) OnRow(int, int, string) {}
func (NopProgress) OnAsset(int, int)       {}

type Options struct {
	// RowPacing is the fixed delay between Phase A rows, a deliberate
	// throttle against the generation service's per-key rate limit.
	RowPacing time.Duration

	// WindowSize bounds Phase B concurrency.
	WindowSize int
	// WindowPause is the sleep between Phase B windows.
	WindowPause time.Duration
	// FetchTimeout bounds each individual asset fetch.
	FetchTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.RowPacing <= 0 {
		o.RowPacing = 500 * time.Millisecond
	}
	if o.WindowSize <= 0 {
		o.WindowSize = 5
	}
	if o.WindowPause <= 0 {
		o.WindowPause = 100 * time.Millisecond
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 2 * time.Second
	}
	return o
}

// Runner drives the two enrichment phases: sequential, paced summary
// generation, then windowed concurrent asset fetch. Output order always
// matches input order.
type Runner struct {
	summarizer Summarizer
	fetcher    AssetFetcher
	progress   Progress
	opts       Options
	logger     *zap.Logger
}

func NewRunner(summarizer Summarizer, fetcher AssetFetcher, progress Progress, opts Options, logger *zap.Logger) *Runner {
	if progress == nil {
		progress = NopProgress{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		summarizer: summarizer,
		fetcher:    fetcher,
		progress:   progress,
		opts:       opts.withDefaults(),
		logger:     logger,
	}
}

// Enrich processes all rows and returns one record per row, in input order.
// A single row's failure never aborts the batch; the only returned error is
// context cancellation.
func (r *Runner) Enrich(ctx context.Context, rows []row.NormalizedRow) ([]Record, error) {
	records, err := r.summarizeAll(ctx, rows)
	if err != nil {
		return nil, err
	}
	if err := r.fetchAssets(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// summarizeAll is Phase A: strictly sequential, one generation round-trip in
// flight at a time, paced by a single-slot limiter.
func (r *Runner) summarizeAll(ctx context.Context, rows []row.NormalizedRow) ([]Record, error) {
	pace := rate.NewLimiter(rate.Every(r.opts.RowPacing), 1)
	records := make([]Record, len(rows))

	for i, src := range rows {
		if err := pace.Wait(ctx); err != nil {
			return nil, err
		}
		r.progress.OnRow(i, len(rows), src.CompanyName)

		start := time.Now()
		outcome := r.summarizer.Run(ctx, prompt.Inputs{
			CompanyName: src.CompanyName,
			Industry:    src.Industry,
			Revenue:     src.Revenue,
			Employees:   src.Employees,
			Location:    src.Location(),
			Keywords:    src.Keywords,
			Description: src.Description,
		})

		rec := newRecord(src)
		rec.Summary = outcome.Summary
		rec.QualityTag = outcome.Tier
		rec.RetryCount = outcome.RetryCount
		records[i] = rec

		r.logger.Debug("row summarized",
			zap.Int("index", i),
			zap.String("company", src.CompanyName),
			zap.String("tier", string(outcome.Tier)),
			zap.Int("retries", outcome.RetryCount),
			zap.Bool("fallback", outcome.FellBack),
			zap.Duration("elapsed", time.Since(start)))
	}
	return records, nil
}

// fetchAssets is Phase B: fixed-size concurrent windows over the records,
// each item owning its own result slot, merged back by index once the pool
// resolves.
func (r *Runner) fetchAssets(ctx context.Context, records []Record) error {
	items := make([]logo.Item, len(records))
	for i, rec := range records {
		items[i] = logo.Item{Domain: rec.Domain, DisplayName: rec.Company}
	}

	results, err := worker.ProcessWindowsWithCallback(ctx, items, r.fetcher.Fetch,
		func(done, total int) {
			r.progress.OnAsset(done, total)
		},
		worker.Options{
			WindowSize:  r.opts.WindowSize,
			WindowPause: r.opts.WindowPause,
			// Each remote tier carries its own FetchTimeout inside the
			// fetcher; this bound covers the whole fallback chain.
			RequestTimeout: 3 * r.opts.FetchTimeout,
		})
	if err != nil {
		return err
	}

	for i, res := range results {
		if res.Err != nil {
			// Even synthesis failed; the record proceeds without an asset.
			r.logger.Warn("asset fetch yielded nothing",
				zap.String("company", records[i].Company), zap.Error(res.Err))
			records[i].Asset = logo.Asset{Provenance: logo.ProvenanceNone}
			continue
		}
		records[i].Asset = res.Output
	}
	return nil
}
