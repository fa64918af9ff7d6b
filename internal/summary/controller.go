package summary

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/prospectforge/prospectforge/internal/prompt"
	"github.com/prospectforge/prospectforge/internal/quality"
	"github.com/prospectforge/prospectforge/pkg/pipeline/core"
)

// Generator is the single-call generation surface the controller drives.
// Implementations classify failures (rate limited / overloaded / other) but
// never retry; all retry policy lives here.
type Generator interface {
	Generate(ctx context.Context, promptText string) (string, error)
	Refine(ctx context.Context, originalPrompt, priorCandidate, instruction string) (string, error)
}

type Options struct {
	// MaxAttempts is the shared budget on generation calls per row, spanning
	// transient-failure retries and quality-driven refinements alike.
	MaxAttempts int

	// RateLimitBackoff is slept after a rate_limited failure.
	RateLimitBackoff time.Duration
	// OverloadBackoff is slept after an overloaded failure.
	OverloadBackoff time.Duration
	// RejectionDelay is slept before a refinement turn, to avoid hammering
	// the service after a quality rejection.
	RejectionDelay time.Duration

	// FallbackLength is the truncation length for the exhaustion fallback.
	FallbackLength int

	// Sleep overrides the pacing sleeper; nil uses a context-aware default.
	Sleep func(ctx context.Context, d time.Duration)
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.RateLimitBackoff <= 0 {
		o.RateLimitBackoff = 5 * time.Second
	}
	if o.OverloadBackoff <= 0 {
		o.OverloadBackoff = 10 * time.Second
	}
	if o.RejectionDelay <= 0 {
		o.RejectionDelay = 1 * time.Second
	}
	if o.FallbackLength <= 0 {
		o.FallbackLength = 200
	}
	if o.Sleep == nil {
		o.Sleep = sleepCtx
	}
	return o
}

// Outcome is the final summary decision for one row. Summary is never empty:
// exhaustion falls back to a deterministic truncation of the row's original
// description.
type Outcome struct {
	Summary    string
	Tier       quality.Tier
	RetryCount int
	Verdict    quality.Verdict
	FellBack   bool
}

// attemptRecord keeps one prior candidate and its verdict for the session.
type attemptRecord struct {
	Candidate string
	Verdict   quality.Verdict
}

// Controller owns the bounded generate -> evaluate -> refine state machine
// for a single row at a time. The attempt counter is the visible invariant:
// it increments on every generation call and never exceeds MaxAttempts.
type Controller struct {
	gen    Generator
	eval   *quality.Evaluator
	opts   Options
	logger *zap.Logger
}

func NewController(gen Generator, eval *quality.Evaluator, opts Options, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		gen:    gen,
		eval:   eval,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Run produces an accepted or fallback summary for one row. It never returns
// an error: every failure path terminates in a defined fallback outcome.
func (c *Controller) Run(ctx context.Context, in prompt.Inputs) Outcome {
	rules := c.eval.Rules()
	attempts := 0
	var history []attemptRecord

	for attempts < c.opts.MaxAttempts {
		promptText := prompt.Initial(in, rules)
		if attempts > 0 {
			promptText = prompt.Retry(in, rules, attempts)
		}

		candidate, err := c.gen.Generate(ctx, promptText)
		attempts++
		if err != nil {
			if backoff, retryable := c.backoffFor(err); retryable && attempts < c.opts.MaxAttempts {
				c.logger.Warn("generation failed, backing off",
					zap.String("company", in.CompanyName),
					zap.Int("attempt", attempts),
					zap.Duration("backoff", backoff),
					zap.Error(err))
				c.opts.Sleep(ctx, backoff)
				continue
			}
			c.logger.Warn("generation failed, using fallback summary",
				zap.String("company", in.CompanyName),
				zap.Int("attempts", attempts),
				zap.Error(err))
			return c.fallback(in, attempts)
		}

		verdict := c.eval.Evaluate(candidate, in.CompanyName, in.Keywords)
		history = append(history, attemptRecord{Candidate: candidate, Verdict: verdict})
		if verdict.Passed || attempts >= c.opts.MaxAttempts {
			return c.finalize(in, candidate, verdict, attempts)
		}

		// Quality rejection with budget remaining: one refinement turn that
		// quotes the rejected candidate and its specific defects.
		c.opts.Sleep(ctx, c.opts.RejectionDelay)
		instruction := prompt.RefinementInstruction(verdict, in, rules)
		refined, err := c.gen.Refine(ctx, promptText, candidate, instruction)
		attempts++
		if err != nil {
			if backoff, retryable := c.backoffFor(err); retryable && attempts < c.opts.MaxAttempts {
				c.opts.Sleep(ctx, backoff)
				continue
			}
			// A candidate exists; surface it for review instead of discarding.
			return c.finalize(in, candidate, verdict, attempts)
		}

		refinedVerdict := c.eval.Evaluate(refined, in.CompanyName, in.Keywords)
		history = append(history, attemptRecord{Candidate: refined, Verdict: refinedVerdict})
		if refinedVerdict.Passed || attempts >= c.opts.MaxAttempts {
			return c.finalize(in, refined, refinedVerdict, attempts)
		}
		// Full restart with the incremented counter, not another refinement.
	}

	if last := len(history) - 1; last >= 0 {
		return c.finalize(in, history[last].Candidate, history[last].Verdict, attempts)
	}
	return c.fallback(in, attempts)
}

func (c *Controller) backoffFor(err error) (time.Duration, bool) {
	switch {
	case core.IsRateLimited(err):
		return c.opts.RateLimitBackoff, true
	case core.IsOverloaded(err):
		return c.opts.OverloadBackoff, true
	default:
		return 0, false
	}
}

func (c *Controller) finalize(in prompt.Inputs, candidate string, verdict quality.Verdict, attempts int) Outcome {
	if strings.TrimSpace(candidate) == "" {
		return c.fallback(in, attempts)
	}
	tier := quality.ClassifyTier(verdict)
	c.logger.Info("summary finalized",
		zap.String("company", in.CompanyName),
		zap.String("tier", string(tier)),
		zap.Int("retries", attempts-1),
		zap.Bool("passed", verdict.Passed))
	return Outcome{
		Summary:    candidate,
		Tier:       tier,
		RetryCount: attempts - 1,
		Verdict:    verdict,
	}
}

func (c *Controller) fallback(in prompt.Inputs, attempts int) Outcome {
	retries := attempts - 1
	if retries < 0 {
		retries = 0
	}
	return Outcome{
		Summary:    Fallback(in.CompanyName, in.Description, c.opts.FallbackLength),
		Tier:       quality.TierNeedsReview,
		RetryCount: retries,
		FellBack:   true,
	}
}

// Fallback derives the exhaustion summary: a fixed-length, ellipsis-suffixed
// truncation of the row's original description. Deterministic and never empty.
func Fallback(companyName, description string, maxLen int) string {
	text := strings.TrimSpace(description)
	if text == "" {
		text = strings.TrimSpace(companyName) + " (no description provided)."
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
