package gen

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/genai"

	"github.com/prospectforge/prospectforge/pkg/pipeline/core"
)

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string

	// Temperature is the sampling temperature. Kept low for consistent,
	// factual summaries.
	Temperature float32
}

// Client wraps a single call to the generation service. It classifies
// transport failures and post-processes responses but owns no retry logic;
// the retry controller decides policy.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.3
	}
	return &Client{
		client:      client,
		model:       strings.TrimSpace(cfg.Model),
		temperature: temperature,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Generate submits a single-turn request and returns the cleaned text.
func (c *Client) Generate(ctx context.Context, promptText string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(promptText), c.generateConfig())
	if err != nil {
		return "", classifyErr(err)
	}
	return Postprocess(resp.Text()), nil
}

// Refine submits a multi-turn request carrying the original prompt, the
// rejected candidate as the model's prior turn, and the fix-it instruction.
// The model sees the full conversation, not just the delta.
func (c *Client) Refine(ctx context.Context, originalPrompt, priorCandidate, instruction string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(originalPrompt, genai.RoleUser),
		genai.NewContentFromText(priorCandidate, genai.RoleModel),
		genai.NewContentFromText(instruction, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.generateConfig())
	if err != nil {
		return "", classifyErr(err)
	}
	return Postprocess(resp.Text()), nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		CandidateCount: 1,
		Temperature:    genai.Ptr(c.temperature),
	}
}

// classifyErr maps service failures onto the retry taxonomy: 429 expects a
// multi-second backoff, 5xx a longer one. Anything else is not retryable
// by the generation path.
func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &core.RateLimitedError{Err: err}
		case apiErr.Code/100 == 5:
			return &core.OverloadedError{Err: err}
		default:
			return err
		}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &core.OverloadedError{Err: err}
	}
	return err
}

// Postprocess strips emphasis markup, one pair of wrapping quotes, and
// surrounding whitespace from generated text.
func Postprocess(text string) string {
	out := strings.ReplaceAll(text, "**", "")
	out = strings.ReplaceAll(out, "*", "")
	out = strings.TrimSpace(out)
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}} {
		if len(out) >= 2 && strings.HasPrefix(out, pair[0]) && strings.HasSuffix(out, pair[1]) {
			out = strings.TrimSpace(out[len(pair[0]) : len(out)-len(pair[1])])
			break
		}
	}
	return out
}
