package logo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Provenance tags which fallback tier produced an asset.
type Provenance string

const (
	ProvenancePrimary     Provenance = "primary"
	ProvenanceSecondary   Provenance = "secondary"
	ProvenanceSynthesized Provenance = "synthesized"
	ProvenanceNone        Provenance = "none"
)

// Asset is the auxiliary image payload for one record. Provenance is always
// set once enrichment completes; Data is nil only when Provenance is none.
type Asset struct {
	Provenance  Provenance
	Data        []byte
	ContentType string
}

// Item is one lookup request: the normalized key plus the display name used
// for placeholder synthesis.
type Item struct {
	Domain      string
	DisplayName string
}

type Config struct {
	// PrimaryBaseURL serves logo-by-domain: GET <base>/<domain>.
	PrimaryBaseURL string
	// SecondaryBaseURL serves favicon-by-domain: GET <base>?domain=<domain>.
	SecondaryBaseURL string

	// Timeout bounds each remote tier independently.
	Timeout time.Duration

	// MinBodySize rejects trivially small secondary responses; favicon
	// services return a tiny generic placeholder instead of a 404.
	MinBodySize int
}

func (c Config) withDefaults() Config {
	if c.PrimaryBaseURL == "" {
		c.PrimaryBaseURL = "https://img.logo.dev"
	}
	if c.SecondaryBaseURL == "" {
		c.SecondaryBaseURL = "https://www.google.com/s2/favicons"
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Second
	}
	if c.MinBodySize <= 0 {
		c.MinBodySize = 128
	}
	return c
}

// Fetcher resolves one asset per item through the three-tier fallback chain:
// primary remote source, secondary remote source, synthesized placeholder.
type Fetcher struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func NewFetcher(cfg Config, logger *zap.Logger) *Fetcher {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Fetch never fails past the final tier: a remote miss falls through, and
// the synthesized placeholder is deterministic for a given display name.
// The returned error is always nil; the signature matches the worker pool's
// processor contract.
func (f *Fetcher) Fetch(ctx context.Context, item Item) (Asset, error) {
	if item.Domain != "" {
		if asset, err := f.fetchRemote(ctx, f.primaryURL(item.Domain), 0); err == nil {
			asset.Provenance = ProvenancePrimary
			return asset, nil
		} else {
			f.logger.Debug("primary logo fetch missed",
				zap.String("domain", item.Domain), zap.Error(err))
		}

		if asset, err := f.fetchRemote(ctx, f.secondaryURL(item.Domain), f.cfg.MinBodySize); err == nil {
			asset.Provenance = ProvenanceSecondary
			return asset, nil
		} else {
			f.logger.Debug("secondary favicon fetch missed",
				zap.String("domain", item.Domain), zap.Error(err))
		}
	}

	return Asset{
		Provenance:  ProvenanceSynthesized,
		Data:        PlaceholderSVG(item.DisplayName),
		ContentType: "image/svg+xml",
	}, nil
}

func (f *Fetcher) primaryURL(domain string) string {
	return strings.TrimRight(f.cfg.PrimaryBaseURL, "/") + "/" + url.PathEscape(domain)
}

func (f *Fetcher) secondaryURL(domain string) string {
	return f.cfg.SecondaryBaseURL + "?sz=128&domain=" + url.QueryEscape(domain)
}

func (f *Fetcher) fetchRemote(ctx context.Context, rawURL string, minBody int) (Asset, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Asset{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Asset{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Asset{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Asset{}, err
	}
	if len(body) == 0 {
		return Asset{}, fmt.Errorf("empty body")
	}
	if minBody > 0 && len(body) < minBody {
		return Asset{}, fmt.Errorf("body %d bytes, below placeholder threshold %d", len(body), minBody)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return Asset{}, fmt.Errorf("unexpected content type %q", contentType)
	}

	return Asset{Data: body, ContentType: contentType}, nil
}

// NormalizeDomain reduces a raw website value to a bare lookup key:
// protocol, www. prefix, path and query are stripped, and the host is
// lowercased.
func NormalizeDomain(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, ".")
	if !strings.Contains(s, ".") {
		return ""
	}
	return s
}
