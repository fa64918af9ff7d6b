package logo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prospectforge/prospectforge/internal/logo"
	"github.com/prospectforge/prospectforge/internal/mockassets"
)

func newTestFetcher(t *testing.T) (*logo.Fetcher, *mockassets.Server) {
	t.Helper()
	mock := mockassets.New()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	f := logo.NewFetcher(logo.Config{
		PrimaryBaseURL:   srv.URL + "/logos",
		SecondaryBaseURL: srv.URL + "/favicons",
		Timeout:          time.Second,
		MinBodySize:      128,
	}, nil)
	return f, mock
}

func TestFetch_PrimaryHit(t *testing.T) {
	t.Parallel()
	f, mock := newTestFetcher(t)

	asset, err := f.Fetch(context.Background(), logo.Item{Domain: "acme.com", DisplayName: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenancePrimary {
		t.Fatalf("provenance = %s, want primary", asset.Provenance)
	}
	if len(asset.Data) == 0 || asset.ContentType != "image/png" {
		t.Fatalf("unexpected asset: %d bytes, %q", len(asset.Data), asset.ContentType)
	}

	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Tier != "primary" {
		t.Fatalf("calls = %+v, want a single primary lookup", calls)
	}
}

func TestFetch_FallsBackToSecondary(t *testing.T) {
	t.Parallel()
	f, mock := newTestFetcher(t)
	mock.SetBehavior("globex.com", mockassets.Behavior{PrimaryStatus: http.StatusNotFound})

	asset, err := f.Fetch(context.Background(), logo.Item{Domain: "globex.com", DisplayName: "Globex"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenanceSecondary {
		t.Fatalf("provenance = %s, want secondary", asset.Provenance)
	}

	calls := mock.Calls()
	if len(calls) != 2 || calls[0].Tier != "primary" || calls[1].Tier != "secondary" {
		t.Fatalf("calls = %+v, want primary then secondary", calls)
	}
}

func TestFetch_SynthesizesWhenBothTiersMiss(t *testing.T) {
	t.Parallel()
	f, mock := newTestFetcher(t)
	mock.SetBehavior("initech.com", mockassets.Behavior{
		PrimaryStatus:   http.StatusNotFound,
		SecondaryStatus: http.StatusNotFound,
	})

	asset, err := f.Fetch(context.Background(), logo.Item{Domain: "initech.com", DisplayName: "Initech"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenanceSynthesized {
		t.Fatalf("provenance = %s, want synthesized", asset.Provenance)
	}
	if asset.ContentType != "image/svg+xml" || len(asset.Data) == 0 {
		t.Fatalf("unexpected synthesized asset: %q, %d bytes", asset.ContentType, len(asset.Data))
	}
}

func TestFetch_RejectsTinySecondaryBody(t *testing.T) {
	t.Parallel()
	f, mock := newTestFetcher(t)
	// Favicon services answer 200 with a generic stub instead of a 404; the
	// size threshold is what catches it.
	mock.SetBehavior("hooli.com", mockassets.Behavior{
		PrimaryStatus: http.StatusNotFound,
		SecondaryTiny: true,
	})

	asset, err := f.Fetch(context.Background(), logo.Item{Domain: "hooli.com", DisplayName: "Hooli"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenanceSynthesized {
		t.Fatalf("provenance = %s, want synthesized after tiny secondary", asset.Provenance)
	}
}

func TestFetch_NoDomainSkipsRemoteTiers(t *testing.T) {
	t.Parallel()
	f, mock := newTestFetcher(t)

	asset, err := f.Fetch(context.Background(), logo.Item{DisplayName: "No Website Co"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenanceSynthesized {
		t.Fatalf("provenance = %s, want synthesized", asset.Provenance)
	}
	if calls := mock.Calls(); len(calls) != 0 {
		t.Fatalf("remote lookups made without a domain: %+v", calls)
	}
}

func TestFetch_UnreachableServicesStillSynthesize(t *testing.T) {
	t.Parallel()
	f := logo.NewFetcher(logo.Config{
		PrimaryBaseURL:   "http://127.0.0.1:1/logos",
		SecondaryBaseURL: "http://127.0.0.1:1/favicons",
		Timeout:          200 * time.Millisecond,
	}, nil)

	asset, err := f.Fetch(context.Background(), logo.Item{Domain: "acme.com", DisplayName: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	if asset.Provenance != logo.ProvenanceSynthesized {
		t.Fatalf("provenance = %s, want synthesized", asset.Provenance)
	}
}
