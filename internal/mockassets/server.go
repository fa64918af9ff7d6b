// Package mockassets implements a minimal logo/favicon lookup surface for
// tests: a primary logo-by-domain endpoint and a secondary favicon endpoint
// with configurable per-domain behavior.
package mockassets

import (
	"net/http"
	"strings"
	"sync"
)

// Call records a request made to the mock service.
type Call struct {
	Tier   string
	Domain string
}

// Behavior controls how the server answers lookups for one domain.
type Behavior struct {
	// PrimaryStatus is returned by the logo endpoint; 0 means 200 with a payload.
	PrimaryStatus int
	// SecondaryStatus is returned by the favicon endpoint; 0 means 200.
	SecondaryStatus int
	// SecondaryTiny serves a sub-threshold favicon body, mimicking the
	// generic placeholder image some favicon services return instead of 404.
	SecondaryTiny bool
}

type Server struct {
	mu        sync.Mutex
	calls     []Call
	behaviors map[string]Behavior
}

func New() *Server {
	return &Server{behaviors: make(map[string]Behavior)}
}

// SetBehavior configures responses for one domain. Unconfigured domains get
// a successful primary lookup.
func (s *Server) SetBehavior(domain string, b Behavior) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.behaviors[domain] = b
}

// Calls returns a copy of the recorded lookups in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Handler returns the http.Handler serving the mock API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/logos/", s.handlePrimary)
	mux.HandleFunc("/favicons", s.handleSecondary)
	return mux
}

func (s *Server) handlePrimary(w http.ResponseWriter, r *http.Request) {
	domain := strings.TrimPrefix(r.URL.Path, "/logos/")
	b := s.record("primary", domain)

	if b.PrimaryStatus != 0 && b.PrimaryStatus != http.StatusOK {
		http.Error(w, "no logo", b.PrimaryStatus)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(fakeImage(domain, 512))
}

func (s *Server) handleSecondary(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	b := s.record("secondary", domain)

	if b.SecondaryStatus != 0 && b.SecondaryStatus != http.StatusOK {
		http.Error(w, "no favicon", b.SecondaryStatus)
		return
	}
	size := 512
	if b.SecondaryTiny {
		size = 16
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(fakeImage(domain, size))
}

func (s *Server) record(tier, domain string) Behavior {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Tier: tier, Domain: domain})
	return s.behaviors[domain]
}

// fakeImage produces a deterministic byte payload of the requested size with
// a PNG signature so content sniffing sees an image.
func fakeImage(seed string, size int) []byte {
	out := make([]byte, size)
	copy(out, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	for i := 8; i < size; i++ {
		if len(seed) > 0 {
			out[i] = seed[i%len(seed)]
		}
	}
	return out
}
