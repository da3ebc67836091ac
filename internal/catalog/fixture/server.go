// Package fixture serves a sample product catalog over the same endpoints as
// the content API. It backs the client tests and the catalogd dev server.
package fixture

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"

	"shopfront/internal/domain"
)

const requestIDHeader = "X-Request-ID"

// Server is an in-memory content API
type Server struct {
	products []domain.Product
	latency  time.Duration
	fail     atomic.Bool
	searches atomic.Int64
	fold     cases.Caser
}

// Option configures a Server
type Option func(*Server)

// WithLatency delays every response, to make debounce and stale-response
// behaviour observable by hand
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithProducts replaces the sample catalog
func WithProducts(products []domain.Product) Option {
	return func(s *Server) { s.products = products }
}

// New creates a fixture server with the sample catalog
func New(opts ...Option) *Server {
	s := &Server{
		products: SampleProducts(),
		fold:     cases.Fold(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFailing makes product endpoints answer with success=false
func (s *Server) SetFailing(fail bool) {
	s.fail.Store(fail)
}

// Searches returns how many search requests were served
func (s *Server) Searches() int {
	return int(s.searches.Load())
}

// Handler returns the router, mounted under prefix (e.g. "/api")
func (s *Server) Handler(prefix string) http.Handler {
	r := chi.NewRouter()
	r.Use(logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("fixture: write error: %v", err)
		}
	})

	r.Route(prefix+"/content", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/products/{slug}", s.getProduct)
	})

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, req *http.Request) {
	if !s.wait(req) {
		return
	}
	if s.fail.Load() {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "catalog unavailable"})
		return
	}

	query, searching := req.URL.Query()["search"]
	if !searching {
		writeJSON(w, http.StatusOK, domain.ProductList{Success: true, Data: s.products})
		return
	}

	s.searches.Add(1)
	writeJSON(w, http.StatusOK, domain.ProductList{Success: true, Data: s.match(strings.Join(query, " "))})
}

func (s *Server) getProduct(w http.ResponseWriter, req *http.Request) {
	slug := chi.URLParam(req, "slug")
	for _, p := range s.products {
		if p.Slug == slug {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": p})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "not found"})
}

// match returns products whose title or category contains the query,
// compared case-insensitively
func (s *Server) match(query string) []domain.Product {
	needle := s.fold.String(strings.TrimSpace(query))
	matches := make([]domain.Product, 0)
	if needle == "" {
		return matches
	}
	for _, p := range s.products {
		haystack := s.fold.String(p.Title + " " + p.CategoryPath())
		if strings.Contains(haystack, needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// wait applies the configured latency, giving up when the client goes away
func (s *Server) wait(req *http.Request) bool {
	if s.latency <= 0 {
		return true
	}
	select {
	case <-time.After(s.latency):
		return true
	case <-req.Context().Done():
		log.Printf("fixture: client abandoned %s", req.URL.String())
		return false
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.Printf("fixture: %s %s [%s] in %s", req.Method, req.URL.String(), req.Header.Get(requestIDHeader), time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("fixture: encode error: %v", err)
	}
}
