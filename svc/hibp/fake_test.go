package hibp

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeHIBP serves canned responses keyed by prefix, account or breach name.
// Missing keys answer 404 like the real service.
type fakeHIBP struct {
	ranges   map[string]string
	breaches map[string]string
	pastes   map[string]string
	named    map[string]string
	status   int

	hits int32
	mu   sync.Mutex
	last http.Header
	path string
}

func newFakeHIBP(t *testing.T) (*fakeHIBP, *Client) {
	t.Helper()
	f := &fakeHIBP{
		ranges:   map[string]string{},
		breaches: map[string]string{},
		pastes:   map[string]string{},
		named:    map[string]string{},
	}
	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/range/{prefix}", f.serve(f.ranges, "prefix", "text/plain"))
	r.Route("/api/v3", func(r chi.Router) {
		r.Get("/breachedaccount/{account}", f.serve(f.breaches, "account", "application/json"))
		r.Get("/pasteaccount/{account}", f.serve(f.pastes, "account", "application/json"))
		r.Get("/breach/{name}", f.serve(f.named, "name", "application/json"))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, New(
		WithHTTPClient(srv.Client()),
		WithPasswordsURL(srv.URL),
		WithAPIURL(srv.URL+"/api/v3"),
	)
}

func (f *fakeHIBP) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.hits, 1)
		f.mu.Lock()
		f.last = r.Header.Clone()
		f.path = r.URL.Path
		f.mu.Unlock()
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeHIBP) serve(data map[string]string, param, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := data[chi.URLParam(r, param)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}

func (f *fakeHIBP) Hits() int {
	return int(atomic.LoadInt32(&f.hits))
}

func (f *fakeHIBP) LastHeader(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last.Get(key)
}

func (f *fakeHIBP) LastPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}
