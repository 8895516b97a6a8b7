// Package datamalltest provides an in-process stand-in for the DataMall
// service, for use in tests.
package datamalltest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/datamall-go/datamall"
	"github.com/datamall-go/datamall/security"
)

// Key is the account key the server accepts unless told otherwise.
const Key = "test-account-key"

// UnauthorizedBody is what the server answers when the key is wrong.
const UnauthorizedBody = `{"fault":{"faultstring":"Invalid ApiKey for given resource","detail":{"errorcode":"oauth.v2.InvalidApiKeyForGivenResource"}}}`

// Recorded is a request the server received.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Server is a mock DataMall endpoint bound to an httptest.Server.
type Server struct {
	*httptest.Server

	key string

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Recorded
}

// NewServer starts a server that accepts Key and closes it when t ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	return NewServerWithKey(t, Key)
}

// NewServerWithKey starts a server that accepts key.
func NewServerWithKey(t testing.TB, key string) *Server {
	t.Helper()
	s := &Server{
		key:      key,
		handlers: make(map[string]http.HandlerFunc),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	})
	h, ok := s.handlers[r.URL.Path]
	s.mu.Unlock()

	if !security.ConstantTimeCompareString(r.Header.Get(datamall.HeaderAccountKey), s.key) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(UnauthorizedBody))
		return
	}
	if !ok {
		http.Error(w, "Resource not found", http.StatusNotFound)
		return
	}
	h(w, r)
}

// Handle answers route with status and body.
func (s *Server) Handle(route datamall.Route, status int, body string) {
	s.HandleFunc(route, func(w http.ResponseWriter, _ *http.Request) {
		if strings.HasPrefix(strings.TrimSpace(body), "{") || strings.HasPrefix(strings.TrimSpace(body), "[") {
			w.Header().Set("Content-Type", "application/json;charset=utf-8")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// HandleJSON answers route with 200 and body.
func (s *Server) HandleJSON(route datamall.Route, body string) {
	s.Handle(route, http.StatusOK, body)
}

// HandleFunc registers h for route under the default version prefix.
func (s *Server) HandleFunc(route datamall.Route, h http.HandlerFunc) {
	s.mu.Lock()
	s.handlers[datamall.APIVersion+string(route)] = h
	s.mu.Unlock()
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if none arrived.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Options returns client options pointing at the server with the accepted key.
func (s *Server) Options(extra ...datamall.Option) []datamall.Option {
	opts := []datamall.Option{
		datamall.WithHost(s.URL),
		datamall.WithAPIKey(s.key),
	}
	return append(opts, extra...)
}

// NewClient returns a client for the server, closed when t ends.
func (s *Server) NewClient(t testing.TB, extra ...datamall.Option) *datamall.Client {
	t.Helper()
	c, err := datamall.New(s.Options(extra...)...)
	if err != nil {
		t.Fatalf("datamalltest: new client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}
