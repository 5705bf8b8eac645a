package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type response struct {
	status int
	body   any
}

// RiotServer is a fake Riot API. Requests reach it as /{routing}/{riot path}.
type RiotServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]response
	hits      map[string]int
	keys      map[string]bool
}

func NewRiotServer(t *testing.T) *RiotServer {
	t.Helper()

	s := &RiotServer{
		responses: map[string]response{},
		hits:      map[string]int{},
		keys:      map[string]bool{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

// HostFormat is the value to use as the client's host format.
func (s *RiotServer) HostFormat() string {
	return s.URL + "/%s"
}

// Handle answers path with body encoded as JSON.
func (s *RiotServer) Handle(path string, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response{status: http.StatusOK, body: body}
}

// Fail answers path with status and a Riot style error body.
func (s *RiotServer) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response{
		status: status,
		body:   map[string]any{"status": map[string]any{"message": http.StatusText(status), "status_code": status}},
	}
}

func (s *RiotServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// SawKey reports whether any request carried key as its api_key.
func (s *RiotServer) SawKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key]
}

func (s *RiotServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.keys[r.URL.Query().Get("api_key")] = true
	resp, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		resp = response{status: http.StatusNotFound, body: map[string]any{"status": map[string]any{"status_code": 404}}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	json.NewEncoder(w).Encode(resp.body)
}
