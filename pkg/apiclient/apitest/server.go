// Package apitest provides a fake BrazucaPhish backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Response is a canned reply. Body is JSON-encoded unless Raw is set.
type Response struct {
	Status      int
	Body        interface{}
	Raw         string
	ContentType string
	Header      http.Header
	// Wait, when non-nil, blocks the reply until it is closed or the request is cancelled.
	Wait <-chan struct{}
}

// Request is a recorded call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into v.
func (r Request) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Server records every request and answers from a table of canned responses keyed by
// "METHOD /path?query" (exact) or "METHOD /path". Unknown routes get 404 {"error":"not found"}.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	requests  []Request
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	s := &Server{responses: make(map[string]Response)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Respond registers the reply for a route. route is "METHOD /path" or "METHOD /path?query".
func (s *Server) Respond(route string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[route] = resp
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit path with method.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request to path, if any.
func (s *Server) Last(path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	resp, ok := s.responses[r.Method+" "+r.URL.RequestURI()]
	if !ok {
		resp, ok = s.responses[r.Method+" "+r.URL.Path]
	}
	s.mu.Unlock()

	if !ok {
		resp = Response{Status: http.StatusNotFound, Body: map[string]string{"error": "not found"}}
	}

	if resp.Wait != nil {
		select {
		case <-resp.Wait:
		case <-r.Context().Done():
			return
		}
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	if resp.Raw != "" || resp.Body == nil {
		contentType := resp.ContentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp.Raw)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
