// Package testutil provides testing utilities for the aggregation service.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock upstream endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockHN is a configurable mock Hacker News API server for testing.
type MockHN struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount   int
	EndpointCounts map[string]int
}

// NewMockHN creates a new mock Hacker News server.
func NewMockHN() *MockHN {
	mock := &MockHN{
		handlers:       make(map[string]func(w http.ResponseWriter, r *http.Request)),
		EndpointCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.EndpointCounts[r.URL.Path]++
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default: unknown paths behave like an unknown item ID
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockHN) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockHN) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockHN) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.EndpointCounts = make(map[string]int)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockHN) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockHN) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		// Add delay if specified
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		// Set headers
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		// Write status and body
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetNewStories configures /v0/newstories.json to return the given IDs.
func (m *MockHN) SetNewStories(ids []int64) {
	body, _ := json.Marshal(ids)
	m.SetResponse("/v0/newstories.json", MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	})
}

// SetItemJSON configures /v0/item/{id}.json to return the given body.
func (m *MockHN) SetItemJSON(id int64, body string) {
	m.SetResponse(fmt.Sprintf("/v0/item/%d.json", id), MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	})
}

// SetStory configures an item endpoint with a minimal story payload.
func (m *MockHN) SetStory(id int64, title string) {
	body := fmt.Sprintf(`{"id": %d, "type": "story", "by": "tester", "title": %q, "score": 1, "time": 1700000000}`, id, title)
	m.SetItemJSON(id, body)
}

// SetItemResponse configures a raw response for an item endpoint.
func (m *MockHN) SetItemResponse(id int64, resp MockResponse) {
	m.SetResponse(fmt.Sprintf("/v0/item/%d.json", id), resp)
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockHN) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// CountFor returns the number of requests made to a specific path.
func (m *MockHN) CountFor(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.EndpointCounts[path]
}

// NewStoriesCount returns the number of list calls the server has seen.
func (m *MockHN) NewStoriesCount() int {
	return m.CountFor("/v0/newstories.json")
}
