//go:build integration

package infra

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeScreening is an in-process blacklist endpoint. Emails added with List
// are reported as blacklisted.
type FakeScreening struct {
	*httptest.Server

	mu     sync.Mutex
	listed map[string]bool
}

func NewFakeScreening(t *testing.T) *FakeScreening {
	t.Helper()

	f := &FakeScreening{listed: map[string]bool{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeScreening) List(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed[strings.ToLower(email)] = true
}

func (f *FakeScreening) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/check-blacklist" {
		http.NotFound(w, r)
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	listed := f.listed[strings.ToLower(body.Email)]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"is_in_blacklist": listed})
}
