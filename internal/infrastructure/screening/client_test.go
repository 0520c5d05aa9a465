package screening

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/identity-service/internal/domain"
	ctxpkg "github.com/baechuer/identity-service/internal/pkg/context"
)

type recordingObserver struct {
	mu      sync.Mutex
	results []string
}

func (o *recordingObserver) Observe(result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func TestScreen_SendsApplicantAndDecodesVerdict(t *testing.T) {
	var got checkRequest
	var gotRID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/check-blacklist", r.URL.Path)
		gotRID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"is_in_blacklist": true}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := NewClient(srv.URL, time.Second, obs)

	ctx := ctxpkg.WithRequestID(context.Background(), "rid-7")
	listed, err := c.Screen(ctx, "T", "U", "Test@Example.com")
	require.NoError(t, err)
	assert.True(t, listed)

	assert.Equal(t, checkRequest{FirstName: "T", LastName: "U", Email: "Test@Example.com"}, got)
	assert.Equal(t, "rid-7", gotRID)
	assert.Equal(t, []string{"listed"}, obs.results)
}

func TestScreen_NotListed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_in_blacklist": false}`))
	}))
	defer srv.Close()

	listed, err := NewClient(srv.URL, time.Second, nil).Screen(context.Background(), "a", "b", "c@d.com")
	require.NoError(t, err)
	assert.False(t, listed)
}

func TestScreen_Failures_AreUnavailable(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non_2xx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"bad_body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"missing_field": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			obs := &recordingObserver{}
			listed, err := NewClient(srv.URL, time.Second, obs).Screen(context.Background(), "a", "b", "c@d.com")
			require.Error(t, err)
			assert.False(t, listed)
			assert.True(t, domain.Is(err, "screening_unavailable"))
			assert.Equal(t, []string{"unavailable"}, obs.results)
		})
	}
}

func TestScreen_Timeout_IsUnavailable_NoRetry(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, nil)
	_, err := c.Screen(context.Background(), "a", "b", "c@d.com")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "screening_unavailable"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestScreen_Unreachable_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).Screen(context.Background(), "a", "b", "c@d.com")
	require.Error(t, err)
	assert.True(t, domain.Is(err, "screening_unavailable"))
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient("http://x", 0, nil)
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)
}
