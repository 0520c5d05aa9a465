// Package screening calls the external blacklist (PLD) service.
package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/baechuer/identity-service/internal/domain"
	ctxpkg "github.com/baechuer/identity-service/internal/pkg/context"
)

const (
	DefaultTimeout = 5 * time.Second
	checkPath      = "/check-blacklist"
)

// Observer receives one call per screening attempt.
type Observer interface {
	Observe(result string, took time.Duration)
}

type noopObserver struct{}

func (noopObserver) Observe(string, time.Duration) {}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	obs Observer
}

func NewClient(baseURL string, timeout time.Duration, obs Observer) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if obs == nil {
		obs = noopObserver{}
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		obs: obs,
	}
}

type checkRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type checkResponse struct {
	IsInBlacklist *bool `json:"is_in_blacklist"`
}

// Screen reports whether the applicant is blacklisted. It makes exactly one
// request; every failure mode is ErrScreeningUnavailable, never a verdict.
func (c *Client) Screen(ctx context.Context, firstName, lastName, email string) (bool, error) {
	start := time.Now()

	listed, err := c.check(ctx, checkRequest{FirstName: firstName, LastName: lastName, Email: email})
	switch {
	case err != nil:
		c.obs.Observe("unavailable", time.Since(start))
		return false, domain.ErrScreeningUnavailable(err)
	case listed:
		c.obs.Observe("listed", time.Since(start))
	default:
		c.obs.Observe("clear", time.Since(start))
	}
	return listed, nil
}

func (c *Client) check(ctx context.Context, body checkRequest) (bool, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+checkPath, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := ctxpkg.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("blacklist service returned status %d", resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode blacklist response: %w", err)
	}
	if out.IsInBlacklist == nil {
		return false, fmt.Errorf("blacklist response missing is_in_blacklist")
	}
	return *out.IsInBlacklist, nil
}
