// Package ipecho resolves the caller's public IP via an external echo
// service. Checkout uses it only when the HTTP layer cannot produce a
// usable client address; failure yields an empty IP, which turns off
// IP-based rate limits without touching phone-based ones.
package ipecho

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// Resolver queries a JSON IP-echo endpoint ({"ip": "..."}).
type Resolver struct {
	url     string
	timeout time.Duration
}

// NewResolver creates a resolver. An empty URL disables it.
func NewResolver(url string) *Resolver {
	return &Resolver{
		url:     strings.TrimSpace(url),
		timeout: defaultTimeout,
	}
}

// Resolve returns the public IP, or "" on any failure.
func (r *Resolver) Resolve(ctx context.Context) string {
	if r == nil || r.url == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return ""
	}
	client := &http.Client{Timeout: r.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.IP)
}
