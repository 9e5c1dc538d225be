// Package edge wraps the remote generation service's function-invocation
// endpoint. Every call attaches the caller's bearer credentials and unwraps
// the service's three failure tiers into typed errors: transport failures,
// application errors embedded in a 200 body, and responses missing a field
// the caller needs.
package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Named functions exposed by the generation service.
const (
	FnGenerateContent = "generate-content"
	FnKnowledgePack   = "generate-psp-script"
)

// Sentinel errors for the failure tiers. Handlers map these onto HTTP
// status codes; everything else is a transport error.
var (
	ErrNoToken = errors.New("no access token for remote call")
	// ErrUpstream covers both transport failures and error fields embedded
	// in otherwise-successful responses; the two are logged distinctly but
	// surfaced through the same channel.
	ErrUpstream = errors.New("generation service error")
	// ErrMissingField means the service answered successfully but the
	// response lacks a field the flow requires. This is a contract
	// mismatch with the remote service, not a user input problem.
	ErrMissingField = errors.New("generation response missing required field")
)

// Client invokes remote generation functions.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a generation-service client. baseURL is the functions root,
// e.g. https://host/functions/v1.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Go Pattern: Always configure timeouts on HTTP clients.
		// The default http.Client has NO timeout — requests can hang forever!
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // generation calls are slow
		},
	}
}

// appError is the error field the service embeds in 200 responses.
type appError struct {
	Error string `json:"error"`
}

// Invoke calls a named function with a JSON body and the caller's bearer
// token. On success it returns the raw response body for the caller to
// decode; all failure tiers come back as wrapped sentinel errors.
func (c *Client) Invoke(ctx context.Context, fn string, payload any, accessToken string) ([]byte, error) {
	if accessToken == "" {
		return nil, ErrNoToken
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/"+fn, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, fn, err)
	}
	defer resp.Body.Close() // Go Pattern: ALWAYS close response bodies!

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading response: %v", ErrUpstream, fn, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrUpstream, fn, resp.StatusCode, truncate(body, 300))
	}

	// Tier (b): the service reports failures inside a 200 body.
	var ae appError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstream, fn, ae.Error)
	}

	return body, nil
}

// MissingField builds the tier-(c) error for a response that decoded fine
// but lacks a field the flow needs. Logged with the raw body because it
// indicates the remote contract drifted.
func MissingField(fn, field string, body []byte) error {
	log.Printf("⚠️ %s response missing %q: %s", fn, field, truncate(body, 500))
	return fmt.Errorf("%w: %s has no %s", ErrMissingField, fn, field)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
