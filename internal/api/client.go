// Package api is the HTTP client for the storefront backend. It attaches the
// session bearer token to outgoing requests, tags each request with a
// correlation id, and maps backend error bodies into application errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	apperrors "github.com/Vinicius-Leon/leons-cupcake/pkg/errors"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/httpclient"
	"github.com/Vinicius-Leon/leons-cupcake/pkg/logger"
)

// TokenSource is the slice of the session manager the client depends on: it
// reads the current token to authorize requests and writes the credentials
// returned by a successful login.
type TokenSource interface {
	Token() (string, bool)
	SaveToken(token string)
	SaveUser(user *domain.User)
}

// Client talks to the cupcake backend.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	session TokenSource
	logger  *slog.Logger
}

// NewClient builds a backend client on top of the retrying, circuit-broken
// HTTP transport. baseURL is the backend root without a trailing slash.
func NewClient(baseURL string, transport *httpclient.CircuitBreakerClient, session TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    transport,
		session: session,
		logger:  log,
	}
}

// do sends a JSON request and decodes a JSON response. A nil in sends no
// body; a nil out discards the response body. Non-2xx responses become
// application errors carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Correlation-ID", c.correlationID(ctx))

	// Interceptor semantics: the token is attached whenever one is stored,
	// valid or not. The backend is the authority on rejecting it.
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			c.logger.Warn("backend request rejected by open circuit",
				slog.String("method", method),
				slog.String("path", path),
			)
			return apperrors.ServiceUnavailable("backend temporarily unavailable")
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp)
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Ping reports whether the backend answers HTTP at all. Any response, error
// status included, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

func (c *Client) correlationID(ctx context.Context) string {
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
