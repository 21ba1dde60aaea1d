// Package gateway implements the outbound HTTP client for the ConectaPG
// backend REST service. All domain services go through it; it owns base-URL
// resolution, bearer-token attachment, and normalization of every failure
// into domain.RequestError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/domain"
	"github.com/conectapg/portal/internal/web/metrics"
)

type ctxKey int

const tokenKey ctxKey = 0

// WithToken returns a context carrying the session's bearer token. Requests
// issued with that context send it as an Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// Client is the shared HTTP plumbing. Incidents and Users expose the typed
// endpoint surfaces on top of it.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	Incidents *IncidentClient
	Users     *UserClient
}

// New creates a Client for the given base URL. The timeout bounds each
// request end to end; zero applies a 15s default.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	c.Incidents = &IncidentClient{c: c}
	c.Users = &UserClient{c: c}
	return c
}

// Ping issues a minimal request against the backend and reports
// reachability. Any HTTP response counts; only transport failure is an
// error. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ocorrencias", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// errorBody is the backend's error envelope. Absence of message leaves the
// RequestError message empty so the service layer can apply its fallback.
type errorBody struct {
	Message string `json:"message"`
}

// do executes one request and decodes a 2xx JSON body into out (when out is
// non-nil). endpoint is the templated path used as the metric label, never
// the concrete URL.
func (c *Client) do(ctx context.Context, method, endpoint, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, endpoint, "transport_error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("backend request failed")
		return &domain.RequestError{}
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &eb)
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("backend response decode failed")
		return &domain.RequestError{StatusCode: resp.StatusCode}
	}
	return nil
}
