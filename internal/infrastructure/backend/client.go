// Package backend is the HTTP client of the rental REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
)

const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api.
	BaseURL string
	// Timeout bounds each request. Zero leaves it to the transport.
	Timeout time.Duration
	// Transport is the underlying round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// OnUnauthorized is called after a 401 on a request that carried a token.
	OnUnauthorized UnauthorizedFunc
}

// Client talks JSON to the rental backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a Client for opts.BaseURL.
func NewClient(opts Options, log zerolog.Logger) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: &authTransport{base: base, onUnauthorized: opts.OnUnauthorized},
		},
		log: log,
	}
}

// SetUnauthorizedHandler installs fn after construction, for wiring where the
// handler itself depends on the client.
func (c *Client) SetUnauthorizedHandler(fn UnauthorizedFunc) {
	c.http.Transport.(*authTransport).onUnauthorized = fn
}

// Ping checks the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend ping: status %d", resp.StatusCode)
	}
	return nil
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do sends body as JSON and decodes the response into out (when non-nil).
// Transport failures become NetworkError; error statuses become the
// matching AuthError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return domain.NewStatusError(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var env envelope
		_ = json.Unmarshal(raw, &env)
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("detail", env.Message).Msg("backend error")
		return domain.NewStatusError(resp.StatusCode, env.Message, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &domain.AuthError{Kind: domain.KindServer, Status: resp.StatusCode, Message: domain.ErrServer.Message, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// unwrap returns the data field of an envelope, or raw itself when the
// response was not wrapped.
func unwrap(raw json.RawMessage) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !isNull(env.Data) {
		return env.Data
	}
	return raw
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// getData fetches path and decodes the (possibly enveloped) payload as T.
func getData[T any](ctx context.Context, c *Client, path string) (T, error) {
	var (
		raw json.RawMessage
		out T
	)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return out, err
	}
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(unwrap(raw), &out); err != nil {
		return out, &domain.AuthError{Kind: domain.KindServer, Status: http.StatusOK, Message: domain.ErrServer.Message, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return out, nil
}
