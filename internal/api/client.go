// Package api is the single gateway for all backend HTTP calls. It attaches
// the ambient session cookie, normalizes error bodies into *Error, and
// broadcasts a session-expiry signal on 401 responses from non-auth
// endpoints so independent observers can react without the caller knowing
// about them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every request; the backend contract has no explicit
// timeout, so the client supplies its own.
const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	expiry  *ExpiryBroadcaster
	log     *zap.Logger
}

// NewClient builds a gateway for the given base URL. The cookie jar carries
// the backend's session cookie across requests; the client itself never
// reads or sets it. A zero timeout falls back to DefaultTimeout; a nil
// logger is replaced with a nop one.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		expiry:  NewExpiryBroadcaster(),
		log:     log,
	}, nil
}

// Expiry exposes the session-expiry broadcast channel for subscribers.
func (c *Client) Expiry() *ExpiryBroadcaster { return c.expiry }

type errorBody struct {
	Error *struct {
		Code    string        `json:"code"`
		Message string        `json:"message"`
		Details []FieldDetail `json:"details"`
	} `json:"error"`
}

// do issues one request and decodes the response into out (which may be
// nil). Every endpoint wrapper funnels through here; nothing above this
// function looks at HTTP status codes.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, raw)
		if resp.StatusCode == http.StatusUnauthorized && !isAuthEntryPath(path) {
			c.log.Info("session expired", zap.String("path", path))
			c.expiry.Emit()
		}
		c.log.Debug("request rejected",
			zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode), zap.String("code", apiErr.Code))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError shapes a non-2xx body. A missing or malformed error envelope
// degrades to the generic unknown-error form rather than failing.
func decodeError(status int, raw []byte) *Error {
	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return &Error{
			Status:  status,
			Code:    parsed.Error.Code,
			Message: parsed.Error.Message,
			Details: parsed.Error.Details,
		}
	}
	return &Error{
		Status:  status,
		Code:    CodeUnknownError,
		Message: "An error occurred",
		Details: []FieldDetail{},
	}
}

// Login and registration 401s mean bad credentials, not an expired session;
// they must not trigger the global redirect.
func isAuthEntryPath(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/register")
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}
