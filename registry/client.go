// Package registry is the HTTP client for the source registry backend.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/network"
	"github.com/grundrisse/grundrisse/session"
	"github.com/spf13/viper"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept in a StatusError.
const maxErrorBody = 4 << 10

// Client talks to the registry REST API.
type Client struct {
	baseURL     string
	http        *http.Client
	credentials session.Provider
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New returns a client for the backend at baseURL.
// Authenticated calls take their token from credentials at request time.
func New(baseURL string, credentials session.Provider, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        network.Client(),
		credentials: credentials,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault returns a client for the configured api.base_url.
func NewDefault(credentials session.Provider) *Client {
	return New(viper.GetString(key.APIBaseURL), credentials)
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	op     Op
	method string
	path   string
	body   any
	out    any
	public bool

	// optional marks out as informational: an empty or undecodable body
	// does not fail the call.
	optional bool
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	requestID := uuid.NewString()
	entry := log.WithFields(log.Fields{
		"request_id": requestID,
		"method":     cl.method,
		"path":       cl.path,
	})

	defer func() {
		if err != nil {
			entry.WithError(err).Warn("registry request failed")
			err = &OpError{Op: cl.op, Err: err}
		}
	}()

	var token string
	if !cl.public {
		if token, err = c.credentials.Token(); err != nil {
			return err
		}
	}

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	entry.Debug("registry request")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if cl.optional {
		raw, rerr := io.ReadAll(resp.Body)
		if rerr != nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if derr := json.Unmarshal(raw, cl.out); derr != nil {
			entry.WithError(derr).Debug("ignoring response body")
		}
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
