// Package client talks to the EDUCA REST API. Every call decodes the
// {status, body:{message, data}} envelope, and authenticated calls refuse to
// go out without a bearer credential. Nothing is retried.
package client

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

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/pkg/config"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
	"github.com/noah-isme/educa-portal/pkg/middleware/requestid"
)

// Observer receives one sample per upstream call.
type Observer interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

// Response is a decoded envelope.
type Response struct {
	Status  int
	Message string
	Data    json.RawMessage
	// Body is the raw body object, for endpoints that put payload fields
	// next to message instead of under data.
	Body json.RawMessage
}

// Decode unmarshals the data payload into out. An absent payload leaves out
// untouched.
func (r *Response) Decode(out interface{}) error {
	if r == nil || len(r.Data) == 0 || string(r.Data) == "null" || out == nil {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}

// Client is a thin EDUCA API client.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver records upstream metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New constructs a Client for the configured API.
func New(cfg config.APIConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	op     string
	method string
	path   string
	token  string
	// public calls go out without a bearer credential
	public bool
	body   interface{}
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	if !cl.public && cl.token == "" {
		c.logger.Warn("upstream call skipped: no stored credential", zap.String("operation", cl.op))
		return nil, appErrors.ErrMissingCredential
	}

	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, op string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(op, status, time.Since(start))
	}
	if err != nil {
		c.logger.Warn("upstream unreachable", zap.String("operation", op), zap.String("path", req.URL.Path), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnreachable.Code, appErrors.ErrUnreachable.Status, appErrors.GenericMessage)
	}
	return resp, nil
}

// do issues one call and decodes the envelope.
func (c *Client) do(ctx context.Context, cl call) (*Response, error) {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req, cl.op)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Upstream(resp.StatusCode, "", err)
	}

	out := &Response{Status: resp.StatusCode}
	var env struct {
		Status int             `json:"status"`
		Body   json.RawMessage `json:"body"`
	}
	decodeErr := json.Unmarshal(raw, &env)
	if decodeErr == nil && len(env.Body) > 0 {
		out.Body = env.Body
		var body struct {
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(env.Body, &body); err == nil {
			out.Message = body.Message
			out.Data = body.Data
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Info("upstream rejected call",
			zap.String("operation", cl.op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", out.Message),
		)
		return out, appErrors.Upstream(resp.StatusCode, out.Message, fmt.Errorf("%s %s: %d", cl.method, cl.path, resp.StatusCode))
	}
	if decodeErr != nil && len(bytes.TrimSpace(raw)) > 0 {
		return nil, appErrors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode %s: %w", cl.op, decodeErr))
	}
	return out, nil
}

// fetch runs a call and decodes body.data into out.
func (c *Client) fetch(ctx context.Context, cl call, out interface{}) (string, error) {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return "", err
	}
	if err := resp.Decode(out); err != nil {
		return "", appErrors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode %s: %w", cl.op, err))
	}
	return resp.Message, nil
}

// Download fetches a binary payload. The body is read completely before it is
// returned so a failed transfer never yields partial bytes.
func (c *Client) Download(ctx context.Context, op, path, token string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, call{op: op, method: http.MethodGet, path: path, token: token})
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/pdf")
	resp, err := c.send(req, op)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrDownload.Code, appErrors.ErrDownload.Status, appErrors.ErrDownload.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "", appErrors.Wrap(fmt.Errorf("%s: %d", path, resp.StatusCode), appErrors.ErrDownload.Code, appErrors.ErrDownload.Status, appErrors.ErrDownload.Message)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrDownload.Code, appErrors.ErrDownload.Status, appErrors.ErrDownload.Message)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/json") {
		contentType = "application/pdf"
	}
	return data, contentType, nil
}

// IsServerRejection reports whether err carries an explicit answer from the
// API, as opposed to a transport failure.
func IsServerRejection(err error) bool {
	var e *appErrors.Error
	return errors.As(err, &e) && e.Code == appErrors.ErrUpstream.Code
}
