package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/clientconnect/internal/metrics"
	"github.com/jrsteele09/clientconnect/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 64 << 10
)

// Client talks to the CRM REST API. One Client is shared by every browser; the
// token attached to each call comes from the Session Store in the call's context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	store      *sessions.Store
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is still wrapped for bearer auth.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// WithSessionStore pins the Session Store used for every request instead of
// reading it from the request context.
func WithSessionStore(store *sessions.Store) Option {
	return func(cl *Client) {
		cl.store = store
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "[api.New] invalid base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("[api.New] base url %q must be absolute", baseURL)
	}

	c := &Client{baseURL: u, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = metrics.InstrumentRoundTripper(&bearerTransport{base: base, store: c.store})
	if hc.Timeout == 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c, nil
}

// BaseURL is the address every relative path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "[api %s %s] encode body", method, path)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) sendForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return errors.Wrapf(err, "[api %s %s] build request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Method: method, Path: path, Err: errors.Wrapf(err, "[api %s %s]", method, path)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newStatusError(method, path, resp.StatusCode, data)
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("detail", apiErr.Detail).Msg("crm api error")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, StatusCode: resp.StatusCode, Err: errors.Wrapf(err, "[api %s %s] decode response", method, path)}
	}
	return nil
}
