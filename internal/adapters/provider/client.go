// Package provider fetches competitor ranking documents from the public WCA
// REST API mirror.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/logger"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
	defaultUserAgent = "psych-sheet"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_fetcher.go github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider Fetcher

// Fetcher performs one lookup of a competitor.
type Fetcher interface {
	Fetch(ctx context.Context, id identifier.ID) (Person, error)
}

// Client fetches <base>/<id>.json documents over HTTP.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	timeout   time.Duration
	logger    logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is copied
// when WithTimeout is also given, so c itself is never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("provider")
	}
	return c
}

// URL returns the document location for id.
func (c *Client) URL(id identifier.ID) string {
	return c.baseURL + "/" + url.PathEscape(string(id)) + ".json"
}

// Fetch performs a single GET. Not-found and other non-2xx responses, network
// errors and malformed bodies are all reported as errors.
func (c *Client) Fetch(ctx context.Context, id identifier.ID) (Person, error) {
	start := time.Now()
	p, outcome, err := c.fetch(ctx, id)
	metrics.RecordFetchAttempt(outcome, float64(time.Since(start).Milliseconds()))
	if err != nil {
		c.logger.Debug(ctx, "lookup failed",
			logger.String("id", string(id)),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return Person{}, err
	}
	return p, nil
}

func (c *Client) fetch(ctx context.Context, id identifier.ID) (Person, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(id), nil)
	if err != nil {
		return Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: %s: %w", ErrTransport, id, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Person{}, metrics.OutcomeCanceled, fmt.Errorf("%w: %s: %w", ErrTransport, id, err)
		}
		return Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: %s: %w", ErrTransport, id, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Person{}, metrics.OutcomeNotFound, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Person{}, metrics.OutcomeStatus, fmt.Errorf("%w: %s: %d", ErrUnexpectedStatus, id, resp.StatusCode)
	}

	var p Person
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&p); err != nil {
		return Person{}, metrics.OutcomeDecode, fmt.Errorf("%w: %s: %w", ErrDecode, id, err)
	}
	return p, metrics.OutcomeSuccess, nil
}
