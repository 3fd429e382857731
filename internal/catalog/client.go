package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tavernworks/shopkeep/internal/config"
)

// StatusError reports a persistent non-success HTTP status from a catalog
// page. Callers treat it as early termination of that source's pagination,
// not as a fatal pipeline error.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s returned %d", e.URL, e.Code)
}

// Client fetches catalog pages sequentially. Requests are throttled by a
// single rate limiter so a third-party API never sees bursts, and every
// request carries a timeout via the underlying http.Client.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
	limiter    *rate.Limiter
	onPage     func(pageNum, got int)
}

// Option configures the catalog client.
type Option func(*Client)

// WithProgress registers a callback invoked after each fetched page with
// the 1-based page number and the number of records on it.
func WithProgress(fn func(pageNum, got int)) Option {
	return func(c *Client) {
		c.onPage = fn
	}
}

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 4
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "shopkeep/1.0"
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  ua,
		maxRetries: retries,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one rate-limited GET with bounded retry on transport errors,
// 429 and 5xx. A non-success status that survives all retries comes back as
// *StatusError; transport failures come back as hard errors.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := range c.maxRetries {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "catalog: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "catalog: create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = eris.Wrapf(err, "catalog: get %s", url)
			zap.L().Warn("catalog request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = &StatusError{URL: url, Code: resp.StatusCode}
			zap.L().Warn("catalog returned retryable status",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, &StatusError{URL: url, Code: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: read body from %s", url)
		}
		return body, nil
	}

	return nil, lastErr
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := 500 * time.Millisecond
	maxBackoff := 10 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// FetchAll follows pagination cursors from startURL until the server stops
// supplying a next page, returning all results in order. Pages are fetched
// strictly sequentially. A persistent non-success status ends pagination
// early with a warning and the partial results are kept: catalogs are
// best-effort enrichment, not required data. Transport and decode failures
// are returned as errors.
func FetchAll[T any](ctx context.Context, c *Client, startURL string) ([]T, error) {
	var results []T
	next := startURL
	pageNum := 0

	for next != "" {
		body, err := c.get(ctx, next)
		if err != nil {
			var statusErr *StatusError
			if eris.As(err, &statusErr) {
				zap.L().Warn("catalog source ended early, keeping partial results",
					zap.String("url", statusErr.URL),
					zap.Int("status", statusErr.Code),
					zap.Int("collected", len(results)),
				)
				return results, nil
			}
			return results, err
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return results, eris.Wrapf(err, "catalog: decode page from %s", next)
		}

		results = append(results, p.Results...)
		pageNum++
		if c.onPage != nil {
			c.onPage(pageNum, len(p.Results))
		}

		if p.Next == nil {
			break
		}
		next = *p.Next
	}

	return results, nil
}
