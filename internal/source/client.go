package source

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientOptions configures the paced HTTP client shared by the sources.
type ClientOptions struct {
	UserAgents []string
	Timeout    time.Duration
	// Randomized sleep applied before every request.
	MinDelay time.Duration
	MaxDelay time.Duration
	// Requests-per-second ceiling on top of the randomized delay.
	RatePerSec float64
}

// Client wraps net/http with the anti-block policy every source applies:
// a random User-Agent per request, a short randomized pre-request delay,
// a rate ceiling, and a short timeout.
type Client struct {
	http     *http.Client
	opts     ClientOptions
	limiter  *rate.Limiter
	maxBody  int64
	attempts int
}

// NewClient creates a paced client.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 2
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		maxBody:  512 * 1024,
		attempts: 2,
	}
}

// Get fetches a URL and returns the body. Non-2xx statuses are errors.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	return c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
}

// PostForm posts form data to a URL and returns the body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (string, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "source: rate limiter wait")
		}
		if err := c.pause(ctx); err != nil {
			return "", err
		}

		req, err := build()
		if err != nil {
			return "", eris.Wrap(err, "source: create request")
		}
		req.Header.Set("User-Agent", c.userAgent())

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = eris.Wrap(err, "source: fetch")
			if ctx.Err() != nil {
				return "", lastErr
			}
			zap.L().Debug("source: request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
		_ = resp.Body.Close()

		if resp.StatusCode >= 500 {
			lastErr = eris.Errorf("source: status %d from %s", resp.StatusCode, req.URL.String())
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", eris.Errorf("source: status %d from %s", resp.StatusCode, req.URL.String())
		}
		if readErr != nil {
			return "", eris.Wrap(readErr, "source: read body")
		}
		return string(body), nil
	}
	return "", lastErr
}

// pause sleeps for a random duration inside the configured delay window.
func (c *Client) pause(ctx context.Context) error {
	d := randomDelay(c.opts.MinDelay, c.opts.MaxDelay)
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "source: pause")
	case <-t.C:
		return nil
	}
}

func (c *Client) userAgent() string {
	if len(c.opts.UserAgents) == 0 {
		return "NorthScrape/1.1"
	}
	return c.opts.UserAgents[rand.Intn(len(c.opts.UserAgents))]
}

func randomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
