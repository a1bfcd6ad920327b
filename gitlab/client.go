// Package gitlab implements repodoc.Platform against the GitLab REST API.
// All traffic flows through a single governed client that paces outbound
// requests, observes rate-limit headers on every response, and retries on
// throttling and transient network failure.
package gitlab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the GitLab instance used unless the client is pointed at
// a self-hosted installation.
const DefaultBaseURL = "https://gitlab.com"

// MaxRetries bounds the retry loop: one initial attempt plus up to three
// retries for throttled or failed requests.
const MaxRetries = 3

const (
	// defaultUserAgent identifies the client on every request.
	defaultUserAgent = "repodoc/1.0"

	// networkRetryDelay is the fixed wait between retries after a
	// transport-level failure.
	networkRetryDelay = 2 * time.Second

	// throttlePadding is added past the advertised reset time so the new
	// quota window is open before the next attempt fires.
	throttlePadding = time.Second

	// throttleCeiling caps the pre-request wait when quota is exhausted.
	// It doubles as the flat backoff for a 429 without a usable reset time.
	throttleCeiling = 60 * time.Second

	// privateTokenHeader carries the authentication token on API requests.
	privateTokenHeader = "PRIVATE-TOKEN"
)

// Pacer spaces outbound requests to stay under burst limits even while quota
// looks healthy. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// SleepFunc suspends for d or until the context is done. Tests inject one to
// observe requested waits without incurring them.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client issues governed GET requests against a GitLab instance. The zero
// value is not usable; construct with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	tracker    *RateTracker
	pacer      Pacer
	sleep      SleepFunc
	logger     *slog.Logger
	maxRetries int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a self-hosted GitLab instance.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithToken sets the private token attached to authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for quota observations and retry decisions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPacer replaces the default one-request-per-second pacer.
func WithPacer(p Pacer) Option {
	return func(c *Client) { c.pacer = p }
}

// WithSleep replaces the wait implementation. Tests use this to record
// requested delays without sleeping through them.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a governed client for the configured GitLab instance.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
		maxRetries: MaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.tracker == nil {
		c.tracker = NewRateTracker(c.logger)
	}
	if c.pacer == nil {
		c.pacer = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	return c
}

// Tracker exposes the client's rate tracker for tests and diagnostics.
func (c *Client) Tracker() *RateTracker { return c.tracker }

// Get performs a governed GET of url. When useAuth is set and a token is
// configured, the request carries the PRIVATE-TOKEN header.
//
// A response is returned for every HTTP status, including a 429 that
// survived all retries; callers interpret non-2xx codes. The error result is
// non-nil only for invalid requests, context cancellation, or a transport
// failure that exhausted its retries, and in those cases the response is nil.
func (c *Client) Get(ctx context.Context, url string, useAuth bool) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.pace(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		if useAuth && c.token != "" {
			req.Header.Set(privateTokenHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt >= c.maxRetries {
				return nil, fmt.Errorf("request failed after %d retries: %w", c.maxRetries, err)
			}
			c.logger.Warn("request failed, retrying",
				"url", url,
				"attempt", attempt+1,
				"error", err,
			)
			if serr := c.sleep(ctx, networkRetryDelay); serr != nil {
				return nil, serr
			}
			continue
		}

		c.tracker.Observe(resp.Header)

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			wait := c.throttleBackoff()
			c.logger.Warn("rate limited, retrying",
				"url", url,
				"attempt", attempt+1,
				"wait", wait,
			)
			drainBody(resp)
			if serr := c.sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			continue
		}

		return resp, nil
	}
}

// pace waits before a request is issued: for the quota window to reset when
// the tracker says the budget is nearly spent, otherwise for the fixed
// inter-request pacer slot.
func (c *Client) pace(ctx context.Context) error {
	if c.tracker.ShouldThrottle() {
		s := c.tracker.Snapshot()
		wait := time.Until(s.ResetAt) + throttlePadding
		if wait > throttleCeiling {
			wait = throttleCeiling
		}
		c.logger.Info("quota nearly exhausted, waiting for reset",
			"remaining", s.Remaining,
			"wait", wait,
		)
		return c.sleep(ctx, wait)
	}
	return c.pacer.Wait(ctx)
}

// throttleBackoff computes the wait after a 429 response: just past the
// advertised reset when one is known, a flat ceiling otherwise.
func (c *Client) throttleBackoff() time.Duration {
	s := c.tracker.Snapshot()
	if s.ResetAt.IsZero() {
		return throttleCeiling
	}
	wait := time.Until(s.ResetAt) + throttlePadding
	if wait < throttlePadding {
		wait = throttlePadding
	}
	return wait
}

// drainBody discards and closes a response body so the underlying
// connection can be reused by the next attempt.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
