package gitlab

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Rate-limit signaling headers set by GitLab on API responses.
const (
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
	HeaderRateLimitLimit     = "RateLimit-Limit"
)

// ThrottleThreshold is the remaining-quota level below which the client
// waits for the quota window to reset before issuing new requests.
const ThrottleThreshold = 5

// RateLimit is a point-in-time snapshot of the platform's quota state.
type RateLimit struct {
	// Remaining is the number of requests left in the current window.
	// Negative until the first observation.
	Remaining int

	// ResetAt is when the current window resets. Zero when unknown.
	ResetAt time.Time

	// Limit is the window's total request budget. Zero until observed.
	Limit int
}

// RateTracker records the most recently observed rate-limit headers. The
// snapshot is shared by every in-flight request through a Client and is only
// a hint: concurrent requests may race on it, so the resulting throttling is
// best-effort rather than exact.
type RateTracker struct {
	mu     sync.Mutex
	state  RateLimit
	logger *slog.Logger
	now    func() time.Time
}

// NewRateTracker creates a RateTracker. A nil logger disables observation
// logging.
func NewRateTracker(logger *slog.Logger) *RateTracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RateTracker{
		state:  RateLimit{Remaining: -1},
		logger: logger,
		now:    time.Now,
	}
}

// Observe updates the snapshot from whichever rate headers are present on a
// response. Missing or malformed headers leave prior values untouched. Every
// observation emits one informational log line with the current quota state.
func (t *RateTracker) Observe(h http.Header) {
	t.mu.Lock()
	if v := h.Get(HeaderRateLimitRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			t.state.Remaining = n
		}
	}
	if v := h.Get(HeaderRateLimitReset); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			t.state.ResetAt = time.Unix(secs, 0)
		}
	}
	if v := h.Get(HeaderRateLimitLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			t.state.Limit = n
		}
	}
	state := t.state
	now := t.now()
	t.mu.Unlock()

	var resetIn time.Duration
	if !state.ResetAt.IsZero() {
		resetIn = state.ResetAt.Sub(now)
	}
	t.logger.Info("rate limit observed",
		"remaining", state.Remaining,
		"limit", state.Limit,
		"reset_in", resetIn,
	)
}

// ShouldThrottle reports whether the next request should wait for the quota
// window to reset: fewer than ThrottleThreshold requests remain and the
// reset time is known and in the future.
func (t *RateTracker) ShouldThrottle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	return s.Remaining >= 0 && s.Remaining < ThrottleThreshold &&
		!s.ResetAt.IsZero() && s.ResetAt.After(t.now())
}

// Snapshot returns the current quota snapshot.
func (t *RateTracker) Snapshot() RateLimit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
