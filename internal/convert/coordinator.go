package convert

import (
	"sync"
	"time"

	"github.com/charcoaldev/charcoal/internal/document"
	"github.com/charcoaldev/charcoal/internal/logging"
)

// DefaultDebounce is the quiet interval before a scheduled conversion runs.
const DefaultDebounce = 250 * time.Millisecond

// request is one captured conversion input. The pixel slice is the caller's
// snapshot; the coordinator never reads the live document.
type request struct {
	pixels []byte
	w, h   int
	cfg    MatchConfig
	apply  func([]document.GlyphCell)
}

// Coordinator debounces and serializes conversions.
//
// Scheduling a request cancels any pending timer; only the most recent
// snapshot and callback survive. While a conversion is executing, new
// arrivals replace the pending request and are picked up once the current
// run finishes, so at most one conversion executes at a time even through
// the immediate entry point.
//
// A font or tile-geometry change invalidates the matcher's bitmaps; callers
// handle that by constructing a fresh coordinator, not by mutating this one.
type Coordinator struct {
	mu       sync.Mutex
	matcher  Matcher
	delay    time.Duration
	timer    *time.Timer
	seq      uint64 // invalidates superseded timer callbacks
	pending  *request
	inFlight bool
	log      *logging.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce sets the quiet interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) {
		c.log = l
	}
}

// New creates a coordinator around the given matcher.
func New(matcher Matcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		matcher: matcher,
		delay:   DefaultDebounce,
		log:     logging.Null,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request schedules a conversion of the given pixel snapshot after the
// debounce interval. A call arriving before the interval elapses replaces
// the previous one; superseded requests are never executed. apply receives
// one GlyphCell per tile and runs on the coordinator's goroutine.
func (c *Coordinator) Request(pixels []byte, w, h int, cfg MatchConfig, apply func([]document.GlyphCell)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.matcher == nil {
		c.log.Warn("conversion requested before matcher initialization; dropped")
		return
	}

	c.pending = &request{pixels: pixels, w: w, h: h, cfg: cfg, apply: apply}
	c.seq++
	currentSeq := c.seq

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		if c.seq != currentSeq {
			// A newer request rescheduled the timer; this one is stale.
			c.mu.Unlock()
			return
		}
		c.runLocked()
	})
}

// RequestNow bypasses the debounce timer and converts the snapshot
// immediately, used where instant feedback is required. It still honors
// single-flight: if a conversion is already executing, the request is
// stored as pending and runs right after.
func (c *Coordinator) RequestNow(pixels []byte, w, h int, cfg MatchConfig, apply func([]document.GlyphCell)) {
	c.mu.Lock()

	if c.matcher == nil {
		c.log.Warn("conversion requested before matcher initialization; dropped")
		c.mu.Unlock()
		return
	}

	c.pending = &request{pixels: pixels, w: w, h: h, cfg: cfg, apply: apply}
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.runLocked()
}

// runLocked drains pending requests one at a time. Called with c.mu held;
// returns with it released.
func (c *Coordinator) runLocked() {
	if c.inFlight {
		// The running conversion will pick the pending request up.
		c.mu.Unlock()
		return
	}

	for c.pending != nil {
		req := c.pending
		c.pending = nil
		c.inFlight = true
		c.mu.Unlock()

		cells, err := c.matcher.Match(req.pixels, req.w, req.h, req.cfg)
		if err != nil {
			c.log.Error("conversion failed: %v", err)
		} else if req.apply != nil {
			req.apply(cells)
		}

		c.mu.Lock()
		c.inFlight = false
	}
	c.mu.Unlock()
}

// Rebuild replaces the matcher's candidate lookup after a character set
// change. The rebuild completes before any subsequent conversion runs.
func (c *Coordinator) Rebuild(charset []rune) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.matcher == nil {
		c.log.Warn("rebuild requested before matcher initialization; dropped")
		return nil
	}
	return c.matcher.Rebuild(charset)
}

// Cancel drops any pending request and stops the timer. A conversion
// already executing is not interrupted.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.pending = nil
}

// IsPending reports whether a request is waiting to execute.
func (c *Coordinator) IsPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}
