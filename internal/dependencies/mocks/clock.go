package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/codenames/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Tickers only fire when Tick is called.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	tickers     []*MockTicker
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// NewTicker returns a MockTicker registered with this clock
func (c *MockClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTicker{ch: make(chan time.Time, 1), Interval: d}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick advances the clock by each live ticker's interval and fires it.
// Returns the number of tickers fired.
func (c *MockClock) Tick() int {
	c.mu.Lock()
	live := make([]*MockTicker, 0, len(c.tickers))
	for _, t := range c.tickers {
		if !t.Stopped() {
			live = append(live, t)
		}
	}
	c.tickers = live
	now := c.CurrentTime
	c.mu.Unlock()

	for _, t := range live {
		t.fire(now.Add(t.Interval))
	}
	return len(live)
}

// ActiveTickers returns the number of tickers that have not been stopped
func (c *MockClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, t := range c.tickers {
		if !t.Stopped() {
			count++
		}
	}
	return count
}

// MockTicker is a manually fired ticker
type MockTicker struct {
	mu       sync.Mutex
	ch       chan time.Time
	stopped  bool
	Interval time.Duration
}

// C returns the tick channel
func (t *MockTicker) C() <-chan time.Time {
	return t.ch
}

// Stop stops the ticker; later fires are dropped
func (t *MockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop has been called
func (t *MockTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fire delivers a tick, dropping it if the last one is unread
func (t *MockTicker) fire(at time.Time) {
	if t.Stopped() {
		return
	}
	select {
	case t.ch <- at:
	default:
	}
}
