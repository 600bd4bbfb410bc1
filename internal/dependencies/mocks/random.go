package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/codenames/internal/dependencies/random"
)

// MockRandom replays queued results. Once a queue is drained, Intn
// returns 0 and String returns "". It is safe for concurrent use.
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result. A queued value outside [0, n)
// is a broken test and panics.
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	result := r.ints[0]
	r.ints = r.ints[1:]
	if result < 0 || result >= n {
		panic(fmt.Sprintf("mocks: queued Intn result %d out of range for n=%d", result, n))
	}
	return result
}

// String returns the next queued result
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.strings) == 0 {
		return ""
	}
	result := r.strings[0]
	r.strings = r.strings[1:]
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// PendingIntn returns how many queued Intn results are unused
func (r *MockRandom) PendingIntn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = nil
	r.strings = nil
}
