package factory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/codenames/internal/dependencies/mocks"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/clue"
	"github.com/mcoot/codenames/internal/services/game"
	"github.com/mcoot/codenames/internal/storage/memory"
	"github.com/mcoot/codenames/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Spymaster  *QueuedSpymaster
}

// NewTestApp creates an App with mocked dependencies. Clue requests run
// synchronously, so a queued clue is applied before the action that
// requested it returns.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	spymaster := &QueuedSpymaster{}

	engineCfg := game.DefaultConfig()
	engineCfg.Dispatch = func(task func()) { task() }

	app := newWithDependencies(store, mockClock, mockRandom, spymaster, engineCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Spymaster:  spymaster,
	}
}

// TestWord returns the i-th word of the test vocabulary
func TestWord(i int) string {
	return fmt.Sprintf("AGENT%02d", i)
}

// LoadTestVocabulary loads exactly one board's worth of words. With the
// mock random returning zero, boards are dealt in vocabulary order.
func (t *TestApp) LoadTestVocabulary() error {
	words := make([]string, model.BoardSize)
	for i := range words {
		words[i] = TestWord(i)
	}
	return t.Words.LoadWords(words)
}

// QueueOrderedGame queues the draws for the next NewGame: startingTeam
// starts, the game gets id, and cells are dealt in slot order, so
// TestWord(0-8) belong to startingTeam, 9-16 to the opponent, 17-23 are
// neutral and 24 is the assassin.
func (t *TestApp) QueueOrderedGame(startingTeam model.Team, id string) {
	t.MockRandom.QueueIntn(lo.IndexOf(model.PlayingTeams(), startingTeam))
	t.MockRandom.QueueIntn(make([]int, model.BoardSize)...) // Vocabulary order
	for i := model.BoardSize - 1; i > 0; i-- {
		t.MockRandom.QueueIntn(i) // Leave each slot in place
	}
	t.MockRandom.QueueString(id)
}

// QueuedSpymaster hands out queued clues in order and reports the clue
// as unavailable when none is queued
type QueuedSpymaster struct {
	mu    sync.Mutex
	clues []model.Clue
	views []model.BoardView
}

var _ clue.Provider = (*QueuedSpymaster)(nil)

// Queue adds a clue
func (q *QueuedSpymaster) Queue(word string, count int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clues = append(q.clues, model.Clue{Word: word, Count: count})
}

// RequestClue implements clue.Provider
func (q *QueuedSpymaster) RequestClue(_ context.Context, view model.BoardView) (model.Clue, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.views = append(q.views, view)
	if len(q.clues) == 0 {
		return model.Clue{}, fmt.Errorf("%w: no clue queued", model.ErrClueUnavailable)
	}
	c := q.clues[0]
	q.clues = q.clues[1:]
	return c, nil
}

// Requests returns how many clues have been requested
func (q *QueuedSpymaster) Requests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.views)
}
