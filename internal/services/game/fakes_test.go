package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/board"
	"github.com/mcoot/codenames/internal/storage"
)

// word returns the test vocabulary word at index i
func word(i int) string {
	return fmt.Sprintf("W%02d", i)
}

func vocabulary(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = word(i)
	}
	return words
}

// orderedBoards lays out teams in slot order: starting team W00-W08,
// other team W09-W16, neutral W17-W23, assassin W24
type orderedBoards struct{}

func (orderedBoards) Generate(startingTeam model.Team, words []string) (*model.Board, error) {
	if len(words) < model.BoardSize {
		return nil, model.ErrInvalidWordCount
	}
	slots := board.TeamSlots(startingTeam)
	cells := make([]model.Cell, model.BoardSize)
	for i := range cells {
		cells[i] = model.Cell{Word: words[i], Team: slots[i]}
	}
	return model.NewBoard(cells), nil
}

type clueResult struct {
	clue model.Clue
	err  error
}

// scriptedProvider returns queued results in order and fails once the
// queue is empty
type scriptedProvider struct {
	mu      sync.Mutex
	results []clueResult
	views   []model.BoardView
	ctxs    []context.Context
}

func (p *scriptedProvider) queue(w string, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, clueResult{clue: model.Clue{Word: w, Count: count}})
}

func (p *scriptedProvider) queueErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, clueResult{err: err})
}

func (p *scriptedProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, view)
	p.ctxs = append(p.ctxs, ctx)
	if len(p.results) == 0 {
		return model.Clue{}, fmt.Errorf("%w: nothing queued", model.ErrClueUnavailable)
	}
	r := p.results[0]
	p.results = p.results[1:]
	return r.clue, r.err
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.views)
}

// recordingSink keeps every published event
type recordingSink struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recordingSink) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingSink) types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func (r *recordingSink) ofType(t model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []model.Event
	for _, e := range r.events {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

func (r *recordingSink) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// manualDispatcher holds clue requests until the test runs them
type manualDispatcher struct {
	mu    sync.Mutex
	tasks []func()
}

func (d *manualDispatcher) dispatch(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, task)
}

func (d *manualDispatcher) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

// run runs the i-th held task
func (d *manualDispatcher) run(i int) {
	d.mu.Lock()
	task := d.tasks[i]
	d.mu.Unlock()
	task()
}

// blockingStorage holds every SaveExport until release is closed
type blockingStorage struct {
	storage.Storage
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingStorage(inner storage.Storage) *blockingStorage {
	return &blockingStorage{
		Storage: inner,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingStorage) SaveExport(ctx context.Context, id model.GameID, export model.StateExport) error {
	b.once.Do(func() { close(b.entered) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return b.Storage.SaveExport(ctx, id, export)
}
