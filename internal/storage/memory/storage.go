package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/storage"
)

// DefaultSummaryLimit caps the number of summaries kept in memory
const DefaultSummaryLimit = 100

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	exports      map[model.GameID]model.StateExport
	summaries    []*model.GameSummary // Oldest first
	summaryLimit int
	vocabulary   []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		exports:      make(map[model.GameID]model.StateExport),
		summaryLimit: DefaultSummaryLimit,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Exported state operations

func (s *Storage) SaveExport(ctx context.Context, gameID model.GameID, export model.StateExport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports[gameID] = cloneExport(export)
	return nil
}

func (s *Storage) GetExport(ctx context.Context, gameID model.GameID) (*model.StateExport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	export, ok := s.exports[gameID]
	if !ok {
		return nil, model.ErrExportNotFound
	}
	out := cloneExport(export)
	return &out, nil
}

func (s *Storage) DeleteExport(ctx context.Context, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exports, gameID)
	return nil
}

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *summary
	s.summaries = append(s.summaries, &copied)
	if over := len(s.summaries) - s.summaryLimit; over > 0 {
		s.summaries = s.summaries[over:]
	}
	return nil
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.summaries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]*model.GameSummary, 0, n)
	for i := len(s.summaries) - 1; i >= 0 && len(result) < n; i-- {
		copied := *s.summaries[i]
		result = append(result, &copied)
	}
	return result, nil
}

// Vocabulary operations

func (s *Storage) GetVocabulary(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.vocabulary == nil {
		return nil, model.ErrVocabularyNotSaved
	}
	return slices.Clone(s.vocabulary), nil
}

func (s *Storage) SaveVocabulary(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary = slices.Clone(words)
	if s.vocabulary == nil {
		s.vocabulary = []string{}
	}
	return nil
}

func cloneExport(e model.StateExport) model.StateExport {
	e.RedWords = slices.Clone(e.RedWords)
	e.BlueWords = slices.Clone(e.BlueWords)
	e.NeutralWords = slices.Clone(e.NeutralWords)
	e.Revealed = slices.Clone(e.Revealed)
	return e
}
