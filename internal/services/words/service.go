package words

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/storage"
)

//go:embed words.txt
var defaultWords string

// DefaultWords returns the built-in vocabulary
func DefaultWords() []string {
	return parseLines(strings.NewReader(defaultWords))
}

// Service holds the vocabulary and samples board words from it
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu    sync.RWMutex
	words []string
}

// New creates a new word supply
func New(storage storage.Storage, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  rnd,
		logger:  logger.With(slog.String("component", "words")),
	}
}

// LoadDefault loads the built-in vocabulary
func (s *Service) LoadDefault() error {
	return s.loadWords(DefaultWords())
}

// LoadFromStorage loads the vocabulary saved by a previous LoadFromFile
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetVocabulary(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads the vocabulary from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	words = normalize(words)

	// Save to storage for future use
	if err := s.storage.SaveVocabulary(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	words = normalize(words)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = words
	s.logger.Info("vocabulary loaded", slog.Int("words", len(words)))
	return nil
}

// Sample returns n distinct words chosen uniformly at random without
// replacement. Each call draws a fresh sample.
func (s *Service) Sample(n int) ([]string, error) {
	s.mu.RLock()
	pool := make([]string, len(s.words))
	copy(pool, s.words)
	s.mu.RUnlock()

	if n < 0 || len(pool) < n {
		return nil, fmt.Errorf("%w: need %d words, have %d", model.ErrInsufficientVocabulary, n, len(pool))
	}

	// Partial Fisher-Yates: only the first n positions are settled
	for i := 0; i < n; i++ {
		j := i + s.random.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}

// WordCount returns the number of distinct words in the vocabulary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// normalize trims, upper-cases and de-duplicates, keeping first occurrence order
func normalize(words []string) []string {
	cleaned := lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = model.NormalizeWord(w)
		return w, w != "" && !strings.HasPrefix(w, "#")
	})
	return lo.Uniq(cleaned)
}

func parseLines(r *strings.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return normalize(lines)
}

// Interface for dependency injection
type ServiceInterface interface {
	Sample(n int) ([]string, error)
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
