package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/mcoot/codenames/internal/config"
	"github.com/mcoot/codenames/internal/dependencies/clock"
	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/board"
	"github.com/mcoot/codenames/internal/services/clue"
	"github.com/mcoot/codenames/internal/services/game"
	"github.com/mcoot/codenames/internal/services/words"
	"github.com/mcoot/codenames/internal/storage"
	"github.com/mcoot/codenames/internal/storage/memory"
	redisstorage "github.com/mcoot/codenames/internal/storage/redis"
	"github.com/mcoot/codenames/internal/web/sse"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Words       *words.Service
	Boards      *board.Service
	Clues       clue.Provider
	Engine      *game.Engine
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster

	closers []func()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger. If nil, a no-op logger is used.
	Logger *slog.Logger

	// StorageType is config.StorageMemory (default) or config.StorageRedis
	StorageType string
	Redis       redisstorage.Config

	// WordsPath is a vocabulary file. If empty, the stored vocabulary is
	// used, or the built-in list when nothing is stored.
	WordsPath string

	Clue   clue.Config
	Engine game.Config

	// Seed makes deals reproducible when non-zero
	Seed uint64
}

// FromConfig maps loaded configuration onto a factory Config
func FromConfig(c *config.Config, logger *slog.Logger) Config {
	return Config{
		Logger:      logger,
		StorageType: c.Storage.Type,
		Redis:       c.RedisStorage(),
		WordsPath:   c.Words.Path,
		Clue:        c.ClueProvider(),
		Engine:      c.GameEngine(),
		Seed:        c.Engine.Seed,
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closeStore, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var rnd random.Random = random.New()
	if cfg.Seed != 0 {
		logger.Info("using seeded randomness", slog.Uint64("seed", cfg.Seed))
		rnd = random.NewSeeded(cfg.Seed)
	}
	provider, closeClues, err := clue.Build(cfg.Clue, rnd, logger)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("building clue provider: %w", err)
	}

	app := newWithDependencies(store, clock.New(), rnd, provider, cfg.Engine, logger)
	app.closers = append(app.closers, closeClues, closeStore)

	if err := loadWords(ctx, app.Words, cfg.WordsPath, logger); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func newStorage(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Storage, func(), error) {
	switch cfg.StorageType {
	case config.StorageMemory, "":
		return memory.New(), func() {}, nil

	case config.StorageRedis:
		// Redis may still be starting alongside us
		store, err := retry.DoWithData(
			func() (*redisstorage.Storage, error) { return redisstorage.New(cfg.Redis) },
			retry.Context(ctx),
			retry.Attempts(5),
			retry.Delay(500*time.Millisecond),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				logger.Warn("redis not ready",
					slog.Uint64("attempt", uint64(n+1)),
					slog.String("error", err.Error()))
			}),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}

func loadWords(ctx context.Context, w *words.Service, path string, logger *slog.Logger) error {
	if path != "" {
		if err := w.LoadFromFile(ctx, path); err != nil {
			return fmt.Errorf("loading vocabulary: %w", err)
		}
		return nil
	}

	err := w.LoadFromStorage(ctx)
	if errors.Is(err, model.ErrVocabularyNotSaved) {
		return w.LoadDefault()
	}
	if err != nil {
		logger.Warn("could not load stored vocabulary, using built-in list", slog.String("error", err.Error()))
		return w.LoadDefault()
	}
	return nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, provider clue.Provider, engineCfg game.Config, logger *slog.Logger) *App {
	wordService := words.New(store, rnd, logger)
	boardService := board.New(rnd, logger)

	hub := sse.NewHub(logger)
	go hub.Run()
	broadcaster := sse.NewBroadcaster(hub, logger)

	engine := game.NewEngine(wordService, boardService, provider, store, broadcaster, clk, rnd, logger, engineCfg)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Words:       wordService,
		Boards:      boardService,
		Clues:       provider,
		Engine:      engine,
		Hub:         hub,
		Broadcaster: broadcaster,
	}
}

// Close stops the engine, disconnects event stream clients and releases
// the clue provider and storage
func (a *App) Close() {
	a.Engine.Close()
	a.Hub.Close()
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}
