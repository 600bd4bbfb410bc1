package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/codenames/internal/dependencies/clock"
	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/board"
	"github.com/mcoot/codenames/internal/services/clue"
	"github.com/mcoot/codenames/internal/services/words"
	"github.com/mcoot/codenames/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EventSink receives engine events. Publish is called while the engine
// holds its lock, so it must not block or call back into the engine.
type EventSink interface {
	Publish(event model.Event)
}

// NopSink discards events
type NopSink struct{}

func (NopSink) Publish(model.Event) {}

// Dispatcher runs clue requests away from the caller
type Dispatcher func(task func())

// GoDispatcher runs each task on its own goroutine
func GoDispatcher(task func()) { go task() }

// Config holds engine tuning
type Config struct {
	ClueTimeout  time.Duration // Per request, retries included
	TickInterval time.Duration // One timer second
	SaveTimeout  time.Duration // Per batch of storage writes
	Dispatch     Dispatcher
}

// DefaultConfig returns production settings
func DefaultConfig() Config {
	return Config{
		ClueTimeout:  30 * time.Second,
		TickInterval: time.Second,
		SaveTimeout:  5 * time.Second,
		Dispatch:     GoDispatcher,
	}
}

// token identifies one turn of one game. Timer ticks and clue results
// carry the token they were issued for and are dropped if it is stale.
type token struct {
	generation uint64
	turn       int
}

// RevealResult describes the outcome of a reveal
type RevealResult struct {
	Word          string
	CellTeam      model.Team
	Correct       bool
	TurnEnded     bool
	TurnEndReason model.TurnEndReason
	GameOver      bool
	Winner        model.Team
	Snapshot      *model.Snapshot
}

// Engine owns the live game session and is the single decision point for
// every change to it. Player actions, clue results and timer ticks are
// all applied under one lock; clue requests and storage writes run
// outside it. Storage writes are bounded by SaveTimeout rather than the
// caller's context, so a caller that goes away cannot drop a save.
type Engine struct {
	words   words.ServiceInterface
	boards  board.ServiceInterface
	clues   clue.Provider
	storage storage.Storage
	sink    EventSink
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config

	mu         sync.Mutex
	session    *model.GameSession
	generation uint64
	cancelClue context.CancelFunc
	stopTimer  func()
	closed     bool
	writes     []write
	batches    uint64

	// Batches flush in the order they were queued
	saveMu  sync.Mutex
	flushed *sync.Cond
	done    uint64

	timers sync.WaitGroup
}

// write is a storage write prepared under the lock and run after it
type write func(ctx context.Context)

// NewEngine creates an engine with no game in progress
func NewEngine(
	wordSupply words.ServiceInterface,
	boards board.ServiceInterface,
	clues clue.Provider,
	storage storage.Storage,
	sink EventSink,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = GoDispatcher
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.ClueTimeout <= 0 {
		cfg.ClueTimeout = DefaultConfig().ClueTimeout
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultConfig().SaveTimeout
	}
	e := &Engine{
		words:   wordSupply,
		boards:  boards,
		clues:   clues,
		storage: storage,
		sink:    sink,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "engine")),
		cfg:     cfg,
	}
	e.flushed = sync.NewCond(&e.saveMu)
	return e
}

// run applies fn under the lock. Once the lock is released it dispatches
// any clue request fn issued and flushes the storage writes it queued.
func (e *Engine) run(fn func() (func(), error)) error {
	e.mu.Lock()
	task, err := fn()
	writes := e.writes
	e.writes = nil
	var batch uint64
	if len(writes) > 0 {
		e.batches++
		batch = e.batches
	}
	e.mu.Unlock()

	if task != nil {
		e.cfg.Dispatch(task)
	}
	if batch > 0 {
		e.flush(batch, writes)
	}
	return err
}

// NewGame replaces any current session with a fresh one and requests the
// first clue. Setup failures leave the current session untouched.
func (e *Engine) NewGame(ctx context.Context) (*model.Snapshot, error) {
	var snapshot *model.Snapshot
	err := e.run(func() (func(), error) {
		if e.closed {
			return nil, model.ErrEngineClosed
		}

		teams := model.PlayingTeams()
		startingTeam := teams[e.random.Intn(len(teams))]

		sample, err := e.words.Sample(model.BoardSize)
		if err != nil {
			return nil, err
		}
		b, err := e.boards.Generate(startingTeam, sample)
		if err != nil {
			return nil, err
		}

		// Supersede the previous session's timer and clue request. An
		// abandoned game's export is dropped; finished games keep theirs.
		e.stopTimerLocked()
		e.cancelClueLocked()
		if prev := e.session; prev != nil && prev.Active {
			e.discardExportLocked(prev.ID)
		}

		e.generation++
		id := model.GameID(e.random.String(12, gameIDAlphabet))
		e.session = model.NewGameSession(id, b, startingTeam, e.clock.Now())

		e.logger.Info("game started",
			slog.String("game_id", string(id)),
			slog.String("starting_team", startingTeam.String()),
		)
		e.publishLocked(model.EventGameStarted, startingTeam, model.GameStartedPayload{StartingTeam: startingTeam})

		task := e.requestClueLocked()
		e.saveLocked()
		snapshot = e.session.Snapshot()
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Reveal flips the cell for word and applies the guess rules
func (e *Engine) Reveal(ctx context.Context, word string) (*RevealResult, error) {
	var result *RevealResult
	err := e.run(func() (func(), error) {
		s, err := e.liveSessionLocked()
		if err != nil {
			return nil, err
		}
		turn := s.Turn
		if !turn.IsGuessing() {
			return nil, model.ErrAwaitingClue
		}
		if turn.GuessesRemaining == 0 {
			return nil, model.ErrNoGuessesRemaining
		}

		cell, err := s.Board.Cell(word)
		if err != nil {
			return nil, err
		}
		if cell.Revealed {
			return nil, model.ErrAlreadyRevealed
		}
		if err := s.Board.Reveal(cell.Word); err != nil {
			return nil, err
		}

		guessingTeam := turn.Team
		result = &RevealResult{Word: cell.Word, CellTeam: cell.Team, Correct: cell.Team == guessingTeam}

		var task func()
		switch {
		case cell.Team == model.TeamAssassin:
			e.publishLocked(model.EventAssassinRevealed, guessingTeam, model.GuessPayload{
				Word:     cell.Word,
				CellTeam: cell.Team,
			})
			e.endGameLocked(guessingTeam.Opponent(), model.GameEndAssassin)

		case cell.Team == guessingTeam:
			exhausted := turn.SpendGuess()
			e.publishLocked(model.EventGuessCorrect, guessingTeam, model.GuessPayload{
				Word:             cell.Word,
				CellTeam:         cell.Team,
				GuessesRemaining: turn.GuessesRemaining,
			})
			if winner := s.WinningTeam(); winner != "" {
				e.endGameLocked(winner, model.GameEndAllAgentsFound)
			} else if exhausted {
				result.TurnEnded, result.TurnEndReason = true, model.TurnEndOutOfGuesses
				task = e.endTurnLocked(model.TurnEndOutOfGuesses)
			}

		default:
			// Opponent or neutral: the turn is forfeit, but an opponent
			// cell can still complete the opponent's set
			e.publishLocked(model.EventGuessIncorrect, guessingTeam, model.GuessPayload{
				Word:             cell.Word,
				CellTeam:         cell.Team,
				GuessesRemaining: turn.GuessesRemaining,
			})
			if winner := s.WinningTeam(); winner != "" {
				e.endGameLocked(winner, model.GameEndAllAgentsFound)
			} else {
				result.TurnEnded, result.TurnEndReason = true, model.TurnEndWrongGuess
				task = e.endTurnLocked(model.TurnEndWrongGuess)
			}
		}

		if !s.Active {
			result.GameOver, result.Winner = true, s.Winner
		}

		e.logger.Info("cell revealed",
			slog.String("game_id", string(s.ID)),
			slog.String("team", guessingTeam.String()),
			slog.String("word", cell.Word),
			slog.String("cell_team", cell.Team.String()),
		)

		e.saveLocked()
		result.Snapshot = s.Snapshot()
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EndTurn passes the turn to the other team. It is allowed while
// guessing, and while awaiting a clue whose request has failed.
func (e *Engine) EndTurn(ctx context.Context) (*model.Snapshot, error) {
	var snapshot *model.Snapshot
	err := e.run(func() (func(), error) {
		s, err := e.liveSessionLocked()
		if err != nil {
			return nil, err
		}
		turn := s.Turn

		reason := model.TurnEndEnded
		switch {
		case turn.CluePending:
			return nil, model.ErrCluePending
		case turn.IsGuessing() && turn.GuessesRemaining > 0:
			reason = model.TurnEndEndedEarly
			e.logger.Info("turn ended early",
				slog.String("game_id", string(s.ID)),
				slog.String("team", turn.Team.String()),
				slog.Int("guesses_remaining", turn.GuessesRemaining),
			)
		}

		task := e.endTurnLocked(reason)
		e.saveLocked()
		snapshot = s.Snapshot()
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ResetGuesses zeroes the guess budget. The exhaustion check runs
// straight away, so the turn passes to the other team.
func (e *Engine) ResetGuesses(ctx context.Context) (*model.Snapshot, error) {
	var snapshot *model.Snapshot
	err := e.run(func() (func(), error) {
		s, err := e.liveSessionLocked()
		if err != nil {
			return nil, err
		}
		turn := s.Turn
		if !turn.IsGuessing() {
			return nil, model.ErrNotGuessing
		}

		turn.ResetGuesses()
		e.publishLocked(model.EventGuessesReset, turn.Team, nil)

		var task func()
		if turn.Exhausted() {
			task = e.endTurnLocked(model.TurnEndGuessesReset)
		}
		e.saveLocked()
		snapshot = s.Snapshot()
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// RetryClue requests a clue again after a failed request
func (e *Engine) RetryClue(ctx context.Context) (*model.Snapshot, error) {
	var snapshot *model.Snapshot
	err := e.run(func() (func(), error) {
		s, err := e.liveSessionLocked()
		if err != nil {
			return nil, err
		}
		turn := s.Turn
		switch {
		case turn.CluePending:
			return nil, model.ErrCluePending
		case turn.IsGuessing():
			return nil, fmt.Errorf("%w: clue already received", model.ErrIllegalAction)
		}

		task := e.requestClueLocked()
		snapshot = s.Snapshot()
		return task, nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Snapshot returns the current session for rendering. Finished games
// stay visible until the next NewGame.
func (e *Engine) Snapshot() (*model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, model.ErrNoGameInProgress
	}
	return e.session.Snapshot(), nil
}

// Export returns the exported state of the current session
func (e *Engine) Export() (*model.StateExport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, model.ErrNoGameInProgress
	}
	export := e.session.BoardView(e.session.Turn.Team).Export()
	return &export, nil
}

// Close stops the timer and any clue request and waits for the timer to
// exit. Every later action returns ErrEngineClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.stopTimerLocked()
	e.cancelClueLocked()
	e.mu.Unlock()

	e.timers.Wait()
}

func (e *Engine) liveSessionLocked() (*model.GameSession, error) {
	if e.closed {
		return nil, model.ErrEngineClosed
	}
	if e.session == nil {
		return nil, model.ErrNoGameInProgress
	}
	if !e.session.Active {
		return nil, model.ErrGameAlreadyOver
	}
	return e.session, nil
}

func (e *Engine) tokenLocked() token {
	return token{generation: e.generation, turn: e.session.Turn.Number}
}

// endTurnLocked switches to the other team and returns its clue request
func (e *Engine) endTurnLocked(reason model.TurnEndReason) func() {
	s := e.session
	turn := s.Turn

	e.stopTimerLocked()
	e.cancelClueLocked()

	payload := model.TurnEndedPayload{Reason: reason, UnusedGuesses: turn.GuessesRemaining}
	if turn.IsGuessing() {
		payload.SecondsConsumed = model.TurnSeconds - turn.SecondsRemaining
	}

	s.Turn = turn.Next(e.clock.Now())

	e.logger.Info("turn ended",
		slog.String("game_id", string(s.ID)),
		slog.String("team", turn.Team.String()),
		slog.String("reason", string(reason)),
		slog.Int("unused_guesses", payload.UnusedGuesses),
	)
	e.publishLocked(model.EventTurnEnded, turn.Team, payload)
	e.publishLocked(model.EventTurnStarted, s.Turn.Team, nil)

	return e.requestClueLocked()
}

// endGameLocked finishes the session and queues its summary
func (e *Engine) endGameLocked(winner model.Team, reason model.GameEndReason) {
	s := e.session
	e.stopTimerLocked()
	e.cancelClueLocked()

	s.End(winner, reason, e.clock.Now())

	e.logger.Info("game over",
		slog.String("game_id", string(s.ID)),
		slog.String("winner", winner.String()),
		slog.String("reason", string(reason)),
	)
	e.publishLocked(model.EventGameOver, winner, model.GameOverPayload{Winner: winner, Reason: reason})

	summary := s.Summary()
	e.writes = append(e.writes, func(ctx context.Context) {
		if err := e.storage.SaveSummary(ctx, &summary); err != nil {
			e.logger.Error("failed to save game summary",
				slog.String("game_id", string(summary.ID)),
				slog.String("error", err.Error()),
			)
		}
	})
}

// requestClueLocked marks a clue pending and returns the request task.
// The task must run after the lock is released.
func (e *Engine) requestClueLocked() func() {
	s := e.session
	turn := s.Turn

	e.cancelClueLocked()
	turn.CluePending = true
	turn.ClueError = ""

	view := s.BoardView(turn.Team)
	tok := e.tokenLocked()
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ClueTimeout)
	e.cancelClue = cancel

	e.publishLocked(model.EventClueRequested, turn.Team, nil)

	return func() {
		defer cancel()
		c, err := e.clues.RequestClue(ctx, view)
		e.deliverClue(tok, c, err)
	}
}

// deliverClue applies a clue result if it is still for the live turn
func (e *Engine) deliverClue(tok token, c model.Clue, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if e.closed || s == nil || !s.Active || tok != e.tokenLocked() || !s.Turn.CluePending {
		e.logger.Debug("discarding stale clue",
			slog.Uint64("generation", tok.generation),
			slog.Int("turn", tok.turn),
		)
		return
	}
	turn := s.Turn

	if err == nil {
		c, err = clue.Validate(s.BoardView(turn.Team), c)
	}
	if err != nil {
		if !errors.Is(err, model.ErrClueUnavailable) {
			err = fmt.Errorf("%w: %w", model.ErrClueUnavailable, err)
		}
		turn.CluePending = false
		turn.ClueError = err.Error()
		e.cancelClueLocked()

		e.logger.Warn("clue request failed",
			slog.String("game_id", string(s.ID)),
			slog.String("team", turn.Team.String()),
			slog.String("error", err.Error()),
		)
		e.publishLocked(model.EventClueFailed, turn.Team, model.ClueFailedPayload{Error: err.Error()})
		return
	}

	turn.BeginGuessing(c)
	e.cancelClueLocked()

	e.logger.Info("clue received",
		slog.String("game_id", string(s.ID)),
		slog.String("team", turn.Team.String()),
		slog.String("clue", c.Word),
		slog.Int("number", c.Count),
	)
	e.publishLocked(model.EventClueReceived, turn.Team, model.ClueReceivedPayload{
		Clue:             c,
		GuessesRemaining: turn.GuessesRemaining,
	})
	e.startTimerLocked()
}

// startTimerLocked starts the countdown for the current guessing phase
func (e *Engine) startTimerLocked() {
	e.stopTimerLocked()

	tok := e.tokenLocked()
	ticker := e.clock.NewTicker(e.cfg.TickInterval)
	done := make(chan struct{})
	var once sync.Once
	e.stopTimer = func() { once.Do(func() { close(done) }) }

	e.timers.Add(1)
	go func() {
		defer e.timers.Done()
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C():
				e.onTick(tok)
			}
		}
	}()
}

// onTick counts down one second of the turn identified by tok
func (e *Engine) onTick(tok token) {
	_ = e.run(func() (func(), error) {
		s := e.session
		if e.closed || s == nil || !s.Active || tok != e.tokenLocked() || !s.Turn.IsGuessing() {
			return nil, nil
		}
		turn := s.Turn

		expired := turn.TickSecond()
		e.publishLocked(model.EventTimerTick, turn.Team, model.TimerPayload{SecondsRemaining: turn.SecondsRemaining})
		if slices.Contains(model.TimerWarnings, turn.SecondsRemaining) {
			e.publishLocked(model.EventTimerWarning, turn.Team, model.TimerPayload{SecondsRemaining: turn.SecondsRemaining})
		}
		if !expired {
			return nil, nil
		}

		e.logger.Info("time up",
			slog.String("game_id", string(s.ID)),
			slog.String("team", turn.Team.String()),
		)
		task := e.endTurnLocked(model.TurnEndTimeUp)
		e.saveLocked()
		return task, nil
	})
}

func (e *Engine) stopTimerLocked() {
	if e.stopTimer != nil {
		e.stopTimer()
		e.stopTimer = nil
	}
}

func (e *Engine) cancelClueLocked() {
	if e.cancelClue != nil {
		e.cancelClue()
		e.cancelClue = nil
	}
}

func (e *Engine) publishLocked(eventType model.EventType, team model.Team, payload any) {
	s := e.session
	e.sink.Publish(model.Event{
		Type:      eventType,
		Timestamp: e.clock.Now(),
		GameID:    s.ID,
		Team:      team,
		Payload:   payload,
		Snapshot:  s.Snapshot(),
	})
}

// saveLocked queues an export of the board. Export is observability
// only, so failures are logged and the game carries on.
func (e *Engine) saveLocked() {
	s := e.session
	id := s.ID
	export := s.BoardView(s.Turn.Team).Export()

	e.writes = append(e.writes, func(ctx context.Context) {
		if err := e.storage.SaveExport(ctx, id, export); err != nil {
			e.logger.Error("failed to save exported state",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	})
}

// discardExportLocked queues removal of an abandoned game's export
func (e *Engine) discardExportLocked(id model.GameID) {
	e.writes = append(e.writes, func(ctx context.Context) {
		if err := e.storage.DeleteExport(ctx, id); err != nil {
			e.logger.Error("failed to delete exported state",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	})
}

// flush runs one batch of storage writes outside the engine lock, after
// every earlier batch has run
func (e *Engine) flush(batch uint64, writes []write) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()
	for e.done != batch-1 {
		e.flushed.Wait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.SaveTimeout)
	defer cancel()
	for _, w := range writes {
		w(ctx)
	}

	e.done = batch
	e.flushed.Broadcast()
}
