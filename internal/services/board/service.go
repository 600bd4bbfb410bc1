package board

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
)

// Service generates boards
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new BoardService
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "board")),
	}
}

// Generate assigns teams to the first 25 distinct words. The starting team
// gets 9 cells, the other playing team 8, then 7 neutral and 1 assassin.
// Team slots are shuffled independently of the word order.
func (s *Service) Generate(startingTeam model.Team, words []string) (*model.Board, error) {
	if !startingTeam.IsPlaying() {
		return nil, fmt.Errorf("%w: %q cannot start a game", model.ErrIllegalAction, startingTeam)
	}

	words = lo.Uniq(lo.Map(words, func(w string, _ int) string {
		return model.NormalizeWord(w)
	}))
	words = lo.Without(words, "")
	if len(words) < model.BoardSize {
		return nil, fmt.Errorf("%w: need %d distinct words, got %d", model.ErrInvalidWordCount, model.BoardSize, len(words))
	}
	words = words[:model.BoardSize]

	slots := TeamSlots(startingTeam)
	random.Shuffle(s.random, len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	cells := make([]model.Cell, model.BoardSize)
	for i, word := range words {
		cells[i] = model.Cell{Word: word, Team: slots[i]}
	}

	s.logger.Debug("board generated", slog.String("starting_team", startingTeam.String()))
	return model.NewBoard(cells), nil
}

// TeamSlots returns the unshuffled team distribution for a board
func TeamSlots(startingTeam model.Team) []model.Team {
	slots := make([]model.Team, 0, model.BoardSize)
	slots = append(slots, lo.Times(model.StartingTeamCells, func(int) model.Team { return startingTeam })...)
	slots = append(slots, lo.Times(model.OtherTeamCells, func(int) model.Team { return startingTeam.Opponent() })...)
	slots = append(slots, lo.Times(model.NeutralCells, func(int) model.Team { return model.TeamNeutral })...)
	slots = append(slots, lo.Times(model.AssassinCells, func(int) model.Team { return model.TeamAssassin })...)
	return slots
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate(startingTeam model.Team, words []string) (*model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
