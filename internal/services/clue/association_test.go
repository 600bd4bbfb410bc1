package clue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codenames/internal/dependencies/mocks"
	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/services/board"
	"github.com/mcoot/codenames/internal/services/words"
	"github.com/mcoot/codenames/internal/storage/memory"
	"github.com/mcoot/codenames/internal/testutil"
)

const testTable = `
clues:
  ocean:
    whale: 0.9
    shark: 0.9
    octopus: 0.8
  fish:
    shark: 0.8
    whale: 0.5
  music:
    piano: 0.9
    drum: 0.9
  weapon:
    sword: 0.95
    shark: 0.3
  nature:
    tree: 0.9
    whale: 0.3
`

type AssociationSuite struct {
	suite.Suite
	random *mocks.MockRandom
	table  Associations
	ctx    context.Context
}

func TestAssociationSuite(t *testing.T) {
	suite.Run(t, new(AssociationSuite))
}

func (s *AssociationSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	table, err := ParseAssociations([]byte(testTable))
	s.Require().NoError(err)
	s.table = table
	s.ctx = context.Background()
}

func (s *AssociationSuite) provider(risk RiskMode) *AssociationProvider {
	return NewAssociationProvider(s.table, risk, s.random, testutil.NopLogger())
}

func (s *AssociationSuite) TestParseNormalizesCase() {
	s.Equal(0.9, s.table.Similarity("OCEAN", "WHALE"))
	s.Equal(0.0, s.table.Similarity("OCEAN", "PIANO"))
}

func (s *AssociationSuite) TestParseRejectsBadTables() {
	_, err := ParseAssociations([]byte("clues: {}"))
	s.Error(err)

	_, err = ParseAssociations([]byte("clues:\n  ocean:\n    whale: 1.5\n"))
	s.Error(err)

	_, err = ParseAssociations([]byte("clues: [not, a, map]"))
	s.Error(err)
}

func (s *AssociationSuite) TestPicksBestClue() {
	clue, err := s.provider(RiskNormal).RequestClue(s.ctx, testView(model.TeamRed))
	s.Require().NoError(err)

	s.Equal(model.Clue{Word: "OCEAN", Count: 3, Team: model.TeamRed}, clue)
}

func (s *AssociationSuite) TestPicksAmongTopChoices() {
	s.random.QueueIntn(1)

	clue, err := s.provider(RiskNormal).RequestClue(s.ctx, testView(model.TeamRed))
	s.Require().NoError(err)

	s.Equal("FISH", clue.Word)
	s.Equal(1, clue.Count)
}

func (s *AssociationSuite) TestCluesForBlue() {
	clue, err := s.provider(RiskNormal).RequestClue(s.ctx, testView(model.TeamBlue))
	s.Require().NoError(err)

	s.Equal(model.Clue{Word: "MUSIC", Count: 2, Team: model.TeamBlue}, clue)
}

func (s *AssociationSuite) TestIgnoresRevealedTargets() {
	view := reveal(testView(model.TeamRed), "WHALE", "SHARK")

	clue, err := s.provider(RiskNormal).RequestClue(s.ctx, view)
	s.Require().NoError(err)

	s.Equal("OCEAN", clue.Word)
	s.Equal(1, clue.Count)
}

func (s *AssociationSuite) TestAssassinVeto() {
	table, err := ParseAssociations([]byte("clues:\n  weapon:\n    sword: 0.95\n    shark: 0.3\n"))
	s.Require().NoError(err)
	provider := NewAssociationProvider(table, RiskAggressive, s.random, testutil.NopLogger())

	_, err = provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
}

func (s *AssociationSuite) TestRevealedAssassinIsNotVetoed() {
	table, err := ParseAssociations([]byte("clues:\n  weapon:\n    sword: 0.95\n    shark: 0.3\n"))
	s.Require().NoError(err)
	provider := NewAssociationProvider(table, RiskNormal, s.random, testutil.NopLogger())

	clue, err := provider.RequestClue(s.ctx, reveal(testView(model.TeamRed), "SWORD"))
	s.Require().NoError(err)
	s.Equal("WEAPON", clue.Word)
	s.Equal(1, clue.Count)
}

func (s *AssociationSuite) TestSkipsBoardWords() {
	table, err := ParseAssociations([]byte("clues:\n  whale:\n    shark: 0.9\n"))
	s.Require().NoError(err)
	provider := NewAssociationProvider(table, RiskNormal, s.random, testutil.NopLogger())

	_, err = provider.RequestClue(s.ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
}

func (s *AssociationSuite) TestNoTargetsLeft() {
	view := reveal(testView(model.TeamBlue), "PIANO", "DRUM")

	_, err := s.provider(RiskNormal).RequestClue(s.ctx, view)
	s.ErrorIs(err, model.ErrClueUnavailable)
}

func (s *AssociationSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.provider(RiskNormal).RequestClue(ctx, testView(model.TeamRed))
	s.ErrorIs(err, model.ErrClueUnavailable)
	s.ErrorIs(err, context.Canceled)
}

func (s *AssociationSuite) TestUnknownRiskFallsBackToNormal() {
	provider := s.provider(RiskMode("RECKLESS"))
	s.Equal(RiskNormal, provider.risk)
}

func (s *AssociationSuite) TestDefaultTableCluesGeneratedBoards() {
	rnd := random.NewSeeded(2024)
	logger := testutil.NopLogger()

	supply := words.New(memory.New(), rnd, logger)
	s.Require().NoError(supply.LoadDefault())
	boards := board.New(rnd, logger)
	provider := NewAssociationProvider(DefaultAssociations(), RiskNormal, rnd, logger)

	for range 20 {
		sample, err := supply.Sample(model.BoardSize)
		s.Require().NoError(err)
		b, err := boards.Generate(model.TeamRed, sample)
		s.Require().NoError(err)

		for _, team := range model.PlayingTeams() {
			view := model.BoardView{GameID: "game-1", Team: team, Cells: b.Cells}

			clue, err := provider.RequestClue(s.ctx, view)
			s.Require().NoError(err)

			validated, err := Validate(view, clue)
			s.Require().NoError(err)
			s.GreaterOrEqual(validated.Count, 1)
			s.LessOrEqual(validated.Count, len(view.Unrevealed(team)))
		}
	}
}
