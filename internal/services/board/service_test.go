package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codenames/internal/dependencies/mocks"
	"github.com/mcoot/codenames/internal/dependencies/random"
	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

func testWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("WORD%02d", i)
	}
	return words
}

// Generate tests

func (s *ServiceSuite) TestGenerateDistribution() {
	for _, team := range model.PlayingTeams() {
		board, err := s.service.Generate(team, testWords(25))
		s.Require().NoError(err)

		s.Len(board.Cells, model.BoardSize)
		s.Equal(9, board.TeamCount(team))
		s.Equal(8, board.TeamCount(team.Opponent()))
		s.Equal(7, board.TeamCount(model.TeamNeutral))
		s.Equal(1, board.TeamCount(model.TeamAssassin))
		s.Equal(25, board.UnrevealedCount())
	}
}

func (s *ServiceSuite) TestGenerateDistributionWithRealRandom() {
	service := New(random.New(), testutil.NopLogger())

	for range 50 {
		board, err := service.Generate(model.TeamBlue, testWords(25))
		s.Require().NoError(err)

		s.Equal(9, board.TeamCount(model.TeamBlue))
		s.Equal(8, board.TeamCount(model.TeamRed))
		s.Equal(7, board.TeamCount(model.TeamNeutral))
		s.Equal(1, board.TeamCount(model.TeamAssassin))

		seen := make(map[string]bool)
		for _, c := range board.Cells {
			s.False(seen[c.Word])
			seen[c.Word] = true
			s.False(c.Revealed)
		}
	}
}

func (s *ServiceSuite) TestGenerateKeepsWordOrder() {
	words := testWords(25)
	board, err := s.service.Generate(model.TeamRed, words)
	s.Require().NoError(err)

	for i, c := range board.Cells {
		s.Equal(words[i], c.Word)
	}
}

func (s *ServiceSuite) TestGenerateShufflesTeamSlots() {
	// Fisher-Yates from the end: the first draw swaps slot 24 (assassin)
	// with slot 0, every later draw leaves its slot in place
	s.random.QueueIntn(0)
	for i := 23; i > 0; i-- {
		s.random.QueueIntn(i)
	}

	board, err := s.service.Generate(model.TeamRed, testWords(25))
	s.Require().NoError(err)

	s.Equal(model.TeamAssassin, board.Cells[0].Team)
	s.Equal(model.TeamRed, board.Cells[24].Team)
	s.Equal("WORD00", board.Assassin())
}

func (s *ServiceSuite) TestGenerateUsesFirst25Words() {
	board, err := s.service.Generate(model.TeamRed, testWords(30))
	s.Require().NoError(err)

	s.Len(board.Cells, 25)
	_, err = board.TeamOf("WORD25")
	s.ErrorIs(err, model.ErrUnknownWord)
}

func (s *ServiceSuite) TestGenerateNormalizesWords() {
	words := testWords(25)
	words[0] = "  lowercase "

	board, err := s.service.Generate(model.TeamRed, words)
	s.Require().NoError(err)
	s.Equal("LOWERCASE", board.Cells[0].Word)
}

func (s *ServiceSuite) TestGenerateTooFewWords() {
	_, err := s.service.Generate(model.TeamRed, testWords(24))
	s.ErrorIs(err, model.ErrInvalidWordCount)
}

func (s *ServiceSuite) TestGenerateDuplicatesDoNotCount() {
	words := testWords(24)
	words = append(words, "word00")

	_, err := s.service.Generate(model.TeamRed, words)
	s.ErrorIs(err, model.ErrInvalidWordCount)
}

func (s *ServiceSuite) TestGenerateRejectsNonPlayingTeam() {
	_, err := s.service.Generate(model.TeamNeutral, testWords(25))
	s.ErrorIs(err, model.ErrIllegalAction)
}

func (s *ServiceSuite) TestGenerateReturnsFreshBoard() {
	first, err := s.service.Generate(model.TeamRed, testWords(25))
	s.Require().NoError(err)
	s.Require().NoError(first.Reveal("WORD00"))

	second, err := s.service.Generate(model.TeamRed, testWords(25))
	s.Require().NoError(err)

	revealed, err := second.IsRevealed("WORD00")
	s.Require().NoError(err)
	s.False(revealed)
}

// TeamSlots tests

func (s *ServiceSuite) TestTeamSlotsOrder() {
	slots := TeamSlots(model.TeamBlue)

	s.Len(slots, 25)
	s.Equal(model.TeamBlue, slots[0])
	s.Equal(model.TeamBlue, slots[8])
	s.Equal(model.TeamRed, slots[9])
	s.Equal(model.TeamNeutral, slots[17])
	s.Equal(model.TeamAssassin, slots[24])
}
