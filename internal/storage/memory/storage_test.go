package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codenames/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func testExport() model.StateExport {
	return model.StateExport{
		Team:         model.TeamRed,
		RedWords:     []string{"APPLE", "BANANA"},
		BlueWords:    []string{"CAR"},
		NeutralWords: []string{"DOG"},
		Assassin:     "BOMB",
		Revealed:     []string{"APPLE"},
	}
}

// Export tests

func (s *StorageSuite) TestSaveAndGetExport() {
	err := s.storage.SaveExport(s.ctx, "game-1", testExport())
	s.Require().NoError(err)

	retrieved, err := s.storage.GetExport(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(testExport(), *retrieved)
}

func (s *StorageSuite) TestGetExportNotFound() {
	_, err := s.storage.GetExport(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrExportNotFound)
}

func (s *StorageSuite) TestSaveExportOverwrites() {
	_ = s.storage.SaveExport(s.ctx, "game-1", testExport())

	updated := testExport()
	updated.Team = model.TeamBlue
	updated.Revealed = []string{"APPLE", "CAR"}
	s.Require().NoError(s.storage.SaveExport(s.ctx, "game-1", updated))

	retrieved, err := s.storage.GetExport(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.TeamBlue, retrieved.Team)
	s.Equal([]string{"APPLE", "CAR"}, retrieved.Revealed)
}

func (s *StorageSuite) TestGetExportReturnsCopy() {
	_ = s.storage.SaveExport(s.ctx, "game-1", testExport())

	retrieved, _ := s.storage.GetExport(s.ctx, "game-1")
	retrieved.Revealed[0] = "MUTATED"

	again, _ := s.storage.GetExport(s.ctx, "game-1")
	s.Equal("APPLE", again.Revealed[0])
}

func (s *StorageSuite) TestDeleteExport() {
	_ = s.storage.SaveExport(s.ctx, "game-1", testExport())

	err := s.storage.DeleteExport(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetExport(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrExportNotFound)
}

// Summary tests

func (s *StorageSuite) TestListSummariesEmpty() {
	summaries, err := s.storage.ListSummaries(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(summaries)
}

func (s *StorageSuite) TestListSummariesMostRecentFirst() {
	for i := range 3 {
		_ = s.storage.SaveSummary(s.ctx, &model.GameSummary{
			ID:          model.GameID(fmt.Sprintf("game-%d", i)),
			Winner:      model.TeamRed,
			CompletedAt: time.Unix(int64(i), 0),
		})
	}

	summaries, err := s.storage.ListSummaries(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.GameID("game-2"), summaries[0].ID)
	s.Equal(model.GameID("game-1"), summaries[1].ID)
}

func (s *StorageSuite) TestListSummariesZeroLimitReturnsAll() {
	for i := range 3 {
		_ = s.storage.SaveSummary(s.ctx, &model.GameSummary{ID: model.GameID(fmt.Sprintf("game-%d", i))})
	}

	summaries, err := s.storage.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(summaries, 3)
}

func (s *StorageSuite) TestSummariesAreCapped() {
	s.storage.summaryLimit = 2
	for i := range 5 {
		_ = s.storage.SaveSummary(s.ctx, &model.GameSummary{ID: model.GameID(fmt.Sprintf("game-%d", i))})
	}

	summaries, err := s.storage.ListSummaries(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.GameID("game-4"), summaries[0].ID)
	s.Equal(model.GameID("game-3"), summaries[1].ID)
}

// Vocabulary tests

func (s *StorageSuite) TestVocabularyNotSaved() {
	_, err := s.storage.GetVocabulary(s.ctx)
	s.ErrorIs(err, model.ErrVocabularyNotSaved)
}

func (s *StorageSuite) TestSaveAndGetVocabulary() {
	words := []string{"APPLE", "BANANA", "CHERRY"}
	err := s.storage.SaveVocabulary(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetVocabulary(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestSaveEmptyVocabulary() {
	err := s.storage.SaveVocabulary(s.ctx, nil)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetVocabulary(s.ctx)
	s.Require().NoError(err)
	s.Empty(retrieved)
}
