package storage

import (
	"context"

	"github.com/mcoot/codenames/internal/model"
)

// Storage defines the interface for data persistence.
// Nothing stored here is ever loaded back into a running game.
type Storage interface {
	// Exported state operations
	SaveExport(ctx context.Context, gameID model.GameID, export model.StateExport) error
	GetExport(ctx context.Context, gameID model.GameID) (*model.StateExport, error)
	DeleteExport(ctx context.Context, gameID model.GameID) error

	// Game summary operations, most recent first
	SaveSummary(ctx context.Context, summary *model.GameSummary) error
	ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)

	// Vocabulary operations
	GetVocabulary(ctx context.Context) ([]string, error)
	SaveVocabulary(ctx context.Context, words []string) error
}
