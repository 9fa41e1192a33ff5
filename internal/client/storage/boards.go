package storage

import (
	"context"

	"github.com/taskwire/taskwire/internal/models"
)

// BoardStorage defines CRUD interface for the local entity store.
// Это локальный кэш; авторитетным хранилищем остается облачный сервис,
// с которым клиент синхронизируется через bulk sync.
type BoardStorage interface {
	// SaveBoard stores or updates a board
	SaveBoard(ctx context.Context, board *models.Board) error

	// GetBoard retrieves a board by ID.
	// Returns ErrBoardNotFound if board doesn't exist.
	GetBoard(ctx context.Context, id string) (*models.Board, error)

	// ListBoards returns all boards
	ListBoards(ctx context.Context) ([]*models.Board, error)

	// DeleteBoard removes a board by ID
	DeleteBoard(ctx context.Context, id string) error

	// SaveColumn stores or updates a column
	SaveColumn(ctx context.Context, column *models.Column) error

	// ListColumns returns columns of a board ordered by position
	ListColumns(ctx context.Context, boardID string) ([]*models.Column, error)

	// DeleteColumn removes a column by ID
	DeleteColumn(ctx context.Context, id string) error

	// SaveCard stores or updates a card
	SaveCard(ctx context.Context, card *models.Card) error

	// ListCards returns cards of a column ordered by index
	ListCards(ctx context.Context, columnID string) ([]*models.Card, error)

	// DeleteCard removes a card by ID
	DeleteCard(ctx context.Context, id string) error

	// SaveTranscription stores a transcription record
	SaveTranscription(ctx context.Context, tr *models.Transcription) error

	// SaveSettings stores user settings
	SaveSettings(ctx context.Context, settings *models.Settings) error

	SnapshotStorage
}

//go:generate moq -out snapshot_mock.go . SnapshotStorage

// SnapshotStorage is the read-only slice of the local store the bulk
// sync orchestrator needs to assemble a full snapshot.
type SnapshotStorage interface {
	// ListBoards returns all boards
	ListBoards(ctx context.Context) ([]*models.Board, error)

	// ListAllColumns returns all columns across boards
	ListAllColumns(ctx context.Context) ([]*models.Column, error)

	// ListAllCards returns all cards across columns
	ListAllCards(ctx context.Context) ([]*models.Card, error)

	// ListTranscriptions returns all stored transcriptions
	ListTranscriptions(ctx context.Context) ([]*models.Transcription, error)

	// GetSettings returns user settings.
	// Returns ErrSettingsNotFound if settings were never saved.
	GetSettings(ctx context.Context) (*models.Settings, error)
}
