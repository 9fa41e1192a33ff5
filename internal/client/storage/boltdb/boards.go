package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/taskwire/taskwire/internal/client/storage"
	"github.com/taskwire/taskwire/internal/models"
)

var settingsKey = []byte("current")

// SaveBoard stores or updates a board
func (s *Storage) SaveBoard(ctx context.Context, board *models.Board) error {
	return s.putJSON(bucketBoards, board.ID, board)
}

// GetBoard retrieves a board by ID
func (s *Storage) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	board := &models.Board{}
	if err := s.getJSON(bucketBoards, id, board, storage.ErrBoardNotFound); err != nil {
		return nil, err
	}
	return board, nil
}

// ListBoards returns all boards
func (s *Storage) ListBoards(ctx context.Context) ([]*models.Board, error) {
	boards := []*models.Board{}
	err := s.forEachJSON(bucketBoards, func(data []byte) error {
		board := &models.Board{}
		if err := json.Unmarshal(data, board); err != nil {
			return fmt.Errorf("failed to unmarshal board: %w", err)
		}
		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// DeleteBoard removes a board by ID
func (s *Storage) DeleteBoard(ctx context.Context, id string) error {
	return s.delete(bucketBoards, id, storage.ErrBoardNotFound)
}

// SaveColumn stores or updates a column
func (s *Storage) SaveColumn(ctx context.Context, column *models.Column) error {
	return s.putJSON(bucketColumns, column.ID, column)
}

// ListColumns returns columns of a board ordered by position
func (s *Storage) ListColumns(ctx context.Context, boardID string) ([]*models.Column, error) {
	all, err := s.ListAllColumns(ctx)
	if err != nil {
		return nil, err
	}
	columns := []*models.Column{}
	for _, col := range all {
		if col.BoardID == boardID {
			columns = append(columns, col)
		}
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Position < columns[j].Position
	})
	return columns, nil
}

// ListAllColumns returns all columns across boards
func (s *Storage) ListAllColumns(ctx context.Context) ([]*models.Column, error) {
	columns := []*models.Column{}
	err := s.forEachJSON(bucketColumns, func(data []byte) error {
		column := &models.Column{}
		if err := json.Unmarshal(data, column); err != nil {
			return fmt.Errorf("failed to unmarshal column: %w", err)
		}
		columns = append(columns, column)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return columns, nil
}

// DeleteColumn removes a column by ID
func (s *Storage) DeleteColumn(ctx context.Context, id string) error {
	return s.delete(bucketColumns, id, storage.ErrColumnNotFound)
}

// SaveCard stores or updates a card
func (s *Storage) SaveCard(ctx context.Context, card *models.Card) error {
	return s.putJSON(bucketCards, card.ID, card)
}

// ListCards returns cards of a column ordered by index
func (s *Storage) ListCards(ctx context.Context, columnID string) ([]*models.Card, error) {
	all, err := s.ListAllCards(ctx)
	if err != nil {
		return nil, err
	}
	cards := []*models.Card{}
	for _, card := range all {
		if card.ColumnID == columnID {
			cards = append(cards, card)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Index < cards[j].Index
	})
	return cards, nil
}

// ListAllCards returns all cards across columns
func (s *Storage) ListAllCards(ctx context.Context) ([]*models.Card, error) {
	cards := []*models.Card{}
	err := s.forEachJSON(bucketCards, func(data []byte) error {
		card := &models.Card{}
		if err := json.Unmarshal(data, card); err != nil {
			return fmt.Errorf("failed to unmarshal card: %w", err)
		}
		cards = append(cards, card)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// DeleteCard removes a card by ID
func (s *Storage) DeleteCard(ctx context.Context, id string) error {
	return s.delete(bucketCards, id, storage.ErrCardNotFound)
}

// SaveTranscription stores a transcription record
func (s *Storage) SaveTranscription(ctx context.Context, tr *models.Transcription) error {
	return s.putJSON(bucketTranscriptions, tr.ID, tr)
}

// ListTranscriptions returns all stored transcriptions
func (s *Storage) ListTranscriptions(ctx context.Context) ([]*models.Transcription, error) {
	trs := []*models.Transcription{}
	err := s.forEachJSON(bucketTranscriptions, func(data []byte) error {
		tr := &models.Transcription{}
		if err := json.Unmarshal(data, tr); err != nil {
			return fmt.Errorf("failed to unmarshal transcription: %w", err)
		}
		trs = append(trs, tr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trs, nil
}

// GetSettings returns user settings
func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}
	if err := s.getJSON(bucketSettings, string(settingsKey), settings, storage.ErrSettingsNotFound); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings stores user settings
func (s *Storage) SaveSettings(ctx context.Context, settings *models.Settings) error {
	return s.putJSON(bucketSettings, string(settingsKey), settings)
}

// putJSON сериализует значение и кладет его в bucket по ключу
func (s *Storage) putJSON(bucket []byte, key string, value any) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("%s bucket not found", string(bucket))
		}

		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}

		if err := b.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save value: %w", err)
		}

		return nil
	})
}

// getJSON достает значение по ключу; notFound возвращается если ключа нет
func (s *Storage) getJSON(bucket []byte, key string, value any, notFound error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("%s bucket not found", string(bucket))
		}

		data := b.Get([]byte(key))
		if data == nil {
			return notFound
		}

		if err := json.Unmarshal(data, value); err != nil {
			return fmt.Errorf("failed to unmarshal value: %w", err)
		}

		return nil
	})
}

// forEachJSON обходит все значения bucket
func (s *Storage) forEachJSON(bucket []byte, fn func(data []byte) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("%s bucket not found", string(bucket))
		}
		return b.ForEach(func(_, v []byte) error {
			return fn(v)
		})
	})
}

// delete удаляет значение по ключу; notFound возвращается если ключа нет
func (s *Storage) delete(bucket []byte, key string, notFound error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fmt.Errorf("%s bucket not found", string(bucket))
		}

		if b.Get([]byte(key)) == nil {
			return notFound
		}

		if err := b.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete value: %w", err)
		}

		return nil
	})
}
