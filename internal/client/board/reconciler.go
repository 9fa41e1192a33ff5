package board

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/taskwire/taskwire/internal/models"
	"github.com/taskwire/taskwire/pkg/api"
)

// Reconciler применяет входящие доменные события к локальному состоянию
// доски. Вызывается только для событий с транспортного канала: собственные
// действия пользователь применяет к State напрямую до broadcast, а эхо
// отфильтровывается сессией по origin id.
//
// Применение любого события идемпотентно, а события для неизвестных id
// (обгон между клиентами) — тихие no-op.
type Reconciler struct {
	state  *State
	logger *slog.Logger
}

// NewReconciler создает reconciler над состоянием доски
func NewReconciler(state *State, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		state:  state,
		logger: logger,
	}
}

// Apply применяет одно событие. Ошибка возвращается только для
// нечитаемого payload; семантические no-op ошибками не считаются.
func (r *Reconciler) Apply(eventType, data string) error {
	switch eventType {
	case api.EventBoardData:
		var p api.BoardPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.RenameBoard(p.ID, p.Name, p.UpdatedAt)

	case api.EventColumnCreate:
		var p api.ColumnPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.AddColumn(columnFromPayload(p))

	case api.EventColumnData:
		var p api.ColumnPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.UpdateColumn(p.ID, p.Name, p.Position)

	case api.EventColumnDelete:
		var p api.ColumnDeletePayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		// каскад по column_id, card_ids из payload не нужен
		r.state.RemoveColumn(p.ID)

	case api.EventCardCreate:
		var p api.CardEventPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.AddCard(cardFromPayload(p.Card))

	case api.EventCardData:
		var p api.CardEventPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.UpdateCard(p.Card.ID, p.Card.Name, p.Card.Description)

	case api.EventCardDelete:
		var p api.CardEventPayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		r.state.RemoveCard(p.Card.ID)

	case api.EventCardColumn:
		var p api.CardMovePayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", eventType, err)
		}
		// old_column нужен только UI для анимации перехода
		r.state.MoveCard(p.CardID, p.NewColumn.ID, p.Index)

	default:
		r.logger.Debug("ignoring unknown event type", "type", eventType)
	}

	return nil
}

func columnFromPayload(p api.ColumnPayload) models.Column {
	return models.Column{
		ID:       p.ID,
		BoardID:  p.BoardID,
		Name:     p.Name,
		Position: p.Position,
	}
}

func cardFromPayload(p api.CardPayload) models.Card {
	return models.Card{
		ID:          p.ID,
		ColumnID:    p.ColumnID,
		Name:        p.Name,
		Description: p.Description,
		Index:       p.Index,
	}
}
