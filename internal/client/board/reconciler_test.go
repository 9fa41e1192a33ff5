package board

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/internal/models"
	"github.com/taskwire/taskwire/pkg/api"
)

func testReconciler(t *testing.T) (*Reconciler, *State) {
	t.Helper()
	state := testState()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewReconciler(state, logger), state
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestReconciler_BoardData(t *testing.T) {
	r, state := testReconciler(t)

	payload := mustJSON(t, api.BoardPayload{ID: "board-1", Name: "Renamed", UpdatedAt: 500})
	require.NoError(t, r.Apply(api.EventBoardData, payload))

	assert.Equal(t, "Renamed", state.Board().Name)
	assert.Equal(t, int64(500), state.Board().UpdatedAt)
}

func TestReconciler_ColumnCreate_DuplicateDelivery(t *testing.T) {
	r, state := testReconciler(t)

	payload := mustJSON(t, api.ColumnPayload{ID: "col-3", BoardID: "board-1", Name: "Doing", Position: 1})
	require.NoError(t, r.Apply(api.EventColumnCreate, payload))
	require.NoError(t, r.Apply(api.EventColumnCreate, payload))

	assert.Len(t, state.Columns(), 3)
}

func TestReconciler_ColumnData(t *testing.T) {
	r, state := testReconciler(t)

	payload := mustJSON(t, api.ColumnPayload{ID: "col-1", BoardID: "board-1", Name: "In Progress", Position: 5})
	require.NoError(t, r.Apply(api.EventColumnData, payload))

	columns := state.Columns()
	assert.Equal(t, "col-2", columns[0].ID)
	assert.Equal(t, "In Progress", columns[1].Name)
}

func TestReconciler_ColumnDelete_Cascades(t *testing.T) {
	r, state := testReconciler(t)

	payload := mustJSON(t, api.ColumnDeletePayload{ID: "col-1", BoardID: "board-1"})
	require.NoError(t, r.Apply(api.EventColumnDelete, payload))

	assert.Len(t, state.Columns(), 1)
	for _, card := range state.Cards() {
		assert.NotEqual(t, "col-1", card.ColumnID)
	}
}

func TestReconciler_CardLifecycle(t *testing.T) {
	r, state := testReconciler(t)

	create := mustJSON(t, api.CardEventPayload{
		Column: api.ColumnPayload{ID: "col-2", BoardID: "board-1"},
		Card:   api.CardPayload{ID: "card-4", ColumnID: "col-2", Name: "Review", Index: 1},
	})
	require.NoError(t, r.Apply(api.EventCardCreate, create))
	require.NoError(t, r.Apply(api.EventCardCreate, create))
	assert.Len(t, state.Cards(), 4)

	update := mustJSON(t, api.CardEventPayload{
		Card: api.CardPayload{ID: "card-4", ColumnID: "col-2", Name: "Review PR", Description: "see #12"},
	})
	require.NoError(t, r.Apply(api.EventCardData, update))

	for _, card := range state.Cards() {
		if card.ID == "card-4" {
			assert.Equal(t, "Review PR", card.Name)
			assert.Equal(t, "see #12", card.Description)
		}
	}

	remove := mustJSON(t, api.CardEventPayload{
		Card: api.CardPayload{ID: "card-4", ColumnID: "col-2"},
	})
	require.NoError(t, r.Apply(api.EventCardDelete, remove))
	assert.Len(t, state.Cards(), 3)
}

func TestReconciler_CardMove(t *testing.T) {
	r, state := testReconciler(t)

	// old_column опционален
	payload := mustJSON(t, api.CardMovePayload{
		CardID:    "card-1",
		NewColumn: api.ColumnPayload{ID: "col-2", BoardID: "board-1"},
		Index:     2,
	})
	require.NoError(t, r.Apply(api.EventCardColumn, payload))

	for _, card := range state.Cards() {
		if card.ID == "card-1" {
			assert.Equal(t, "col-2", card.ColumnID)
			assert.Equal(t, 2, card.Index)
		}
	}
}

func TestReconciler_UnknownIDsAreSilentNoops(t *testing.T) {
	r, state := testReconciler(t)

	require.NoError(t, r.Apply(api.EventCardData, mustJSON(t, api.CardEventPayload{
		Card: api.CardPayload{ID: "ghost"},
	})))
	require.NoError(t, r.Apply(api.EventCardDelete, mustJSON(t, api.CardEventPayload{
		Card: api.CardPayload{ID: "ghost"},
	})))
	require.NoError(t, r.Apply(api.EventColumnData, mustJSON(t, api.ColumnPayload{ID: "ghost"})))

	assert.Len(t, state.Columns(), 2)
	assert.Len(t, state.Cards(), 3)
}

func TestReconciler_UnknownEventTypeIsIgnored(t *testing.T) {
	r, state := testReconciler(t)

	require.NoError(t, r.Apply("board:archive", `{"id":"board-1"}`))
	assert.Equal(t, "Sprint", state.Board().Name)
}

func TestReconciler_MalformedPayload(t *testing.T) {
	r, _ := testReconciler(t)

	err := r.Apply(api.EventCardCreate, `{broken`)
	assert.Error(t, err)
}

func TestReconciler_RemoveCardClosesDetailView(t *testing.T) {
	r, state := testReconciler(t)
	state.SetOpenCard(&models.Card{ID: "card-1", ColumnID: "col-1"})

	payload := mustJSON(t, api.CardEventPayload{Card: api.CardPayload{ID: "card-1", ColumnID: "col-1"}})
	require.NoError(t, r.Apply(api.EventCardDelete, payload))

	assert.Nil(t, state.OpenCard())
}
