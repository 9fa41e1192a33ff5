package collab

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/internal/client/board"
	"github.com/taskwire/taskwire/internal/client/transport"
	"github.com/taskwire/taskwire/internal/models"
	"github.com/taskwire/taskwire/internal/relay"
	"github.com/taskwire/taskwire/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func startRelay(t *testing.T, opts ...relay.Option) string {
	t.Helper()
	srv := httptest.NewServer(relay.New(testLogger(), opts...))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func authenticatedProvider(token string) *SessionProviderMock {
	return &SessionProviderMock{
		IsAuthenticatedFunc: func(ctx context.Context) (bool, error) {
			return true, nil
		},
		AccessTokenFunc: func(ctx context.Context) (string, error) {
			return token, nil
		},
	}
}

func boardState() *board.State {
	s := board.NewState()
	s.SetBoard(models.Board{ID: "board-1", Name: "Sprint"},
		[]models.Column{{ID: "col-1", BoardID: "board-1", Name: "Todo", Position: 0}},
		nil)
	return s
}

func TestInitialize_UnauthenticatedStaysOffline(t *testing.T) {
	provider := &SessionProviderMock{
		IsAuthenticatedFunc: func(ctx context.Context) (bool, error) {
			return false, nil
		},
		AccessTokenFunc: func(ctx context.Context) (string, error) {
			t.Fatal("token must not be requested for unauthenticated user")
			return "", nil
		},
	}

	controller := NewController("ws://unused", provider, boardState(), testLogger())

	// коллаборация опциональна: отсутствие сессии не ошибка
	require.NoError(t, controller.Initialize(context.Background(), "board-1"))
	assert.Equal(t, StatusDisconnected, controller.Status())
	assert.NoError(t, controller.LastError())
}

func TestInitialize_AuthCheckFailureStaysOffline(t *testing.T) {
	provider := &SessionProviderMock{
		IsAuthenticatedFunc: func(ctx context.Context) (bool, error) {
			return false, errors.New("storage unavailable")
		},
	}

	controller := NewController("ws://unused", provider, boardState(), testLogger())

	require.NoError(t, controller.Initialize(context.Background(), "board-1"))
	assert.Equal(t, StatusDisconnected, controller.Status())
}

func TestInitialize_JoinsBoardRoom(t *testing.T) {
	url := startRelay(t)
	provider := authenticatedProvider("tok-1")

	controller := NewController(url, provider, boardState(), testLogger())
	defer controller.Teardown()

	require.NoError(t, controller.Initialize(context.Background(), "board-1"))

	assert.Equal(t, StatusInRoom, controller.Status())
	assert.Equal(t, "board-1", controller.BoardID())
	assert.Len(t, provider.AccessTokenCalls(), 1)
}

func TestInitialize_SecondCallIsNoop(t *testing.T) {
	url := startRelay(t)
	provider := authenticatedProvider("tok-1")

	controller := NewController(url, provider, boardState(), testLogger())
	defer controller.Teardown()

	ctx := context.Background()
	require.NoError(t, controller.Initialize(ctx, "board-1"))
	require.NoError(t, controller.Initialize(ctx, "board-1"))

	// вторая инициализация не открывала новое соединение
	assert.Len(t, provider.IsAuthenticatedCalls(), 1)
}

func TestInitialize_RejectedTokenClassifiedAsUnauthenticated(t *testing.T) {
	url := startRelay(t, relay.WithAuthorize(func(token string) bool {
		return token == "good"
	}))
	provider := authenticatedProvider("stale")

	controller := NewController(url, provider, boardState(), testLogger())
	defer controller.Teardown()

	// handshake проходит, отказ приходит close-фреймом 1008 сразу после
	_ = controller.Initialize(context.Background(), "board-1")

	require.Eventually(t, func() bool {
		return controller.Status() == StatusUnauthenticated
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, controller.LastError(), transport.ErrAuthenticationFailed)
}

func TestTeardown_ResetsController(t *testing.T) {
	url := startRelay(t)
	provider := authenticatedProvider("tok-1")

	controller := NewController(url, provider, boardState(), testLogger())

	ctx := context.Background()
	require.NoError(t, controller.Initialize(ctx, "board-1"))
	controller.Teardown()

	assert.Equal(t, StatusDisconnected, controller.Status())
	assert.Empty(t, controller.BoardID())

	err := controller.Broadcast(ctx, api.EventCardCreate, api.CardEventPayload{})
	assert.Error(t, err)

	// после teardown контроллер можно инициализировать заново
	require.NoError(t, controller.Initialize(ctx, "board-1"))
	assert.Equal(t, StatusInRoom, controller.Status())
	controller.Teardown()
}

func TestReinitialize_SwitchesBoard(t *testing.T) {
	url := startRelay(t)
	provider := authenticatedProvider("tok-1")

	controller := NewController(url, provider, boardState(), testLogger())
	defer controller.Teardown()

	ctx := context.Background()
	require.NoError(t, controller.Initialize(ctx, "board-1"))
	require.NoError(t, controller.Reinitialize(ctx, "board-2"))

	assert.Equal(t, StatusInRoom, controller.Status())
	assert.Equal(t, "board-2", controller.BoardID())
}

func TestController_AppliesInboundEvents(t *testing.T) {
	url := startRelay(t)
	provider := authenticatedProvider("tok-1")
	state := boardState()

	controller := NewController(url, provider, state, testLogger())
	defer controller.Teardown()

	events := make(chan string, 1)
	unsubscribe := controller.OnEvent(func(eventType string) { events <- eventType })
	defer unsubscribe()

	ctx := context.Background()
	require.NoError(t, controller.Initialize(ctx, "board-1"))

	// второй участник комнаты шлет card:create напрямую через relay
	peer, _, err := websocket.DefaultDialer.Dial(url+"?token=tok-2", nil)
	require.NoError(t, err)
	defer peer.Close()

	join, _ := json.Marshal(api.ClientMessage{Action: api.ActionJoin, RoomID: "board-1"})
	require.NoError(t, peer.WriteMessage(websocket.TextMessage, join))
	require.NoError(t, peer.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = peer.ReadMessage() // joined ack
	require.NoError(t, err)

	payload, _ := json.Marshal(api.CardEventPayload{
		Column: api.ColumnPayload{ID: "col-1", BoardID: "board-1"},
		Card:   api.CardPayload{ID: "c1", ColumnID: "col-1", Name: "Fix login", Index: 0},
	})
	broadcast, _ := json.Marshal(api.ClientMessage{
		Action: api.ActionBroadcast,
		RoomID: "board-1",
		Type:   api.EventCardCreate,
		From:   "peer-session",
		Data:   string(payload),
	})
	require.NoError(t, peer.WriteMessage(websocket.TextMessage, broadcast))

	require.Eventually(t, func() bool {
		return len(state.Cards()) == 1
	}, 2*time.Second, 10*time.Millisecond, "inbound event was not applied")
	assert.Equal(t, "Fix login", state.Cards()[0].Name)

	select {
	case eventType := <-events:
		assert.Equal(t, api.EventCardCreate, eventType)
	case <-time.After(2 * time.Second):
		t.Fatal("event observer was not notified")
	}
}

func TestBroadcast_WithoutInitialize(t *testing.T) {
	controller := NewController("ws://unused", authenticatedProvider("t"), boardState(), testLogger())
	err := controller.Broadcast(context.Background(), api.EventCardCreate, api.CardEventPayload{})
	assert.Error(t, err)
}
