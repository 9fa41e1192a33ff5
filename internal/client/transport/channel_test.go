package transport

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// testRelay поднимает websocket сервер; handler вызывается для каждого
// принятого соединения, dials считает handshake-попытки
type testRelay struct {
	srv   *httptest.Server
	dials atomic.Int32
}

func newTestRelay(t *testing.T, handler func(conn *websocket.Conn, dial int)) *testRelay {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	relay := &testRelay{}
	relay.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dial := int(relay.dials.Add(1))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler(conn, dial)
	}))
	t.Cleanup(relay.srv.Close)
	return relay
}

func (r *testRelay) url() string {
	return "ws" + strings.TrimPrefix(r.srv.URL, "http")
}

// keepOpen держит соединение открытым до закрытия со стороны клиента
func keepOpen(conn *websocket.Conn, _ int) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			_ = conn.Close()
			return
		}
	}
}

func TestBackoffPolicy_ExponentialDelays(t *testing.T) {
	policy := newBackoffPolicy(time.Second)

	assert.Equal(t, 1*time.Second, policy.NextBackOff())
	assert.Equal(t, 2*time.Second, policy.NextBackOff())
	assert.Equal(t, 4*time.Second, policy.NextBackOff())
	assert.Equal(t, 8*time.Second, policy.NextBackOff())
	assert.Equal(t, 16*time.Second, policy.NextBackOff())

	// после успешного подключения отсчет начинается заново
	policy.Reset()
	assert.Equal(t, 1*time.Second, policy.NextBackOff())
}

func TestChannel_ConnectAndReceive(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, _ int) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"joined"}`)))
		keepOpen(conn, 0)
	})

	channel := NewChannel(testLogger())
	defer channel.Disconnect()

	connected := make(chan struct{}, 1)
	channel.OnConnect(func() { connected <- struct{}{} })

	messages := make(chan []byte, 1)
	channel.OnMessage(func(message []byte) { messages <- message })

	creds := Credentials{Token: "tok-1", BoardID: "board-1"}
	require.NoError(t, channel.Connect(context.Background(), relay.url(), creds))

	assert.Equal(t, StateOpen, channel.State())
	assert.True(t, channel.IsOpen())

	select {
	case <-connected:
	case <-time.After(time.Second):
		t.Fatal("OnConnect was not delivered")
	}

	select {
	case msg := <-messages:
		assert.JSONEq(t, `{"status":"joined"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestChannel_CredentialsInHandshakeURL(t *testing.T) {
	var gotToken, gotBoard atomic.Value
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.URL.Query().Get("token"))
		gotBoard.Store(r.URL.Query().Get("board_id"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		keepOpen(conn, 0)
	}))
	defer srv.Close()

	channel := NewChannel(testLogger())
	defer channel.Disconnect()

	creds := Credentials{Token: "secret-token", BoardID: "b-42"}
	require.NoError(t, channel.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), creds))

	assert.Equal(t, "secret-token", gotToken.Load())
	assert.Equal(t, "b-42", gotBoard.Load())
}

func TestChannel_ConnectRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	channel := NewChannel(testLogger())
	err := channel.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), Credentials{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.False(t, channel.IsOpen())
}

func TestChannel_ReconnectsAfterDrop(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, dial int) {
		if dial == 1 {
			// обрыв без close-фрейма, клиент увидит 1006
			_ = conn.Close()
			return
		}
		keepOpen(conn, dial)
	})

	channel := NewChannel(testLogger(), WithBaseDelay(5*time.Millisecond))
	defer channel.Disconnect()

	connects := make(chan struct{}, 4)
	channel.OnConnect(func() { connects <- struct{}{} })

	closes := make(chan int, 4)
	channel.OnClose(func(code int) { closes <- code })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))
	<-connects

	select {
	case code := <-closes:
		assert.Equal(t, websocket.CloseAbnormalClosure, code)
	case <-time.After(time.Second):
		t.Fatal("close was not delivered")
	}

	select {
	case <-connects:
	case <-time.After(time.Second):
		t.Fatal("channel did not reconnect")
	}

	assert.Equal(t, StateOpen, channel.State())
	assert.GreaterOrEqual(t, int(relay.dials.Load()), 2)
}

func TestChannel_PolicyViolationIsTerminal(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, _ int) {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication failed")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	})

	channel := NewChannel(testLogger(), WithBaseDelay(5*time.Millisecond))

	errs := make(chan error, 1)
	channel.OnError(func(err error) { errs <- err })

	closes := make(chan int, 1)
	channel.OnClose(func(code int) { closes <- code })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "stale"}))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	case <-time.After(time.Second):
		t.Fatal("terminal error was not delivered")
	}

	select {
	case code := <-closes:
		assert.Equal(t, websocket.ClosePolicyViolation, code)
	case <-time.After(time.Second):
		t.Fatal("close was not delivered")
	}

	// переподключений быть не должно
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), relay.dials.Load())
	assert.Equal(t, StateTerminal, channel.State())
}

func TestChannel_RetriesExhausted(t *testing.T) {
	relay := newTestRelay(t, keepOpen)

	channel := NewChannel(testLogger(),
		WithBaseDelay(time.Millisecond),
		WithMaxAttempts(2),
	)

	errs := make(chan error, 1)
	channel.OnError(func(err error) { errs <- err })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))

	// сервер умирает совсем: активное соединение рвется, новые dial
	// не проходят, после maxAttempts канал сдается
	relay.srv.CloseClientConnections()
	require.NoError(t, relay.srv.Listener.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrRetriesExhausted)
	case <-time.After(2 * time.Second):
		t.Fatal("retries exhausted error was not delivered")
	}

	assert.Equal(t, StateTerminal, channel.State())
}

func TestChannel_DisconnectSuppressesReconnect(t *testing.T) {
	relay := newTestRelay(t, keepOpen)

	channel := NewChannel(testLogger(), WithBaseDelay(5*time.Millisecond))

	closes := make(chan int, 1)
	channel.OnClose(func(code int) { closes <- code })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))
	channel.Disconnect()

	select {
	case code := <-closes:
		assert.Equal(t, websocket.CloseNormalClosure, code)
	case <-time.After(time.Second):
		t.Fatal("close was not delivered")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), relay.dials.Load())
	assert.Equal(t, StateClosed, channel.State())
}

func TestChannel_SendWithoutConnect(t *testing.T) {
	channel := NewChannel(testLogger())
	err := channel.Send(context.Background(), []byte("hello"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestChannel_SendAfterDisconnect(t *testing.T) {
	relay := newTestRelay(t, keepOpen)

	channel := NewChannel(testLogger())
	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))
	channel.Disconnect()

	err := channel.Send(context.Background(), []byte("hello"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestChannel_SendReconnectsTransparently(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, dial int) {
		if dial == 1 {
			_ = conn.Close()
			return
		}
		keepOpen(conn, dial)
	})

	// нулевой бюджет автоматических retry: восстановление только через Send
	channel := NewChannel(testLogger(),
		WithBaseDelay(time.Millisecond),
		WithMaxAttempts(0),
	)
	defer channel.Disconnect()

	errs := make(chan error, 1)
	channel.OnError(func(err error) { errs <- err })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrRetriesExhausted)
	case <-time.After(time.Second):
		t.Fatal("terminal error was not delivered")
	}

	require.NoError(t, channel.Send(context.Background(), []byte(`{"action":"join","roomId":"r"}`)))
	assert.True(t, channel.IsOpen())
	assert.Equal(t, int32(2), relay.dials.Load())
}

func TestChannel_Unsubscribe(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, _ int) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"joined"}`)))
		keepOpen(conn, 0)
	})

	channel := NewChannel(testLogger())
	defer channel.Disconnect()

	var delivered atomic.Int32
	unsubscribe := channel.OnMessage(func([]byte) { delivered.Add(1) })
	unsubscribe()

	messages := make(chan []byte, 1)
	channel.OnMessage(func(message []byte) { messages <- message })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))

	select {
	case <-messages:
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
	assert.Equal(t, int32(0), delivered.Load())
}

func TestChannel_SubscriberPanicDoesNotStopDelivery(t *testing.T) {
	relay := newTestRelay(t, func(conn *websocket.Conn, _ int) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"joined"}`)))
		keepOpen(conn, 0)
	})

	channel := NewChannel(testLogger())
	defer channel.Disconnect()

	channel.OnMessage(func([]byte) { panic("subscriber bug") })
	messages := make(chan []byte, 1)
	channel.OnMessage(func(message []byte) { messages <- message })

	require.NoError(t, channel.Connect(context.Background(), relay.url(), Credentials{Token: "t"}))

	select {
	case <-messages:
	case <-time.After(time.Second):
		t.Fatal("message was not delivered after subscriber panic")
	}
}
