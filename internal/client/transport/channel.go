package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

var (
	// ErrAuthenticationFailed relay закрыл соединение с кодом 1008 (policy
	// violation). Переподключаться бессмысленно — нужен новый токен.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotConnected операция требует открытого соединения, а его нет
	// и восстановить его невозможно (explicit close или connect не вызывался)
	ErrNotConnected = errors.New("not connected")

	// ErrRetriesExhausted бюджет автоматических переподключений исчерпан
	ErrRetriesExhausted = errors.New("reconnect attempts exhausted")
)

// State описывает текущее состояние канала
type State string

const (
	StateIdle       State = "idle"       // connect еще не вызывался
	StateConnecting State = "connecting" // идет установка соединения
	StateOpen       State = "open"       // соединение открыто
	StateClosed     State = "closed"     // закрыто намеренно (Disconnect)
	StateTerminal   State = "terminal"   // закрыто навсегда (auth или исчерпаны retry)
)

// Credentials передаются в query параметрах handshake URL,
// а не в каждом сообщении.
type Credentials struct {
	Token   string // bearer токен текущей сессии
	BoardID string // id доски, комнату которой открывает соединение
}

// Unsubscribe снимает подписку наблюдателя
type Unsubscribe func()

const (
	defaultBaseDelay   = time.Second
	defaultMaxAttempts = 5
)

// Option настраивает Channel при создании
type Option func(*Channel)

// WithBaseDelay задает базовую задержку экспоненциального backoff
func WithBaseDelay(d time.Duration) Option {
	return func(c *Channel) { c.baseDelay = d }
}

// WithMaxAttempts задает максимум автоматических переподключений подряд
func WithMaxAttempts(n int) Option {
	return func(c *Channel) { c.maxAttempts = n }
}

// Channel владеет ровно одним логическим websocket-соединением с relay.
// Прием и отправка абстрагированы до уровня сообщений; разрыв соединения
// восстанавливается автоматически с экспоненциальным backoff
// (base * 2^(attempt-1), не более maxAttempts попыток подряд).
//
// Канал никогда не паникует из обработчиков наблюдателей: все сбои
// доставляются через error/close подписки.
type Channel struct {
	dialer *websocket.Dialer
	logger *slog.Logger

	baseDelay   time.Duration
	maxAttempts int

	mu             sync.Mutex
	conn           *websocket.Conn
	connURL        string
	state          State
	explicitClose  bool
	attempts       int
	policy         *backoff.ExponentialBackOff
	reconnectTimer *time.Timer

	writeMu sync.Mutex

	subMu       sync.Mutex
	nextSubID   int
	connectSubs map[int]func()
	messageSubs map[int]func(message []byte)
	errorSubs   map[int]func(err error)
	closeSubs   map[int]func(code int)
}

// NewChannel создает канал. Соединение не открывается до вызова Connect.
func NewChannel(logger *slog.Logger, opts ...Option) *Channel {
	c := &Channel{
		dialer:      websocket.DefaultDialer,
		logger:      logger,
		baseDelay:   defaultBaseDelay,
		maxAttempts: defaultMaxAttempts,
		state:       StateIdle,
		connectSubs: make(map[int]func()),
		messageSubs: make(map[int]func([]byte)),
		errorSubs:   make(map[int]func(error)),
		closeSubs:   make(map[int]func(int)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.policy = newBackoffPolicy(c.baseDelay)
	return c
}

// newBackoffPolicy настраивает экспоненциальную политику без джиттера:
// задержка перед попыткой n равна base * 2^(n-1).
func newBackoffPolicy(base time.Duration) *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = base
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = time.Hour
	policy.MaxElapsedTime = 0 // лимитируем числом попыток, не временем
	policy.Reset()
	return policy
}

// Connect открывает соединение с relay. Credentials прикрепляются
// к handshake URL (token и board_id). Возвращает ошибку если handshake
// не удался; успешный вызов переводит канал в StateOpen и запускает
// цикл чтения.
func (c *Channel) Connect(ctx context.Context, address string, creds Credentials) error {
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("invalid relay address: %w", err)
	}
	q := u.Query()
	q.Set("token", creds.Token)
	q.Set("board_id", creds.BoardID)
	u.RawQuery = q.Encode()

	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return fmt.Errorf("connection already open")
	}
	c.connURL = u.String()
	c.explicitClose = false
	c.state = StateConnecting
	c.mu.Unlock()

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		if resp != nil && resp.StatusCode == 401 {
			return fmt.Errorf("relay handshake rejected: %w", ErrAuthenticationFailed)
		}
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	c.adoptConn(conn)
	return nil
}

// adoptConn устанавливает открытое соединение, сбрасывает счетчик
// попыток и запускает цикл чтения
func (c *Channel) adoptConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.state = StateOpen
	c.attempts = 0
	c.policy.Reset()
	c.mu.Unlock()

	c.notifyConnect()
	go c.readLoop(conn)
}

// Send отправляет одно сообщение. Если соединения нет, прозрачно
// выполняется ровно одна попытка переподключения; если и она не удалась,
// ошибка возвращается вызывающему, а не глотается.
func (c *Channel) Send(ctx context.Context, message []byte) error {
	c.mu.Lock()
	conn := c.conn
	connURL := c.connURL
	explicit := c.explicitClose
	c.mu.Unlock()

	if conn == nil {
		if explicit || connURL == "" {
			return ErrNotConnected
		}
		newConn, _, err := c.dialer.DialContext(ctx, connURL, nil)
		if err != nil {
			return fmt.Errorf("send failed, reconnect attempt failed: %w", err)
		}
		c.adoptConn(newConn)
		conn = newConn
	}

	// gorilla/websocket допускает только одного писателя одновременно
	c.writeMu.Lock()
	err := conn.WriteMessage(websocket.TextMessage, message)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Disconnect намеренно закрывает соединение и подавляет все последующие
// автоматические переподключения. Безопасен в любой момент, в том числе
// посреди backoff-паузы: отложенный таймер отменяется.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.explicitClose = true
	c.state = StateClosed
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		// best effort: сообщаем relay о нормальном закрытии
		c.writeMu.Lock()
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		c.writeMu.Unlock()
		_ = conn.Close()
	} else {
		c.notifyClose(websocket.CloseNormalClosure)
	}
}

// IsOpen сообщает, открыто ли соединение сейчас
func (c *Channel) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// State возвращает текущее состояние канала
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// readLoop читает сообщения до первой ошибки чтения
func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(conn, err)
			return
		}
		c.notifyMessage(message)
	}
}

// handleReadError классифицирует разрыв соединения:
// намеренное закрытие, отказ в авторизации (1008) или сетевой сбой,
// после которого планируется переподключение.
func (c *Channel) handleReadError(conn *websocket.Conn, err error) {
	_ = conn.Close()

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	explicit := c.explicitClose
	c.mu.Unlock()

	code := closeCode(err)

	if explicit {
		c.notifyClose(code)
		return
	}

	if code == websocket.ClosePolicyViolation {
		// auth-ошибка терминальна: никаких retry, вызывающий должен
		// предложить повторный вход
		c.mu.Lock()
		c.state = StateTerminal
		c.mu.Unlock()
		c.logger.Warn("relay closed connection: authentication failed")
		c.notifyError(fmt.Errorf("connection closed with policy violation: %w", ErrAuthenticationFailed))
		c.notifyClose(code)
		return
	}

	c.logger.Warn("connection lost", "close_code", code, "error", err)
	c.notifyClose(code)

	c.mu.Lock()
	c.scheduleReconnectLocked()
	c.mu.Unlock()
}

// scheduleReconnectLocked планирует следующую попытку переподключения.
// Вызывается с удерживаемым c.mu.
func (c *Channel) scheduleReconnectLocked() {
	if c.explicitClose {
		return
	}

	c.attempts++
	if c.attempts > c.maxAttempts {
		c.state = StateTerminal
		attempts := c.attempts - 1
		go c.notifyError(fmt.Errorf("gave up after %d attempts: %w", attempts, ErrRetriesExhausted))
		return
	}

	delay := c.policy.NextBackOff()
	c.state = StateConnecting
	c.logger.Info("scheduling reconnect", "attempt", c.attempts, "delay", delay)
	c.reconnectTimer = time.AfterFunc(delay, c.redial)
}

// redial выполняет отложенную попытку переподключения
func (c *Channel) redial() {
	c.mu.Lock()
	if c.explicitClose {
		c.mu.Unlock()
		return
	}
	connURL := c.connURL
	attempt := c.attempts
	c.mu.Unlock()

	conn, resp, err := c.dialer.Dial(connURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 401 {
			c.mu.Lock()
			c.state = StateTerminal
			c.mu.Unlock()
			c.notifyError(fmt.Errorf("relay handshake rejected: %w", ErrAuthenticationFailed))
			return
		}
		c.logger.Warn("reconnect attempt failed", "attempt", attempt, "error", err)
		c.mu.Lock()
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return
	}

	c.logger.Info("reconnected", "attempt", attempt)
	c.adoptConn(conn)
}

// closeCode извлекает websocket-код закрытия; 1006 для сетевых обрывов
// без close-фрейма
func closeCode(err error) int {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code
	}
	return websocket.CloseAbnormalClosure
}

// OnConnect подписывает наблюдателя на успешное открытие соединения
func (c *Channel) OnConnect(fn func()) Unsubscribe {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.connectSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.connectSubs, id)
	}
}

// OnMessage подписывает наблюдателя на входящие сообщения
func (c *Channel) OnMessage(fn func(message []byte)) Unsubscribe {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.messageSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.messageSubs, id)
	}
}

// OnError подписывает наблюдателя на терминальные ошибки канала
func (c *Channel) OnError(fn func(err error)) Unsubscribe {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.errorSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.errorSubs, id)
	}
}

// OnClose подписывает наблюдателя на закрытие соединения
func (c *Channel) OnClose(fn func(code int)) Unsubscribe {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.closeSubs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.closeSubs, id)
	}
}

func (c *Channel) notifyConnect() {
	for _, fn := range c.snapshotConnectSubs() {
		c.safeCall(func() { fn() })
	}
}

func (c *Channel) notifyMessage(message []byte) {
	for _, fn := range c.snapshotMessageSubs() {
		fn := fn
		c.safeCall(func() { fn(message) })
	}
}

func (c *Channel) notifyError(err error) {
	for _, fn := range c.snapshotErrorSubs() {
		fn := fn
		c.safeCall(func() { fn(err) })
	}
}

func (c *Channel) notifyClose(code int) {
	for _, fn := range c.snapshotCloseSubs() {
		fn := fn
		c.safeCall(func() { fn(code) })
	}
}

// safeCall изолирует панику одного подписчика, чтобы она не сорвала
// доставку остальным
func (c *Channel) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("channel subscriber panicked", "panic", r)
		}
	}()
	fn()
}

func (c *Channel) snapshotConnectSubs() []func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]func(), 0, len(c.connectSubs))
	for _, fn := range c.connectSubs {
		out = append(out, fn)
	}
	return out
}

func (c *Channel) snapshotMessageSubs() []func([]byte) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]func([]byte), 0, len(c.messageSubs))
	for _, fn := range c.messageSubs {
		out = append(out, fn)
	}
	return out
}

func (c *Channel) snapshotErrorSubs() []func(error) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]func(error), 0, len(c.errorSubs))
	for _, fn := range c.errorSubs {
		out = append(out, fn)
	}
	return out
}

func (c *Channel) snapshotCloseSubs() []func(int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]func(int), 0, len(c.closeSubs))
	for _, fn := range c.closeSubs {
		out = append(out, fn)
	}
	return out
}
