package collab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taskwire/taskwire/internal/client/board"
	"github.com/taskwire/taskwire/internal/client/room"
	"github.com/taskwire/taskwire/internal/client/transport"
	"github.com/taskwire/taskwire/pkg/api"
)

//go:generate moq -out session_provider_mock.go . SessionProvider

// SessionProvider отдает текущие учетные данные пользователя.
// Выдачей токенов занимается внешний сервис; контроллеру нужен только
// сам токен и признак залогиненности.
type SessionProvider interface {
	// IsAuthenticated сообщает, есть ли действующая сессия
	IsAuthenticated(ctx context.Context) (bool, error)

	// AccessToken возвращает текущий bearer токен
	AccessToken(ctx context.Context) (string, error)
}

// Status описывает состояние коллаборации для UI
type Status string

const (
	StatusDisconnected    Status = "disconnected"
	StatusConnecting      Status = "connecting"
	StatusConnected       Status = "connected"
	StatusInRoom          Status = "in-room"
	StatusError           Status = "error"
	StatusUnauthenticated Status = "unauthenticated"
)

const rejoinTimeout = 10 * time.Second

// Controller привязывает room-сессию к открытой доске: ровно одна
// инициализация на активацию доски, id доски служит id комнаты.
// Контроллер владеет транспортным каналом на время жизни доски и
// единственный превращает сырые ошибки в классификацию для UI
// (auth против generic).
type Controller struct {
	relayURL string
	auth     SessionProvider
	state    *board.State
	logger   *slog.Logger

	channelOpts []transport.Option

	mu            sync.Mutex
	initialized   bool
	connectedOnce bool
	status        Status
	lastErr       error
	boardID       string
	channel       *transport.Channel
	session       *room.Session
	reconciler    *board.Reconciler
	unsubs        []transport.Unsubscribe
	eventSubs     map[int]func(eventType string)
	nextEventSub  int
}

// NewController создает контроллер. Соединений он не открывает
// до Initialize.
func NewController(
	relayURL string,
	auth SessionProvider,
	state *board.State,
	logger *slog.Logger,
	channelOpts ...transport.Option,
) *Controller {
	return &Controller{
		relayURL:    relayURL,
		auth:        auth,
		state:       state,
		logger:      logger,
		channelOpts: channelOpts,
		status:      StatusDisconnected,
	}
}

// Initialize открывает коллаборацию для доски. Повторный вызов для уже
// инициализированного контроллера — no-op. Незалогиненный пользователь
// остается в disconnected без ошибки: коллаборация опциональна.
func (c *Controller) Initialize(ctx context.Context, boardID string) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = true
	c.boardID = boardID
	c.mu.Unlock()

	authenticated, err := c.auth.IsAuthenticated(ctx)
	if err != nil {
		c.logger.Warn("failed to check authentication, staying offline", "error", err)
		return nil
	}
	if !authenticated {
		c.logger.Info("user not authenticated, collaboration disabled")
		return nil
	}

	token, err := c.auth.AccessToken(ctx)
	if err != nil {
		c.classifyError(fmt.Errorf("failed to get access token: %w", err))
		return err
	}

	channel := transport.NewChannel(c.logger, c.channelOpts...)
	session := room.NewSession(channel, c.logger)
	reconciler := board.NewReconciler(c.state, c.logger)

	unsubs := []transport.Unsubscribe{
		channel.OnError(c.handleChannelError),
		channel.OnClose(c.handleChannelClose),
		channel.OnConnect(func() { c.handleChannelConnect(boardID) }),
		session.OnPush(func(msg api.PushMessage) {
			if err := reconciler.Apply(msg.Type, msg.Data); err != nil {
				c.logger.Warn("failed to apply inbound event", "type", msg.Type, "error", err)
				return
			}
			c.notifyEvent(msg.Type)
		}),
		session.OnRelayError(func(relayError string) {
			// протокольная ошибка: соединение живо, операция не удалась
			c.logger.Warn("relay error", "error", relayError)
		}),
	}

	c.mu.Lock()
	c.channel = channel
	c.session = session
	c.reconciler = reconciler
	c.unsubs = unsubs
	c.status = StatusConnecting
	c.mu.Unlock()

	creds := transport.Credentials{Token: token, BoardID: boardID}
	if err := channel.Connect(ctx, c.relayURL, creds); err != nil {
		c.classifyError(err)
		return fmt.Errorf("failed to open collaboration channel: %w", err)
	}

	// комната привязана к доске: одна доска — одна комната
	if err := session.JoinRoom(ctx, boardID); err != nil {
		c.classifyError(err)
		return fmt.Errorf("failed to join board room: %w", err)
	}

	c.mu.Lock()
	// канал мог уже получить терминальную ошибку (например 1008 сразу
	// после handshake); ее классификацию join не перекрывает
	if c.lastErr == nil {
		c.status = StatusInRoom
	}
	c.mu.Unlock()

	c.logger.Info("collaboration started", "board_id", boardID)
	return nil
}

// Reinitialize сносит текущую сессию и инициализирует коллаборацию для
// новой доски. Обязателен при смене активной доски, иначе подписки
// прежней доски протекут событиями в новую.
func (c *Controller) Reinitialize(ctx context.Context, boardID string) error {
	c.Teardown()
	return c.Initialize(ctx, boardID)
}

// Teardown снимает все подписки, закрывает канал и возвращает контроллер
// в disconnected. Безопасен в любой момент, в том числе посреди
// backoff-паузы переподключения.
func (c *Controller) Teardown() {
	c.mu.Lock()
	unsubs := c.unsubs
	session := c.session
	channel := c.channel
	boardID := c.boardID
	c.unsubs = nil
	c.session = nil
	c.channel = nil
	c.reconciler = nil
	c.initialized = false
	c.connectedOnce = false
	c.status = StatusDisconnected
	c.lastErr = nil
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}

	if session != nil {
		if channel != nil && channel.IsOpen() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			if err := session.LeaveRoom(ctx, boardID); err != nil {
				c.logger.Debug("failed to leave room during teardown", "error", err)
			}
			cancel()
		}
		session.Close()
	}
	if channel != nil {
		channel.Disconnect()
	}
}

// Broadcast рассылает доменное событие участникам комнаты текущей доски.
// Локальное состояние вызывающий уже обновил сам (optimistic update).
func (c *Controller) Broadcast(ctx context.Context, eventType string, payload any) error {
	c.mu.Lock()
	session := c.session
	boardID := c.boardID
	c.mu.Unlock()

	if session == nil {
		return fmt.Errorf("collaboration is not active")
	}
	return session.Broadcast(ctx, boardID, eventType, payload)
}

// Status возвращает текущее состояние соединения
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastError возвращает последнюю классифицированную ошибку или nil
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// BoardID возвращает доску, для которой открыта коллаборация
func (c *Controller) BoardID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boardID
}

// OnEvent подписывает наблюдателя на входящие события, уже примененные
// к локальному состоянию. Подписка переживает Teardown/Initialize.
func (c *Controller) OnEvent(fn func(eventType string)) transport.Unsubscribe {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eventSubs == nil {
		c.eventSubs = make(map[int]func(eventType string))
	}
	id := c.nextEventSub
	c.nextEventSub++
	c.eventSubs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.eventSubs, id)
	}
}

func (c *Controller) notifyEvent(eventType string) {
	c.mu.Lock()
	subs := make([]func(string), 0, len(c.eventSubs))
	for _, fn := range c.eventSubs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(eventType)
	}
}

// handleChannelConnect вызывается при каждом успешном открытии
// соединения. Первый connect обслуживает Initialize (он сам делает join);
// при автоматических переподключениях комнату нужно занять заново здесь.
func (c *Controller) handleChannelConnect(boardID string) {
	c.mu.Lock()
	session := c.session
	first := !c.connectedOnce
	c.connectedOnce = true
	c.status = StatusConnected
	c.mu.Unlock()

	if first || session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), rejoinTimeout)
	defer cancel()
	if err := session.JoinRoom(ctx, boardID); err != nil {
		c.logger.Warn("failed to rejoin room after reconnect", "error", err)
		return
	}

	c.mu.Lock()
	c.status = StatusInRoom
	c.mu.Unlock()
}

// handleChannelClose держит статус честным на время тихих retry:
// потеря соединения не показывается пользователю, пока канал не сдался.
func (c *Controller) handleChannelClose(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusInRoom || c.status == StatusConnected {
		c.status = StatusConnecting
	}
}

// handleChannelError получает терминальные ошибки канала: исчерпанные
// retry или отказ в авторизации
func (c *Controller) handleChannelError(err error) {
	c.classifyError(err)
}

// classifyError единственная точка превращения сырых ошибок в
// пользовательскую классификацию: auth-ошибка требует повторного входа,
// все остальное — generic error с retry-индикатором.
func (c *Controller) classifyError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if errors.Is(err, transport.ErrAuthenticationFailed) {
		c.status = StatusUnauthenticated
		return
	}
	c.status = StatusError
}
