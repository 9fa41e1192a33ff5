package room

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/taskwire/taskwire/internal/client/transport"
	"github.com/taskwire/taskwire/pkg/api"
)

//go:generate moq -out channel_mock.go . Channel

// Channel is the subset of the transport channel the session needs.
type Channel interface {
	// Send передает одно закодированное сообщение relay
	Send(ctx context.Context, message []byte) error

	// OnMessage подписывает на входящие сообщения канала
	OnMessage(fn func(message []byte)) transport.Unsubscribe
}

// Session реализует протокольный уровень над транспортным каналом:
// create/join/leave комнаты и широковещательная рассылка доменных событий.
//
// Каждая сессия получает собственный origin id (UUID). Исходящие broadcast
// помечаются им, а входящие push с тем же origin отбрасываются — защита от
// эха не зависит от того, возвращает ли relay отправителю его сообщения.
type Session struct {
	channel Channel
	logger  *slog.Logger
	id      string

	detach transport.Unsubscribe

	subMu      sync.Mutex
	nextSubID  int
	statusSubs map[int]func(msg api.StatusMessage)
	pushSubs   map[int]func(msg api.PushMessage)
	errorSubs  map[int]func(relayError string)
}

// NewSession создает сессию поверх канала и подписывается на его сообщения
func NewSession(channel Channel, logger *slog.Logger) *Session {
	s := &Session{
		channel:    channel,
		logger:     logger,
		id:         uuid.New().String(),
		statusSubs: make(map[int]func(api.StatusMessage)),
		pushSubs:   make(map[int]func(api.PushMessage)),
		errorSubs:  make(map[int]func(string)),
	}
	s.detach = channel.OnMessage(s.handleMessage)
	return s
}

// ID возвращает origin id сессии
func (s *Session) ID() string {
	return s.id
}

// Close отписывает сессию от канала. Сам канал не закрывается —
// им владеет вызывающая сторона.
func (s *Session) Close() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

// CreateRoom просит relay создать новую комнату (id выдает relay,
// он придет в status-ответе "created")
func (s *Session) CreateRoom(ctx context.Context) error {
	return s.send(ctx, api.ClientMessage{Action: api.ActionCreate})
}

// JoinRoom присоединяется к существующей комнате
func (s *Session) JoinRoom(ctx context.Context, roomID string) error {
	return s.send(ctx, api.ClientMessage{Action: api.ActionJoin, RoomID: roomID})
}

// LeaveRoom покидает комнату
func (s *Session) LeaveRoom(ctx context.Context, roomID string) error {
	return s.send(ctx, api.ClientMessage{Action: api.ActionLeave, RoomID: roomID})
}

// Broadcast рассылает доменное событие остальным участникам комнаты.
// Отправка fire-and-forget: подтверждения доставки нет, за истиной
// следит авторитетное хранилище, а не канал.
func (s *Session) Broadcast(ctx context.Context, roomID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return s.send(ctx, api.ClientMessage{
		Action: api.ActionBroadcast,
		RoomID: roomID,
		Type:   eventType,
		From:   s.id,
		Data:   string(data),
	})
}

func (s *Session) send(ctx context.Context, msg api.ClientMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", msg.Action, err)
	}
	if err := s.channel.Send(ctx, raw); err != nil {
		return fmt.Errorf("failed to send %s message: %w", msg.Action, err)
	}
	return nil
}

// handleMessage разбирает входящее сообщение и доставляет его типизированным
// подписчикам. Порядок прихода ack и push от других участников не
// гарантирован, поэтому диспетчеризация только по дискриминатору.
func (s *Session) handleMessage(raw []byte) {
	msg, err := api.DecodeServerMessage(raw)
	if err != nil {
		s.logger.Warn("dropping undecodable relay message", "error", err)
		return
	}

	switch {
	case msg.Status != nil:
		for _, fn := range s.snapshotStatusSubs() {
			fn(*msg.Status)
		}
	case msg.Push != nil:
		if msg.Push.From == s.id {
			// собственное эхо, локальное состояние уже обновлено
			return
		}
		for _, fn := range s.snapshotPushSubs() {
			fn(*msg.Push)
		}
	case msg.Err != nil:
		s.logger.Warn("relay reported error", "error", msg.Err.Error)
		for _, fn := range s.snapshotErrorSubs() {
			fn(msg.Err.Error)
		}
	}
}

// OnStatus подписывает на подтверждения session-control действий
func (s *Session) OnStatus(fn func(msg api.StatusMessage)) transport.Unsubscribe {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.statusSubs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.statusSubs, id)
	}
}

// OnPush подписывает на доменные события других участников комнаты
func (s *Session) OnPush(fn func(msg api.PushMessage)) transport.Unsubscribe {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.pushSubs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.pushSubs, id)
	}
}

// OnRelayError подписывает на протокольные ошибки relay.
// Соединение при таких ошибках остается открытым.
func (s *Session) OnRelayError(fn func(relayError string)) transport.Unsubscribe {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.errorSubs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.errorSubs, id)
	}
}

func (s *Session) snapshotStatusSubs() []func(api.StatusMessage) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]func(api.StatusMessage), 0, len(s.statusSubs))
	for _, fn := range s.statusSubs {
		out = append(out, fn)
	}
	return out
}

func (s *Session) snapshotPushSubs() []func(api.PushMessage) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]func(api.PushMessage), 0, len(s.pushSubs))
	for _, fn := range s.pushSubs {
		out = append(out, fn)
	}
	return out
}

func (s *Session) snapshotErrorSubs() []func(string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	out := make([]func(string), 0, len(s.errorSubs))
	for _, fn := range s.errorSubs {
		out = append(out, fn)
	}
	return out
}
