// Package relay реализует dev-relay: websocket сервер комнат,
// который пересылает широковещательные события между участниками.
// Relay не интерпретирует доменные события, он только маршрутизирует.
package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/taskwire/taskwire/pkg/api"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// AuthorizeFunc проверяет токен из query string при подключении
type AuthorizeFunc func(token string) bool

// Option настраивает Relay при создании
type Option func(*Relay)

// WithAuthorize задает проверку токена. По умолчанию принимается
// любой непустой токен.
func WithAuthorize(fn AuthorizeFunc) Option {
	return func(r *Relay) { r.authorize = fn }
}

// Relay держит комнаты и их участников
type Relay struct {
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	authorize AuthorizeFunc

	mu    sync.Mutex
	rooms map[string]map[*member]struct{}
}

// member представляет одно websocket подключение
type member struct {
	id    string
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}
	gone  bool // выставляется под Relay.mu перед закрытием send
}

// New создает relay
func New(logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(req *http.Request) bool { return true },
		},
		authorize: func(token string) bool { return token != "" },
		rooms:     make(map[string]map[*member]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ServeHTTP принимает websocket подключение.
// Авторизация проверяется после upgrade: отказ отправляется как
// close frame 1008, чтобы клиент отличил его от сетевого сбоя.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	token := req.URL.Query().Get("token")
	if !r.authorize(token) {
		r.logger.Info("connection rejected: bad token", "remote", req.RemoteAddr)
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication failed")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	m := &member{
		id:    uuid.New().String(),
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]struct{}),
	}

	r.logger.Info("member connected", "member_id", m.id, "board_id", req.URL.Query().Get("board_id"))

	go r.writePump(m)
	r.readPump(m)
}

// readPump обрабатывает входящие сообщения участника до отключения
func (r *Relay) readPump(m *member) {
	defer r.dropMember(m)

	for {
		_, raw, err := m.conn.ReadMessage()
		if err != nil {
			r.logger.Debug("member disconnected", "member_id", m.id, "error", err)
			return
		}

		var msg api.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			r.sendError(m, "malformed message")
			continue
		}

		switch msg.Action {
		case api.ActionCreate:
			r.handleCreate(m)
		case api.ActionJoin:
			r.handleJoin(m, msg.RoomID)
		case api.ActionLeave:
			r.handleLeave(m, msg.RoomID)
		case api.ActionBroadcast:
			r.handleBroadcast(m, msg)
		default:
			r.sendError(m, fmt.Sprintf("unknown action: %s", msg.Action))
		}
	}
}

// writePump сериализует записи в сокет через канал отправки
func (r *Relay) writePump(m *member) {
	for data := range m.send {
		_ = m.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := m.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			r.logger.Debug("write failed", "member_id", m.id, "error", err)
			return
		}
	}
	_ = m.conn.Close()
}

// handleCreate создает комнату; id выдает relay
func (r *Relay) handleCreate(m *member) {
	roomID := uuid.New().String()

	r.mu.Lock()
	r.rooms[roomID] = map[*member]struct{}{m: {}}
	m.rooms[roomID] = struct{}{}
	r.mu.Unlock()

	r.logger.Info("room created", "room_id", roomID, "member_id", m.id)
	r.sendStatus(m, api.RoomCreated, roomID)
}

// handleJoin присоединяет участника к комнате, создавая ее при
// отсутствии: создатель доски мог еще не подключиться
func (r *Relay) handleJoin(m *member, roomID string) {
	if roomID == "" {
		r.sendError(m, "join requires roomId")
		return
	}

	r.mu.Lock()
	members, ok := r.rooms[roomID]
	if !ok {
		members = make(map[*member]struct{})
		r.rooms[roomID] = members
	}
	members[m] = struct{}{}
	m.rooms[roomID] = struct{}{}
	r.mu.Unlock()

	r.logger.Info("member joined room", "room_id", roomID, "member_id", m.id)
	r.sendStatus(m, api.RoomJoined, roomID)
}

// handleLeave убирает участника из комнаты
func (r *Relay) handleLeave(m *member, roomID string) {
	if roomID == "" {
		r.sendError(m, "leave requires roomId")
		return
	}

	r.mu.Lock()
	r.removeFromRoomLocked(m, roomID)
	r.mu.Unlock()

	r.logger.Info("member left room", "room_id", roomID, "member_id", m.id)
	r.sendStatus(m, api.RoomLeft, roomID)
}

// handleBroadcast рассылает событие остальным участникам комнаты.
// Отправитель свое событие обратно не получает.
func (r *Relay) handleBroadcast(m *member, msg api.ClientMessage) {
	if msg.RoomID == "" {
		r.sendError(m, "broadcast requires roomId")
		return
	}

	from := msg.From
	if from == "" {
		from = m.id
	}

	push, err := json.Marshal(api.PushMessage{
		Type: msg.Type,
		From: from,
		Data: msg.Data,
	})
	if err != nil {
		r.sendError(m, "failed to encode push")
		return
	}

	r.mu.Lock()
	members, ok := r.rooms[msg.RoomID]
	if !ok {
		r.mu.Unlock()
		r.sendError(m, fmt.Sprintf("room not found: %s", msg.RoomID))
		return
	}
	if _, in := members[m]; !in {
		r.mu.Unlock()
		r.sendError(m, fmt.Sprintf("not a member of room: %s", msg.RoomID))
		return
	}
	targets := make([]*member, 0, len(members))
	for peer := range members {
		if peer != m {
			targets = append(targets, peer)
		}
	}
	r.mu.Unlock()

	for _, peer := range targets {
		r.enqueue(peer, push)
	}
}

// dropMember убирает участника из всех комнат при отключении
func (r *Relay) dropMember(m *member) {
	r.mu.Lock()
	for roomID := range m.rooms {
		r.removeFromRoomLocked(m, roomID)
	}
	m.gone = true
	r.mu.Unlock()

	close(m.send)
	_ = m.conn.Close()
	r.logger.Info("member dropped", "member_id", m.id)
}

// removeFromRoomLocked вызывается под r.mu
func (r *Relay) removeFromRoomLocked(m *member, roomID string) {
	delete(m.rooms, roomID)
	members, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(members, m)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
}

// sendStatus отправляет подтверждение session-control действия
func (r *Relay) sendStatus(m *member, status, roomID string) {
	data, err := json.Marshal(api.StatusMessage{Status: status, RoomID: roomID})
	if err != nil {
		return
	}
	r.enqueue(m, data)
}

// sendError отправляет протокольную ошибку участнику
func (r *Relay) sendError(m *member, text string) {
	data, err := json.Marshal(api.ErrorMessage{Error: text})
	if err != nil {
		return
	}
	r.enqueue(m, data)
}

// enqueue кладет сообщение в буфер отправки участника.
// Переполненный буфер значит зависшего клиента; комнату не блокируем.
func (r *Relay) enqueue(m *member, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.gone {
		return
	}
	select {
	case m.send <- data:
	default:
		r.logger.Warn("dropping message for slow member", "member_id", m.id)
	}
}
