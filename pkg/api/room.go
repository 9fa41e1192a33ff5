package api

import (
	"encoding/json"
	"fmt"
)

// Action определяет тип исходящего сообщения комнаты
type Action string

const (
	ActionCreate    Action = "create"    // создать новую комнату (relay выдает id)
	ActionJoin      Action = "join"      // присоединиться к существующей комнате
	ActionLeave     Action = "leave"     // покинуть комнату
	ActionBroadcast Action = "broadcast" // разослать событие остальным участникам
)

// Room status values returned by the relay for session-control actions.
const (
	RoomCreated = "created"
	RoomJoined  = "joined"
	RoomLeft    = "left"
)

// ClientMessage представляет исходящее сообщение (клиент → relay)
type ClientMessage struct {
	Action Action `json:"action"`           // Action дискриминатор сообщения
	RoomID string `json:"roomId,omitempty"` // RoomID идентификатор комнаты (кроме create)
	Type   string `json:"type,omitempty"`   // Type имя доменного события (только broadcast)
	From   string `json:"from,omitempty"`   // From id сессии отправителя (только broadcast)
	Data   string `json:"data,omitempty"`   // Data сериализованное доменное событие (только broadcast)
}

// ServerMessage is the decoded form of an inbound relay message.
// Exactly one of the three variants is non-nil; callers must key off the
// variant, not off arrival order (an ack and a concurrent push may arrive
// in either order).
type ServerMessage struct {
	Status *StatusMessage
	Push   *PushMessage
	Err    *ErrorMessage
}

// StatusMessage подтверждение session-control действия (created/joined/left)
type StatusMessage struct {
	Status string `json:"status"`
	RoomID string `json:"roomId"`
}

// PushMessage широковещательное событие от другого участника комнаты
type PushMessage struct {
	Type string `json:"type"` // Type имя доменного события
	From string `json:"from"` // From id сессии отправителя
	Data string `json:"data"` // Data сериализованное доменное событие
}

// ErrorMessage конверт протокольной ошибки от relay
type ErrorMessage struct {
	Error string `json:"error"`
}

// DecodeServerMessage разбирает входящее сообщение relay по полю-дискриминатору.
// Форматы несимметричны: status-ответ, push от другого участника или ошибка.
func DecodeServerMessage(raw []byte) (*ServerMessage, error) {
	var envelope struct {
		Status string `json:"status"`
		RoomID string `json:"roomId"`
		Type   string `json:"type"`
		From   string `json:"from"`
		Data   string `json:"data"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode relay message: %w", err)
	}

	switch {
	case envelope.Error != "":
		return &ServerMessage{Err: &ErrorMessage{Error: envelope.Error}}, nil
	case envelope.Status != "":
		return &ServerMessage{Status: &StatusMessage{
			Status: envelope.Status,
			RoomID: envelope.RoomID,
		}}, nil
	case envelope.Type != "":
		return &ServerMessage{Push: &PushMessage{
			Type: envelope.Type,
			From: envelope.From,
			Data: envelope.Data,
		}}, nil
	default:
		return nil, fmt.Errorf("relay message has no recognizable discriminator: %s", string(raw))
	}
}
