package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeServerMessage_Status(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"status":"created","roomId":"room-1"}`))
	require.NoError(t, err)

	require.NotNil(t, msg.Status)
	assert.Nil(t, msg.Push)
	assert.Nil(t, msg.Err)
	assert.Equal(t, RoomCreated, msg.Status.Status)
	assert.Equal(t, "room-1", msg.Status.RoomID)
}

func TestDecodeServerMessage_Push(t *testing.T) {
	raw := `{"type":"card:create","from":"session-a","data":"{\"card\":{\"id\":\"c1\"}}"}`
	msg, err := DecodeServerMessage([]byte(raw))
	require.NoError(t, err)

	require.NotNil(t, msg.Push)
	assert.Nil(t, msg.Status)
	assert.Nil(t, msg.Err)
	assert.Equal(t, EventCardCreate, msg.Push.Type)
	assert.Equal(t, "session-a", msg.Push.From)
	assert.JSONEq(t, `{"card":{"id":"c1"}}`, msg.Push.Data)
}

func TestDecodeServerMessage_Error(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"error":"room not found: r1"}`))
	require.NoError(t, err)

	require.NotNil(t, msg.Err)
	assert.Nil(t, msg.Status)
	assert.Nil(t, msg.Push)
	assert.Equal(t, "room not found: r1", msg.Err.Error)
}

func TestDecodeServerMessage_ErrorWinsOverOtherFields(t *testing.T) {
	// Relay не обязан присылать чистые конверты; error имеет приоритет
	msg, err := DecodeServerMessage([]byte(`{"error":"boom","status":"joined","type":"card:create"}`))
	require.NoError(t, err)

	require.NotNil(t, msg.Err)
	assert.Nil(t, msg.Status)
	assert.Nil(t, msg.Push)
}

func TestDecodeServerMessage_NoDiscriminator(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"foo":"bar"}`))
	assert.Error(t, err)
}

func TestDecodeServerMessage_MalformedJSON(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{not json`))
	assert.Error(t, err)
}

func TestClientMessage_BroadcastShape(t *testing.T) {
	msg := ClientMessage{
		Action: ActionBroadcast,
		RoomID: "board-1",
		Type:   EventColumnCreate,
		From:   "session-a",
		Data:   `{"column":{"id":"col-1"}}`,
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"action": "broadcast",
		"roomId": "board-1",
		"type": "column:create",
		"from": "session-a",
		"data": "{\"column\":{\"id\":\"col-1\"}}"
	}`, string(raw))
}

func TestClientMessage_SessionControlOmitsBroadcastFields(t *testing.T) {
	raw, err := json.Marshal(ClientMessage{Action: ActionJoin, RoomID: "board-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"join","roomId":"board-1"}`, string(raw))

	raw, err = json.Marshal(ClientMessage{Action: ActionCreate})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"create"}`, string(raw))
}
