package events

import (
	"chatline/internal/domain/message"
)

// Event type names as clients see them on the socket.
const (
	EventTypeMessageUpdate = "messageUpdate"
)

// Event is one notification fanned out to connected clients.
type Event struct {
	Type    string
	Payload any
}

// MessageUpdatePayload is the body of a messageUpdate event.
type MessageUpdatePayload struct {
	Msg message.Message `json:"msg"`
}

// NewMessageUpdate builds the event sent after a message is persisted.
func NewMessageUpdate(m message.Message) Event {
	return Event{
		Type:    EventTypeMessageUpdate,
		Payload: MessageUpdatePayload{Msg: m},
	}
}
