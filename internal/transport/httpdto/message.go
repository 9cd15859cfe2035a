package httpdto

import (
	"fmt"
	"time"

	"chatline/internal/domain/message"
)

// AddMessageRequest is the body of POST /messaging/addMessage
type AddMessageRequest struct {
	MessageToAdd *MessageBody `json:"messageToAdd"`
}

// MessageBody carries the timestamp as text so a bad value can be told
// apart from a malformed request.
type MessageBody struct {
	Msg         string  `json:"msg"`
	MsgFrom     string  `json:"msgFrom"`
	MsgDateTime *string `json:"msgDateTime"`
}

// ToMessage converts the body to a domain message. A missing timestamp
// leaves MsgDateTime zero; an unparseable one is an error.
func (b MessageBody) ToMessage() (message.Message, error) {
	m := message.Message{Msg: b.Msg, MsgFrom: b.MsgFrom}
	if b.MsgDateTime == nil {
		return m, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, *b.MsgDateTime)
	if err != nil {
		return message.Message{}, fmt.Errorf("msgDateTime %q is not an RFC 3339 timestamp: %w", *b.MsgDateTime, err)
	}
	m.MsgDateTime = ts.UTC()
	return m, nil
}
