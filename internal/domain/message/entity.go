package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table
type Message struct {
	ID          uuid.UUID `json:"_id"`
	Msg         string    `json:"msg"`
	MsgFrom     string    `json:"msgFrom"`
	MsgDateTime time.Time `json:"msgDateTime"`

	// Seq is the store's insertion sequence. It breaks ties between
	// messages that share a timestamp and never leaves the process.
	Seq int64 `json:"-"`
}

// Before reports whether m sorts ahead of other in the chat history:
// by timestamp, then insertion sequence, then id.
func (m Message) Before(other Message) bool {
	if !m.MsgDateTime.Equal(other.MsgDateTime) {
		return m.MsgDateTime.Before(other.MsgDateTime)
	}
	if m.Seq != other.Seq {
		return m.Seq < other.Seq
	}
	return m.ID.String() < other.ID.String()
}
