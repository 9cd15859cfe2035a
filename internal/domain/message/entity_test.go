package message

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMessage_Before(t *testing.T) {
	t0 := time.Date(2024, 6, 6, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	tests := []struct {
		name string
		a, b Message
		want bool
	}{
		{"earlier timestamp first", Message{MsgDateTime: t0, Seq: 9}, Message{MsgDateTime: t1, Seq: 1}, true},
		{"later timestamp second", Message{MsgDateTime: t1}, Message{MsgDateTime: t0}, false},
		{"tie broken by seq", Message{MsgDateTime: t0, Seq: 1}, Message{MsgDateTime: t0, Seq: 2}, true},
		{"tie broken by seq reversed", Message{MsgDateTime: t0, Seq: 2}, Message{MsgDateTime: t0, Seq: 1}, false},
		{
			"full tie broken by id",
			Message{MsgDateTime: t0, ID: uuid.MustParse("00000000-0000-0000-0000-000000000001")},
			Message{MsgDateTime: t0, ID: uuid.MustParse("00000000-0000-0000-0000-000000000002")},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Before(tt.b))
		})
	}
}

func TestMessage_BeforeComparesInstants(t *testing.T) {
	utc := time.Date(2024, 6, 6, 10, 0, 0, 0, time.UTC)
	other := utc.In(time.FixedZone("X", 3600))

	a := Message{MsgDateTime: utc, Seq: 1}
	b := Message{MsgDateTime: other, Seq: 2}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}
