package websocket

import (
	"context"

	"chatline/internal/events"
	"chatline/pkg/logger"

	"go.uber.org/zap"
)

// RedisBridge forwards payloads published by any instance into this
// instance's hub.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
	log        *logger.Logger
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub, l *logger.Logger) *RedisBridge {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &RedisBridge{subscriber: subscriber, hub: hub, log: l}
}

func (b *RedisBridge) Run(ctx context.Context, channels []string) error {
	return b.subscriber.Subscribe(ctx, channels, func(channel string, payload []byte) {
		if _, err := events.Decode(payload); err != nil {
			b.log.Warn(ctx, "dropping undecodable broadcast",
				zap.String("channel", channel),
				zap.Int("bytes", len(payload)),
				zap.Error(err),
			)
			return
		}
		b.hub.Broadcast(payload)
	})
}
