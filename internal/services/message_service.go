package services

import (
	"context"
	"sort"

	"chatline/internal/domain/message"
	"chatline/internal/events"
	"chatline/internal/repository"
	"chatline/pkg/logger"

	"go.uber.org/zap"
)

type MessageService struct {
	repo      repository.MessageRepository
	publisher events.Publisher
	log       *logger.Logger
}

func NewMessageService(repo repository.MessageRepository, publisher events.Publisher, l *logger.Logger) *MessageService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &MessageService{repo: repo, publisher: publisher, log: l}
}

// SaveMessage persists an already validated message and then announces it
// with exactly one messageUpdate event. Nothing is published when the
// store fails. Publish errors are logged, never returned.
func (s *MessageService) SaveMessage(ctx context.Context, m message.Message) (message.Message, error) {
	saved, err := guard(func() (message.Message, error) { return s.repo.Create(ctx, &m) })
	if err != nil {
		s.log.Error(ctx, "failed to save message", zap.String("msg_from", m.MsgFrom), zap.Error(err))
		return message.Message{}, persistenceError("saving message", err)
	}

	if err := s.publisher.Publish(ctx, events.NewMessageUpdate(saved)); err != nil {
		s.log.Warn(ctx, "failed to broadcast message", zap.String("message_id", saved.ID.String()), zap.Error(err))
	}
	return saved, nil
}

// GetMessages returns every message oldest first. A store failure yields
// an empty list rather than an error.
func (s *MessageService) GetMessages(ctx context.Context) []message.Message {
	msgs, err := guard(func() ([]message.Message, error) { return s.repo.Find(ctx) })
	if err != nil {
		s.log.Warn(ctx, "failed to list messages, returning empty list", zap.Error(err))
		return []message.Message{}
	}
	if msgs == nil {
		return []message.Message{}
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Before(msgs[j])
	})
	return msgs
}
