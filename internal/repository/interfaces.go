package repository

import (
	"context"

	"chatline/internal/domain/message"
	"chatline/internal/domain/user"
)

// UserRepository is keyed by username; uniqueness of usernames is the
// store's job.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (user.User, error)
	FindOne(ctx context.Context, username string) (user.User, error)
	FindOneAndUpdate(ctx context.Context, username string, patch user.Patch) (user.User, error)
	FindOneAndDelete(ctx context.Context, username string) (user.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) (message.Message, error)
	Find(ctx context.Context) ([]message.Message, error)
}
