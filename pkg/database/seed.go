package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatline/internal/domain/message"
	"chatline/internal/domain/user"
	"chatline/internal/repository"
	chat_errors "chatline/pkg/errors"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Usernames []string
	Password  string
	Messages  int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Usernames: []string{"alice", "bob", "carol"},
		Password:  "password",
		Messages:  6,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []user.User
	Messages []message.Message
}

// SeedDevelopment creates the configured users (skipping ones that already
// exist) and a short conversation between them, one minute apart.
func SeedDevelopment(ctx context.Context, users repository.UserRepository, messages repository.MessageRepository, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if len(cfg.Usernames) == 0 {
		return nil, fmt.Errorf("%w: no usernames to seed", chat_errors.ErrInvalidInput)
	}

	result := &SeedResult{}
	now := chat_errors.NowUTC()

	for _, name := range cfg.Usernames {
		u, err := users.Create(ctx, &user.User{Username: name, Password: cfg.Password, DateJoined: now})
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			u, err = users.FindOne(ctx, name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", name, err)
		}
		result.Users = append(result.Users, u)
	}

	start := now.Add(-time.Duration(cfg.Messages) * time.Minute)
	for i := 0; i < cfg.Messages; i++ {
		from := cfg.Usernames[i%len(cfg.Usernames)]
		m, err := messages.Create(ctx, &message.Message{
			Msg:         fmt.Sprintf("seed message %d from %s", i+1, from),
			MsgFrom:     from,
			MsgDateTime: start.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed message %d: %w", i+1, err)
		}
		result.Messages = append(result.Messages, m)
	}
	return result, nil
}
