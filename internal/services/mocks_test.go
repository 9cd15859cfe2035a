package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"chatline/internal/domain/message"
	"chatline/internal/domain/user"
	"chatline/internal/events"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) FindOne(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) FindOneAndUpdate(ctx context.Context, username string, patch user.Patch) (user.User, error) {
	args := m.Called(ctx, username, patch)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepository) FindOneAndDelete(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *message.Message) (message.Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(message.Message), args.Error(1)
}

func (m *mockMessageRepository) Find(ctx context.Context) ([]message.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]message.Message), args.Error(1)
}

// recordingPublisher keeps every event it is handed.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

type panickingUserRepository struct {
	mockUserRepository
}

func (p *panickingUserRepository) FindOne(context.Context, string) (user.User, error) {
	panic("driver exploded")
}
