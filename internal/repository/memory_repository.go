package repository

import (
	"context"
	"sync"

	"chatline/internal/domain/message"
	"chatline/internal/domain/user"
	chat_errors "chatline/pkg/errors"

	"github.com/google/uuid"
)

// MemoryStore keeps users and messages in process memory. It backs
// STORAGE_DRIVER=memory and stands in for Postgres in service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]user.User
	messages []message.Message
	seq      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]user.User)}
}

func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

func (s *MemoryStore) Messages() MessageRepository {
	return memoryMessages{s}
}

type memoryUsers struct {
	s *MemoryStore
}

func (r memoryUsers) Create(ctx context.Context, u *user.User) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[u.Username]; exists {
		return user.User{}, chat_errors.ErrAlreadyExists
	}
	created := *u
	created.ID = uuid.New()
	r.s.users[created.Username] = created
	return created, nil
}

func (r memoryUsers) FindOne(ctx context.Context, username string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return user.User{}, chat_errors.ErrNotFound
	}
	return u, nil
}

func (r memoryUsers) FindOneAndUpdate(ctx context.Context, username string, patch user.Patch) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return user.User{}, chat_errors.ErrNotFound
	}
	u = patch.Apply(u)
	r.s.users[username] = u
	return u, nil
}

func (r memoryUsers) FindOneAndDelete(ctx context.Context, username string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return user.User{}, chat_errors.ErrNotFound
	}
	delete(r.s.users, username)
	return u, nil
}

type memoryMessages struct {
	s *MemoryStore
}

func (r memoryMessages) Create(ctx context.Context, m *message.Message) (message.Message, error) {
	if err := ctx.Err(); err != nil {
		return message.Message{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.seq++
	created := *m
	created.ID = uuid.New()
	created.Seq = r.s.seq
	r.s.messages = append(r.s.messages, created)
	return created, nil
}

// Find returns messages in insertion order; callers sort.
func (r memoryMessages) Find(ctx context.Context) ([]message.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]message.Message, len(r.s.messages))
	copy(out, r.s.messages)
	return out, nil
}
