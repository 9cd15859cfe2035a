package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"chatline/internal/domain/user"
	"chatline/internal/repository"
	chat_errors "chatline/pkg/errors"
	"chatline/pkg/logger"

	"go.uber.org/zap"
)

type UserService struct {
	repo repository.UserRepository
	log  *logger.Logger
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository, l *logger.Logger) *UserService {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &UserService{repo: repo, log: l, now: chat_errors.NowUTC}
}

// SaveUser creates an account stamped with the current time.
// A taken username yields ErrConflict.
func (s *UserService) SaveUser(ctx context.Context, body user.Credentials) (user.SafeUser, error) {
	u := &user.User{
		Username:   body.Username,
		Password:   body.Password,
		DateJoined: s.now(),
	}

	created, err := guard(func() (user.User, error) { return s.repo.Create(ctx, u) })
	if err != nil {
		if errors.Is(err, chat_errors.ErrAlreadyExists) {
			return user.SafeUser{}, fmt.Errorf("%w: username %q already exists", chat_errors.ErrConflict, body.Username)
		}
		s.log.Error(ctx, "failed to save user", zap.String("username", body.Username), zap.Error(err))
		return user.SafeUser{}, persistenceError("saving user", err)
	}
	return created.Safe(), nil
}

// LoginUser checks the supplied password against the stored one. An unknown
// username and a wrong password fail the same way.
func (s *UserService) LoginUser(ctx context.Context, creds user.Credentials) (user.SafeUser, error) {
	found, err := guard(func() (user.User, error) { return s.repo.FindOne(ctx, creds.Username) })
	if err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			return user.SafeUser{}, chat_errors.ErrInvalidCredentials
		}
		s.log.Error(ctx, "failed to load user for login", zap.String("username", creds.Username), zap.Error(err))
		return user.SafeUser{}, persistenceError("logging in", err)
	}

	if subtle.ConstantTimeCompare([]byte(found.Password), []byte(creds.Password)) != 1 {
		return user.SafeUser{}, chat_errors.ErrInvalidCredentials
	}
	return found.Safe(), nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (user.SafeUser, error) {
	found, err := guard(func() (user.User, error) { return s.repo.FindOne(ctx, username) })
	if err != nil {
		return user.SafeUser{}, s.lookupError(ctx, "getting user", username, err)
	}
	return found.Safe(), nil
}

// DeleteUserByUsername returns the account as it was before removal.
func (s *UserService) DeleteUserByUsername(ctx context.Context, username string) (user.SafeUser, error) {
	removed, err := guard(func() (user.User, error) { return s.repo.FindOneAndDelete(ctx, username) })
	if err != nil {
		return user.SafeUser{}, s.lookupError(ctx, "deleting user", username, err)
	}
	return removed.Safe(), nil
}

// UpdateUser applies patch and returns the account as it is afterwards.
func (s *UserService) UpdateUser(ctx context.Context, username string, patch user.Patch) (user.SafeUser, error) {
	if patch.IsEmpty() {
		return user.SafeUser{}, fmt.Errorf("%w: nothing to update", chat_errors.ErrInvalidInput)
	}

	updated, err := guard(func() (user.User, error) { return s.repo.FindOneAndUpdate(ctx, username, patch) })
	if err != nil {
		return user.SafeUser{}, s.lookupError(ctx, "updating user", username, err)
	}
	return updated.Safe(), nil
}

func (s *UserService) lookupError(ctx context.Context, op, username string, err error) error {
	if errors.Is(err, chat_errors.ErrNotFound) {
		return fmt.Errorf("%s: user %q: %w", op, username, chat_errors.ErrNotFound)
	}
	s.log.Error(ctx, "user store failure", zap.String("op", op), zap.String("username", username), zap.Error(err))
	return persistenceError(op, err)
}
