package services

import (
	"errors"
	"fmt"

	chat_errors "chatline/pkg/errors"
)

// guard runs a store call and turns a panic inside it into ErrPersistence,
// so nothing a store does escapes a service as a panic.
func guard[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = fmt.Errorf("%w: store panicked: %v", chat_errors.ErrPersistence, r)
		}
	}()
	return fn()
}

// persistenceError tags err as a storage failure unless it is already one
// of the classified kinds.
func persistenceError(op string, err error) error {
	if errors.Is(err, chat_errors.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", chat_errors.ErrPersistence, op, err)
}
