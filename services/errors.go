package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
)

// notFound maps gorm's record-not-found onto ErrNotFound and leaves other
// errors as they are.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidInput)
}

func conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}
