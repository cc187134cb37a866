package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation")  // 400
	ErrIDMismatch = errors.New("id mismatch") // 400
	ErrNotFound   = errors.New("not found")   // 404
	ErrConflict   = errors.New("conflict")    // 409
)

// notFound maps gorm's missing-row error onto ErrNotFound and passes
// every other storage error through untouched.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

func checkID(pathID, bodyID int) error {
	if pathID != bodyID {
		return fmt.Errorf("%w: path id %d, body id %d", ErrIDMismatch, pathID, bodyID)
	}
	return nil
}
