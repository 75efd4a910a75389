package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound         = errors.New("note not found")
	ErrReadOnly         = errors.New("backend is in read-only mode")
	ErrIDSpaceExhausted = errors.New("could not generate a unique note id")
)

// NotFoundError reports an operation on an id absent from the collection.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %d not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
