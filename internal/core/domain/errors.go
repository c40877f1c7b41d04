package domain

import (
	"errors"
	"fmt"
)

// Stage errors of the extraction pipeline. The coordinator converts each
// of them into "this stage produced nothing" and moves on; they never
// reach the pipeline's caller.
var (
	ErrDecode  = errors.New("malformed base64 payload")
	ErrArchive = errors.New("invalid archive container")
	ErrParse   = errors.New("malformed xml entry")
)

// Host-level errors surfaced by repositories, queues, and adapters.
var (
	ErrExtractionNotFound = errors.New("extraction not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTemporary          = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
