package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Is(err, target error) bool { return cr.Is(err, target) }

func As(err error, target any) bool { return cr.As(err, target) }

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// WithCause returns sentinel with a stack, keeping cause as a secondary error
// so that errors.As still finds the sentinel's code.
func WithCause(sentinel, cause error) error {
	if cause == nil {
		return cr.WithStack(sentinel)
	}
	return cr.WithSecondaryError(cr.WithStack(sentinel), cause)
}

// Invalid marks err as a validation failure.
func Invalid(err error) error {
	return Mark(err, ErrValidation)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
