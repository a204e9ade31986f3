// Package errs classifies the failures that abort a challenger run.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which stage of the run failed.
type Kind int

const (
	Unknown Kind = iota
	Configuration
	Fetch
	StateQuery
	ChallengeRejected
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case Fetch:
		return "FetchError"
	case StateQuery:
		return "StateQueryError"
	case ChallengeRejected:
		return "ChallengeRejected"
	default:
		return "UnknownError"
	}
}

// Error carries a Kind along with the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New tags err with kind. A nil err yields nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Newf builds a tagged error from a message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err was tagged with kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
