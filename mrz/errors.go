package mrz

import (
	"errors"
	"fmt"
)

// FailureKind enumerates every way a structural MRZ parse can fail.
// All of these are fatal to the parse: they indicate an unusable capture
// or the wrong document family, not a bad check digit.
type FailureKind int

const (
	EmptyInput FailureKind = iota
	WrongLineCount
	WrongLineLength
	BadLinePrefix
	InvalidLineFormat
	InvalidDate
)

func (k FailureKind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case WrongLineCount:
		return "wrong line count"
	case WrongLineLength:
		return "wrong line length"
	case BadLinePrefix:
		return "bad line prefix"
	case InvalidLineFormat:
		return "invalid line format"
	case InvalidDate:
		return "invalid date"
	default:
		return fmt.Sprintf("unknown failure (%d)", int(k))
	}
}

// Error is the structural parse failure returned by Normalize, ParseFields
// and Parse. Callers can switch on Kind exhaustively; Detail carries the
// human-readable specifics.
type Error struct {
	Kind   FailureKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newError(kind FailureKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf reports the failure kind of err and whether err is an MRZ parse
// failure at all.
func KindOf(err error) (FailureKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
