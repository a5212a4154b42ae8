package internal

import (
	crerr "github.com/cockroachdb/errors"
)

// Error kinds. Concrete errors are marked with one of these so callers can
// classify them with errors.Is regardless of the wrapping chain.
var (
	ErrFetch              = crerr.New("fetch failed")
	ErrUnsupportedSource  = crerr.New("unsupported source")
	ErrSourceNotSupported = crerr.New("source recognized but not supported")
	ErrParse              = crerr.New("parse failed")
	ErrUnresolvedTeam     = crerr.New("unresolved team")
	ErrDuplicateBatch     = crerr.New("duplicate batch")
	ErrValidation         = crerr.New("validation failed")
	ErrLocked             = crerr.New("dataset locked by another writer")
)

// Mark wraps cause with a message and tags it with kind.
func Mark(kind error, cause error, format string, args ...any) error {
	if cause == nil {
		return crerr.Mark(crerr.Newf(format, args...), kind)
	}
	return crerr.Mark(crerr.Wrapf(cause, format, args...), kind)
}

func FetchError(cause error, format string, args ...any) error {
	return Mark(ErrFetch, cause, format, args...)
}

func ParseError(cause error, format string, args ...any) error {
	return Mark(ErrParse, cause, format, args...)
}

func ValidationError(format string, args ...any) error {
	return Mark(ErrValidation, nil, format, args...)
}

// Is reports whether err carries the given kind.
func Is(err, kind error) bool {
	return crerr.Is(err, kind)
}
