// Package bsaerr defines the error kinds this module's parsers and
// validators raise. Each kind wraps an underlying cause with
// github.com/pkg/errors so callers can both pattern-match on the kind
// (via errors.As) and print the full include/parse chain (via the
// wrapped cause).
package bsaerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the error categories this package distinguishes by
// severity and handling.
type Kind int

const (
	// IncludeNotFound: path resolution or file open failed; fatal to the
	// including parse.
	IncludeNotFound Kind = iota
	// ParseError: tokenizer or grammar violation; fatal to the current file.
	ParseError
	// UnknownRecordType: an rdata type token isn't in the registered set.
	UnknownRecordType
	// InvalidRdata: rdata tokens don't match the shape the record type needs.
	InvalidRdata
	// InvalidAddress: an A record's address failed to parse; always fatal.
	InvalidAddress
	// UnknownDirective: an unrecognized zone-file pragma; fatal to the
	// current file. Unrecognized config directives are only logged as
	// warnings and never produce this kind.
	UnknownDirective
	// InheritedOwnerMissing: a blank owner with no previous label to inherit.
	InheritedOwnerMissing
	// CacheBroken: the persistent AST cache entry was unreadable or stale.
	CacheBroken
)

func (k Kind) String() string {
	switch k {
	case IncludeNotFound:
		return "IncludeNotFound"
	case ParseError:
		return "ParseError"
	case UnknownRecordType:
		return "UnknownRecordType"
	case InvalidRdata:
		return "InvalidRdata"
	case InvalidAddress:
		return "InvalidAddress"
	case UnknownDirective:
		return "UnknownDirective"
	case InheritedOwnerMissing:
		return "InheritedOwnerMissing"
	case CacheBroken:
		return "CacheBroken"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying one of the Kind values above, the source
// path and (for zone/config errors) a line number, plus the wrapped cause.
type Error struct {
	Kind Kind
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %v", e.Kind, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind, wrapping cause with pkg/errors so
// a stack trace is retained for diagnostics.
func New(kind Kind, path string, line int, cause error) *Error {
	return &Error{Kind: kind, Path: path, Line: line, Err: errors.WithStack(cause)}
}

// Newf is New with a formatted cause message.
func Newf(kind Kind, path string, line int, format string, args ...interface{}) *Error {
	return New(kind, path, line, errors.Errorf(format, args...))
}

// Is reports whether err (or any error it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == k
}
