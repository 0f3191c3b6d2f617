// Package docerr defines the failure kinds reported while resolving Java
// references and translating their documentation.
package docerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Kinds are errors themselves so callers can
// branch with errors.Is(err, docerr.MemberNotFound).
type Kind int

const (
	MalformedReference Kind = iota + 1
	UnresolvedReference
	SourceFileNotFound
	SourceParse
	DeclarationNotFound
	MemberNotFound
	EmptyDocumentation
)

var kindNames = map[Kind]string{
	MalformedReference:  "malformed reference",
	UnresolvedReference: "unresolved reference",
	SourceFileNotFound:  "source file not found",
	SourceParse:         "source parse error",
	DeclarationNotFound: "declaration not found",
	MemberNotFound:      "member not found",
	EmptyDocumentation:  "empty documentation",
}

func (k Kind) Error() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("docerr.Kind(%d)", int(k))
}

// Error is a failure of a given Kind with a human-readable message and an
// optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// New returns an *Error of kind k with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause as the underlying error.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
