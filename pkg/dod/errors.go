package dod

import (
	"fmt"
	"strings"
)

// Error is a syntax error with the source range of the offending token.
type Error struct {
	Pos     Position
	End     Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Pos.String())
	sb.WriteString(": error: ")
	sb.WriteString(e.Message)
	return sb.String()
}

// NewError creates a new Error covering tok.
func NewError(tok Token, message string) *Error {
	return &Error{Pos: tok.Pos(), End: tok.End(), Message: message}
}

// NewErrorf creates a new Error covering tok with a formatted message.
func NewErrorf(tok Token, format string, args ...any) *Error {
	return NewError(tok, fmt.Sprintf(format, args...))
}
