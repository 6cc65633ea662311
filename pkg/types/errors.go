package types

import (
	"errors"
	"fmt"
	"strings"
)

// Parse error kinds, matched with errors.Is
var (
	ErrSyntax              = errors.New("syntax error")
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrAmbiguousAnnotation = errors.New("ambiguous type annotation")
)

// maxRemainingTokens bounds how much of the token stream an error message echoes
const maxRemainingTokens = 20

// SyntaxError reports an unexpected token where a specific token was required.
// Actual is empty when the token stream ended first.
type SyntaxError struct {
	Expected  string
	Actual    string
	Remaining []string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "end of input"
	}
	msg := fmt.Sprintf("expected %q, got %q", e.Expected, actual)
	if len(e.Remaining) > 0 {
		rest := e.Remaining
		suffix := ""
		if len(rest) > maxRemainingTokens {
			rest = rest[:maxRemainingTokens]
			suffix = " ..."
		}
		msg += fmt.Sprintf(" near: %s%s", strings.Join(rest, " "), suffix)
	}
	return msg
}

// Is lets errors.Is match ErrSyntax, and ErrUnexpectedEOF for truncated input
func (e *SyntaxError) Is(target error) bool {
	if target == ErrSyntax {
		return true
	}
	return target == ErrUnexpectedEOF && e.Actual == ""
}

// AmbiguousAnnotationError reports a name:type token with more than one colon
type AmbiguousAnnotationError struct {
	Token string
}

// Error implements the error interface
func (e *AmbiguousAnnotationError) Error() string {
	return fmt.Sprintf("ambiguous type annotation %q: more than one ':'", e.Token)
}

// Is lets errors.Is match ErrAmbiguousAnnotation
func (e *AmbiguousAnnotationError) Is(target error) bool {
	return target == ErrAmbiguousAnnotation
}
