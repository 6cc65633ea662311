package parser

import "github.com/dshills/tscontext-mcp/pkg/types"

// Cursor is a read position over a token sequence
type Cursor struct {
	tokens []string
	pos    int
}

// NewCursor creates a cursor positioned at the first token
func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens}
}

// Done reports whether every token has been consumed
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Position returns the index of the current token
func (c *Cursor) Position() int {
	return c.pos
}

// Peek returns the current token without consuming it, or "" at the end
func (c *Cursor) Peek() string {
	return c.PeekAt(0)
}

// PeekAt looks offset tokens past the current one, returning "" past the end
func (c *Cursor) PeekAt(offset int) string {
	i := c.pos + offset
	if i < 0 || i >= len(c.tokens) {
		return ""
	}
	return c.tokens[i]
}

// Pop returns the current token and advances. Once the stream is exhausted it
// keeps returning the last token without advancing.
func (c *Cursor) Pop() string {
	if c.Done() {
		if len(c.tokens) == 0 {
			return ""
		}
		return c.tokens[len(c.tokens)-1]
	}
	token := c.tokens[c.pos]
	c.pos++
	return token
}

// HasOptional consumes the current token if it equals expected
func (c *Cursor) HasOptional(expected string) bool {
	if c.Peek() != expected {
		return false
	}
	c.pos++
	return true
}

// AssertCurrentIs consumes the current token and fails if it is not expected.
// An exhausted stream fails rather than matching against the repeated last token.
func (c *Cursor) AssertCurrentIs(expected string) error {
	if c.Done() {
		return &types.SyntaxError{Expected: expected}
	}
	remaining := c.Remaining()
	if token := c.Pop(); token != expected {
		return &types.SyntaxError{Expected: expected, Actual: token, Remaining: remaining}
	}
	return nil
}

// Remaining returns a copy of the unconsumed tokens, current token first
func (c *Cursor) Remaining() []string {
	if c.Done() {
		return nil
	}
	rest := make([]string, len(c.tokens)-c.pos)
	copy(rest, c.tokens[c.pos:])
	return rest
}

// fail builds a SyntaxError at the current position without consuming
func (c *Cursor) fail(expected string) error {
	return &types.SyntaxError{Expected: expected, Actual: c.Peek(), Remaining: c.Remaining()}
}
