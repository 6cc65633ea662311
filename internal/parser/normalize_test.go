package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "windows line endings",
			input:    "word1 word \r\n 2 `Hello World` word3 word4",
			expected: "word1 word 2 `Hello World` word3 word4",
		},
		{
			name:     "unix line endings",
			input:    "word1 word \n 2 `Hello World` word3 word4",
			expected: "word1 word 2 `Hello World` word3 word4",
		},
		{
			name:     "both line endings",
			input:    "module test { class myClass { public testString = \n `Hello \r\nWorld`;}}",
			expected: "module test { class myClass { public testString = `Hello World`;}}",
		},
		{
			name:     "tabs",
			input:    "word1 word 2 `Hello \r\nWorld` word3 \t word4",
			expected: "word1 word 2 `Hello World` word3 word4",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "\r\n\t  module A  \n",
			expected: "module A",
		},
		{
			name:     "empty",
			input:    " \t\r\n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWhitespace(tt.input))
		})
	}
}

func TestNormalizeWhitespace_Idempotent(t *testing.T) {
	inputs := []string{
		"word1 word \r\n 2 word3 \t word4",
		"module A { class B { } }",
		"",
	}

	for _, input := range inputs {
		once := NormalizeWhitespace(input)
		assert.Equal(t, once, NormalizeWhitespace(once), "input %q", input)
	}
}

func TestExpandDelimiters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tight delimiters",
			input:    "a{b;c}",
			expected: "a { b ; c } ",
		},
		{
			name:     "adjacent closing braces",
			input:    "x;}}",
			expected: "x ; } } ",
		},
		{
			name:     "absorbs surrounding whitespace",
			input:    "a \r\n\t{\n\n b",
			expected: "a { b",
		},
		{
			name:     "leading delimiter",
			input:    "{a",
			expected: " { a",
		},
		{
			name:     "no delimiters",
			input:    "a  b",
			expected: "a  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandDelimiters(tt.input))
		})
	}
}

func TestExpandDelimiters_Idempotent(t *testing.T) {
	inputs := []string{
		"module A{class B{x;}}",
		"module test { class myClass { public testString = ______0______;}}",
		" { } ; ",
	}

	for _, input := range inputs {
		once := ExpandDelimiters(input)
		assert.Equal(t, once, ExpandDelimiters(once), "input %q", input)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"module", "A", "{", "}"}, Tokenize("module A { }"))
	assert.Equal(t, []string{"a", "b"}, Tokenize("  a   b "))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   "))
}
