package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQuotedStrings_QuoteCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "double quotes", input: "word1 word 2 \"Hello World\" word3 word4"},
		{name: "single quotes", input: "word1 word 2 'Hello World' word3 word4"},
		{name: "backticks", input: "word1 word 2 `Hello World` word3 word4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, literals := ExtractQuotedStrings(tt.input)

			assert.Equal(t, "word1 word 2 ______0______ word3 word4", text)
			require.Len(t, literals, 1)
			assert.Equal(t, 0, literals[0].ID)
			assert.Equal(t, "______0______", literals[0].Placeholder)
			assert.Equal(t, "Hello World", literals[0].Text)
		})
	}
}

func TestExtractQuotedStrings_MultipleLiterals(t *testing.T) {
	text, literals := ExtractQuotedStrings(`a = "one"; b = 'two'; c = ` + "`three`")

	assert.Equal(t, "a = ______0______; b = ______1______; c = ______2______", text)
	require.Len(t, literals, 3)
	assert.Equal(t, "one", literals[0].Text)
	assert.Equal(t, "two", literals[1].Text)
	assert.Equal(t, "three", literals[2].Text)
	assert.Equal(t, "______2______", literals[2].Placeholder)
}

func TestExtractQuotedStrings_MismatchedDelimitersClose(t *testing.T) {
	// any quote character closes an open literal
	text, literals := ExtractQuotedStrings(`x "it's" y`)

	assert.Equal(t, `x ______0______s" y`, text)
	require.Len(t, literals, 1)
	assert.Equal(t, "it", literals[0].Text)
}

func TestExtractQuotedStrings_PreservesLineBreaks(t *testing.T) {
	text, literals := ExtractQuotedStrings("v = `Hello \r\nWorld`;")

	assert.Equal(t, "v = ______0______;", text)
	require.Len(t, literals, 1)
	assert.Equal(t, "Hello \r\nWorld", literals[0].Text)
}

func TestExtractQuotedStrings_MarkerAvoidsCollision(t *testing.T) {
	text, literals := ExtractQuotedStrings(`______ and _______ "x"`)

	require.Len(t, literals, 1)
	assert.Equal(t, "________0________", literals[0].Placeholder)
	assert.Equal(t, "______ and _______ ________0________", text)
}

func TestExtractQuotedStrings_UnterminatedLiteral(t *testing.T) {
	text, literals := ExtractQuotedStrings(`done "a" open "rest of text`)

	assert.Equal(t, `done ______0______ open "rest of text`, text)
	assert.Len(t, literals, 1)
}

func TestExtractQuotedStrings_NoQuotes(t *testing.T) {
	text, literals := ExtractQuotedStrings("module A { }")

	assert.Equal(t, "module A { }", text)
	assert.Empty(t, literals)
}

func TestExtractQuotedStrings_EmptyLiteral(t *testing.T) {
	text, literals := ExtractQuotedStrings(`x = ""`)

	assert.Equal(t, "x = ______0______", text)
	require.Len(t, literals, 1)
	assert.Equal(t, "", literals[0].Text)
}
