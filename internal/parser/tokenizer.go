package parser

import "strings"

// Tokenize splits normalized text on single spaces, dropping empty tokens
func Tokenize(code string) []string {
	parts := strings.Split(code, " ")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
