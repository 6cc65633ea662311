package parser

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrFileTooLarge is returned by ParseFile for files above the size limit
	ErrFileTooLarge = errors.New("file too large")
)

// DecodeSource converts raw file bytes to a string. A UTF-16 (LE or BE) or UTF-8
// byte order mark selects the encoding and is stripped; without one the content
// is read as UTF-8, with invalid sequences replaced by U+FFFD.
func DecodeSource(content []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", fmt.Errorf("failed to decode source: %w", err)
	}
	return string(decoded), nil
}
