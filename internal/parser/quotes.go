package parser

import (
	"strconv"
	"strings"

	"github.com/dshills/tscontext-mcp/pkg/types"
)

// placeholderBase is the shortest marker tried when building literal placeholders
const placeholderBase = "______"

// ExtractQuotedStrings replaces every quoted literal with a placeholder token and
// returns the rewritten text together with the literal table.
//
// Any of ", ' and ` opens a literal and any of them closes it, so "abc' is a
// complete literal. Text after an unterminated opening quote is kept verbatim.
func ExtractQuotedStrings(code string) (string, []types.Literal) {
	marker := placeholderBase
	for strings.Contains(code, marker) {
		marker += "_"
	}

	var (
		out       strings.Builder
		literals  []types.Literal
		inLiteral bool
		start     int
	)
	out.Grow(len(code))

	for i := 0; i < len(code); i++ {
		if !isQuote(code[i]) {
			continue
		}

		if !inLiteral {
			out.WriteString(code[start:i])
			start = i
			inLiteral = true
			continue
		}

		id := len(literals)
		lit := types.Literal{
			ID:          id,
			Placeholder: marker + strconv.Itoa(id) + marker,
			Text:        code[start+1 : i],
		}
		literals = append(literals, lit)
		out.WriteString(lit.Placeholder)

		inLiteral = false
		start = i + 1
	}

	out.WriteString(code[start:])
	return out.String(), literals
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}
