package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeUTF16(s string, bigEndian bool) []byte {
	out := []byte{0xFF, 0xFE}
	if bigEndian {
		out = []byte{0xFE, 0xFF}
	}
	for _, r := range s {
		hi, lo := byte(r>>8), byte(r)
		if bigEndian {
			out = append(out, hi, lo)
		} else {
			out = append(out, lo, hi)
		}
	}
	return out
}

func TestDecodeSource(t *testing.T) {
	const src = "module A { class Ä {} }"

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "plain utf-8", content: []byte(src)},
		{name: "utf-8 with bom", content: append([]byte{0xEF, 0xBB, 0xBF}, src...)},
		{name: "utf-16 little endian", content: encodeUTF16(src, false)},
		{name: "utf-16 big endian", content: encodeUTF16(src, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeSource(tt.content)
			require.NoError(t, err)
			assert.Equal(t, src, decoded)
		})
	}
}

func TestParseBytes_UTF16(t *testing.T) {
	p := New()
	model, err := p.ParseBytes(encodeUTF16("module Flemco.Test1 {}\r\nmodule Flemco.Test2 {}", false))
	require.NoError(t, err)

	require.Len(t, model.Modules, 1)
	assert.Len(t, model.Modules[0].Modules, 2)
}
