package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/view"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "0x prefix", input: "0x1A2B", want: 0x1a2b},
		{name: "0X prefix", input: "0X1A2B", want: 0x1a2b},
		{name: "bare hex digits", input: "1A2B", want: 0x1a2b},
		{name: "lowercase hex", input: "ff", want: 255},
		// All-digit input is hex, not decimal: "6699" is 0x6699.
		{name: "digits-only reads as hex", input: "6699", want: 0x6699},
		{name: "hundred reads as hex", input: "100", want: 256},
		{name: "zero", input: "0", want: 0},
		{name: "surrounding whitespace", input: "  0x10  ", want: 16},
		{name: "decimal fallback", input: "-42", want: -42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := view.ParseAddress(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseAddressInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "0x", "0xzz", "12g4", "hello!", "--3"} {
		t.Run(input, func(t *testing.T) {
			_, err := view.ParseAddress(input)
			assert.ErrorIs(t, err, view.ErrInvalidAddress)
		})
	}
}
