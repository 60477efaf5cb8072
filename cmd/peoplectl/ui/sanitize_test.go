package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTextStripsControlCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Alice", "Alice"},
		{"ansi escape", "\x1b[31mAlice\x1b[0m", "[31mAlice[0m"},
		{"newlines and tabs", "Ali\nce\tR1\r", "AliceR1"},
		{"delete char", "Ali\x7fce", "Alice"},
		{"unicode kept", "Ålice 人", "Ålice 人"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sanitizeText(tc.in))
		})
	}
}
