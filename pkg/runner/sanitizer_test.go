package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("0", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "3")
	_, err := SanitizeInput("0000")
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestSanitizeInput_Cleaning(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line terminator", "01\r\n", "01"},
		{"spaces kept", " 0 1 ", " 0 1 "},
		{"escape stripped", "0\x1b[31m1", "0[31m1"},
		{"tab stripped", "0\t1", "01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("0\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestCheckInput_KeepsControlCharacters(t *testing.T) {
	got, err := CheckInput("0\t1\r\n")
	require.NoError(t, err)
	assert.Equal(t, "0\t1", got)

	_, err = CheckInput("0\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
