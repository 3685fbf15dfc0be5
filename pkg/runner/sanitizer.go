package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 64KB: one byte per initial tape cell.
	DefaultMaxInputSize = 64 * 1024
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "TURING_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CheckInput strips the line terminator, enforces the size limit and
// validates UTF-8. Every other rune is kept so that alphabet validation
// sees exactly what the caller sent.
func CheckInput(input string) (string, error) {
	input = strings.TrimRight(input, "\r\n")

	limit := getMaxInputSize()
	if len(input) > limit {
		// Reject rather than truncate; a truncated tape is a different input.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	return input, nil
}

// SanitizeInput is CheckInput plus stripping of control characters, for
// interactively typed lines. Spaces are kept: they are tape symbols.
func SanitizeInput(input string) (string, error) {
	input, err := CheckInput(input)
	if err != nil {
		return "", err
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
