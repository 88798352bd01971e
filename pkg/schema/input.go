package schema

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 16KB, enough for any quote request seen in practice.
	DefaultMaxInputSize = 16 * 1024
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "FLUXFEE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CheckInput enforces the size limit and UTF-8 validity of raw agent input.
// A limit <= 0 falls back to FLUXFEE_MAX_INPUT_SIZE, then DefaultMaxInputSize.
// Control characters are left to the JSON decoder, which rejects them inside strings.
func CheckInput(input string, limit int) error {
	if limit <= 0 {
		limit = maxInputSize()
	}
	if len(input) > limit {
		// Reject rather than truncate: a truncated quote would still be forwarded.
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	return nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
