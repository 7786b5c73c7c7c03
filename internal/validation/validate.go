// Package validation parses raw operator input into typed values.
// Parsers have no side effects; whether a failure is retried or
// propagated is the caller's policy.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

// ParsePositiveInt parses text as an integer strictly greater than zero.
func ParsePositiveInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer: %w", text, ErrInvalidInput)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%d is not a positive integer: %w", v, ErrInvalidInput)
	}
	return v, nil
}

// ParseNonNegativeDecimal parses text as a decimal number >= 0.
func ParseNonNegativeDecimal(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number: %w", text, ErrInvalidInput)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s is negative: %w", d, ErrInvalidInput)
	}
	return d, nil
}

// ParseNonEmpty trims surrounding whitespace and rejects empty results.
func ParseNonEmpty(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", fmt.Errorf("value must not be empty: %w", ErrInvalidInput)
	}
	return t, nil
}
