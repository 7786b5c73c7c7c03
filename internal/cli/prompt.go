package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abgdnv/bookstore/internal/validation"
)

// prompt writes the label and returns the next input line. ok is false when
// input ended or the context was cancelled.
func (s *Shell) prompt(ctx context.Context, label string) (value string, ok bool) {
	fmt.Fprint(s.out, label)
	select {
	case <-ctx.Done():
		return "", false
	case line, open := <-s.lines:
		if !open {
			return "", false
		}
		return line, true
	}
}

// promptNonEmpty re-prompts until the operator supplies non-blank text.
func (s *Shell) promptNonEmpty(ctx context.Context, label string) (string, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return "", false
		}
		v, err := validation.ParseNonEmpty(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return v, true
	}
}

// promptPositiveInt re-prompts until the operator supplies an integer > 0.
func (s *Shell) promptPositiveInt(ctx context.Context, label string) (int, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return 0, false
		}
		v, err := validation.ParsePositiveInt(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return v, true
	}
}

// promptNonNegativeDecimal re-prompts until the operator supplies a number >= 0.
func (s *Shell) promptNonNegativeDecimal(ctx context.Context, label string) (decimal.Decimal, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return decimal.Zero, false
		}
		v, err := validation.ParseNonNegativeDecimal(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return v, true
	}
}

// promptDiscount treats an empty line as zero. Range checking belongs to
// the ledger service; only parse failures re-prompt here.
func (s *Shell) promptDiscount(ctx context.Context, label string) (decimal.Decimal, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return decimal.Zero, false
		}
		if strings.TrimSpace(raw) == "" {
			return decimal.Zero, true
		}
		v, err := validation.ParseNonNegativeDecimal(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return v, true
	}
}

// Optional prompts: an empty line means "keep the current value" and yields nil.

func (s *Shell) promptOptionalNonEmpty(ctx context.Context, label string) (*string, bool) {
	raw, ok := s.prompt(ctx, label)
	if !ok {
		return nil, false
	}
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil, true
	}
	return &t, true
}

func (s *Shell) promptOptionalPositiveInt(ctx context.Context, label string) (*int, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return nil, false
		}
		if strings.TrimSpace(raw) == "" {
			return nil, true
		}
		v, err := validation.ParsePositiveInt(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return &v, true
	}
}

func (s *Shell) promptOptionalNonNegativeDecimal(ctx context.Context, label string) (*decimal.Decimal, bool) {
	for {
		raw, ok := s.prompt(ctx, label)
		if !ok {
			return nil, false
		}
		if strings.TrimSpace(raw) == "" {
			return nil, true
		}
		v, err := validation.ParseNonNegativeDecimal(raw)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		return &v, true
	}
}
