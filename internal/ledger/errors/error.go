// Package errors provides custom error types for ledger operations.
package errors

import "errors"

var ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
