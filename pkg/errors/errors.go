// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrKeyNotSet         = errors.New("no viewing key set")
	ErrMalformedDataset  = errors.New("malformed reference dataset")
	ErrDatasetEmpty      = errors.New("reference dataset is empty")
	ErrWalletNotDerived  = errors.New("wallet view not derived")
	ErrCacheMiss         = errors.New("cache miss")
	ErrPortfolioTooLarge = errors.New("portfolio target count too large")
	ErrInvalidOptions    = errors.New("invalid portfolio options")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
