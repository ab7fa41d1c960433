package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/funnelcast/funnelcast/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidLimit  = errors.New("limit must be positive")
	ErrInvalidReport = errors.New("invalid report")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateReport validates a report before it is recorded.
func validateReport(r *model.Report) error {
	if r == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if r.Range.Start.After(r.Range.End) {
		return fmt.Errorf("%w: range start after end", ErrInvalidReport)
	}
	return nil
}
