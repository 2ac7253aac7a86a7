// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidUnderlying = errors.New("invalid underlying price")
	ErrInvalidStrike     = errors.New("invalid strike price")
	ErrInvalidVolatility = errors.New("invalid implied volatility")
	ErrInvalidExpiry     = errors.New("invalid time to expiration")
	ErrConversion        = errors.New("decimal conversion failed")
	ErrNoPositions       = errors.New("strategy has no positions")
	ErrPositionNotFound  = errors.New("position not found")
	ErrInputValidation   = errors.New("input validation failed")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrDatabaseError     = errors.New("database error")
	ErrDataNotFound      = errors.New("data not found")
)

// GreeksError represents a failure inside a sensitivity calculation.
type GreeksError struct {
	Greek  string
	Input  string
	Reason string
	Err    error
}

func (e *GreeksError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("greeks error [%s] %s: %s: %v", e.Greek, e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("greeks error [%s] %s: %s", e.Greek, e.Input, e.Reason)
}

func (e *GreeksError) Unwrap() error {
	return e.Err
}

// NewGreeksError creates a new GreeksError.
func NewGreeksError(greek, input, reason string, err error) *GreeksError {
	return &GreeksError{
		Greek:  greek,
		Input:  input,
		Reason: reason,
		Err:    err,
	}
}

// AdjustmentError represents a failure applying a single delta
// adjustment. It aborts that adjustment only; adjustments applied
// earlier in the same batch are not rolled back.
type AdjustmentError struct {
	Adjustment string
	Reason     string
	Err        error
}

func (e *AdjustmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("adjustment error [%s]: %s: %v", e.Adjustment, e.Reason, e.Err)
	}
	return fmt.Sprintf("adjustment error [%s]: %s", e.Adjustment, e.Reason)
}

func (e *AdjustmentError) Unwrap() error {
	return e.Err
}

// NewAdjustmentError creates a new AdjustmentError.
func NewAdjustmentError(adjustment, reason string, err error) *AdjustmentError {
	return &AdjustmentError{
		Adjustment: adjustment,
		Reason:     reason,
		Err:        err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
