// Package errors carries the engine's error taxonomy. Three categories
// cover everything the simulation can reject: bad strategy configuration,
// broken input data, and series too short for the configured lookbacks.
// All of them surface as inspectable values; none corrupt recorded trades.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies an engine error.
type Category string

const (
	CategoryConfig  Category = "CONFIG"
	CategoryData    Category = "DATA"
	CategoryHistory Category = "HISTORY"
)

// EngineError is a categorized error with the component that raised it.
type EngineError struct {
	Category   Category
	Component  string
	Message    string
	Underlying error
}

func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// NewConfigError reports an invalid or out-of-domain parameter. Detected
// eagerly at construction time, never silently clamped.
func NewConfigError(component, message string) *EngineError {
	return &EngineError{Category: CategoryConfig, Component: component, Message: message}
}

// NewDataError reports a violated input data contract: missing columns,
// non-monotonic dates, malformed rows.
func NewDataError(component, message string) *EngineError {
	return &EngineError{Category: CategoryData, Component: component, Message: message}
}

// NewInsufficientHistory reports a series shorter than the longest
// required lookback window.
func NewInsufficientHistory(component string, need, have int) *EngineError {
	return &EngineError{
		Category:  CategoryHistory,
		Component: component,
		Message:   fmt.Sprintf("insufficient history: need at least %d bars, have %d", need, have),
	}
}

// Wrap attaches a category and component to an existing error.
func Wrap(err error, category Category, component, message string) *EngineError {
	if err == nil {
		return nil
	}
	return &EngineError{Category: category, Component: component, Message: message, Underlying: err}
}

func isCategory(err error, c Category) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Category == c
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return isCategory(err, CategoryConfig) }

// IsData reports whether err is a data contract error.
func IsData(err error) bool { return isCategory(err, CategoryData) }

// IsInsufficientHistory reports whether err is a degenerate-series error.
func IsInsufficientHistory(err error) bool { return isCategory(err, CategoryHistory) }
