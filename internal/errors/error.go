package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/iot-manager/console/internal/routes"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routetable"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
)

// ConsoleError is a structured error with a code, explanation and hint.
type ConsoleError struct {
	// Code is a unique error identifier (e.g., "R010").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ConsoleError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ConsoleError) Unwrap() error {
	return e.Wrapped
}

// WithDetail sets the detailed explanation.
func (e *ConsoleError) WithDetail(d string) *ConsoleError {
	e.Detail = d
	return e
}

// WithDetailf sets a formatted detailed explanation.
func (e *ConsoleError) WithDetailf(format string, args ...any) *ConsoleError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion overrides the fix suggestion.
func (e *ConsoleError) WithSuggestion(s string) *ConsoleError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *ConsoleError) Wrap(err error) *ConsoleError {
	e.Wrapped = err
	return e
}

// New creates a ConsoleError from a registered error code.
func New(code string) *ConsoleError {
	t, ok := registry[code]
	if !ok {
		return &ConsoleError{Code: code, Message: "Unknown error"}
	}
	return &ConsoleError{
		Code:       code,
		Category:   t.Category,
		Message:    t.Message,
		Suggestion: t.Suggestion,
	}
}

// Newf creates an uncoded error with a formatted message.
func Newf(category Category, format string, args ...any) *ConsoleError {
	return &ConsoleError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code unless it already is a ConsoleError.
func FromError(err error, code string) *ConsoleError {
	if err == nil {
		return nil
	}
	var ce *ConsoleError
	if stderrors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}

// sentinels maps package errors to codes, checked in order.
var sentinels = []struct {
	err  error
	code string
}{
	{routetable.ErrMissingLanding, "R001"},
	{routetable.ErrDuplicatePath, "R002"},
	{routetable.ErrDuplicateName, "R003"},
	{routetable.ErrInvalidPath, "R004"},
	{routetable.ErrEmptyName, "R005"},
	{routetable.ErrNilView, "R006"},
	{navigation.ErrSuperseded, "R007"},
	{navigation.ErrNoHistory, "R008"},
	{routetable.ErrRouteNotFound, "R010"},
	{fs.ErrNotExist, "C001"},
	{fs.ErrPermission, "C001"},
	{routes.ErrUnknownVariant, "C003"},
}

// Classify wraps err under the code of the first known sentinel it
// matches. Unknown errors fall back to fallback.
func Classify(err error, fallback string) *ConsoleError {
	if err == nil {
		return nil
	}
	var ce *ConsoleError
	if stderrors.As(err, &ce) {
		return ce
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return New(s.code).Wrap(err)
		}
	}
	return New(fallback).Wrap(err)
}
