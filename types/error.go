package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the framework.
type ErrorCode string

// Registry lookup error codes
const (
	ErrUnregistered         ErrorCode = "UNREGISTERED_MODALITY"
	ErrSourceHandlerMissing ErrorCode = "SOURCE_HANDLER_MISSING"
	ErrTargetHandlerMissing ErrorCode = "TARGET_HANDLER_MISSING"
)

// Value construction error codes
const (
	ErrValidation ErrorCode = "VALIDATION_ERROR"
)

// Side tells which end of a conversion an error refers to.
type Side string

const (
	SideNone   Side = ""
	SideSource Side = "source"
	SideTarget Side = "target"
)

// Sentinels usable with errors.Is.
var (
	// ErrUnregisteredModality matches every registry lookup failure.
	ErrUnregisteredModality = errors.New("modality: no handler registered")
	// ErrInvalidValue matches every validation failure.
	ErrInvalidValue = errors.New("modality: invalid value")
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Modality Modality  `json:"modality,omitempty"`
	Side     Side      `json:"side,omitempty"`
	Field    string    `json:"field,omitempty"`
	Cause    error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the package sentinels by error family.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnregisteredModality:
		return e.Code.IsLookup()
	case ErrInvalidValue:
		return e.Code == ErrValidation
	}
	return false
}

// IsLookup reports whether c is one of the registry lookup codes.
func (c ErrorCode) IsLookup() bool {
	switch c {
	case ErrUnregistered, ErrSourceHandlerMissing, ErrTargetHandlerMissing:
		return true
	}
	return false
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithModality records the offending modality.
func (e *Error) WithModality(m Modality) *Error {
	e.Modality = m
	return e
}

// WithSide records whether the source or target side failed.
func (e *Error) WithSide(side Side) *Error {
	e.Side = side
	return e
}

// WithField records the offending field name.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// NewUnregisteredError 构造路由时的注册表查找失败错误
func NewUnregisteredError(m Modality) *Error {
	return NewError(ErrUnregistered,
		fmt.Sprintf("no handler registered for modality %q", string(m))).
		WithModality(m)
}

// NewHandlerMissingError 构造转换时源端或目标端的查找失败错误
func NewHandlerMissingError(side Side, m Modality) *Error {
	code := ErrSourceHandlerMissing
	if side == SideTarget {
		code = ErrTargetHandlerMissing
	}
	return NewError(code,
		fmt.Sprintf("no handler registered for %s modality %q", side, string(m))).
		WithModality(m).
		WithSide(side)
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsUnregistered checks if an error is a registry lookup failure.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredModality)
}

// IsValidation checks if an error is a value construction failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}
