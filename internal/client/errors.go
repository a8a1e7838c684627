// File: internal/client/errors.go
package client

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeNetwork   ErrorType = "NETWORK"
	ErrTypeHTTP      ErrorType = "HTTP"
	ErrTypeDecode    ErrorType = "DECODE"
	ErrTypeAuth      ErrorType = "AUTH"
	ErrTypeRateLimit ErrorType = "RATE_LIMIT"
)

// APIError is a transport level failure talking to the platform API.
type APIError struct {
	Type      ErrorType
	Code      int
	Operation string
	Message   string
	Cause     error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	if e.Code != 0 {
		return fmt.Sprintf("API %s error in %s: %s (status %d)", e.Type, e.Operation, e.Message, e.Code)
	}
	return fmt.Sprintf("API %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// Retryable reports whether repeating the call may succeed.
func (e *APIError) Retryable() bool {
	switch e.Type {
	case ErrTypeNetwork:
		return true
	case ErrTypeHTTP:
		return e.Code >= 500
	}
	return false
}

// IsType reports whether err is an APIError of the given type.
func IsType(err error, t ErrorType) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == t
}
