package types

import (
	"errors"
	"fmt"
)

// Error type labels surfaced in logs and the global error handler.
const (
	TypeValidation = "validation"
	TypeNotFound   = "not_found"
	TypeConflict   = "conflict"
	TypeInternal   = "internal"
)

// CustomError carries an HTTP status code alongside the message so handlers
// and the global error handler can map failures without string matching.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError builds a 400 error for malformed or incompatible input.
func NewValidationError(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: TypeValidation}
}

// NewNotFoundError builds a 404 error for an absent referenced id.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: TypeNotFound}
}

// NewConflictError builds a 409 error for constraint violations on
// administrative mutations.
func NewConflictError(message string) *CustomError {
	return &CustomError{Code: 409, Message: message, Type: TypeConflict}
}

// AsCustomError unwraps err into a *CustomError if possible.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
