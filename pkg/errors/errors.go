/*
Package errors defines the application error type and its error codes.

Domain packages raise sentinel-backed errors; FromDomainError classifies
them into AppError codes with errors.Is(). HTTP status mapping lives in the
API layer only.
*/
package errors

import (
	"errors"
	"fmt"

	"marketplace/domain/favorite"
	"marketplace/domain/item"
	"marketplace/domain/order"
	"marketplace/domain/shared"
)

// ErrorCode classifies a failure so a client can decide whether to retry,
// re-authenticate, or surface a terminal message.
type ErrorCode string

const (
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeTooManyRequest  ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"

	CodeItemNotFound      ErrorCode = "ITEM_NOT_FOUND"
	CodeOrderNotFound     ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeInvalidItemState  ErrorCode = "INVALID_ITEM_STATE"
	CodeSelfPurchase      ErrorCode = "SELF_PURCHASE"
)

// AppError carries a code, a user-visible message, and an optional wrapped
// cause that stays out of responses.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a cause to an AppError.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func Unauthenticated(message string) *AppError { return New(CodeUnauthenticated, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError lifts a domain error into an AppError, preserving the
// domain message for client-visible kinds and hiding internals otherwise.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, item.ErrItemNotFound):
		return Wrap(err, CodeItemNotFound, err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		return Wrap(err, CodeOrderNotFound, err.Error())
	case errors.Is(err, favorite.ErrFavoriteNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())

	case errors.Is(err, shared.ErrUnauthorized):
		return Wrap(err, CodeForbidden, err.Error())

	case errors.Is(err, shared.ErrInvalidTransition):
		return Wrap(err, CodeInvalidTransition, err.Error())
	case errors.Is(err, order.ErrInvalidItemState):
		return Wrap(err, CodeInvalidItemState, err.Error())
	case errors.Is(err, order.ErrSelfPurchase):
		return Wrap(err, CodeSelfPurchase, err.Error())

	case errors.Is(err, shared.ErrValidation):
		return Wrap(err, CodeValidation, err.Error())

	case errors.Is(err, item.ErrConcurrentModification),
		errors.Is(err, order.ErrConcurrentModification),
		errors.Is(err, order.ErrItemNoLongerAvailable),
		errors.Is(err, item.ErrOpenOrderExists),
		errors.Is(err, favorite.ErrAlreadyFavorited),
		errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	}

	return Wrap(err, CodeInternal, "internal server error")
}
