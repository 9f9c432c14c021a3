package apperr

import "net/http"

// Kind classifies an error so callers can tell "not allowed" from
// "not found" from "already done" without parsing messages.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindAuthorization   Kind = "AUTHORIZATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindPersistence     Kind = "PERSISTENCE"
)

// AppError carries a kind, an HTTP status and a caller-facing message.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Validation(msg string) *AppError {
	return New(KindValidation, http.StatusBadRequest, msg)
}

func Unauthenticated(msg string) *AppError {
	return New(KindUnauthenticated, http.StatusUnauthorized, msg)
}

func Authorization(msg string) *AppError {
	return New(KindAuthorization, http.StatusForbidden, msg)
}

func NotFound(msg string) *AppError {
	return New(KindNotFound, http.StatusNotFound, msg)
}

func Conflict(msg string) *AppError {
	return New(KindConflict, http.StatusConflict, msg)
}

func Persistence(msg string) *AppError {
	return New(KindPersistence, http.StatusInternalServerError, msg)
}

// AsAppError unwraps err into an *AppError, or wraps it as a
// persistence failure when it is anything else.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Persistence("Internal server error")
}
