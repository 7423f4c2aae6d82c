package apperror

import "net/http"

// Kind is a stable, machine-readable error category. Callers branch on Kind,
// never on message text.
type Kind string

const (
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
	KindInvalidTransition    Kind = "invalid_transition"
	KindDuplicateIdentity    Kind = "duplicate_identity"
	KindDuplicateGrant       Kind = "duplicate_grant"
	KindDuplicateApplication Kind = "duplicate_application"
	KindRoleNotApproved      Kind = "role_not_approved"
	KindNotFound             Kind = "not_found"
	KindValidationFailed     Kind = "validation_failed"
	KindInternal             Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(KindValidationFailed, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func InvalidTransition(message string) *AppError {
	return New(KindInvalidTransition, http.StatusConflict, message, nil)
}

func Duplicate(kind Kind, message string) *AppError {
	return New(kind, http.StatusConflict, message, nil)
}

func RoleNotApproved(message string) *AppError {
	return New(KindRoleNotApproved, http.StatusBadRequest, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}
