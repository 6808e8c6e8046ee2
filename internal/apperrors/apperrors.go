package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

type ErrorCode string

const (
	CodeUnauthenticated      ErrorCode = "UNAUTHENTICATED"
	CodeForbidden            ErrorCode = "FORBIDDEN"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	CodeInvalidTransition    ErrorCode = "INVALID_STATUS_TRANSITION"
	CodeInvalidOrExpiredCode ErrorCode = "INVALID_OR_EXPIRED_CODE"
	CodeNotImplemented       ErrorCode = "NOT_IMPLEMENTED"
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error type every handler understands. HTTPCode is never
// serialized; the middleware uses it to pick the response status.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
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

// Is matches on code and message so the predefined errors still compare equal
// after WithDetails/WithError cloned them.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Predefined errors
var (
	// Authentication
	ErrMissingToken       = New(CodeUnauthenticated, "Missing token", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeUnauthenticated, "Invalid token", http.StatusUnauthorized)
	ErrInvalidCredentials = New(CodeUnauthenticated, "Invalid email or password", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)

	// Resources
	ErrUserNotFound         = New(CodeNotFound, "User not found", http.StatusNotFound)
	ErrProfileNotFound      = New(CodeNotFound, "Profile not found", http.StatusNotFound)
	ErrJobNotFound          = New(CodeNotFound, "Job not found", http.StatusNotFound)
	ErrApplicationNotFound  = New(CodeNotFound, "Application not found", http.StatusNotFound)
	ErrContractNotFound     = New(CodeNotFound, "Contract not found", http.StatusNotFound)
	ErrMilestoneNotFound    = New(CodeNotFound, "Milestone not found", http.StatusNotFound)
	ErrConversationNotFound = New(CodeNotFound, "Conversation not found", http.StatusNotFound)
	ErrConfigKeyNotFound    = New(CodeNotFound, "Config key not found", http.StatusNotFound)

	// Conflicts
	ErrEmailTaken           = New(CodeConflict, "Email already registered", http.StatusConflict)
	ErrDuplicateApplication = New(CodeConflict, "Application already submitted for this job", http.StatusConflict)
	ErrDuplicateReview      = New(CodeConflict, "Review already submitted for this contract", http.StatusConflict)
	ErrDuplicateKey         = New(CodeConflict, "Resource already exists", http.StatusConflict)

	// Workflow
	ErrInvalidTransition = New(CodeInvalidTransition, "Status transition not allowed", http.StatusConflict)
	ErrJobNotOpen        = New(CodeConflict, "Job is not open for applications", http.StatusConflict)

	// Verification
	ErrInvalidOrExpiredCode = New(CodeInvalidOrExpiredCode, "Invalid or expired verification code", http.StatusBadRequest)

	// Escrow is modeled but money movement is unavailable; callers must treat
	// the whole subsystem as unimplemented.
	ErrEscrowUnavailable = New(CodeNotImplemented, "Escrow operations are not implemented", http.StatusNotImplemented)

	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
	ErrInternal         = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func BadRequest(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternal, "Internal server error", http.StatusInternalServerError)
}

// FromMongo translates store-level failures into the taxonomy so a duplicate
// key never leaks as an internal error.
func FromMongo(err error, conflict *AppError, notFound *AppError) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		if conflict != nil {
			return conflict.WithError(err)
		}
		return ErrDuplicateKey.WithError(err)
	case stderrors.Is(err, mongo.ErrNoDocuments):
		if notFound != nil {
			return notFound
		}
		return NotFound("Resource")
	default:
		return Internal(err)
	}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
