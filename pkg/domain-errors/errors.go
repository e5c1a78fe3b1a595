// Package domainerrors defines the coded error type shared by all grantflow
// services. Services create these at the point a rule is violated; the HTTP
// layer maps codes to status lines without inspecting message text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure. Codes are stable API: clients branch on
// them, so renaming one is a breaking change.
type Code string

const (
	// Generic codes.
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_error"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal_error"

	// Stage machine integrity.
	CodeInvalidStage    Code = "invalid_stage"
	CodeAlreadyTerminal Code = "already_terminal"
	CodeStaleStage      Code = "stale_stage"

	// Remark validation and authorization.
	CodeInvalidRemark  Code = "invalid_remark"
	CodeRemarkTooShort Code = "remark_too_short"
	CodeNotAssignee    Code = "not_assignee"

	// Checklist gate integrity.
	CodeIncompleteChecklist   Code = "incomplete_checklist"
	CodeChecklistLocked       Code = "checklist_locked"
	CodeInvalidChecklistState Code = "invalid_checklist_state"
	CodeComplianceNotApproved Code = "compliance_not_approved"
	CodeStaleChecklistStatus  Code = "stale_checklist_status"
	CodeInvalidLinkDomain     Code = "invalid_link_domain"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the message carried by err, or an empty string.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// HTTPStatus maps a code to an HTTP status line. Unknown codes map to 500 so a
// missed case fails closed rather than leaking a success status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidInput, CodeInvalidStage,
		CodeInvalidRemark, CodeRemarkTooShort, CodeInvalidLinkDomain:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotAssignee:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeAlreadyTerminal, CodeStaleStage, CodeStaleChecklistStatus,
		CodeChecklistLocked, CodeInvalidChecklistState, CodeIncompleteChecklist,
		CodeComplianceNotApproved:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
