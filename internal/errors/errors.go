// Package errors provides structured error types for rad-report.
package errors

import (
	stderrors "errors"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for rad-report.
const (
	CodeValidation       Code = "VALIDATION_FAILED"
	CodeBadRequest       Code = "BAD_REQUEST"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeReportIncomplete Code = "REPORT_INCOMPLETE"
	CodeStorage          Code = "STORAGE_FAILURE"
	CodeMailer           Code = "MAILER_UNAVAILABLE"
)

// Category groups error codes for HTTP status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBadRequest
	CategoryUnauthorized
	CategoryNotFound
	CategoryConflict
	CategoryInternal
	CategoryUnavailable
)

var codeCategories = map[Code]Category{
	CodeValidation:       CategoryBadRequest,
	CodeBadRequest:       CategoryBadRequest,
	CodeUnauthorized:     CategoryUnauthorized,
	CodeNotFound:         CategoryNotFound,
	CodeReportIncomplete: CategoryConflict,
	CodeStorage:          CategoryInternal,
	CodeMailer:           CategoryUnavailable,
}

// HTTPStatus returns the HTTP status code for a category.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryBadRequest:
		return 400
	case CategoryUnauthorized:
		return 401
	case CategoryNotFound:
		return 404
	case CategoryConflict:
		return 409
	case CategoryUnavailable:
		return 503
	default:
		return 500
	}
}

// Issue is one field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the structured error type for rad-report.
type Error struct {
	Code    Code    `json:"code"`
	Message string  `json:"message"`
	Issues  []Issue `json:"errors,omitempty"`
	Cause   error   `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for i, is := range e.Issues {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		if is.Path != "" {
			b.WriteString(is.Path)
			b.WriteString(": ")
		}
		b.WriteString(is.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category for HTTP status mapping.
func (e *Error) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Category().HTTPStatus()
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Issues:  e.Issues,
		Cause:   err,
	}
}

// --- Error constructors ---

// Validation returns an error listing field-level issues.
func Validation(message string, issues []Issue) *Error {
	return &Error{Code: CodeValidation, Message: message, Issues: issues}
}

// BadRequest returns an error for a request that could not be interpreted.
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// Unauthorized returns an error for a request missing the admin capability.
func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Message: "Admin session required"}
}

// NotFound returns an error for a missing schedule entry.
func NotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

// ReportIncomplete returns an error for an export attempted on a draft whose
// alarm logs are not all dated and attributed.
func ReportIncomplete() *Error {
	return &Error{
		Code:    CodeReportIncomplete,
		Message: "Every alarm log needs a date and a known operator before export",
	}
}

// StorageRead wraps a failure to read the schedule record.
func StorageRead(cause error) *Error {
	return &Error{Code: CodeStorage, Message: "Failed to read schedule data.", Cause: cause}
}

// StorageWrite wraps a failure to persist the schedule record.
func StorageWrite(cause error) *Error {
	return &Error{Code: CodeStorage, Message: "Failed to write schedule data.", Cause: cause}
}

// MailerUnavailable wraps a failure to hand the report to the mail server.
func MailerUnavailable(cause error) *Error {
	return &Error{Code: CodeMailer, Message: "Report email could not be sent", Cause: cause}
}

// HTTPStatus returns the status for any error: the category status for an
// *Error found in the chain, 500 otherwise.
func HTTPStatus(err error) int {
	if e, ok := As(err); ok {
		return e.HTTPStatus()
	}
	return 500
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
