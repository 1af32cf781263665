package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidPhone     ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked       ErrorCode = "TOKEN_REVOKED"
	ErrCodeSessionNotActive   ErrorCode = "SESSION_NOT_ACTIVE"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"

	ErrCodeCompanyNotFound    ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeDuplicateAdmin     ErrorCode = "DUPLICATE_ADMIN"
	ErrCodeEmployeeNotFound   ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeCustomerNotFound   ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeLocalityNotFound   ErrorCode = "LOCALITY_NOT_FOUND"
	ErrCodeProductNotFound    ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      ErrorCode = "ORDER_NOT_FOUND"
	ErrCodePaymentNotFound    ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodeAttendanceNotFound ErrorCode = "ATTENDANCE_NOT_FOUND"
	ErrCodeAlreadyCheckedIn   ErrorCode = "ALREADY_CHECKED_IN"
	ErrCodeNotCheckedIn       ErrorCode = "NOT_CHECKED_IN"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// Not-found sentinels collapse "doesn't exist" and "belongs to another tenant"
// into the same response so cross-tenant existence never leaks.
var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrTokenRevoked       = NewUnauthorizedError("Token is invalid or blacklisted", ErrCodeTokenRevoked)
	ErrSessionNotActive   = NewUnauthorizedError("Token is invalid or expired", ErrCodeSessionNotActive)
	ErrInsufficientRole   = NewForbiddenError("Insufficient permissions", ErrCodeInsufficientRole)

	ErrCompanyNotFound    = NewNotFoundError("Company not found", ErrCodeCompanyNotFound)
	ErrDuplicateAdmin     = NewConflictError("Admin username or email already exists", ErrCodeDuplicateAdmin)
	ErrEmployeeNotFound   = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrCustomerNotFound   = NewNotFoundError("Customer not found", ErrCodeCustomerNotFound)
	ErrLocalityNotFound   = NewNotFoundError("Locality not found", ErrCodeLocalityNotFound)
	ErrProductNotFound    = NewNotFoundError("Product not found", ErrCodeProductNotFound)
	ErrOrderNotFound      = NewNotFoundError("Order not found", ErrCodeOrderNotFound)
	ErrPaymentNotFound    = NewNotFoundError("Payment not found", ErrCodePaymentNotFound)
	ErrAttendanceNotFound = NewNotFoundError("Attendance record not found", ErrCodeAttendanceNotFound)
	ErrAlreadyCheckedIn   = NewValidationError("Already checked in today", ErrCodeAlreadyCheckedIn)
	ErrNotCheckedIn       = NewValidationError("No check-in record found for today", ErrCodeNotCheckedIn)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
