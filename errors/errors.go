package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates the failure is transient.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError with retryable detection from the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: IsRetryableCode(code)}
}

// --- Constructors ---

// NetworkError reports a request to service that could not complete.
func NetworkError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeNetwork, Message: fmt.Sprintf("Could not reach the %s service.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// MalformedResponse reports a response from service whose shape was unexpected.
func MalformedResponse(service, reason string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedResponse, Message: fmt.Sprintf("Unexpected response from %s: %s", service, reason),
		Details: map[string]any{"service": service},
	}
}

// ExternalServiceError reports a failure signalled by a remote service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// NoVoiceAvailable reports that no voice can speak the given language.
func NoVoiceAvailable(language string) *AppError {
	return &AppError{
		Code: ErrCodeNoVoice, Message: fmt.Sprintf("No voice available for %q.", language),
		Details: map[string]any{"language": language},
	}
}

// SpeechUnavailable reports a speech capability that was never configured.
func SpeechUnavailable(capability string) *AppError {
	return &AppError{
		Code: ErrCodeSpeechUnavailable, Message: fmt.Sprintf("%s is not configured.", capability),
		Details: map[string]any{"capability": capability},
	}
}

// InvalidLanguage reports a language code that is not in the catalog.
func InvalidLanguage(code string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidLanguage, Message: fmt.Sprintf("Unknown language code %q.", code),
		Details: map[string]any{"code": code},
	}
}

// InvalidInput reports invalid input for field.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason), Details: details,
	}
}

// Validation reports a validation failure with a prepared message.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause,
	}
}

// --- Inspection ---

// AsAppError extracts an AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsNetwork reports whether err is a network failure.
func IsNetwork(err error) bool { return HasCode(err, ErrCodeNetwork) }

// IsMalformedResponse reports whether err is a malformed-response failure.
func IsMalformedResponse(err error) bool { return HasCode(err, ErrCodeMalformedResponse) }

// IsNoVoice reports whether err signals a missing voice.
func IsNoVoice(err error) bool { return HasCode(err, ErrCodeNoVoice) }

// IsInvalidLanguage reports whether err signals an unknown language code.
func IsInvalidLanguage(err error) bool { return HasCode(err, ErrCodeInvalidLanguage) }

// IsRetryable reports whether err is an AppError marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}
