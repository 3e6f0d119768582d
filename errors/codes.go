package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Translation errors
const (
	// ErrCodeNetwork indicates the request to a remote service could not complete.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeMalformedResponse indicates the remote service answered with an unexpected shape.
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	// ErrCodeExternalService indicates a remote service reported a failure.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Speech errors
const (
	// ErrCodeNoVoice indicates no synthesis voice matches the requested language.
	ErrCodeNoVoice ErrorCode = "NO_VOICE_AVAILABLE"
	// ErrCodeSpeechUnavailable indicates no speech provider is configured.
	ErrCodeSpeechUnavailable ErrorCode = "SPEECH_UNAVAILABLE"
)

// Validation errors
const (
	// ErrCodeInvalidLanguage indicates a language code missing from the catalog.
	ErrCodeInvalidLanguage ErrorCode = "INVALID_LANGUAGE"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNetwork:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode returns true if the error code indicates a transient failure.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
