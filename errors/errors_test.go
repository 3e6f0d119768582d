package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew_RetryableFromCode(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeNetwork, true},
		{ErrCodeExternalService, true},
		{ErrCodeMalformedResponse, false},
		{ErrCodeInvalidLanguage, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg")
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, tc.code)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NetworkError("translator", cause)

	if err.Code != ErrCodeNetwork {
		t.Errorf("expected NETWORK_ERROR, got %s", err.Code)
	}
	if !err.Retryable {
		t.Error("network errors should be retryable")
	}
	if err.Details["service"] != "translator" {
		t.Errorf("expected service=translator, got %v", err.Details["service"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestMalformedResponse(t *testing.T) {
	err := MalformedResponse("translator", "missing translations")
	if err.Code != ErrCodeMalformedResponse {
		t.Errorf("expected MALFORMED_RESPONSE, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("malformed responses should not be retryable")
	}
	if !strings.Contains(err.Message, "missing translations") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestNoVoiceAvailable(t *testing.T) {
	err := NoVoiceAvailable("hi")
	if !IsNoVoice(err) {
		t.Error("expected IsNoVoice to be true")
	}
	if err.Details["language"] != "hi" {
		t.Errorf("expected language=hi, got %v", err.Details["language"])
	}
}

func TestInvalidInput_EmptyField(t *testing.T) {
	err := InvalidInput("", "bad")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no field key when field is empty")
	}
}

func TestHelpers_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("translate: %w", NetworkError("translator", nil))

	if !IsNetwork(wrapped) {
		t.Error("expected IsNetwork through wrapping")
	}
	if IsMalformedResponse(wrapped) {
		t.Error("did not expect IsMalformedResponse")
	}
	if !IsRetryable(wrapped) {
		t.Error("expected IsRetryable through wrapping")
	}
	if IsRetryable(stderrors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
	appErr, ok := AsAppError(fmt.Errorf("ctx: %w", InvalidLanguage("xx")))
	if !ok {
		t.Fatal("expected conversion through wrapping")
	}
	if appErr.Code != ErrCodeInvalidLanguage {
		t.Errorf("expected INVALID_LANGUAGE, got %s", appErr.Code)
	}
}

func TestWithDetailAndCause(t *testing.T) {
	cause := stderrors.New("root")
	err := Internal(nil).WithCause(cause).WithDetail("op", "load")
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if err.Details["op"] != "load" {
		t.Errorf("expected op=load, got %v", err.Details["op"])
	}
}
