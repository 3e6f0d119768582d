package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/polyglot/errors"
)

type endpoint struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Host    string `mapstructure:"host" validate:"omitempty,hostname"`
}

type settings struct {
	Language string   `mapstructure:"language" validate:"required,bcp47_language_tag"`
	Mode     string   `mapstructure:"mode" validate:"oneof=text speech"`
	Endpoint endpoint `mapstructure:"endpoint"`
}

func TestValidate_Valid(t *testing.T) {
	s := settings{
		Language: "hi",
		Mode:     "text",
		Endpoint: endpoint{BaseURL: "https://example.com", Host: "example.com"},
	}
	if err := Validate(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsNestedConfigKeys(t *testing.T) {
	s := settings{Language: "hi", Mode: "text"}

	err := Validate(s)
	if err == nil {
		t.Fatal("expected error for missing base_url")
	}
	if !strings.Contains(err.Error(), "endpoint.base_url: is required") {
		t.Errorf("expected nested key in message, got %q", err.Error())
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT code, got %v", err)
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	s := settings{Language: "not a tag!", Mode: "video", Endpoint: endpoint{BaseURL: "::"}}

	err := Validate(s)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field list in details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(fields), fields)
	}
}

func TestFieldErrors(t *testing.T) {
	var fe FieldErrors
	if err := fe.Err(); err != nil {
		t.Errorf("empty FieldErrors should be nil, got %v", err)
	}

	fe.Add("session.debounce", "must be greater than 0")
	fe.Add("translator.api_key", "is required")
	err := fe.Err()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	want := "session.debounce: must be greater than 0; translator.api_key: is required"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("Err() = %q, want it to contain %q", err.Error(), want)
	}
}

type timing struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
	Format   string        `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

func TestValidate_Messages(t *testing.T) {
	err := Validate(timing{Format: "xml"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"debounce: must be greater than 0", "format: must be one of: json console"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q missing from %q", want, err.Error())
		}
	}
	if err := Validate(timing{Debounce: time.Millisecond}); err != nil {
		t.Errorf("empty oneof should pass, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("ApiKey"); got != "api_key" {
		t.Errorf("expected api_key, got %q", got)
	}
}
