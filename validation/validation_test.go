package validation

import (
	"strings"
	"testing"

	"github.com/mbrinkhoff/pontos/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "pontos")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorName(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"greenbone", false},
		{"gvm-libs", false},
		{"python_gvm.v2", false},
		{"", true},
		{"foo/bar", true},
		{"has space", true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			v := New().Name("owner", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("Name(%q) errors = %v, wantErr %v", tc.value, v.Errors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorPositive(t *testing.T) {
	if New().Positive("id", 1).HasErrors() {
		t.Error("expected no error for positive id")
	}
	if !New().Positive("id", 0).HasErrors() {
		t.Error("expected error for zero id")
	}
}

func TestValidatorMaxLength(t *testing.T) {
	v := New()
	v.MaxLength("desc", "short", 10)
	if v.HasErrors() {
		t.Error("expected no error for string within max length")
	}

	v2 := New()
	v2.MaxLength("desc", "this is too long", 5)
	if !v2.HasErrors() {
		t.Error("expected error for string exceeding max length")
	}
}

func TestValidatorPattern(t *testing.T) {
	v := New()
	v.Pattern("created", ">=2024-01-01", `^[<>=.\d-]+$`)
	if v.HasErrors() {
		t.Error("expected no error for matching pattern")
	}

	v2 := New()
	v2.Pattern("created", "yesterday", `^[<>=.\d-]+$`)
	if !v2.HasErrors() {
		t.Error("expected error for non-matching pattern")
	}

	// Empty value should be skipped
	v3 := New()
	v3.Pattern("created", "", `^[<>=.\d-]+$`)
	if v3.HasErrors() {
		t.Error("expected no error for empty value with pattern")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("role", "member", []string{"member", "maintainer"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("role", "owner", []string{"member", "maintainer"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	v3 := New()
	v3.OneOf("role", "", []string{"member"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("org", "greenbone")
	if appErr := v.Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("org", "")
	v2.Required("slug", "")
	appErr := v2.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if appErr.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr.Message, "org") || !strings.Contains(appErr.Message, "slug") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("org", "greenbone").Name("slug", "devops").Positive("id", 7)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Errorf("expected no errors for valid chained validation, got %v", v.Errors())
	}
}

type repoInput struct {
	Owner string `json:"owner" validate:"required,ghname"`
	Name  string `json:"name" validate:"required,ghname"`
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate(repoInput{Owner: "foo", Name: "bar"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(repoInput{Owner: "", Name: "bad name"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "owner: is required") {
		t.Errorf("expected error to mention owner, got %q", errStr)
	}
	if !strings.Contains(errStr, "name: must contain only") {
		t.Errorf("expected error to mention name format, got %q", errStr)
	}
}

func TestStructValidateOneOf(t *testing.T) {
	type Input struct {
		Format string `json:"format" validate:"omitempty,oneof=json console"`
	}

	if err := Validate(Input{Format: "json"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := Validate(Input{}); err != nil {
		t.Errorf("expected empty to be skipped, got %v", err)
	}
	if err := Validate(Input{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("name", "value"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Owner":             "owner",
		"AppID":             "app_id",
		"AppPrivateKeyFile": "app_private_key_file",
		"HTMLURL":           "htmlurl",
		"api_url":           "api_url",
	}
	for in, want := range tests {
		if got := snakeCase(in); got != want {
			t.Errorf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStructValidateReportsFields(t *testing.T) {
	type config struct {
		Timeout int64 `json:"timeout" validate:"gt=0"`
		AppID   string `validate:"required"`
	}
	err := Validate(config{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected *AppError, got %v", err)
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", appErr.Details)
	}
	if fields[0].Field != "timeout" || fields[0].Message != "must be greater than 0" {
		t.Errorf("unexpected first field error %+v", fields[0])
	}
	if fields[1].Field != "app_id" {
		t.Errorf("expected untagged field reported as app_id, got %q", fields[1].Field)
	}
}

func TestPatternInvalidExpression(t *testing.T) {
	v := New().Pattern("created", "2024-01-01", "([")
	if !v.HasErrors() {
		t.Error("expected an invalid pattern to fail the check")
	}
	// Cached patterns are reused across validators.
	for range 2 {
		if New().Pattern("created", ">=2024-01-01", `^[<>=]*\d{4}-\d{2}-\d{2}$`).HasErrors() {
			t.Error("expected date filter to match")
		}
	}
}
