package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/mbrinkhoff/pontos/errors"
)

// Validator runs chained checks on call arguments and collects the
// failures:
//
//	err := validation.New().Name("owner", owner).Positive("artifact_id", id).Validate()
type Validator struct {
	errs []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errs) > 0 }

// Errors returns the failures in check order.
func (v *Validator) Errors() []FieldError { return v.errs }

// Validate returns nil or an INVALID_INPUT error listing every failure.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return newError(v.errs)
}

// Required fails on empty or blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// Name requires a valid GitHub owner, repository, team or login name.
func (v *Validator) Name(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.Custom(false, field, "is required")
	}
	return v.Custom(ghNamePattern.MatchString(value), field, ghNameMessage)
}

// Positive requires an id greater than zero.
func (v *Validator) Positive(field string, value int64) *Validator {
	return v.Custom(value > 0, field, "must be greater than 0")
}

// MaxLength limits a value to maxLen bytes.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	return v.Custom(len(value) <= maxLen, field, fmt.Sprintf("must be %d characters or less", maxLen))
}

var patterns sync.Map // string -> *regexp.Regexp

// Pattern requires a non-empty value to match the regular expression.
// Empty values pass.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	re, ok := patterns.Load(pattern)
	if !ok {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return v.Custom(false, field, "does not match required format")
		}
		re, _ = patterns.LoadOrStore(pattern, compiled)
	}
	return v.Custom(re.(*regexp.Regexp).MatchString(value), field, "does not match required format")
}

// OneOf requires a non-empty value to be one of allowed. Empty values pass.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	return v.Custom(slices.Contains(allowed, value), field, "must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message for field unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required argument.
func Required(field, value string) error {
	if err := New().Required(field, value).Validate(); err != nil {
		return err
	}
	return nil
}
