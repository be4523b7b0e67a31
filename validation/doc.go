// Package validation provides input validation for pontos operations.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are reported as
// *errors.AppError with the INVALID_INPUT code.
//
// # Struct Tag Validation
//
//	type Repo struct {
//	    Owner string `json:"owner" validate:"required,ghname"`
//	    Name  string `json:"name" validate:"required,ghname"`
//	}
//	err := validation.Validate(repo)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("org", org).OneOf("role", role, []string{"member", "maintainer"})
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
