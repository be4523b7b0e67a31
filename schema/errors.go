package schema

import (
	"fmt"
)

// Error reports a document that does not match its record schema.
type Error struct {
	// Schema is the Go type being decoded, e.g. "github.Artifact".
	Schema string
	// Field is the dotted path of the offending field, with slice indexes
	// ("artifacts[3].workflow_run.id"). Empty for document-level failures.
	Field string
	// Reason describes the mismatch.
	Reason string
	// Source is the document being decoded, kept for diagnostics.
	Source []byte
	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: %s: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("schema: %s: field %q: %s", e.Schema, e.Field, e.Reason)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
