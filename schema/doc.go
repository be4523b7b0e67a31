// Package schema decodes JSON documents into typed records and rejects
// documents that do not match the record's shape.
//
// A field is required unless its json tag carries omitempty. Required keys
// that are missing or null fail decoding, as do unknown enumeration values
// and wrong primitive types. Unknown keys are ignored. Decoding is
// all-or-nothing: on error the zero value is returned.
//
//	type Team struct {
//	    ID      int64       `json:"id"`
//	    Privacy TeamPrivacy `json:"privacy"`
//	    Parent  *TeamRef    `json:"parent,omitempty"`
//	}
//	team, err := schema.Decode[Team](body)
//
// Enumerations are string types implementing Enum.
package schema
