package ontology

import "fmt"

// ValidationError reports a required field that is missing or a field whose
// value falls outside its closed enumeration. It is returned at entity
// construction/decoding time and is never silently repaired.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ontology: %s.%s: %s", e.Entity, e.Field, e.Reason)
}

func requiredErr(entity, field string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: "required field is missing"}
}

func enumErr(entity, field, value string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: fmt.Sprintf("value %q is not in the closed enumeration", value)}
}

// MalformedTimestampError reports an input timestamp that is not parseable as
// ISO-8601 after trailing-Z normalization. The connector performs no recovery.
type MalformedTimestampError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("ontology: malformed timestamp %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }
