package persist

import "fmt"

// DeserializationError reports malformed persisted metadata or image data.
// The zero document is never partially populated when one is returned.
type DeserializationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("persist: deserialization failed: %s", e.Reason)
	}
	return fmt.Sprintf("persist: deserialization failed: field %q: %s", e.Field, e.Reason)
}

func deserr(field, format string, args ...any) *DeserializationError {
	return &DeserializationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
