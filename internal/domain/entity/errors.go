package entity

import "fmt"

// ValidationError reports a single field that violated a domain invariant.
// The Field name matches the JSON name used on the wire so the HTTP layer
// can return it verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
