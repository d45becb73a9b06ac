package model

import "fmt"

// ValidationError reports a field value outside its allowed range.  It names
// the entity and field so handlers can surface a message the user can act on.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Reason)
}
