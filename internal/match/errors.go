package match

import "fmt"

// InputError reports invalid caller input. It is the only error class that
// aborts a matching call; everything downstream degrades instead.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
