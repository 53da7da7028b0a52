package meta

import "fmt"

// MismatchError reports two engines that disagree on one input.
type MismatchError struct {
	Pattern   string
	Input     string
	Reference Result // Pike VM
	Other     Result
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("revm: engines disagree on %q for pattern %q: %s: %s, %s: %s",
		e.Input, e.Pattern,
		e.Reference.Strategy, e.Reference,
		e.Other.Strategy, e.Other)
}
