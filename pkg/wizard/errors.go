package wizard

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrConfirmationMissing signals the final confirmation checkbox was not
	// ticked at submit time.
	ErrConfirmationMissing = errors.New("wizard: confirmation missing")
	// ErrNotAtFinalStep is returned when submission is attempted before the
	// last step is active.
	ErrNotAtFinalStep = errors.New("wizard: submission is only accepted at the final step")
	// ErrUnknownField is returned for keys that name no tracked field.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrUnknownGroup is returned for group names absent from the definition.
	ErrUnknownGroup = errors.New("wizard: unknown group")
	// ErrUnknownEntry is returned when removing an entry that does not exist.
	ErrUnknownEntry = errors.New("wizard: unknown entry")
	// ErrBaseEntry is returned when removing the static base entry.
	ErrBaseEntry = errors.New("wizard: the base entry cannot be removed")
	// ErrInvalidOption is returned when a radio value is not one of its options.
	ErrInvalidOption = errors.New("wizard: value is not an option of the field")
	// ErrUnknownEvent is returned by HandleEvent for unsupported event types.
	ErrUnknownEvent = errors.New("wizard: unknown event")
)

// ValidationError reports the fields and choice containers that failed the
// validation of a step.
type ValidationError struct {
	Step       int
	Fields     map[string]string
	Containers map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: step %d has %d invalid field(s)", e.Step, len(e.Fields)+len(e.Containers))
}

// Keys lists the invalid field keys, sorted.
func (e *ValidationError) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GateError is returned by the submission gate. Message is the blocking text
// presented to the user.
type GateError struct {
	Message string
	Err     error
}

func (e *GateError) Error() string {
	return e.Err.Error()
}

func (e *GateError) Unwrap() error {
	return e.Err
}
