package wizard

import (
	"errors"

	"go.uber.org/zap"
)

// Result is returned by an accepted submission.
type Result struct {
	Message string
	// Values holds every tracked value except the confirmation checkbox.
	Values map[string]string
	// Entries lists the live entry indices per group.
	Entries map[string][]int
}

// Submit runs the submission gate. It only applies on the last step. An
// unticked confirmation returns a *GateError wrapping ErrConfirmationMissing
// with the blocking message. A ticked confirmation is accepted whatever the
// earlier steps currently hold; completeness of the payload is checked on
// delivery.
func (c *Controller) Submit() (Result, error) {
	if c.state.current != c.state.total {
		return Result{}, ErrNotAtFinalStep
	}

	if !c.Confirmed() {
		c.recorder.Submission(SubmissionConfirmationMissing)
		c.logger.Info("submission blocked", zap.String("reason", "confirmation missing"))
		return Result{}, &GateError{
			Message: c.def.Messages.ConfirmationMissing,
			Err:     ErrConfirmationMissing,
		}
	}

	c.state.submitted = true
	c.recorder.Submission(SubmissionAccepted)
	c.logger.Info("submission accepted")

	values := c.state.Values()
	delete(values, c.def.Confirmation.Name)
	entries := make(map[string][]int, len(c.def.Groups))
	for _, group := range c.def.Groups {
		entries[group.Name] = c.state.Entries(group.Name)
	}
	return Result{
		Message: c.def.Messages.SubmitSuccess,
		Values:  values,
		Entries: entries,
	}, nil
}

// IsConfirmationMissing reports whether err came from an unticked
// confirmation.
func IsConfirmationMissing(err error) bool {
	return errors.Is(err, ErrConfirmationMissing)
}
