package wizard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Transition describes the outcome of a navigation attempt.
type Transition struct {
	From  int
	To    int
	Moved bool
}

// Indicator is the projected state of one step marker.
type Indicator struct {
	Number    int
	Title     string
	Active    bool
	Completed bool
}

// Button is the projected state of a navigation control.
type Button struct {
	Visible  bool
	Disabled bool
}

// Navigation holds the previous/next/submit controls.
type Navigation struct {
	Previous Button
	Next     Button
	Submit   Button
}

// Advance validates the active step and, when it passes and the last step is
// not active yet, activates the next one. Arriving at the last step
// recomputes the summary. A failed validation returns a *ValidationError and
// leaves the step unchanged.
func (c *Controller) Advance() (Transition, error) {
	from := c.state.current
	if !c.ValidateStep(from) {
		verr := c.validationError(from)
		c.recorder.ValidationFailed(from)
		c.recorder.Transition(DirectionForward, false)
		c.logger.Debug("advance blocked by validation",
			zap.Int("step", from),
			zap.Strings("fields", verr.Keys()),
		)
		return Transition{From: from, To: from}, verr
	}
	if from >= c.state.total {
		c.recorder.Transition(DirectionForward, false)
		return Transition{From: from, To: from}, nil
	}

	c.state.current++
	if c.state.current == c.state.total {
		c.RefreshSummary()
	}
	c.state.scrollTop = true

	c.recorder.Transition(DirectionForward, true)
	c.logger.Debug("step advanced", zap.Int("from", from), zap.Int("to", c.state.current))
	return Transition{From: from, To: c.state.current, Moved: true}, nil
}

// Retreat activates the previous step. It never validates and is a no-op on
// the first step.
func (c *Controller) Retreat() Transition {
	from := c.state.current
	if from <= 1 {
		c.recorder.Transition(DirectionBackward, false)
		return Transition{From: from, To: from}
	}

	c.state.current--
	c.state.scrollTop = true

	c.recorder.Transition(DirectionBackward, true)
	c.logger.Debug("step retreated", zap.Int("from", from), zap.Int("to", c.state.current))
	return Transition{From: from, To: c.state.current, Moved: true}
}

// Progress returns the progress bar value in percent: 0 on the first step,
// 100 on the last, linear in between.
func (c *Controller) Progress() float64 {
	return progress(c.state.current, c.state.total)
}

// Indicators projects the step markers: earlier steps completed, the active
// step active, later steps neither.
func (c *Controller) Indicators() []Indicator {
	return indicators(c.def, c.state)
}

// Navigation projects the navigation controls. Previous is disabled but
// visible on the first step, next is hidden on the last step and submit is
// shown only there.
func (c *Controller) Navigation() Navigation {
	return navigation(c.state)
}

// StepCounter renders the "Paso N de M" text.
func (c *Controller) StepCounter() string {
	return stepCounter(c.def, c.state)
}

func progress(current, total int) float64 {
	if total <= 1 {
		return 100
	}
	return float64(current-1) / float64(total-1) * 100
}

func indicators(def model.Definition, state *State) []Indicator {
	out := make([]Indicator, 0, len(def.Steps))
	for _, step := range def.Steps {
		out = append(out, Indicator{
			Number:    step.Number,
			Title:     step.Title,
			Active:    step.Number == state.current,
			Completed: step.Number < state.current,
		})
	}
	return out
}

func navigation(state *State) Navigation {
	last := state.current == state.total
	return Navigation{
		Previous: Button{Visible: true, Disabled: state.current == 1},
		Next:     Button{Visible: !last},
		Submit:   Button{Visible: last},
	}
}

func stepCounter(def model.Definition, state *State) string {
	return fmt.Sprintf(def.Messages.StepCounter, state.current, state.total)
}
