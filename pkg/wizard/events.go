package wizard

import (
	"context"
	"errors"
	"fmt"
)

// EventType names a UI event routed to the controller.
type EventType string

const (
	EventNext        EventType = "next"
	EventPrev        EventType = "prev"
	EventInput       EventType = "input"
	EventBlur        EventType = "blur"
	EventAddEntry    EventType = "add_entry"
	EventRemoveEntry EventType = "remove_entry"
	EventSubmit      EventType = "submit"
)

// Event is a single UI event. Key/Value apply to input and blur; Group/Index
// apply to entry events.
type Event struct {
	Type  EventType `json:"type"`
	Key   string    `json:"key,omitempty"`
	Value string    `json:"value,omitempty"`
	Group string    `json:"group,omitempty"`
	Index int       `json:"index,omitempty"`
}

// NoticeLevel classifies a user-facing notice.
type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a blocking message shown to the user.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Outcome describes what an event changed.
type Outcome struct {
	Transition *Transition
	Valid      *bool
	Entry      int
	Result     *Result
	Notices    []Notice
}

// HandleEvent dispatches an event. Validation failures and gate rejections
// are recovered here: they surface as Outcome fields and notices, never as
// errors. Returned errors are usage errors (unknown event, field or entry).
func (c *Controller) HandleEvent(ctx context.Context, event Event) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	switch event.Type {
	case EventNext:
		tr, err := c.Advance()
		out := Outcome{Transition: &tr}
		var verr *ValidationError
		if errors.As(err, &verr) {
			valid := false
			out.Valid = &valid
			return out, nil
		}
		return out, err

	case EventPrev:
		tr := c.Retreat()
		return Outcome{Transition: &tr}, nil

	case EventInput:
		return Outcome{}, c.SetValue(event.Key, event.Value)

	case EventBlur:
		ok, err := c.Blur(event.Key)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Valid: &ok}, nil

	case EventAddEntry:
		index, err := c.AddEntry(event.Group)
		return Outcome{Entry: index}, err

	case EventRemoveEntry:
		if err := c.RemoveEntry(event.Group, event.Index); err != nil {
			return Outcome{}, err
		}
		return Outcome{Entry: event.Index}, nil

	case EventSubmit:
		return c.handleSubmit()
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
}

func (c *Controller) handleSubmit() (Outcome, error) {
	result, err := c.Submit()
	if err == nil {
		return Outcome{
			Result:  &result,
			Notices: []Notice{{Level: NoticeSuccess, Message: result.Message}},
		}, nil
	}

	var gerr *GateError
	if errors.As(err, &gerr) {
		return Outcome{Notices: []Notice{{Level: NoticeError, Message: gerr.Message}}}, nil
	}
	return Outcome{}, err
}
