package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// EventSave is posted by implicit form submission (Enter in a text field). It
// stores the posted values without dispatching a wizard event.
const EventSave = "save"

// EncodeEvent renders the value of an _event button. Entry events carry
// their group and index after colons ("remove_entry:applicant:3") since a
// button submits a single name/value pair.
func EncodeEvent(event wizard.Event) string {
	switch event.Type {
	case wizard.EventAddEntry:
		return string(event.Type) + ":" + event.Group
	case wizard.EventRemoveEntry:
		return string(event.Type) + ":" + event.Group + ":" + strconv.Itoa(event.Index)
	default:
		return string(event.Type)
	}
}

// DecodeEvent parses an _event value. focus is the _focus field naming the
// field of a blur event. ok is false for EventSave and empty values.
func DecodeEvent(value, focus string) (event wizard.Event, ok bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" || value == EventSave {
		return wizard.Event{}, false, nil
	}

	parts := strings.Split(value, ":")
	event.Type = wizard.EventType(parts[0])
	switch event.Type {
	case wizard.EventAddEntry:
		if len(parts) != 2 || parts[1] == "" {
			return wizard.Event{}, false, fmt.Errorf("render: malformed event %q", value)
		}
		event.Group = parts[1]
	case wizard.EventRemoveEntry:
		if len(parts) != 3 {
			return wizard.Event{}, false, fmt.Errorf("render: malformed event %q", value)
		}
		index, convErr := strconv.Atoi(parts[2])
		if convErr != nil {
			return wizard.Event{}, false, fmt.Errorf("render: malformed event %q: %w", value, convErr)
		}
		event.Group, event.Index = parts[1], index
	case wizard.EventBlur:
		event.Key = strings.TrimSpace(focus)
	default:
		if len(parts) != 1 {
			return wizard.Event{}, false, fmt.Errorf("render: malformed event %q", value)
		}
	}
	return event, true, nil
}
