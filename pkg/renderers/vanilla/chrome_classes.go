package vanilla

import "github.com/goliatone/go-formwizard/pkg/model"

// ChromeClass is a typed identifier for the step marker classes the runtime
// script toggles when it moves between sections.
type ChromeClass string

const (
	ClassStep      ChromeClass = "step"
	ClassActive    ChromeClass = "active"
	ClassCompleted ChromeClass = "completed"
)

// columnClass maps a field width hint to its grid column.
func columnClass(width string) string {
	switch width {
	case "half":
		return "col-md-6"
	case "wide":
		return "col-md-8"
	case "narrow":
		return "col-md-4"
	default:
		return "col-12"
	}
}

// inputType maps a field kind to the HTML input type.
func inputType(kind model.FieldKind) string {
	switch kind {
	case model.FieldKindEmail:
		return "email"
	case model.FieldKindCheckbox:
		return "checkbox"
	case model.FieldKindRadio:
		return "radio"
	default:
		return "text"
	}
}
