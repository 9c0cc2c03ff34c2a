package model

// FieldKind is the simplified enum for wizard input controls.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTextArea FieldKind = "textarea"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
)

// CheckedValue is the stored value of a ticked checkbox.
const CheckedValue = "true"

// Option is a single choice of a radio field. ID is the DOM identifier of the
// option control (e.g. "patenteInvencion"); when empty renderers derive one
// from the field key and the option position.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
}

// FieldSpec describes one input. Name is the field base; for entry-group
// fields the effective key is Key(Name, index).
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     string    `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Width       string    `json:"width,omitempty" yaml:"width,omitempty"`
}

// GroupSpec is the field-spec table of a repeatable Entry Group. Entry 1 is
// the static base entry; further entries are appended at runtime into
// Container.
type GroupSpec struct {
	Name       string      `json:"name" yaml:"name"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	EntryTitle string      `json:"entryTitle,omitempty" yaml:"entryTitle,omitempty"`
	Container  string      `json:"container,omitempty" yaml:"container,omitempty"`
	AddLabel   string      `json:"addLabel,omitempty" yaml:"addLabel,omitempty"`
	AddControl string      `json:"addControl,omitempty" yaml:"addControl,omitempty"`
	Fields     []FieldSpec `json:"fields" yaml:"fields"`
}

// Field returns the spec with the given base name.
func (g GroupSpec) Field(name string) (FieldSpec, bool) {
	for _, field := range g.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// ChoiceRule requires a selection in an exclusive-choice field. When the
// field is empty the container of the Anchor option is marked invalid.
type ChoiceRule struct {
	Field   string `json:"field" yaml:"field"`
	Anchor  string `json:"anchor" yaml:"anchor"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// StepSpec describes one wizard section.
type StepSpec struct {
	Number int         `json:"number" yaml:"number"`
	Title  string      `json:"title" yaml:"title"`
	Fields []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
	Groups []string    `json:"groups,omitempty" yaml:"groups,omitempty"`
	Choice *ChoiceRule `json:"choice,omitempty" yaml:"choice,omitempty"`
	// Summary marks the step that hosts the summary region.
	Summary bool `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// SummaryPlaceholders are the texts shown when a summary input is empty.
type SummaryPlaceholders struct {
	Title            string `json:"title,omitempty" yaml:"title,omitempty"`
	FilingType       string `json:"filingType,omitempty" yaml:"filingType,omitempty"`
	PrimaryApplicant string `json:"primaryApplicant,omitempty" yaml:"primaryApplicant,omitempty"`
	Inventors        string `json:"inventors,omitempty" yaml:"inventors,omitempty"`
}

// SummarySpec names the inputs of the summary projection.
type SummarySpec struct {
	TitleField        string              `json:"titleField" yaml:"titleField"`
	FilingTypeField   string              `json:"filingTypeField" yaml:"filingTypeField"`
	ApplicantGroup    string              `json:"applicantGroup" yaml:"applicantGroup"`
	ApplicantField    string              `json:"applicantField" yaml:"applicantField"`
	InventorGroup     string              `json:"inventorGroup" yaml:"inventorGroup"`
	InventorField     string              `json:"inventorField" yaml:"inventorField"`
	RequiredDocuments int                 `json:"requiredDocuments" yaml:"requiredDocuments"`
	DocumentsFormat   string              `json:"documentsFormat,omitempty" yaml:"documentsFormat,omitempty"`
	Triggers          []string            `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Placeholders      SummaryPlaceholders `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
}

// Messages are the literal user-facing texts of the wizard.
type Messages struct {
	StepCounter         string `json:"stepCounter,omitempty" yaml:"stepCounter,omitempty"`
	ConfirmationMissing string `json:"confirmationMissing,omitempty" yaml:"confirmationMissing,omitempty"`
	SubmitSuccess       string `json:"submitSuccess,omitempty" yaml:"submitSuccess,omitempty"`
	Required            string `json:"required,omitempty" yaml:"required,omitempty"`
	InvalidEmail        string `json:"invalidEmail,omitempty" yaml:"invalidEmail,omitempty"`
	Remove              string `json:"remove,omitempty" yaml:"remove,omitempty"`
	Previous            string `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next                string `json:"next,omitempty" yaml:"next,omitempty"`
	Submit              string `json:"submit,omitempty" yaml:"submit,omitempty"`
}

// Definition is the complete wizard description.
type Definition struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	Steps        []StepSpec  `json:"steps" yaml:"steps"`
	Groups       []GroupSpec `json:"groups,omitempty" yaml:"groups,omitempty"`
	Summary      SummarySpec `json:"summary" yaml:"summary"`
	Confirmation FieldSpec   `json:"confirmation" yaml:"confirmation"`
	Messages     Messages    `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// TotalSteps reports the number of steps.
func (d Definition) TotalSteps() int {
	return len(d.Steps)
}

// Step returns the spec of the 1-based step number.
func (d Definition) Step(number int) (StepSpec, bool) {
	if number < 1 || number > len(d.Steps) {
		return StepSpec{}, false
	}
	return d.Steps[number-1], true
}

// Group returns the group spec by name.
func (d Definition) Group(name string) (GroupSpec, bool) {
	for _, group := range d.Groups {
		if group.Name == name {
			return group, true
		}
	}
	return GroupSpec{}, false
}

// StepOfGroup returns the step number hosting the named group, or 0.
func (d Definition) StepOfGroup(name string) int {
	for _, step := range d.Steps {
		for _, group := range step.Groups {
			if group == name {
				return step.Number
			}
		}
	}
	return 0
}

// StaticField looks up a non-group field (including the confirmation
// checkbox) by key and reports the step that owns it. The confirmation field
// belongs to the last step.
func (d Definition) StaticField(key string) (FieldSpec, int, bool) {
	for _, step := range d.Steps {
		for _, field := range step.Fields {
			if field.Name == key {
				return field, step.Number, true
			}
		}
	}
	if d.Confirmation.Name != "" && d.Confirmation.Name == key {
		return d.Confirmation, len(d.Steps), true
	}
	return FieldSpec{}, 0, false
}
