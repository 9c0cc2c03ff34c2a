package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

var (
	errDefinitionIDMissing = errors.New("definition id is required")
	errStepsMissing        = errors.New("definition requires at least two steps")
	errConfirmationMissing = errors.New("confirmation checkbox is required")
)

// Validate checks the structural invariants the controller relies on: step
// numbers are 1..N in order, field keys are unique, groups referenced by
// steps exist, choice rules point at radio fields of the same step and the
// summary inputs resolve.
func Validate(def model.Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return errDefinitionIDMissing
	}
	if len(def.Steps) < 2 {
		return errStepsMissing
	}
	if def.Confirmation.Name == "" || def.Confirmation.Kind != model.FieldKindCheckbox {
		return errConfirmationMissing
	}

	groups := make(map[string]model.GroupSpec, len(def.Groups))
	for _, group := range def.Groups {
		if err := validateGroup(group); err != nil {
			return err
		}
		if _, exists := groups[group.Name]; exists {
			return fmt.Errorf("duplicate group %q", group.Name)
		}
		groups[group.Name] = group
	}

	seen := map[string]int{def.Confirmation.Name: len(def.Steps)}
	hosted := make(map[string]int, len(groups))
	for i, step := range def.Steps {
		if step.Number != i+1 {
			return fmt.Errorf("step %d declares number %d", i+1, step.Number)
		}
		for _, field := range step.Fields {
			if err := validateField(field); err != nil {
				return fmt.Errorf("step %d: %w", step.Number, err)
			}
			if _, _, grouped := model.ParseKey(field.Name); grouped {
				return fmt.Errorf("step %d: static field %q collides with the entry key scheme", step.Number, field.Name)
			}
			if prev, exists := seen[field.Name]; exists {
				return fmt.Errorf("step %d: field %q already declared on step %d", step.Number, field.Name, prev)
			}
			seen[field.Name] = step.Number
		}
		for _, name := range step.Groups {
			if _, ok := groups[name]; !ok {
				return fmt.Errorf("step %d: unknown group %q", step.Number, name)
			}
			if prev, exists := hosted[name]; exists {
				return fmt.Errorf("step %d: group %q already hosted by step %d", step.Number, name, prev)
			}
			hosted[name] = step.Number
		}
		if step.Choice != nil {
			if err := validateChoice(step); err != nil {
				return err
			}
		}
	}

	return validateSummary(def.Summary, groups, seen)
}

func validateGroup(group model.GroupSpec) error {
	if strings.TrimSpace(group.Name) == "" {
		return errors.New("group name is required")
	}
	if len(group.Fields) == 0 {
		return fmt.Errorf("group %q declares no fields", group.Name)
	}
	names := make(map[string]struct{}, len(group.Fields))
	for _, field := range group.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("group %q: %w", group.Name, err)
		}
		if _, exists := names[field.Name]; exists {
			return fmt.Errorf("group %q: duplicate field %q", group.Name, field.Name)
		}
		names[field.Name] = struct{}{}
	}
	return nil
}

func validateField(field model.FieldSpec) error {
	if strings.TrimSpace(field.Name) == "" {
		return errors.New("field name is required")
	}
	switch field.Kind {
	case model.FieldKindText, model.FieldKindEmail, model.FieldKindTextArea, model.FieldKindCheckbox:
	case model.FieldKindRadio:
		if len(field.Options) == 0 {
			return fmt.Errorf("radio field %q declares no options", field.Name)
		}
	default:
		return fmt.Errorf("field %q has unsupported kind %q", field.Name, field.Kind)
	}
	return nil
}

func validateChoice(step model.StepSpec) error {
	rule := step.Choice
	for _, field := range step.Fields {
		if field.Name != rule.Field {
			continue
		}
		if field.Kind != model.FieldKindRadio {
			return fmt.Errorf("step %d: choice field %q must be a radio", step.Number, rule.Field)
		}
		for _, opt := range field.Options {
			if opt.ID == rule.Anchor {
				return nil
			}
		}
		return fmt.Errorf("step %d: choice anchor %q is not an option of %q", step.Number, rule.Anchor, rule.Field)
	}
	return fmt.Errorf("step %d: choice field %q not found", step.Number, rule.Field)
}

func validateSummary(summary model.SummarySpec, groups map[string]model.GroupSpec, static map[string]int) error {
	if summary.TitleField != "" {
		if _, ok := static[summary.TitleField]; !ok {
			return fmt.Errorf("summary: unknown title field %q", summary.TitleField)
		}
	}
	if summary.FilingTypeField != "" {
		if _, ok := static[summary.FilingTypeField]; !ok {
			return fmt.Errorf("summary: unknown filing type field %q", summary.FilingTypeField)
		}
	}
	if err := validateGroupRef("applicant", summary.ApplicantGroup, summary.ApplicantField, groups); err != nil {
		return err
	}
	if err := validateGroupRef("inventor", summary.InventorGroup, summary.InventorField, groups); err != nil {
		return err
	}
	if summary.RequiredDocuments < 0 {
		return errors.New("summary: required documents cannot be negative")
	}
	return nil
}

func validateGroupRef(role, groupName, fieldName string, groups map[string]model.GroupSpec) error {
	if groupName == "" {
		return nil
	}
	group, ok := groups[groupName]
	if !ok {
		return fmt.Errorf("summary: unknown %s group %q", role, groupName)
	}
	if _, ok := group.Field(fieldName); !ok {
		return fmt.Errorf("summary: %s group %q has no field %q", role, groupName, fieldName)
	}
	return nil
}
