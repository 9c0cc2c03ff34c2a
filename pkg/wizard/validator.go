package wizard

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// emailPattern is the "valid e-mail address" production used by browsers for
// input[type=email].
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// boundField is a field spec resolved to its key in the current state.
type boundField struct {
	key  string
	spec model.FieldSpec
}

// ValidateStep checks every required field of step, including the fields of
// each live entry of the groups the step hosts, and the step's exclusive
// choice rule. Failing fields get an indicator, passing ones are cleared.
func (c *Controller) ValidateStep(step int) bool {
	spec, ok := c.def.Step(step)
	if !ok {
		return false
	}

	valid := true
	for _, field := range c.stepFields(spec) {
		if msg := c.check(field); msg != "" {
			c.state.fieldErrors[field.key] = msg
			valid = false
		} else {
			delete(c.state.fieldErrors, field.key)
		}
	}

	if rule := spec.Choice; rule != nil {
		if strings.TrimSpace(c.state.values[rule.Field]) == "" {
			msg := rule.Message
			if msg == "" {
				msg = c.def.Messages.Required
			}
			c.state.containerErrors[rule.Anchor] = msg
			valid = false
		} else {
			delete(c.state.containerErrors, rule.Anchor)
		}
	}
	return valid
}

// Blur validates a single field and updates only its own indicator. The
// result never gates navigation.
func (c *Controller) Blur(key string) (bool, error) {
	spec, err := c.lookup(key)
	if err != nil {
		return false, err
	}
	if msg := c.check(boundField{key: key, spec: spec}); msg != "" {
		c.state.fieldErrors[key] = msg
		return false, nil
	}
	delete(c.state.fieldErrors, key)
	return true, nil
}

// check returns the indicator text for a field, or "" when it passes.
func (c *Controller) check(field boundField) string {
	value := strings.TrimSpace(c.state.values[field.key])
	if value == "" {
		if field.spec.Required {
			return c.def.Messages.Required
		}
		return ""
	}
	if field.spec.Kind == model.FieldKindEmail && !emailPattern.MatchString(value) {
		return c.def.Messages.InvalidEmail
	}
	return ""
}

// stepFields lists the fields that belong to a step section. The confirmation
// checkbox is left to the submission gate.
func (c *Controller) stepFields(step model.StepSpec) []boundField {
	var out []boundField
	for _, field := range step.Fields {
		out = append(out, boundField{key: field.Name, spec: field})
	}
	for _, name := range step.Groups {
		for _, entry := range c.Entries(name) {
			for _, field := range entry.Fields {
				out = append(out, boundField{key: field.Key, spec: field.Spec})
			}
		}
	}
	return out
}

func (c *Controller) validationError(step int) *ValidationError {
	verr := &ValidationError{
		Step:       step,
		Fields:     make(map[string]string),
		Containers: make(map[string]string),
	}
	spec, _ := c.def.Step(step)
	for _, field := range c.stepFields(spec) {
		if msg, ok := c.state.fieldErrors[field.key]; ok {
			verr.Fields[field.key] = msg
		}
	}
	if spec.Choice != nil {
		if msg, ok := c.state.containerErrors[spec.Choice.Anchor]; ok {
			verr.Containers[spec.Choice.Anchor] = msg
		}
	}
	return verr
}
