package testsupport

import (
	"sort"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// StepValues returns a valid value for every required field of the bundled
// patent definition, keyed by the step that owns it. Group fields use the
// base entry.
func StepValues() map[int]map[string]string {
	return map[int]map[string]string{
		1: {
			"tipo_patente":   "Patente de Invención",
			"titulo_patente": "Dispositivo X",
		},
		2: {
			"no_identificacion_1": "0991234567001",
			"pais_nacionalidad_1": "Ecuador",
			"nombre_1":            "Ana",
		},
		3: {
			"nombre_inventor_1": "Luis",
			"email_inventor_1":  "luis@example.com",
		},
		4: {
			"resumen":     "Resumen",
			"descripcion": "Descripción",
		},
	}
}

// NewController builds a controller for the bundled definition.
func NewController(t testing.TB, options ...wizard.Option) *wizard.Controller {
	t.Helper()

	c, err := wizard.New(schema.MustDefault(), options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

// Fill sets values in key order so failures are reported deterministically.
func Fill(t testing.TB, c *wizard.Controller, values map[string]string) {
	t.Helper()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := c.SetValue(key, values[key]); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
}

// WalkToSummary fills every step with StepValues, merged with overrides, and
// advances until the summary step is active.
func WalkToSummary(t testing.TB, c *wizard.Controller, overrides map[string]string) {
	t.Helper()

	for _, values := range StepValues() {
		Fill(t, c, values)
	}
	Fill(t, c, overrides)

	total := len(c.Definition().Steps)
	for c.CurrentStep() < total {
		move, err := c.Advance()
		if err != nil {
			t.Fatalf("advance from step %d: %v", move.From, err)
		}
		if !move.Moved {
			t.Fatalf("advance from step %d did not move", move.From)
		}
	}
}

// Accept walks c to the summary, ticks the confirmation and submits.
func Accept(t testing.TB, c *wizard.Controller, overrides map[string]string) wizard.Result {
	t.Helper()

	WalkToSummary(t, c, overrides)
	if err := c.SetValue(c.Definition().Confirmation.Name, "true"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	result, err := c.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return result
}
