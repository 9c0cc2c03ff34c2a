package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c, err := New(schema.MustDefault(), opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func mustSet(t *testing.T, c *Controller, key, value string) {
	t.Helper()
	if err := c.SetValue(key, value); err != nil {
		t.Fatalf("set %s: %v", key, err)
	}
}

func mustAdvance(t *testing.T, c *Controller) {
	t.Helper()
	tr, err := c.Advance()
	if err != nil {
		t.Fatalf("advance from step %d: %v", tr.From, err)
	}
	if !tr.Moved {
		t.Fatalf("advance from step %d did not move", tr.From)
	}
}

func fillFilingStep(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, "tipo_patente", "Patente de Invención")
	mustSet(t, c, "titulo_patente", "Dispositivo X")
}

func fillApplicant(t *testing.T, c *Controller, index int, name string) {
	t.Helper()
	mustSet(t, c, model.Key("no_identificacion", index), "0991234567001")
	mustSet(t, c, model.Key("pais_nacionalidad", index), "Ecuador")
	mustSet(t, c, model.Key("nombre", index), name)
}

func fillInventor(t *testing.T, c *Controller, index int, name, email string) {
	t.Helper()
	mustSet(t, c, model.Key("nombre_inventor", index), name)
	mustSet(t, c, model.Key("email_inventor", index), email)
}

func fillDescriptionStep(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, "resumen", "Resumen breve")
	mustSet(t, c, "descripcion", "Descripción técnica")
}

// walkToLastStep fills every step with valid data and advances to the review
// step.
func walkToLastStep(t *testing.T, c *Controller) {
	t.Helper()
	fillFilingStep(t, c)
	mustAdvance(t, c)
	fillApplicant(t, c, 1, "ACME S.A.")
	mustAdvance(t, c)
	fillInventor(t, c, 1, "María", "maria@example.com")
	mustAdvance(t, c)
	fillDescriptionStep(t, c)
	mustAdvance(t, c)
}

func TestNewSeedsInitialState(t *testing.T) {
	c := newTestController(t)

	if got := c.CurrentStep(); got != 1 {
		t.Fatalf("expected step 1, got %d", got)
	}
	if got := c.State().TotalSteps(); got != 5 {
		t.Fatalf("expected 5 steps, got %d", got)
	}
	if c.ApplicantCount() != 1 || c.InventorCount() != 1 {
		t.Fatalf("expected counters to start at 1, got %d/%d", c.ApplicantCount(), c.InventorCount())
	}
	if got := c.State().Value("tipo_identificacion_1"); got != "RUC" {
		t.Fatalf("expected base applicant to default to RUC, got %q", got)
	}

	want := Summary{
		Title:            "No especificado",
		FilingType:       "No seleccionado",
		PrimaryApplicant: "No especificado",
		Inventors:        "No especificados",
		Documents:        "5 documentos obligatorios",
	}
	if diff := cmp.Diff(want, c.State().Summary()); diff != "" {
		t.Fatalf("initial summary mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsMismatchedState(t *testing.T) {
	def := schema.MustDefault()
	short := def
	short.Steps = def.Steps[:3]

	_, err := New(def, WithState(NewState(short)))
	if err == nil {
		t.Fatal("expected an error for a state built from another definition")
	}
}

func TestNewRejectsStateWithOtherGroups(t *testing.T) {
	def := schema.MustDefault()
	renamed := def
	renamed.Groups = append([]model.GroupSpec(nil), def.Groups...)
	renamed.Groups[1].Name = "disenador"

	if _, err := New(def, WithState(NewState(renamed))); err == nil {
		t.Fatal("expected an error for a state whose groups differ from the definition")
	}

	fewer := def
	fewer.Groups = def.Groups[:1]
	if _, err := New(def, WithState(NewState(fewer))); err == nil {
		t.Fatal("expected an error for a state missing a group")
	}
}

func TestSetValue(t *testing.T) {
	c := newTestController(t)

	if err := c.SetValue("tipo_patente", "Patente Inexistente"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := c.SetValue("nombre_2", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField for a missing entry, got %v", err)
	}
	if err := c.SetValue("no_such_field", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	mustSet(t, c, "confirmacion", "on")
	if !c.Confirmed() {
		t.Fatal("expected \"on\" to tick the confirmation")
	}
	mustSet(t, c, "confirmacion", "")
	if c.Confirmed() {
		t.Fatal("expected empty value to untick the confirmation")
	}
}

func TestSetValueRefreshesSummaryOnTriggers(t *testing.T) {
	c := newTestController(t)

	mustSet(t, c, "titulo_patente", "Dispositivo X")
	mustSet(t, c, "nombre_1", "ACME S.A.")
	mustSet(t, c, "nombre_inventor_1", "María")

	got := c.State().Summary()
	if got.Title != "Dispositivo X" || got.PrimaryApplicant != "ACME S.A." || got.Inventors != "María" {
		t.Fatalf("summary not refreshed by trigger inputs: %+v", got)
	}

	// Not a trigger: the stored summary stays until the next recomputation.
	mustSet(t, c, "tipo_patente", "Modelo de Utilidad")
	if got := c.State().Summary().FilingType; got != "No seleccionado" {
		t.Fatalf("expected filing type to wait for a trigger, got %q", got)
	}
	if got := c.RefreshSummary().FilingType; got != "Modelo de Utilidad" {
		t.Fatalf("expected refreshed filing type, got %q", got)
	}
}
