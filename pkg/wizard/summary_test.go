package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInventorListSkipsEmptyPrimary(t *testing.T) {
	c := newTestController(t)

	ana, err := c.AddInventor()
	if err != nil {
		t.Fatalf("add inventor: %v", err)
	}
	luis, err := c.AddInventor()
	if err != nil {
		t.Fatalf("add inventor: %v", err)
	}
	fillInventor(t, c, ana, "Ana", "ana@example.com")
	fillInventor(t, c, luis, "Luis", "luis@example.com")

	if got := c.RefreshSummary().Inventors; got != "Ana, Luis" {
		t.Fatalf("expected %q, got %q", "Ana, Luis", got)
	}
}

func TestInventorListSkipsRemovedEntries(t *testing.T) {
	c := newTestController(t)
	mustSet(t, c, "nombre_inventor_1", "María")

	second, _ := c.AddInventor()
	third, _ := c.AddInventor()
	mustSet(t, c, "nombre_inventor_2", "Ana")
	mustSet(t, c, "nombre_inventor_3", "Luis")

	if err := c.RemoveEntry("inventor", second); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := c.State().Summary().Inventors; got != "María, Luis" {
		t.Fatalf("expected removal to refresh the summary, got %q", got)
	}

	if err := c.RemoveEntry("inventor", third); err != nil {
		t.Fatalf("remove: %v", err)
	}
	mustSet(t, c, "nombre_inventor_1", "")
	if got := c.State().Summary().Inventors; got != "No especificados" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestSummaryTitleUpdatesOnLastStep(t *testing.T) {
	c := newTestController(t)
	walkToLastStep(t, c)

	mustSet(t, c, "titulo_patente", "Device X")
	if got := c.State().Summary().Title; got != "Device X" {
		t.Fatalf("expected live title, got %q", got)
	}
	if c.CurrentStep() != 5 {
		t.Fatal("input must not navigate")
	}
}

func TestProjectIsPure(t *testing.T) {
	c := newTestController(t)
	mustSet(t, c, "titulo_patente", "Dispositivo X")
	mustSet(t, c, "tipo_patente", "Diseño Industrial")

	before := c.State().Values()
	first := Project(c.Definition(), c.State())
	second := Project(c.Definition(), c.State())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("projection not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, c.State().Values()); diff != "" {
		t.Fatalf("projection mutated values (-before +after):\n%s", diff)
	}
	want := Summary{
		Title:            "Dispositivo X",
		FilingType:       "Diseño Industrial",
		PrimaryApplicant: "No especificado",
		Inventors:        "No especificados",
		Documents:        "5 documentos obligatorios",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
