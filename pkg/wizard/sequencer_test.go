package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProgressIsLinear(t *testing.T) {
	c := newTestController(t)

	want := []float64{0, 25, 50, 75, 100}
	got := []float64{c.Progress()}

	fillFilingStep(t, c)
	mustAdvance(t, c)
	got = append(got, c.Progress())
	fillApplicant(t, c, 1, "ACME S.A.")
	mustAdvance(t, c)
	got = append(got, c.Progress())
	fillInventor(t, c, 1, "María", "maria@example.com")
	mustAdvance(t, c)
	got = append(got, c.Progress())
	fillDescriptionStep(t, c)
	mustAdvance(t, c)
	got = append(got, c.Progress())

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvanceBlockedByEmptyRequiredField(t *testing.T) {
	c := newTestController(t)
	mustSet(t, c, "tipo_patente", "Modelo de Utilidad")

	tr, err := c.Advance()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if tr.Moved || c.CurrentStep() != 1 {
		t.Fatalf("expected to stay on step 1, got %+v (current %d)", tr, c.CurrentStep())
	}
	if diff := cmp.Diff([]string{"titulo_patente"}, verr.Keys()); diff != "" {
		t.Fatalf("invalid keys mismatch (-want +got):\n%s", diff)
	}
	if c.State().FieldError("titulo_patente") == "" {
		t.Fatal("expected titulo_patente to carry an error indicator")
	}
}

func TestFilingTypeScenario(t *testing.T) {
	c := newTestController(t)

	if c.ValidateStep(1) {
		t.Fatal("expected step 1 to fail without a filing type")
	}
	if got := c.State().ContainerError("patenteInvencion"); got == "" {
		t.Fatal("expected the filing type container to be marked invalid")
	}

	fillFilingStep(t, c)
	if !c.ValidateStep(1) {
		t.Fatalf("expected step 1 to pass, invalid: %v", c.State().InvalidFields())
	}
	if got := c.State().ContainerError("patenteInvencion"); got != "" {
		t.Fatalf("expected container indicator cleared, got %q", got)
	}

	mustAdvance(t, c)
	if c.CurrentStep() != 2 {
		t.Fatalf("expected step 2, got %d", c.CurrentStep())
	}
}

func TestAdvanceFromLastStepIsNoop(t *testing.T) {
	c := newTestController(t)
	walkToLastStep(t, c)

	tr, err := c.Advance()
	if err != nil {
		t.Fatalf("advance on last step: %v", err)
	}
	if tr.Moved || c.CurrentStep() != 5 {
		t.Fatalf("expected no-op on last step, got %+v", tr)
	}
}

func TestRetreat(t *testing.T) {
	c := newTestController(t)

	if tr := c.Retreat(); tr.Moved || c.CurrentStep() != 1 {
		t.Fatalf("expected no-op on step 1, got %+v", tr)
	}

	fillFilingStep(t, c)
	mustAdvance(t, c)

	// Backward navigation ignores the empty applicant fields of step 2.
	tr := c.Retreat()
	if !tr.Moved || tr.From != 2 || tr.To != 1 {
		t.Fatalf("unexpected transition %+v", tr)
	}
	if got := c.State().InvalidFields(); len(got) != 0 {
		t.Fatalf("expected no validation on retreat, got %v", got)
	}
}

func TestIndicatorsAndNavigation(t *testing.T) {
	c := newTestController(t)

	nav := c.Navigation()
	if !nav.Previous.Visible || !nav.Previous.Disabled {
		t.Fatalf("expected previous visible and disabled on step 1, got %+v", nav.Previous)
	}
	if !nav.Next.Visible || nav.Submit.Visible {
		t.Fatalf("expected next shown and submit hidden on step 1, got %+v", nav)
	}

	fillFilingStep(t, c)
	mustAdvance(t, c)
	fillApplicant(t, c, 1, "ACME S.A.")
	mustAdvance(t, c)

	var active, completed []int
	for _, ind := range c.Indicators() {
		if ind.Active {
			active = append(active, ind.Number)
		}
		if ind.Completed {
			completed = append(completed, ind.Number)
		}
		if ind.Active && ind.Completed {
			t.Fatalf("indicator %d both active and completed", ind.Number)
		}
	}
	if diff := cmp.Diff([]int{3}, active); diff != "" {
		t.Fatalf("active mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, completed); diff != "" {
		t.Fatalf("completed mismatch (-want +got):\n%s", diff)
	}
	if got := c.StepCounter(); got != "Paso 3 de 5" {
		t.Fatalf("unexpected step counter %q", got)
	}

	fillInventor(t, c, 1, "María", "maria@example.com")
	mustAdvance(t, c)
	fillDescriptionStep(t, c)
	mustAdvance(t, c)

	nav = c.Navigation()
	if nav.Previous.Disabled || nav.Next.Visible || !nav.Submit.Visible {
		t.Fatalf("unexpected navigation on last step: %+v", nav)
	}
}

func TestArrivalAtLastStepRefreshesSummary(t *testing.T) {
	c := newTestController(t)
	walkToLastStep(t, c)

	// tipo_patente is not a trigger; arrival at the review step projects it.
	if got := c.State().Summary().FilingType; got != "Patente de Invención" {
		t.Fatalf("expected filing type in summary, got %q", got)
	}
}
