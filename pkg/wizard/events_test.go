package wizard

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	transitions map[Direction][]bool
	failures    []int
	added       []string
	removed     []string
	submissions []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{transitions: make(map[Direction][]bool)}
}

func (r *fakeRecorder) Transition(direction Direction, moved bool) {
	r.transitions[direction] = append(r.transitions[direction], moved)
}
func (r *fakeRecorder) ValidationFailed(step int) { r.failures = append(r.failures, step) }
func (r *fakeRecorder) EntryAdded(group string)   { r.added = append(r.added, group) }
func (r *fakeRecorder) EntryRemoved(group string) { r.removed = append(r.removed, group) }
func (r *fakeRecorder) Submission(outcome string) { r.submissions = append(r.submissions, outcome) }

func TestHandleEventFlow(t *testing.T) {
	ctx := context.Background()
	rec := newFakeRecorder()
	c := newTestController(t, WithRecorder(rec))

	out, err := c.HandleEvent(ctx, Event{Type: EventNext})
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if out.Valid == nil || *out.Valid || out.Transition.Moved {
		t.Fatalf("expected blocked advance, got %+v", out)
	}

	steps := []Event{
		{Type: EventInput, Key: "tipo_patente", Value: "Patente de Invención"},
		{Type: EventInput, Key: "titulo_patente", Value: "Dispositivo X"},
		{Type: EventNext},
		{Type: EventInput, Key: "no_identificacion_1", Value: "1712345678"},
		{Type: EventInput, Key: "pais_nacionalidad_1", Value: "Ecuador"},
		{Type: EventInput, Key: "nombre_1", Value: "ACME S.A."},
		{Type: EventNext},
		{Type: EventInput, Key: "nombre_inventor_1", Value: "María"},
		{Type: EventInput, Key: "email_inventor_1", Value: "maria@example.com"},
		{Type: EventAddEntry, Group: "inventor"},
	}
	for _, ev := range steps {
		if _, err := c.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("%s: %v", ev.Type, err)
		}
	}

	out, err = c.HandleEvent(ctx, Event{Type: EventRemoveEntry, Group: "inventor", Index: 2})
	if err != nil || out.Entry != 2 {
		t.Fatalf("remove entry: %+v %v", out, err)
	}

	out, err = c.HandleEvent(ctx, Event{Type: EventBlur, Key: "email_inventor_1"})
	if err != nil || out.Valid == nil || !*out.Valid {
		t.Fatalf("blur: %+v %v", out, err)
	}

	for _, ev := range []Event{
		{Type: EventNext},
		{Type: EventInput, Key: "resumen", Value: "Resumen"},
		{Type: EventInput, Key: "descripcion", Value: "Descripción"},
		{Type: EventNext},
	} {
		if _, err := c.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("%s: %v", ev.Type, err)
		}
	}
	if c.CurrentStep() != 5 {
		t.Fatalf("expected step 5, got %d", c.CurrentStep())
	}

	out, err = c.HandleEvent(ctx, Event{Type: EventSubmit})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(out.Notices) != 1 || out.Notices[0].Level != NoticeError || out.Result != nil {
		t.Fatalf("expected a blocking notice, got %+v", out)
	}

	if _, err := c.HandleEvent(ctx, Event{Type: EventInput, Key: "confirmacion", Value: "on"}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	out, err = c.HandleEvent(ctx, Event{Type: EventSubmit})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Result == nil || out.Notices[0].Level != NoticeSuccess {
		t.Fatalf("expected accepted submission, got %+v", out)
	}

	if got := rec.transitions[DirectionForward]; len(got) != 5 || got[0] {
		t.Fatalf("unexpected forward transitions %v", got)
	}
	if len(rec.failures) != 1 || rec.failures[0] != 1 {
		t.Fatalf("unexpected validation failures %v", rec.failures)
	}
	if len(rec.added) != 1 || len(rec.removed) != 1 {
		t.Fatalf("unexpected entry events %v / %v", rec.added, rec.removed)
	}
	if len(rec.submissions) != 2 || rec.submissions[0] != SubmissionConfirmationMissing || rec.submissions[1] != SubmissionAccepted {
		t.Fatalf("unexpected submissions %v", rec.submissions)
	}
}

func TestHandleEventErrors(t *testing.T) {
	c := newTestController(t)

	if _, err := c.HandleEvent(context.Background(), Event{Type: "jump"}); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if _, err := c.HandleEvent(context.Background(), Event{Type: EventRemoveEntry, Group: "applicant", Index: 1}); !errors.Is(err, ErrBaseEntry) {
		t.Fatalf("expected ErrBaseEntry, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.HandleEvent(ctx, Event{Type: EventNext}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSubmitEventAcceptsIncompleteSteps(t *testing.T) {
	c := newTestController(t)
	walkToLastStep(t, c)
	if _, err := c.AddApplicant(); err != nil {
		t.Fatalf("add applicant: %v", err)
	}
	mustSet(t, c, "confirmacion", "true")

	out, err := c.HandleEvent(context.Background(), Event{Type: EventSubmit})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Result == nil {
		t.Fatalf("expected an accepted result, got %+v", out)
	}
	if len(out.Notices) != 1 || out.Notices[0].Level != NoticeSuccess {
		t.Fatalf("unexpected notices %+v", out.Notices)
	}
}

func TestControllerLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := newTestController(t, WithLogger(zap.New(core)))

	if _, err := c.Advance(); err == nil {
		t.Fatal("expected blocked advance")
	}
	if _, err := c.AddInventor(); err != nil {
		t.Fatalf("add inventor: %v", err)
	}

	blocked := logs.FilterMessage("advance blocked by validation").All()
	if len(blocked) != 1 {
		t.Fatalf("expected one blocked advance log, got %d", len(blocked))
	}
	if got := blocked[0].ContextMap()["wizard"]; got != "solicitud_patente" {
		t.Fatalf("expected wizard field, got %v", got)
	}
	added := logs.FilterMessage("entry added").All()
	if len(added) != 1 || added[0].ContextMap()["group"] != "inventor" {
		t.Fatalf("unexpected entry logs %+v", added)
	}
}
