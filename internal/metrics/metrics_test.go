package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestRecorder(t *testing.T) {
	m := New()

	m.Transition(wizard.DirectionForward, true)
	m.Transition(wizard.DirectionForward, true)
	m.Transition(wizard.DirectionBackward, false)
	m.ValidationFailed(2)
	m.EntryAdded("inventor")
	m.EntryRemoved("inventor")
	m.Submission(wizard.SubmissionConfirmationMissing)
	m.Backend(BackendCreated)

	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("forward", "true")); got != 2 {
		t.Fatalf("expected 2 forward transitions, got %v", got)
	}
	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("backward", "false")); got != 1 {
		t.Fatalf("expected 1 blocked backward transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues("2")); got != 1 {
		t.Fatalf("expected 1 failure on step 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.Entries.WithLabelValues("inventor", "remove")); got != 1 {
		t.Fatalf("expected 1 removal, got %v", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("confirmation_missing")); got != 1 {
		t.Fatalf("expected 1 gate rejection, got %v", got)
	}
	if got := testutil.ToFloat64(m.BackendRequests.WithLabelValues("created")); got != 1 {
		t.Fatalf("expected 1 backend request, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	m.SessionsActive.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`formwizard_http_requests_total{method="GET",route="/health",status="200"} 1`,
		"formwizard_sessions_active 3",
		"formwizard_http_request_duration_seconds_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %q in exposition:\n%s", want, body)
		}
	}
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.EntryAdded("applicant")
	if got := testutil.ToFloat64(b.Entries.WithLabelValues("applicant", "add")); got != 0 {
		t.Fatalf("expected isolated registries, got %v", got)
	}
}
