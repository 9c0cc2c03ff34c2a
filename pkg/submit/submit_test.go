package submit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func acceptedResult() wizard.Result {
	return wizard.Result{
		Values: map[string]string{
			"tipo_patente":           "Modelo de Utilidad",
			"titulo_patente":         " Dispositivo X ",
			"convocatoria_id":        "7",
			"resumen":                "Resumen",
			"descripcion":            "Descripción",
			"tipo_identificacion_1":  "RUC",
			"no_identificacion_1":    "0991234567001",
			"pais_nacionalidad_1":    "Ecuador",
			"nombre_1":               "Ana",
			"tipo_identificacion_3":  "Cédula",
			"no_identificacion_3":    "1712345678",
			"pais_nacionalidad_3":    "Perú",
			"nombre_3":               "Beto",
			"provincia_residencia_3": "Pichincha",
			"nombre_inventor_1":      "Luis",
			"email_inventor_1":       "luis@example.com",
		},
		Entries: map[string][]int{
			"applicant": {1, 3},
			"inventor":  {1},
		},
	}
}

func TestAssemble(t *testing.T) {
	def := schema.MustDefault()

	got, err := submit.Assemble(def, acceptedResult())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	id := 7
	want := submit.Payload{
		TipoPI:         submit.TipoPatente,
		Modalidad:      "Modelo de Utilidad",
		Titulo:         "Dispositivo X",
		Resumen:        "Resumen",
		Descripcion:    "Descripción",
		ConvocatoriaID: &id,
		Solicitantes: []submit.Solicitante{
			{TipoIdentificacion: "RUC", NoIdentificacion: "0991234567001", PaisNacionalidad: "Ecuador", Nombre: "Ana"},
			{TipoIdentificacion: "Cédula", NoIdentificacion: "1712345678", PaisNacionalidad: "Perú", Nombre: "Beto", ProvinciaResidencia: "Pichincha"},
		},
		Inventores: []submit.Inventor{{Nombre: "Luis", Email: "luis@example.com"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_RejectsNonNumericConvocatoria(t *testing.T) {
	result := acceptedResult()
	result.Values["convocatoria_id"] = "abc"

	_, err := submit.Assemble(schema.MustDefault(), result)
	var cerr *submit.ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected contract error, got %v", err)
	}
	if _, ok := cerr.Fields[submit.FieldConvocatoria]; !ok {
		t.Fatalf("expected %s violation, got %+v", submit.FieldConvocatoria, cerr.Fields)
	}
}

func TestAssemble_AcceptedWizardSatisfiesContract(t *testing.T) {
	c := testsupport.NewController(t)
	result := testsupport.Accept(t, c, map[string]string{"convocatoria_id": "12"})

	payload, err := submit.Assemble(c.Definition(), result)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if payload.ConvocatoriaID == nil || *payload.ConvocatoriaID != 12 {
		t.Fatalf("unexpected convocatoria %v", payload.ConvocatoriaID)
	}
	if got := payload.Solicitantes[0].TipoIdentificacion; got != "RUC" {
		t.Fatalf("expected default identification type, got %q", got)
	}

	contract, err := submit.DefaultContract(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	if err := contract.ValidateRequest(payload); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestContract_ValidateRequest(t *testing.T) {
	contract, err := submit.DefaultContract(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	if contract.Path() != submit.CreatePath {
		t.Fatalf("unexpected path %q", contract.Path())
	}

	payload, err := submit.Assemble(schema.MustDefault(), acceptedResult())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if err := contract.ValidateRequest(payload); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	payload.Titulo = ""
	payload.Solicitantes = []submit.Solicitante{}
	payload.Inventores[0].Email = "bad"

	err = contract.ValidateRequest(payload)
	var cerr *submit.ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected contract error, got %v", err)
	}
	keys := make([]string, 0, len(cerr.Fields))
	for key := range cerr.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	want := []string{"inventores/0/email_inventor", "solicitantes", "titulo"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("violation paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContract_RequiresCreateOperation(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info: {title: x, version: "1"}
paths:
  /api/otra/:
    get:
      responses:
        "200": {description: ok}
`)
	if _, err := submit.LoadContract(context.Background(), doc); err == nil {
		t.Fatal("expected missing operation to fail")
	}
	if _, err := submit.LoadContract(context.Background(), nil); err == nil {
		t.Fatal("expected empty document to fail")
	}
}

func newBackend(t *testing.T, status int, body string, seen *submit.Payload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != submit.CreatePath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(raw, seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Submit(t *testing.T) {
	var seen submit.Payload
	srv := newBackend(t, http.StatusCreated, `{"ok":true,"msg":"Solicitud creada","data":{"id":42}}`, &seen)

	client, err := submit.New(context.Background(), srv.URL+"/", submit.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	payload, err := submit.Assemble(schema.MustDefault(), acceptedResult())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	created, err := client.Submit(context.Background(), payload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Status != http.StatusCreated || created.Message != "Solicitud creada" {
		t.Fatalf("unexpected answer %+v", created)
	}
	if string(created.Data) != `{"id":42}` {
		t.Fatalf("unexpected data %s", created.Data)
	}
	if diff := cmp.Diff(payload, seen); diff != "" {
		t.Fatalf("posted payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_SubmitRejected(t *testing.T) {
	body := `{"ok":false,"msg":"Datos inválidos","data":{"errors":{"titulo":"Ya existe","solicitantes[1].nombre":["Requerido"]}}}`
	srv := newBackend(t, http.StatusBadRequest, body, nil)

	client, err := submit.New(context.Background(), srv.URL, submit.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	payload, _ := submit.Assemble(schema.MustDefault(), acceptedResult())

	_, err = client.Submit(context.Background(), payload)
	var berr *submit.BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	want := map[string][]string{
		"_form":                  {"Datos inválidos"},
		"titulo":                 {"Ya existe"},
		"solicitantes[1].nombre": {"Requerido"},
	}
	if diff := cmp.Diff(want, berr.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_SubmitUnexpectedStatus(t *testing.T) {
	srv := newBackend(t, http.StatusInternalServerError, `{"ok":false,"msg":"boom"}`, nil)
	client, err := submit.New(context.Background(), srv.URL, submit.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	payload, _ := submit.Assemble(schema.MustDefault(), acceptedResult())

	if _, err := client.Submit(context.Background(), payload); !errors.Is(err, submit.ErrUnexpectedStatus) {
		t.Fatalf("expected unexpected status, got %v", err)
	}
}

func TestClient_ContractViolationIsNotSent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := submit.New(context.Background(), srv.URL, submit.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	payload, _ := submit.Assemble(schema.MustDefault(), acceptedResult())
	payload.Inventores = []submit.Inventor{}

	_, err = client.Submit(context.Background(), payload)
	var cerr *submit.ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected contract error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no backend call, got %d", calls)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := submit.New(context.Background(), "  "); !errors.Is(err, submit.ErrNoBaseURL) {
		t.Fatalf("expected ErrNoBaseURL, got %v", err)
	}
}
