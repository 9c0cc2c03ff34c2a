package submit

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// TipoPatente is the intellectual-property kind filed by the wizard.
const TipoPatente = "patente"

// Static field keys of the bundled definition that feed the payload.
const (
	FieldConvocatoria     = "convocatoria_id"
	FieldResumen          = "resumen"
	FieldDescripcion      = "descripcion"
	FieldReivindicaciones = "reivindicaciones"
)

// Payload is the request body of POST /api/solicitudes/. Entry-group items
// keep the field bases of the wizard as JSON names.
type Payload struct {
	TipoPI           string        `json:"tipo_pi"`
	Modalidad        string        `json:"modalidad"`
	Titulo           string        `json:"titulo"`
	Resumen          string        `json:"resumen,omitempty"`
	Descripcion      string        `json:"descripcion"`
	Reivindicaciones string        `json:"reivindicaciones,omitempty"`
	ConvocatoriaID   *int          `json:"convocatoria_id,omitempty"`
	Solicitantes     []Solicitante `json:"solicitantes"`
	Inventores       []Inventor    `json:"inventores"`
}

// Solicitante is one applicant entry.
type Solicitante struct {
	TipoIdentificacion  string `json:"tipo_identificacion"`
	NoIdentificacion    string `json:"no_identificacion"`
	PaisNacionalidad    string `json:"pais_nacionalidad"`
	Nombre              string `json:"nombre"`
	ProvinciaResidencia string `json:"provincia_residencia,omitempty"`
}

// Inventor is one inventor/designer entry.
type Inventor struct {
	Nombre string `json:"nombre_inventor"`
	Email  string `json:"email_inventor"`
}

// PayloadAliases maps payload names onto wizard field bases and group names
// so backend error paths ("solicitantes[0].nombre") resolve to field keys.
func PayloadAliases(def model.Definition) map[string]string {
	return map[string]string{
		"titulo":       def.Summary.TitleField,
		"modalidad":    def.Summary.FilingTypeField,
		"solicitantes": def.Summary.ApplicantGroup,
		"inventores":   def.Summary.InventorGroup,
	}
}

// Assemble builds the payload from an accepted submission. Entries are
// emitted in live order; a non-numeric convocatoria id is reported as a
// *ContractError on that field.
func Assemble(def model.Definition, result wizard.Result) (Payload, error) {
	values := result.Values
	get := func(key string) string {
		return strings.TrimSpace(values[key])
	}

	payload := Payload{
		TipoPI:           TipoPatente,
		Modalidad:        get(def.Summary.FilingTypeField),
		Titulo:           get(def.Summary.TitleField),
		Resumen:          get(FieldResumen),
		Descripcion:      get(FieldDescripcion),
		Reivindicaciones: get(FieldReivindicaciones),
		Solicitantes:     []Solicitante{},
		Inventores:       []Inventor{},
	}

	if raw := get(FieldConvocatoria); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Payload{}, &ContractError{
				Fields: map[string][]string{FieldConvocatoria: {"Debe ser un número entero"}},
			}
		}
		payload.ConvocatoriaID = &id
	}

	for _, index := range result.Entries[def.Summary.ApplicantGroup] {
		payload.Solicitantes = append(payload.Solicitantes, Solicitante{
			TipoIdentificacion:  get(model.Key("tipo_identificacion", index)),
			NoIdentificacion:    get(model.Key("no_identificacion", index)),
			PaisNacionalidad:    get(model.Key("pais_nacionalidad", index)),
			Nombre:              get(model.Key(def.Summary.ApplicantField, index)),
			ProvinciaResidencia: get(model.Key("provincia_residencia", index)),
		})
	}
	for _, index := range result.Entries[def.Summary.InventorGroup] {
		payload.Inventores = append(payload.Inventores, Inventor{
			Nombre: get(model.Key(def.Summary.InventorField, index)),
			Email:  get(model.Key("email_inventor", index)),
		})
	}
	return payload, nil
}
