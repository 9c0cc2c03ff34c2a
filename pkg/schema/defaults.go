package schema

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Literal texts used when a definition leaves them blank.
const (
	DefaultStepCounter         = "Paso %d de %d"
	DefaultConfirmationMissing = "Debe confirmar que la información es verídica antes de enviar."
	DefaultSubmitSuccess       = "¡Formulario enviado con éxito! La solicitud de patente ha sido recibida."
	DefaultRequired            = "Este campo es obligatorio"
	DefaultInvalidEmail        = "Ingrese un email válido"
	DefaultDocumentsFormat     = "%d documentos obligatorios"
	DefaultNotSpecified        = "No especificado"
	DefaultNotSelected         = "No seleccionado"
	DefaultNoneSpecified       = "No especificados"
)

func applyDefaults(def *model.Definition) {
	for i := range def.Steps {
		step := &def.Steps[i]
		if step.Number == 0 {
			step.Number = i + 1
		}
		for j := range step.Fields {
			normaliseField(&step.Fields[j])
		}
	}
	for i := range def.Groups {
		for j := range def.Groups[i].Fields {
			normaliseField(&def.Groups[i].Fields[j])
		}
	}
	if def.Confirmation.Kind == "" && def.Confirmation.Name != "" {
		def.Confirmation.Kind = model.FieldKindCheckbox
	}

	msgs := &def.Messages
	setDefault(&msgs.StepCounter, DefaultStepCounter)
	setDefault(&msgs.ConfirmationMissing, DefaultConfirmationMissing)
	setDefault(&msgs.SubmitSuccess, DefaultSubmitSuccess)
	setDefault(&msgs.Required, DefaultRequired)
	setDefault(&msgs.InvalidEmail, DefaultInvalidEmail)
	setDefault(&msgs.Remove, "Eliminar")
	setDefault(&msgs.Previous, "Anterior")
	setDefault(&msgs.Next, "Siguiente")
	setDefault(&msgs.Submit, "Enviar")

	summary := &def.Summary
	setDefault(&summary.DocumentsFormat, DefaultDocumentsFormat)
	setDefault(&summary.Placeholders.Title, DefaultNotSpecified)
	setDefault(&summary.Placeholders.FilingType, DefaultNotSelected)
	setDefault(&summary.Placeholders.PrimaryApplicant, DefaultNotSpecified)
	setDefault(&summary.Placeholders.Inventors, DefaultNoneSpecified)
}

func normaliseField(field *model.FieldSpec) {
	field.Name = strings.TrimSpace(field.Name)
	if field.Kind == "" {
		field.Kind = model.FieldKindText
	}
}

func setDefault(target *string, value string) {
	if strings.TrimSpace(*target) == "" {
		*target = value
	}
}
