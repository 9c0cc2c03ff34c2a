package schema

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// DefaultDefinitionID identifies the bundled patent application wizard.
const DefaultDefinitionID = "solicitud_patente"

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// EmbeddedFS returns the bundled definitions. Callers may pass this
// filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the bundled patent application definition.
func Default() (model.Definition, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return model.Definition{}, err
	}
	def, ok := store.Definition(DefaultDefinitionID)
	if !ok {
		return model.Definition{}, fs.ErrNotExist
	}
	return def, nil
}

// MustDefault panics when the bundled definition fails to load. Useful for
// init-time wiring and tests.
func MustDefault() model.Definition {
	def, err := Default()
	if err != nil {
		panic(err)
	}
	return def
}
