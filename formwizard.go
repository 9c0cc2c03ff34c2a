package formwizard

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Definition aliases model.Definition for callers that only import the root
// package.
type Definition = model.Definition

// Controller aliases wizard.Controller.
type Controller = wizard.Controller

// RenderOptions describes per-request overrides such as the form action,
// hidden fields and backend errors.
type RenderOptions = render.RenderOptions

// NewController builds a controller for the bundled patent application
// definition.
func NewController(options ...wizard.Option) (*wizard.Controller, error) {
	def, err := schema.Default()
	if err != nil {
		return nil, err
	}
	return wizard.New(def, options...)
}

// LoadDefinition reads and validates a YAML or JSON definition from disk.
func LoadDefinition(path string) (model.Definition, error) {
	return schema.LoadFile(path)
}

// GenerateHTML renders the current view of c with the vanilla renderer.
func GenerateHTML(ctx context.Context, c *wizard.Controller, options RenderOptions, rendererOptions ...vanilla.Option) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("formwizard: controller is nil")
	}
	r, err := vanilla.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, c.View(), options)
}

// EmbeddedTemplates exposes the built-in vanilla templates so callers can
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and runtime script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formwizard.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
