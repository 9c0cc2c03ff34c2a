package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// JSONRenderer serialises the view for script clients.
type JSONRenderer struct{}

// NewJSONRenderer returns the JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (*JSONRenderer) Name() string {
	return "json"
}

func (*JSONRenderer) ContentType() string {
	return "application/json"
}

type jsonDocument struct {
	View       wizard.View         `json:"view"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
}

func (*JSONRenderer) Render(_ context.Context, view wizard.View, options RenderOptions) ([]byte, error) {
	out, err := json.Marshal(jsonDocument{
		View:       view,
		Errors:     options.Errors,
		FormErrors: options.FormErrors,
	})
	if err != nil {
		return nil, fmt.Errorf("json renderer: %w", err)
	}
	return out, nil
}
