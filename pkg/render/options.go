package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use without
// touching wizard state.
type RenderOptions struct {
	// Action is the URL the wizard form posts its events to.
	Action string
	// Hidden carries hidden inputs such as the CSRF token. Renderers emit them
	// sorted by name.
	Hidden map[string]string
	// Errors surfaces backend validation feedback keyed by field key. It is
	// shown next to the indicators produced by the wizard validator.
	Errors map[string][]string
	// FormErrors are backend messages that could not be tied to a field.
	FormErrors []string
	// Theme carries the resolved theme (tokens, CSS vars, asset resolver).
	Theme *theme.RendererConfig
	// Stylesheet overrides the URL of the wizard stylesheet. Empty inlines
	// the embedded default.
	Stylesheet string
}
