package wizard

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Controller) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// WithState resumes a controller over an existing state, for example one
// held by a session store.
func WithState(state *State) Option {
	return func(c *Controller) {
		if state != nil {
			c.state = state
		}
	}
}

// Controller drives one wizard instance.
type Controller struct {
	def      model.Definition
	state    *State
	logger   *zap.Logger
	recorder Recorder
	triggers map[string]struct{}
}

// New constructs a controller for def. The definition is expected to have
// passed schema.Validate.
func New(def model.Definition, options ...Option) (*Controller, error) {
	if def.TotalSteps() < 2 {
		return nil, fmt.Errorf("wizard: definition %q needs at least two steps", def.ID)
	}

	c := &Controller{
		def:      def,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		triggers: make(map[string]struct{}, len(def.Summary.Triggers)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.state == nil {
		c.state = NewState(def)
	}
	if c.state.total != def.TotalSteps() {
		return nil, fmt.Errorf("wizard: state has %d steps, definition %q has %d", c.state.total, def.ID, def.TotalSteps())
	}
	if len(c.state.groups) != len(def.Groups) {
		return nil, fmt.Errorf("wizard: state has %d groups, definition %q has %d", len(c.state.groups), def.ID, len(def.Groups))
	}
	for _, group := range def.Groups {
		if _, ok := c.state.groups[group.Name]; !ok {
			return nil, fmt.Errorf("wizard: state has no entries for group %q of definition %q", group.Name, def.ID)
		}
	}
	for _, key := range def.Summary.Triggers {
		c.triggers[strings.TrimSpace(key)] = struct{}{}
	}
	c.logger = c.logger.With(zap.String("wizard", def.ID))
	c.RefreshSummary()
	return c, nil
}

// Definition returns the definition the controller interprets.
func (c *Controller) Definition() model.Definition {
	return c.def
}

// State exposes the controller state.
func (c *Controller) State() *State {
	return c.state
}

// CurrentStep reports the active step.
func (c *Controller) CurrentStep() int {
	return c.state.current
}

// ApplicantCount reports the applicant next-ID counter.
func (c *Controller) ApplicantCount() int {
	return c.state.Counter(c.def.Summary.ApplicantGroup)
}

// InventorCount reports the inventor next-ID counter.
func (c *Controller) InventorCount() int {
	return c.state.Counter(c.def.Summary.InventorGroup)
}

// SetValue records the value of a tracked field. Values of summary trigger
// fields recompute the summary, like an input event would.
func (c *Controller) SetValue(key, value string) error {
	spec, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch spec.Kind {
	case model.FieldKindCheckbox:
		value = normaliseChecked(value)
	case model.FieldKindRadio:
		if value != "" && !hasOption(spec, value) {
			return fmt.Errorf("%w: %q for %s", ErrInvalidOption, value, key)
		}
	}

	c.state.values[key] = value
	c.state.scrollTop = false
	if _, ok := c.triggers[key]; ok {
		c.RefreshSummary()
	}
	return nil
}

// Confirmed reports whether the confirmation checkbox is ticked.
func (c *Controller) Confirmed() bool {
	return c.state.values[c.def.Confirmation.Name] == model.CheckedValue
}

// lookup resolves a key to its field spec. Group keys only resolve while
// their entry is live.
func (c *Controller) lookup(key string) (model.FieldSpec, error) {
	if spec, _, ok := c.def.StaticField(key); ok {
		return spec, nil
	}
	if base, index, ok := model.ParseKey(key); ok && model.Key(base, index) == key {
		for _, group := range c.def.Groups {
			spec, found := group.Field(base)
			if !found {
				continue
			}
			if !c.state.isLive(group.Name, index) {
				return model.FieldSpec{}, fmt.Errorf("%w: %s (entry %d of %s does not exist)", ErrUnknownField, key, index, group.Name)
			}
			return spec, nil
		}
	}
	return model.FieldSpec{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
}

func hasOption(spec model.FieldSpec, value string) bool {
	for _, opt := range spec.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func normaliseChecked(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes", "si", "sí":
		return model.CheckedValue
	default:
		return ""
	}
}
