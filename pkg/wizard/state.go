package wizard

import (
	"sort"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// State is the mutable wizard state. The zero value is not usable; build one
// with NewState.
type State struct {
	current int
	total   int

	groups          map[string]*groupState
	values          map[string]string
	fieldErrors     map[string]string
	containerErrors map[string]string

	summary   Summary
	submitted bool
	scrollTop bool
}

// groupState tracks one repeatable group. counter is the next-ID counter and
// never decreases; live holds the indices of entries that still exist, in
// creation order.
type groupState struct {
	counter int
	live    []int
}

// NewState seeds the initial state for def: step 1 active, every group with
// its static base entry (index 1) and default values applied.
func NewState(def model.Definition) *State {
	s := &State{
		current:         1,
		total:           def.TotalSteps(),
		groups:          make(map[string]*groupState, len(def.Groups)),
		values:          make(map[string]string),
		fieldErrors:     make(map[string]string),
		containerErrors: make(map[string]string),
	}
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			if field.Default != "" {
				s.values[field.Name] = field.Default
			}
		}
	}
	for _, group := range def.Groups {
		s.groups[group.Name] = &groupState{counter: 1, live: []int{1}}
		for key, value := range model.BuildEntry(group, 1).Defaults() {
			s.values[key] = value
		}
	}
	return s
}

// CurrentStep reports the active 1-based step.
func (s *State) CurrentStep() int {
	return s.current
}

// TotalSteps reports the fixed number of steps.
func (s *State) TotalSteps() int {
	return s.total
}

// Counter reports the next-ID counter of group. It starts at 1 and only
// increases; it is not the number of live entries.
func (s *State) Counter(group string) int {
	if g, ok := s.groups[group]; ok {
		return g.counter
	}
	return 0
}

// Entries returns the live entry indices of group in creation order.
func (s *State) Entries(group string) []int {
	g, ok := s.groups[group]
	if !ok {
		return nil
	}
	return append([]int(nil), g.live...)
}

// Value returns the current value of a field key.
func (s *State) Value(key string) string {
	return s.values[key]
}

// Values returns a copy of every stored value.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// FieldError returns the visible error indicator of a field, if any.
func (s *State) FieldError(key string) string {
	return s.fieldErrors[key]
}

// ContainerError returns the indicator attached to a choice anchor container.
func (s *State) ContainerError(anchor string) string {
	return s.containerErrors[anchor]
}

// InvalidFields lists the keys currently marked invalid, sorted.
func (s *State) InvalidFields() []string {
	keys := make([]string, 0, len(s.fieldErrors))
	for key := range s.fieldErrors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Summary returns the last projected summary.
func (s *State) Summary() Summary {
	return s.summary
}

// Submitted reports whether the submission gate accepted the form.
func (s *State) Submitted() bool {
	return s.submitted
}

func (s *State) isLive(group string, index int) bool {
	g, ok := s.groups[group]
	if !ok {
		return false
	}
	for _, idx := range g.live {
		if idx == index {
			return true
		}
	}
	return false
}
