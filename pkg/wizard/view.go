package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/model"
)

// View is the renderable projection of a wizard. It is a pure function of the
// definition and state; renderers never consult the controller directly.
type View struct {
	ID          string
	Title       string
	CurrentStep int
	TotalSteps  int
	Counter     string
	Progress    float64
	Indicators  []Indicator
	Navigation  Navigation
	Sections    []SectionView
	Summary     Summary
	// SummaryTriggers lists the field keys whose input refreshes Summary.
	SummaryTriggers []string
	Confirmation    FieldView
	Messages        model.Messages
	Notices         []Notice
	ScrollTop       bool
	Submitted       bool
}

// SectionView is one step section.
type SectionView struct {
	Number  int
	Title   string
	Active  bool
	Fields  []FieldView
	Groups  []GroupView
	Summary bool
}

// GroupView is a repeatable group with its live entries.
type GroupView struct {
	Name       string
	Title      string
	Container  string
	AddLabel   string
	AddControl string
	Entries    []EntryView
}

// EntryView is one entry of a group. The base entry is static and not
// removable.
type EntryView struct {
	Index     int
	Title     string
	Removable bool
	Fields    []FieldView
}

// FieldView is one input.
type FieldView struct {
	Key         string
	Label       string
	Kind        model.FieldKind
	Required    bool
	Placeholder string
	Width       string
	Value       string
	Checked     bool
	Error       string
	Options     []OptionView
}

// OptionView is one radio choice. Error is set on the anchor option of a
// failed choice rule.
type OptionView struct {
	ID      string
	Value   string
	Label   string
	Checked bool
	Error   string
}

// BuildView projects def and state into a View.
func BuildView(def model.Definition, state *State, notices ...Notice) View {
	view := View{
		ID:          def.ID,
		Title:       def.Title,
		CurrentStep: state.current,
		TotalSteps:  state.total,
		Counter:     stepCounter(def, state),
		Progress:    progress(state.current, state.total),
		Indicators:  indicators(def, state),
		Navigation:  navigation(state),
		Summary:     state.summary,
		Messages:    def.Messages,

		SummaryTriggers: append([]string(nil), def.Summary.Triggers...),
		Notices:         notices,
		ScrollTop:       state.scrollTop,
		Submitted:       state.submitted,
	}

	for _, step := range def.Steps {
		section := SectionView{
			Number:  step.Number,
			Title:   step.Title,
			Active:  step.Number == state.current,
			Summary: step.Summary,
		}
		for _, field := range step.Fields {
			section.Fields = append(section.Fields, fieldView(state, field.Name, field, 0))
		}
		for _, name := range step.Groups {
			if group, ok := def.Group(name); ok {
				section.Groups = append(section.Groups, groupView(state, group))
			}
		}
		view.Sections = append(view.Sections, section)
	}

	if def.Confirmation.Name != "" {
		view.Confirmation = fieldView(state, def.Confirmation.Name, def.Confirmation, 0)
	}
	return view
}

// View projects the controller's current state.
func (c *Controller) View(notices ...Notice) View {
	return BuildView(c.def, c.state, notices...)
}

func groupView(state *State, group model.GroupSpec) GroupView {
	gv := GroupView{
		Name:       group.Name,
		Title:      group.Title,
		Container:  group.Container,
		AddLabel:   group.AddLabel,
		AddControl: group.AddControl,
	}
	for _, index := range state.Entries(group.Name) {
		entry := model.BuildEntry(group, index)
		ev := EntryView{
			Index:     index,
			Title:     entry.Title,
			Removable: index > 1,
		}
		for _, field := range entry.Fields {
			ev.Fields = append(ev.Fields, fieldView(state, field.Key, field.Spec, index))
		}
		gv.Entries = append(gv.Entries, ev)
	}
	return gv
}

func fieldView(state *State, key string, spec model.FieldSpec, index int) FieldView {
	value := state.values[key]
	fv := FieldView{
		Key:         key,
		Label:       model.LabelFor(spec),
		Kind:        spec.Kind,
		Required:    spec.Required,
		Placeholder: spec.Placeholder,
		Width:       spec.Width,
		Value:       value,
		Checked:     spec.Kind == model.FieldKindCheckbox && value == model.CheckedValue,
		Error:       state.fieldErrors[key],
	}
	for pos, opt := range spec.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		fv.Options = append(fv.Options, OptionView{
			ID:      model.OptionID(key, opt, pos, index),
			Value:   opt.Value,
			Label:   label,
			Checked: value != "" && value == opt.Value,
		})
		if index == 0 {
			fv.Options[pos].Error = state.containerErrors[opt.ID]
		}
	}
	return fv
}
