package vanilla

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type pageContext struct {
	ID          string
	Title       string
	Lang        string
	Action      string
	Counter     string
	Progress    float64
	CurrentStep int
	TotalSteps  int
	ScrollTop   bool
	Submitted   bool

	ThemeName    string
	ThemeVariant string
	ThemeStyle   string
	Stylesheet   string
	Script       string
	InlineStyle  string
	InlineScript string

	Hidden       []render.HiddenField
	Notices      []noticeContext
	Steps        []stepContext
	Sections     []sectionContext
	Navigation   wizard.Navigation
	Messages     model.Messages
	Summary      wizard.Summary
	Triggers     string
	Confirmation fieldContext
	SaveEvent    string
	NextEvent    string
	PrevEvent    string
	SubmitEvent  string
}

type noticeContext struct {
	Class string
	HTML  string
}

type stepContext struct {
	Number int
	Title  string
	Class  string
}

type sectionContext struct {
	Number  int
	Title   string
	Active  bool
	Summary bool
	Fields  []fieldContext
	Groups  []groupContext
}

type groupContext struct {
	Name       string
	Title      string
	Container  string
	AddLabel   string
	AddControl string
	AddEvent   string
	HasBase    bool
	Base       entryContext
	Appended   []entryContext
}

type entryContext struct {
	Index       int
	Title       string
	Removable   bool
	RemoveEvent string
	Fields      []fieldContext
}

type fieldContext struct {
	Key         string
	Label       string
	Type        string
	IsTextarea  bool
	IsRadio     bool
	IsCheckbox  bool
	Required    bool
	Placeholder string
	Value       string
	Checked     bool
	Invalid     bool
	Messages    []string
	ColClass    string
	Options     []optionContext
}

type optionContext struct {
	ID      string
	Value   string
	Label   string
	Checked bool
	Invalid bool
	Message string
}

func (r *Renderer) buildPage(view wizard.View, options render.RenderOptions) pageContext {
	page := pageContext{
		ID:          view.ID,
		Title:       view.Title,
		Lang:        r.lang,
		Action:      options.Action,
		Counter:     view.Counter,
		Progress:    view.Progress,
		CurrentStep: view.CurrentStep,
		TotalSteps:  view.TotalSteps,
		ScrollTop:   view.ScrollTop,
		Submitted:   view.Submitted,
		Hidden:      render.SortedHiddenFields(options.Hidden),
		Navigation:  view.Navigation,
		Messages:    view.Messages,
		Summary:     r.sanitizeSummary(view.Summary),
		Triggers:    strings.Join(view.SummaryTriggers, " "),
		SaveEvent:   render.EventSave,
		NextEvent:   render.EncodeEvent(wizard.Event{Type: wizard.EventNext}),
		PrevEvent:   render.EncodeEvent(wizard.Event{Type: wizard.EventPrev}),
		SubmitEvent: render.EncodeEvent(wizard.Event{Type: wizard.EventSubmit}),
	}
	r.applyAssets(&page, options)

	for _, notice := range view.Notices {
		page.Notices = append(page.Notices, r.notice(notice.Level, notice.Message))
	}
	for _, message := range options.FormErrors {
		page.Notices = append(page.Notices, r.notice(wizard.NoticeError, message))
	}

	for _, indicator := range view.Indicators {
		page.Steps = append(page.Steps, stepContext{
			Number: indicator.Number,
			Title:  indicator.Title,
			Class:  stepClass(indicator),
		})
	}

	for _, section := range view.Sections {
		sc := sectionContext{
			Number:  section.Number,
			Title:   section.Title,
			Active:  section.Active,
			Summary: section.Summary,
		}
		for _, field := range section.Fields {
			sc.Fields = append(sc.Fields, buildField(field, options.Errors))
		}
		for _, group := range section.Groups {
			sc.Groups = append(sc.Groups, buildGroup(group, options.Errors))
		}
		page.Sections = append(page.Sections, sc)
	}

	if view.Confirmation.Key != "" {
		page.Confirmation = buildField(view.Confirmation, options.Errors)
	}
	return page
}

func (r *Renderer) applyAssets(page *pageContext, options render.RenderOptions) {
	page.Stylesheet = strings.TrimSpace(options.Stylesheet)
	if cfg := options.Theme; cfg != nil {
		page.ThemeName = cfg.Theme
		page.ThemeVariant = cfg.Variant
		page.ThemeStyle = render.CSSVarsStyle(cfg.CSSVars)
		if page.Stylesheet == "" && cfg.AssetURL != nil {
			page.Stylesheet = cfg.AssetURL("stylesheet")
		}
	}

	if r.assetsURL != "" {
		if page.Stylesheet == "" {
			page.Stylesheet = r.assetsURL + "/" + StylesheetName
		}
		page.Script = r.assetsURL + "/" + RuntimeScriptName
		return
	}
	if page.Stylesheet == "" {
		page.InlineStyle = defaultStylesheet()
	}
	page.InlineScript = defaultRuntimeScript()
}

func (r *Renderer) notice(level wizard.NoticeLevel, message string) noticeContext {
	class := "alert alert-danger"
	if level == wizard.NoticeSuccess {
		class = "alert alert-success"
	}
	return noticeContext{Class: class, HTML: r.noticePolicy.Sanitize(message)}
}

// sanitizeSummary strips markup from user-entered values. The result is
// already escaped and is emitted as-is by the template.
func (r *Renderer) sanitizeSummary(summary wizard.Summary) wizard.Summary {
	return wizard.Summary{
		Title:            r.textPolicy.Sanitize(summary.Title),
		FilingType:       r.textPolicy.Sanitize(summary.FilingType),
		PrimaryApplicant: r.textPolicy.Sanitize(summary.PrimaryApplicant),
		Inventors:        r.textPolicy.Sanitize(summary.Inventors),
		Documents:        r.textPolicy.Sanitize(summary.Documents),
	}
}

func stepClass(indicator wizard.Indicator) string {
	classes := []string{string(ClassStep)}
	if indicator.Active {
		classes = append(classes, string(ClassActive))
	}
	if indicator.Completed {
		classes = append(classes, string(ClassCompleted))
	}
	return strings.Join(classes, " ")
}

// buildGroup splits the base entry, rendered in place, from appended entries
// that live inside the group's container.
func buildGroup(group wizard.GroupView, errs map[string][]string) groupContext {
	gc := groupContext{
		Name:       group.Name,
		Title:      group.Title,
		Container:  group.Container,
		AddLabel:   group.AddLabel,
		AddControl: group.AddControl,
		AddEvent:   render.EncodeEvent(wizard.Event{Type: wizard.EventAddEntry, Group: group.Name}),
	}
	for _, entry := range group.Entries {
		ec := entryContext{
			Index:     entry.Index,
			Title:     entry.Title,
			Removable: entry.Removable,
		}
		if entry.Removable {
			ec.RemoveEvent = render.EncodeEvent(wizard.Event{Type: wizard.EventRemoveEntry, Group: group.Name, Index: entry.Index})
		}
		for _, field := range entry.Fields {
			ec.Fields = append(ec.Fields, buildField(field, errs))
		}
		if !entry.Removable && !gc.HasBase {
			gc.Base, gc.HasBase = ec, true
			continue
		}
		gc.Appended = append(gc.Appended, ec)
	}
	return gc
}

func buildField(field wizard.FieldView, errs map[string][]string) fieldContext {
	fc := fieldContext{
		Key:         field.Key,
		Label:       field.Label,
		Type:        inputType(field.Kind),
		IsTextarea:  field.Kind == model.FieldKindTextArea,
		IsRadio:     field.Kind == model.FieldKindRadio,
		IsCheckbox:  field.Kind == model.FieldKindCheckbox,
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Value:       field.Value,
		Checked:     field.Checked,
		ColClass:    columnClass(field.Width),
	}
	if field.Error != "" {
		fc.Messages = append(fc.Messages, field.Error)
	}
	for _, message := range errs[field.Key] {
		if message = strings.TrimSpace(message); message != "" {
			fc.Messages = append(fc.Messages, message)
		}
	}
	fc.Invalid = len(fc.Messages) > 0

	for _, opt := range field.Options {
		fc.Options = append(fc.Options, optionContext{
			ID:      opt.ID,
			Value:   opt.Value,
			Label:   opt.Label,
			Checked: opt.Checked,
			Invalid: opt.Error != "",
			Message: opt.Error,
		})
	}
	return fc
}
