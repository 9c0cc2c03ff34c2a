package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Run walks c through every step using the prompt driver and returns the
// accepted submission. Each step is prompted in full; when advancing is
// blocked only the invalid fields are asked again. Entry groups offer to add
// and remove entries after their live entries are filled.
func (r *Renderer) Run(ctx context.Context, c *wizard.Controller) (wizard.Result, error) {
	if c == nil {
		return wizard.Result{}, ErrNoController
	}

	onlyInvalid := false
	for {
		if err := ctx.Err(); err != nil {
			return wizard.Result{}, err
		}
		view := c.View()
		section := view.Sections[view.CurrentStep-1]
		if err := r.info(ctx, fmt.Sprintf("%s: %s", view.Counter, section.Title)); err != nil {
			return wizard.Result{}, err
		}

		if section.Summary {
			result, done, err := r.review(ctx, c, view)
			if err != nil || done {
				return result, err
			}
			onlyInvalid = false
			continue
		}

		if err := r.fillSection(ctx, c, section, view.Messages, onlyInvalid); err != nil {
			return wizard.Result{}, err
		}

		if view.CurrentStep > 1 {
			choice, err := r.driver.Select(ctx, SelectConfig{
				Message: r.theme.PromptPrefix + section.Title,
				Options: []string{view.Messages.Next, view.Messages.Previous},
			})
			if err != nil {
				return wizard.Result{}, err
			}
			if choice == 1 {
				if _, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventPrev}); err != nil {
					return wizard.Result{}, err
				}
				onlyInvalid = false
				continue
			}
		}

		out, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventNext})
		if err != nil {
			return wizard.Result{}, err
		}
		onlyInvalid = out.Valid != nil && !*out.Valid
		if onlyInvalid {
			current := c.View()
			if err := r.reportErrors(ctx, current.Sections[current.CurrentStep-1]); err != nil {
				return wizard.Result{}, err
			}
		}
	}
}

func (r *Renderer) fillSection(ctx context.Context, c *wizard.Controller, section wizard.SectionView, msgs model.Messages, onlyInvalid bool) error {
	for _, field := range section.Fields {
		if onlyInvalid && len(fieldMessages(field)) == 0 {
			continue
		}
		if err := r.promptField(ctx, c, field, msgs); err != nil {
			return err
		}
	}
	for _, group := range section.Groups {
		if err := r.fillGroup(ctx, c, group, msgs, onlyInvalid); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) fillGroup(ctx context.Context, c *wizard.Controller, group wizard.GroupView, msgs model.Messages, onlyInvalid bool) error {
	for _, entry := range group.Entries {
		if err := r.fillEntry(ctx, c, entry, msgs, onlyInvalid); err != nil {
			return err
		}
	}
	if onlyInvalid {
		return nil
	}

	for {
		add, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.theme.PromptPrefix + group.AddLabel + "?"})
		if err != nil {
			return err
		}
		if !add {
			break
		}
		out, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventAddEntry, Group: group.Name})
		if err != nil {
			return err
		}
		if entry, ok := findEntry(c.View(), group.Name, out.Entry); ok {
			if err := r.fillEntry(ctx, c, entry, msgs, false); err != nil {
				return err
			}
		}
	}

	return r.removeEntries(ctx, c, group.Name, msgs)
}

func (r *Renderer) fillEntry(ctx context.Context, c *wizard.Controller, entry wizard.EntryView, msgs model.Messages, onlyInvalid bool) error {
	var fields []wizard.FieldView
	for _, field := range entry.Fields {
		if onlyInvalid && len(fieldMessages(field)) == 0 {
			continue
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.info(ctx, entry.Title); err != nil {
		return err
	}
	for _, field := range fields {
		if err := r.promptField(ctx, c, field, msgs); err != nil {
			return err
		}
	}
	return nil
}

// removeEntries offers to drop appended entries until the user declines or
// only the base entry is left.
func (r *Renderer) removeEntries(ctx context.Context, c *wizard.Controller, groupName string, msgs model.Messages) error {
	for {
		var removable []wizard.EntryView
		var group wizard.GroupView
		if g, ok := findGroup(c.View(), groupName); ok {
			group = g
			for _, entry := range g.Entries {
				if entry.Removable {
					removable = append(removable, entry)
				}
			}
		}
		if len(removable) == 0 {
			return nil
		}

		remove, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s%s (%s)?", r.theme.PromptPrefix, msgs.Remove, group.Title),
		})
		if err != nil || !remove {
			return err
		}

		titles := make([]string, len(removable))
		for i, entry := range removable {
			titles[i] = entry.Title
		}
		choice, err := r.driver.Select(ctx, SelectConfig{Message: r.theme.PromptPrefix + msgs.Remove, Options: titles})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(removable) {
			continue
		}
		event := wizard.Event{Type: wizard.EventRemoveEntry, Group: groupName, Index: removable[choice].Index}
		if _, err := c.HandleEvent(ctx, event); err != nil {
			return err
		}
	}
}

// promptField asks for one value until the field passes its own check.
func (r *Renderer) promptField(ctx context.Context, c *wizard.Controller, field wizard.FieldView, msgs model.Messages) error {
	current := field
	for {
		value, err := r.ask(ctx, current, msgs)
		if err != nil {
			return err
		}
		if _, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventInput, Key: field.Key, Value: value}); err != nil {
			return err
		}
		out, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventBlur, Key: field.Key})
		if err != nil {
			return err
		}
		if out.Valid == nil || *out.Valid {
			return nil
		}

		message := c.State().FieldError(field.Key)
		if err := r.warn(ctx, field.Label+": "+message); err != nil {
			return err
		}
		current.Value = value
	}
}

func (r *Renderer) ask(ctx context.Context, field wizard.FieldView, msgs model.Messages) (string, error) {
	message := r.theme.PromptPrefix + field.Label
	switch field.Kind {
	case model.FieldKindRadio:
		options := make([]string, len(field.Options))
		selected := 0
		for i, opt := range field.Options {
			options[i] = opt.Label
			if opt.Checked || (field.Value != "" && opt.Value == field.Value) {
				selected = i
			}
		}
		choice, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: selected})
		if err != nil {
			return "", err
		}
		if choice < 0 || choice >= len(field.Options) {
			return "", fmt.Errorf("tui: invalid choice %d for %s", choice, field.Key)
		}
		return field.Options[choice].Value, nil

	case model.FieldKindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: field.Checked})
		if err != nil {
			return "", err
		}
		if checked {
			return model.CheckedValue, nil
		}
		return "", nil

	case model.FieldKindTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: field.Value, Help: field.Placeholder})

	default:
		cfg := InputConfig{Message: message, Default: field.Value, Help: field.Placeholder}
		if field.Required {
			cfg.Validator = func(value string) error {
				if strings.TrimSpace(value) == "" {
					return errors.New(msgs.Required)
				}
				return nil
			}
		}
		return r.driver.Input(ctx, cfg)
	}
}

// review shows the summary, asks for the confirmation and either submits or
// steps back. done reports an accepted submission.
func (r *Renderer) review(ctx context.Context, c *wizard.Controller, view wizard.View) (wizard.Result, bool, error) {
	for _, line := range summaryLines(view.Summary) {
		if err := r.info(ctx, line); err != nil {
			return wizard.Result{}, false, err
		}
	}

	if view.Confirmation.Key != "" {
		if err := r.promptField(ctx, c, view.Confirmation, view.Messages); err != nil {
			return wizard.Result{}, false, err
		}
	}

	choice, err := r.driver.Select(ctx, SelectConfig{
		Message: r.theme.PromptPrefix + view.Sections[view.CurrentStep-1].Title,
		Options: []string{view.Messages.Submit, view.Messages.Previous},
	})
	if err != nil {
		return wizard.Result{}, false, err
	}
	if choice == 1 {
		_, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventPrev})
		return wizard.Result{}, false, err
	}

	out, err := c.HandleEvent(ctx, wizard.Event{Type: wizard.EventSubmit})
	if err != nil {
		return wizard.Result{}, false, err
	}
	for _, notice := range out.Notices {
		if err := r.driver.Info(ctx, r.noticePrefix(notice.Level)+notice.Message); err != nil {
			return wizard.Result{}, false, err
		}
	}
	if out.Result == nil {
		return wizard.Result{}, false, nil
	}
	return *out.Result, true, nil
}

func (r *Renderer) reportErrors(ctx context.Context, section wizard.SectionView) error {
	report := func(field wizard.FieldView) error {
		for _, message := range fieldMessages(field) {
			if err := r.warn(ctx, field.Label+": "+message); err != nil {
				return err
			}
		}
		return nil
	}
	for _, field := range section.Fields {
		if err := report(field); err != nil {
			return err
		}
	}
	for _, group := range section.Groups {
		for _, entry := range group.Entries {
			for _, field := range entry.Fields {
				if err := report(field); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) warn(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func findGroup(view wizard.View, name string) (wizard.GroupView, bool) {
	for _, section := range view.Sections {
		for _, group := range section.Groups {
			if group.Name == name {
				return group, true
			}
		}
	}
	return wizard.GroupView{}, false
}

func findEntry(view wizard.View, groupName string, index int) (wizard.EntryView, bool) {
	group, ok := findGroup(view, groupName)
	if !ok {
		return wizard.EntryView{}, false
	}
	for _, entry := range group.Entries {
		if entry.Index == index {
			return entry, true
		}
	}
	return wizard.EntryView{}, false
}
