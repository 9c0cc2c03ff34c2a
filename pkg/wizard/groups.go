package wizard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// AddEntry appends a new entry to group and returns its index. The entry is
// built from the group's field-spec table with defaults applied, and the
// summary is recomputed.
func (c *Controller) AddEntry(group string) (int, error) {
	spec, ok := c.def.Group(group)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}
	gs := c.state.groups[group]

	gs.counter++
	index := gs.counter
	entry := model.BuildEntry(spec, index)
	for key, value := range entry.Defaults() {
		c.state.values[key] = value
	}
	gs.live = append(gs.live, index)
	c.state.scrollTop = false

	c.RefreshSummary()
	c.recorder.EntryAdded(group)
	c.logger.Debug("entry added", zap.String("group", group), zap.Int("index", index))
	return index, nil
}

// AddApplicant appends an applicant entry.
func (c *Controller) AddApplicant() (int, error) {
	return c.AddEntry(c.def.Summary.ApplicantGroup)
}

// AddInventor appends an inventor entry.
func (c *Controller) AddInventor() (int, error) {
	return c.AddEntry(c.def.Summary.InventorGroup)
}

// RemoveEntry drops every value and indicator of the entry in one step and
// recomputes the summary. Surviving entries keep their indices and the
// group counter is left untouched.
func (c *Controller) RemoveEntry(group string, index int) error {
	spec, ok := c.def.Group(group)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}
	if index == 1 {
		return fmt.Errorf("%w: %s", ErrBaseEntry, group)
	}
	gs := c.state.groups[group]
	pos := -1
	for i, idx := range gs.live {
		if idx == index {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %s %d", ErrUnknownEntry, group, index)
	}

	for _, key := range model.BuildEntry(spec, index).Keys() {
		delete(c.state.values, key)
		delete(c.state.fieldErrors, key)
	}
	gs.live = append(gs.live[:pos], gs.live[pos+1:]...)

	c.RefreshSummary()
	c.recorder.EntryRemoved(group)
	c.logger.Debug("entry removed", zap.String("group", group), zap.Int("index", index))
	return nil
}

// Entries returns the materialised live entries of group in creation order.
func (c *Controller) Entries(group string) []model.Entry {
	spec, ok := c.def.Group(group)
	if !ok {
		return nil
	}
	indices := c.state.Entries(group)
	out := make([]model.Entry, 0, len(indices))
	for _, index := range indices {
		out = append(out, model.BuildEntry(spec, index))
	}
	return out
}
