package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Summary is the read-only projection shown on the review step.
type Summary struct {
	Title            string `json:"title"`
	FilingType       string `json:"filingType"`
	PrimaryApplicant string `json:"primaryApplicant"`
	Inventors        string `json:"inventors"`
	Documents        string `json:"documents"`
}

// Project derives the summary from the definition and the live values of
// state. It has no side effects.
func Project(def model.Definition, state *State) Summary {
	spec := def.Summary
	ph := spec.Placeholders

	out := Summary{
		Title:      orPlaceholder(state.values[spec.TitleField], ph.Title),
		FilingType: orPlaceholder(state.values[spec.FilingTypeField], ph.FilingType),
		PrimaryApplicant: orPlaceholder(
			state.values[model.Key(spec.ApplicantField, 1)], ph.PrimaryApplicant,
		),
	}

	var names []string
	if spec.InventorGroup != "" {
		// Removed indices have no state left and are skipped by isLive.
		for index := 1; index <= state.Counter(spec.InventorGroup); index++ {
			if !state.isLive(spec.InventorGroup, index) {
				continue
			}
			name := strings.TrimSpace(state.values[model.Key(spec.InventorField, index)])
			if name != "" {
				names = append(names, name)
			}
		}
	}
	out.Inventors = orPlaceholder(strings.Join(names, ", "), ph.Inventors)

	if spec.DocumentsFormat != "" {
		out.Documents = fmt.Sprintf(spec.DocumentsFormat, spec.RequiredDocuments)
	}
	return out
}

// RefreshSummary recomputes and stores the summary.
func (c *Controller) RefreshSummary() Summary {
	c.state.summary = Project(c.def, c.state)
	return c.state.summary
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
