package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer drives the wizard from a terminal. Render prints a plain-text
// projection of a view; Run walks a controller through interactive prompts.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format produced by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints the header, step markers and the active section of view.
func (r *Renderer) Render(ctx context.Context, view wizard.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s [%s]\n", view.Title, view.Counter, formatPercent(view.Progress))
	for _, indicator := range view.Indicators {
		mark := " "
		switch {
		case indicator.Active:
			mark = ">"
		case indicator.Completed:
			mark = "x"
		}
		fmt.Fprintf(&b, " [%s] %d. %s\n", mark, indicator.Number, indicator.Title)
	}
	for _, notice := range view.Notices {
		fmt.Fprintf(&b, "%s%s\n", r.noticePrefix(notice.Level), notice.Message)
	}
	for _, message := range opts.FormErrors {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}

	for _, section := range view.Sections {
		if !section.Active {
			continue
		}
		fmt.Fprintf(&b, "\n== %s ==\n", section.Title)
		for _, field := range section.Fields {
			r.writeField(&b, "", field, opts.Errors)
		}
		for _, group := range section.Groups {
			fmt.Fprintf(&b, "-- %s --\n", group.Title)
			for _, entry := range group.Entries {
				fmt.Fprintf(&b, "  %s\n", entry.Title)
				for _, field := range entry.Fields {
					r.writeField(&b, "    ", field, opts.Errors)
				}
			}
		}
		if section.Summary {
			writeSummary(&b, view.Summary)
			r.writeField(&b, "", view.Confirmation, opts.Errors)
		}
	}
	return []byte(b.String()), nil
}

// Serialize encodes submitted values in the configured output format.
func (r *Renderer) Serialize(values map[string]string) ([]byte, error) {
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func (r *Renderer) writeField(b *strings.Builder, indent string, field wizard.FieldView, errs map[string][]string) {
	if field.Key == "" {
		return
	}
	value := field.Value
	if field.Checked {
		value = "[x]"
	}
	if value == "" {
		value = "-"
	}
	required := ""
	if field.Required {
		required = " *"
	}
	fmt.Fprintf(b, "%s%s%s: %s\n", indent, field.Label, required, value)

	messages := fieldMessages(field)
	messages = append(messages, errs[field.Key]...)
	for _, message := range messages {
		fmt.Fprintf(b, "%s  %s%s\n", indent, r.theme.ErrorPrefix, message)
	}
}

func (r *Renderer) noticePrefix(level wizard.NoticeLevel) string {
	if level == wizard.NoticeError {
		return r.theme.ErrorPrefix
	}
	return r.theme.InfoPrefix
}

func writeSummary(b *strings.Builder, summary wizard.Summary) {
	for _, line := range summaryLines(summary) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func summaryLines(summary wizard.Summary) []string {
	return []string{
		"Título: " + summary.Title,
		"Tipo de patente: " + summary.FilingType,
		"Solicitante principal: " + summary.PrimaryApplicant,
		"Inventores: " + summary.Inventors,
		"Documentos: " + summary.Documents,
	}
}

// fieldMessages collects the field indicator and any choice-rule message
// attached to one of its options.
func fieldMessages(field wizard.FieldView) []string {
	var out []string
	if field.Error != "" {
		out = append(out, field.Error)
	}
	for _, opt := range field.Options {
		if opt.Error != "" {
			out = append(out, opt.Error)
		}
	}
	return out
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func flattenForm(values map[string]string) string {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, value)
	}
	return form.Encode()
}

func prettyPrint(values map[string]string) string {
	var b strings.Builder
	for _, key := range sortedKeys(values) {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
