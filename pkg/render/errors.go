package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrorMapping splits a backend error payload into field-level messages keyed
// by wizard field key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload resolves backend error paths against the fields of view.
//
// Paths may be bare field keys ("titulo_patente", "nombre_2"), JSON pointers
// or dotted paths wrapped in body/data segments ("/body/titulo"), or array
// paths into a group ("solicitantes[1].nombre"). Array positions count live
// entries in view order, so position 1 of a group whose second entry was
// removed resolves to entry index 3. aliases renames payload names to field
// bases or group names ("titulo" -> "titulo_patente", "solicitantes" ->
// "applicant"). Unknown paths become form-level errors so messages are not
// lost.
func MapErrorPayload(view wizard.View, payload map[string][]string, aliases map[string]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	idx := indexView(view)
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		key, ok := idx.resolve(rawPath, aliases)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[key] = append(mapping.Fields[key], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

type viewIndex struct {
	keys   map[string]struct{}
	groups map[string][]int
}

func indexView(view wizard.View) viewIndex {
	idx := viewIndex{
		keys:   make(map[string]struct{}),
		groups: make(map[string][]int),
	}
	for _, section := range view.Sections {
		for _, field := range section.Fields {
			idx.keys[field.Key] = struct{}{}
		}
		for _, group := range section.Groups {
			for _, entry := range group.Entries {
				idx.groups[group.Name] = append(idx.groups[group.Name], entry.Index)
				for _, field := range entry.Fields {
					idx.keys[field.Key] = struct{}{}
				}
			}
		}
	}
	if view.Confirmation.Key != "" {
		idx.keys[view.Confirmation.Key] = struct{}{}
	}
	return idx
}

func (idx viewIndex) resolve(raw string, aliases map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", false
	}
	alias := func(name string) string {
		if renamed, ok := aliases[name]; ok {
			return renamed
		}
		return name
	}

	switch len(segments) {
	case 1:
		key := alias(segments[0])
		if idx.has(key) {
			return key, true
		}
	case 2:
		// group/field addresses the base entry.
		if entries, ok := idx.groups[alias(segments[0])]; ok && len(entries) > 0 {
			key := model.Key(alias(segments[1]), entries[0])
			if idx.has(key) {
				return key, true
			}
		}
	default:
		group, field := alias(segments[0]), alias(segments[len(segments)-1])
		position, err := strconv.Atoi(segments[1])
		entries := idx.groups[group]
		if err == nil && position >= 0 && position < len(entries) {
			key := model.Key(field, entries[position])
			if idx.has(key) {
				return key, true
			}
		}
	}

	if key := strings.Join(segments, "_"); idx.has(key) {
		return key, true
	}
	return "", false
}

func (idx viewIndex) has(key string) bool {
	_, ok := idx.keys[key]
	return ok
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", "_form", "form", "__all__", "non_field_errors", "msg", "message", "error":
		return true
	default:
		return false
	}
}
