package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field or group name into a sentence-case label, the
// way the Spanish UI writes them: "pais_nacionalidad" reads
// "Pais nacionalidad". Underscores, dashes, spaces and camelCase humps all
// separate words.
func DefaultLabeler(name string) string {
	words := strings.FieldsFunc(splitCamel(name), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return ""
	}
	label := strings.ToLower(strings.Join(words, " "))
	first := []rune(label)
	first[0] = unicode.ToUpper(first[0])
	return string(first)
}

// LabelFor returns the declared label of spec or derives one from its name.
func LabelFor(spec FieldSpec) string {
	if label := strings.TrimSpace(spec.Label); label != "" {
		return label
	}
	return DefaultLabeler(spec.Name)
}

func splitCamel(input string) string {
	var out strings.Builder
	var prev rune
	for i, r := range input {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}
