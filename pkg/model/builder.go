package model

import "strconv"

// EntryField is a FieldSpec bound to a concrete entry index.
type EntryField struct {
	Key   string
	Index int
	Spec  FieldSpec
}

// Entry is one materialised Entry Group.
type Entry struct {
	Group  string
	Index  int
	Title  string
	Fields []EntryField
}

// BuildEntry materialises the field-spec table of group for the given entry
// index. The same builder serves the static base entry and every appended
// one, so markup and validation never diverge between them.
func BuildEntry(group GroupSpec, index int) Entry {
	entry := Entry{
		Group:  group.Name,
		Index:  index,
		Title:  entryTitle(group, index),
		Fields: make([]EntryField, 0, len(group.Fields)),
	}
	for _, spec := range group.Fields {
		entry.Fields = append(entry.Fields, EntryField{
			Key:   Key(spec.Name, index),
			Index: index,
			Spec:  spec,
		})
	}
	return entry
}

// Defaults returns the initial values of an entry keyed by field key. Only
// fields declaring a default are included.
func (e Entry) Defaults() map[string]string {
	out := make(map[string]string)
	for _, field := range e.Fields {
		if field.Spec.Default != "" {
			out[field.Key] = field.Spec.Default
		}
	}
	return out
}

// Keys lists the field keys of the entry in declaration order.
func (e Entry) Keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

func entryTitle(group GroupSpec, index int) string {
	title := group.EntryTitle
	if title == "" {
		title = group.Title
	}
	if title == "" {
		title = DefaultLabeler(group.Name)
	}
	return title + " " + strconv.Itoa(index)
}
