// Package schema loads wizard definitions from JSON or YAML files, fills in
// the literal texts a definition leaves blank and validates the structure
// before pkg/wizard interprets it. The patent application wizard ships
// embedded; see Default.
package schema
