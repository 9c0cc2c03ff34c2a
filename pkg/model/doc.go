// Package model defines the declarative wizard definition consumed by the
// controller and the renderers. A Definition lists the ordered steps, the
// field-spec tables of repeatable entry groups (applicants, inventors), the
// exclusive-choice rule gating the first step, the summary projection inputs
// and the literal UI messages. Definitions are plain data: pkg/schema loads
// them from YAML/JSON and pkg/wizard interprets them.
//
// Field keys follow a single namespacing scheme. Static fields use their bare
// name (`titulo_patente`) while every entry-group field is suffixed with its
// 1-based entry index (`nombre_1`, `nombre_inventor_3`), including the
// always-present base entry.
package model
