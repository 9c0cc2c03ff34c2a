// Package wizard implements the multi-step form wizard controller: a linear
// step sequencer gated by per-step validation, a manager for repeatable entry
// groups (applicants, inventors), a summary projector and the final
// confirmation gate.
//
// The controller owns an explicit State value that is the single source of
// truth; renderers consume View, a pure projection of definition and state.
// A Controller is not safe for concurrent use. Every operation runs to
// completion synchronously, mirroring the event-per-callback model of a form
// UI; callers serving multiple users keep one controller per session and
// serialise events on it.
package wizard
