// Package planner turns a specification, an execution mode and prior-work
// history into a planned wave: non-duplicating dimension assignments, a
// context-budget estimate and per-assignment quality standards.
package planner
