// Package scenario replays scripted mutations against nested models.
//
// A scenario file declares model types and their relations in YAML, builds a
// root model and applies a list of steps to it (set, unset, reset, add, remove,
// reconcile). Every notification observed on the root and on each step's target
// is recorded, and the final serialized snapshot is returned. Scenarios are
// used to exercise the model engine end to end from the command line.
//
// # Format
//
//	name: library
//	root: book
//	types:
//	  book:
//	    relations:
//	      author: {kind: one, type: person}
//	      pages: {kind: many, type: page}
//	      released_on: {kind: custom, convert: time}
//	  person:
//	    rules: {name: required}
//	  page: {}
//	initial:
//	  title: Gospel Standards
//	steps:
//	  - op: set
//	    attrs:
//	      author: {name: Heber J. Grant}
//	  - op: reconcile
//	    path: pages
//	    items: [{id: 1, number: 1}]
//
// Step attributes keep their document order, which is also the order of the
// resulting per-attribute change events.
//
// # Components
//
//   - Load, Parse: decode and check a scenario document.
//   - Check: static validation without replaying.
//   - Service: compiles the types and replays scenarios, concurrently for
//     several files.
package scenario
