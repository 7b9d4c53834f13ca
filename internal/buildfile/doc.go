// Package buildfile loads a declarative build description from a YAML
// document into an in-memory object graph for a build-execution engine.
//
// The package is strictly a front end: it walks the document's syntax tree
// in order, validates the section schema, resolves name references to
// shared entity identities, and instantiates tools and nodes through a
// host-supplied Delegate. It does not execute tasks and does not compute
// dependency order.
package buildfile
