// Package registry provides the type sources the resolver searches.
//
// A Source is a named collection of Go types keyed by fully-qualified name,
// usually populated by generated registration code for the record, enum and
// fixed types of a schema namespace. The Registry orders sources: an
// optional preferred source, the core source holding Go's predeclared types,
// and every other source in the order it was loaded. Find walks them in
// that order and reports the first match.
//
// Registration happens at program startup or whenever new sources become
// available. Registering the same name twice is a programmer error and
// panics, preventing a class of silent shadowing bugs.
package registry
