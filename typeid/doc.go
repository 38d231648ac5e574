// Package typeid provides stable, opaque identity keys for Go types, a
// lazily populated display-name table, and the Path type that records the
// currently active plugin nesting during a build.
//
// Keys are only ever compared or used as map keys; they carry no other
// semantics. Display names live in a Registry side table so diagnostics can
// render a key long after the value that produced it is gone.
package typeid
