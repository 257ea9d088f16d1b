// Package observable provides the key/value Model every other entity in
// formbind builds on. A Model stores attributes and emits change events
// synchronously when an attribute changes: first `change:<key>`, then the
// generic `change` event. Listeners receive a Change carrying the Options bag
// passed to Set, which is how the binding protocol tags the provenance of a
// write and suppresses feedback loops.
//
// Dispatch is depth-first: a listener that calls Set on another model runs
// that cascade to completion before the outer Set returns. There is no
// queueing or coalescing. Models are not safe for concurrent use.
package observable
