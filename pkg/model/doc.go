// Package model defines the form data model consumed by renderers: Element,
// a single field backed by an observable attribute map, and ElementList, the
// ordered collection that owns Elements. Elements are built from Descriptor
// values (or plain maps) and recompute their `error` attribute by running the
// validator every time `value` or `validator` changes.
//
// Grouping kinds (select, radioset, buttonset, checkboxset, fieldset) own a
// nested ElementList of children reachable only through Children(); the outer
// list never flattens them. Validation rules reuse the canonical identifiers
// (required, min/max, minLength/maxLength, pattern) with string parameters so
// descriptor files stay declarative.
package model
