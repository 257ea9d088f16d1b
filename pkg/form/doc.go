// Package form composes an ElementList with an optional related model and
// keeps them in sync. For every element that declares a `related_key`, the
// Form seeds the element value from the related model, mirrors related-model
// changes into the element, and pushes element changes back to the related
// model. Each bind carries its own provenance token so a write that
// originated on one side is never echoed back to it.
//
// Reassigning `related_model` tears the previous binding down completely
// before the new one is established. Elements without a related key are
// never touched.
package form
