// Package orchestrator wires the descriptor loader, the form binding and the
// renderer registry into a single entry point: load descriptors, seed a
// related model, bind a form and render it.
package orchestrator
