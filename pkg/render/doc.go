// Package render is the presentation boundary of a form. AttributeSet is the
// shared attribute contract every element presentation delegates to; the
// HTML and JSON renderers build a read-only snapshot of a Form through it.
package render
