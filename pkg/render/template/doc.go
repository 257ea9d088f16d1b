// Package template holds the engine contract used by the HTML renderer. The
// gotemplate subpackage provides the default implementation on top of
// github.com/goliatone/go-template.
package template
