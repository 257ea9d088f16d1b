// Package descriptor loads element descriptors from JSON, YAML and OpenAPI
// documents. Descriptor files hold either a top-level list of element maps
// or an object with an `elements` list:
//
//	elements:
//	  - type: text
//	    related_key: title
//	    label: Title
//	    rules:
//	      - kind: required
//
// Labels read from files are stripped of markup before they reach an
// Element.
package descriptor
