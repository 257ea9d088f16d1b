package render

import "errors"

// ErrUnknownRenderer is returned by Registry.Get for unregistered names.
var ErrUnknownRenderer = errors.New("render: renderer not found")

// ErrNilForm is returned when Render receives a nil form.
var ErrNilForm = errors.New("render: form is nil")
