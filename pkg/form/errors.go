package form

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/model"
)

// ErrMissingElements is returned when a form is built without elements.
var ErrMissingElements = &model.ValidationError{Message: "Form requires elements."}

// BindingCapabilityError reports a related model that does not implement
// observable.Observable. It surfaces as a panic when the binding is first
// attempted and is not recovered by the form.
type BindingCapabilityError struct {
	Value any
}

func (e *BindingCapabilityError) Error() string {
	return fmt.Sprintf("form: related model %T does not implement observable.Observable", e.Value)
}
