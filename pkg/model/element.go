package model

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbind/pkg/observable"
)

// Element is a single form field. Its attributes live in an observable
// model; `error` is derived from `validator(value)` and cannot be written by
// callers.
type Element struct {
	attrs    *observable.Model
	kind     Kind
	cid      string
	children *ElementList
	list     *ElementList
	own      observable.Group
}

var _ observable.Observable = (*Element)(nil)

// NewElement builds an Element from a descriptor. It fails with
// ErrMissingType when the type is empty, and propagates child construction
// errors for grouping kinds.
func NewElement(d Descriptor) (*Element, error) {
	kind := Kind(strings.TrimSpace(d.Type))
	if kind == "" {
		return nil, ErrMissingType
	}
	if !kind.Grouping() && len(d.Values) > 0 {
		return nil, unexpectedValuesError(kind)
	}

	validator := d.Validator
	if len(d.Rules) > 0 {
		compiled, err := CompileRules(d.Rules)
		if err != nil {
			return nil, err
		}
		validator = ChainValidators(validator, compiled)
	}

	var children *ElementList
	if kind.Grouping() {
		list, err := newElementList(d.Values, kind.ChildKind())
		if err != nil {
			return nil, err
		}
		children = list
	}

	e := &Element{
		kind:     kind,
		cid:      uuid.NewString(),
		children: children,
	}
	e.attrs = observable.New(d.attributes(validator), observable.WithSource(e))
	if children != nil {
		children.owner = e
	}

	if _, ok := e.attrs.Get(AttrValue); ok {
		e.revalidate(observable.Options{})
	}

	// Registered first so validation runs ahead of any external
	// change:value listener such as a form binding.
	e.own.Add(
		e.attrs.OnChange(AttrValue, func(c observable.Change) { e.revalidate(c.Options) }),
		e.attrs.OnChange(AttrValidator, func(c observable.Change) { e.revalidate(c.Options) }),
	)
	return e, nil
}

// MustElement is NewElement for static descriptors; it panics on error.
func MustElement(d Descriptor) *Element {
	e, err := NewElement(d)
	if err != nil {
		panic(err)
	}
	return e
}

// Get returns an attribute value and whether it is set.
func (e *Element) Get(key string) (any, bool) {
	return e.attrs.Get(key)
}

// Set writes an attribute. Writes to `error` are ignored; `type` only
// accepts non-empty values that keep the grouping variant unchanged.
func (e *Element) Set(key string, value any, opts ...observable.Options) {
	switch key {
	case AttrError:
		return
	case AttrType:
		str, _ := value.(string)
		next := Kind(strings.TrimSpace(str))
		if next == "" || next.Grouping() != e.kind.Grouping() {
			return
		}
		e.kind = next
		value = string(next)
	}
	e.attrs.Set(key, value, opts...)
}

// Unset removes an attribute. `type` and `error` cannot be removed.
func (e *Element) Unset(key string, opts ...observable.Options) {
	if key == AttrType || key == AttrError {
		return
	}
	e.attrs.Unset(key, opts...)
}

// On subscribes to an arbitrary event on the element.
func (e *Element) On(event string, fn observable.Listener) observable.Subscription {
	return e.attrs.On(event, fn)
}

// OnChange subscribes to change:<key>.
func (e *Element) OnChange(key string, fn observable.Listener) observable.Subscription {
	return e.attrs.OnChange(key, fn)
}

// OnAnyChange subscribes to the generic change event.
func (e *Element) OnAnyChange(fn observable.Listener) observable.Subscription {
	return e.attrs.OnAnyChange(fn)
}

// ListenerCount reports live listeners for event, including the element's
// own validation listeners.
func (e *Element) ListenerCount(event string) int {
	return e.attrs.ListenerCount(event)
}

// Attributes returns a copy of the attribute map.
func (e *Element) Attributes() map[string]any {
	return e.attrs.Attributes()
}

// Validate re-runs the validator against the current value and returns the
// resulting message.
func (e *Element) Validate() string {
	e.revalidate(observable.Options{})
	return e.ErrorMessage()
}

// Release drops every listener on the element and its children.
func (e *Element) Release() {
	e.own.Dispose()
	e.attrs.Release()
	if e.children != nil {
		e.children.Each(func(_ int, child *Element) {
			child.Release()
		})
	}
}

func (e *Element) ID() string {
	if id := e.attrs.String(AttrID); id != "" {
		return id
	}
	return e.cid
}

// CID is the generated client identifier, stable for the element lifetime.
func (e *Element) CID() string { return e.cid }

func (e *Element) Kind() Kind { return e.kind }

func (e *Element) Type() string { return string(e.kind) }

func (e *Element) Name() string { return e.attrs.String(AttrName) }

func (e *Element) Value() any { return e.attrs.Value(AttrValue) }

func (e *Element) Label() string { return e.attrs.String(AttrLabel) }

func (e *Element) RelatedKey() string { return e.attrs.String(AttrRelatedKey) }

func (e *Element) ErrorMessage() string { return e.attrs.String(AttrError) }

func (e *Element) HasError() bool { return e.ErrorMessage() != "" }

func (e *Element) ErrorClass() string {
	if class := e.attrs.String(AttrErrorClass); class != "" {
		return class
	}
	return DefaultErrorClass
}

// Key is the name used when collecting values or errors: related key, then
// name, then ID.
func (e *Element) Key() string {
	if key := e.RelatedKey(); key != "" {
		return key
	}
	if name := e.Name(); name != "" {
		return name
	}
	return e.ID()
}

// Children returns the nested list for grouping kinds and nil otherwise.
func (e *Element) Children() *ElementList { return e.children }

// List returns the list that currently owns the element, if any.
func (e *Element) List() *ElementList { return e.list }

func (e *Element) validator() Validator {
	value, _ := e.attrs.Get(AttrValidator)
	v, _ := asValidator(value)
	return v
}

func (e *Element) revalidate(opts observable.Options) {
	v := e.validator()
	if v == nil {
		e.attrs.Unset(AttrError, opts)
		return
	}
	if msg := v(e.Value()); msg != "" {
		e.attrs.Set(AttrError, msg, opts)
		return
	}
	e.attrs.Unset(AttrError, opts)
}
