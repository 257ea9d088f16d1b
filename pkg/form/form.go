package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
)

// Attribute names recognised by Form.
const (
	AttrElements     = "elements"
	AttrRelatedModel = "related_model"
)

// Form owns an ElementList and optionally binds its elements to a related
// model. It is itself observable: `related_model` can be reassigned through
// Set and the form rebinds synchronously.
type Form struct {
	attrs   *observable.Model
	name    string
	logger  *zap.Logger
	binding *Binding
	own     observable.Group
	closed  bool
}

var _ observable.Observable = (*Form)(nil)

// New builds a form from an *model.ElementList or any source accepted by
// model.NewElementList. An empty or missing source fails with
// ErrMissingElements; element construction errors propagate unchanged.
func New(elements any, options ...Option) (*Form, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	list, err := elementListFrom(elements)
	if err != nil {
		return nil, err
	}
	if list.Len() == 0 {
		return nil, ErrMissingElements
	}

	f := &Form{
		name:   cfg.name,
		logger: cfg.logger.With(zap.String("form", cfg.name)),
	}
	attrs := map[string]any{AttrElements: list}
	if cfg.related != nil {
		attrs[AttrRelatedModel] = cfg.related
	}
	f.attrs = observable.New(attrs, observable.WithSource(f))

	f.own.Add(
		f.attrs.OnChange(AttrRelatedModel, f.onRelatedModelChange),
		list.OnAdd(func(e *model.Element, _ int) {
			if f.binding != nil {
				f.binding.Add(e)
			}
		}),
		list.OnRemove(func(e *model.Element, _ int) {
			if f.binding != nil {
				f.binding.Remove(e)
			}
		}),
	)

	f.rebind(cfg.related)
	return f, nil
}

func elementListFrom(elements any) (*model.ElementList, error) {
	switch typed := elements.(type) {
	case nil:
		return nil, ErrMissingElements
	case *model.ElementList:
		if typed == nil {
			return nil, ErrMissingElements
		}
		return typed, nil
	default:
		return model.NewElementList(elements)
	}
}

// Get returns a form attribute.
func (f *Form) Get(key string) (any, bool) {
	return f.attrs.Get(key)
}

// Set writes a form attribute. `elements` is fixed at construction and
// cannot be replaced. Setting `related_model` rebinds.
func (f *Form) Set(key string, value any, opts ...observable.Options) {
	if key == AttrElements {
		return
	}
	f.attrs.Set(key, value, opts...)
}

// Unset removes a form attribute. Unsetting `related_model` tears the
// binding down.
func (f *Form) Unset(key string, opts ...observable.Options) {
	if key == AttrElements {
		return
	}
	f.attrs.Unset(key, opts...)
}

// On subscribes to an arbitrary event on the form.
func (f *Form) On(event string, fn observable.Listener) observable.Subscription {
	return f.attrs.On(event, fn)
}

// OnChange subscribes to change:<key> on the form.
func (f *Form) OnChange(key string, fn observable.Listener) observable.Subscription {
	return f.attrs.OnChange(key, fn)
}

// Name returns the diagnostic name.
func (f *Form) Name() string { return f.name }

// Elements returns the owned list.
func (f *Form) Elements() *model.ElementList {
	list, _ := f.attrs.Value(AttrElements).(*model.ElementList)
	return list
}

// RelatedModel returns the current related model, or nil.
func (f *Form) RelatedModel() observable.Observable {
	related, _ := f.attrs.Value(AttrRelatedModel).(observable.Observable)
	return related
}

// SetRelatedModel rebinds the form to related. A nil related model only
// tears the current binding down.
func (f *Form) SetRelatedModel(related observable.Observable, opts ...observable.Options) {
	if related == nil {
		f.attrs.Unset(AttrRelatedModel, opts...)
		return
	}
	f.attrs.Set(AttrRelatedModel, related, opts...)
}

// Binding returns the active binding handle, or nil when unbound.
func (f *Form) Binding() *Binding {
	return f.binding
}

// Bound returns the elements currently bound to the related model.
func (f *Form) Bound() []*model.Element {
	return f.binding.Elements()
}

// Validate re-runs every validator, children included, and reports whether
// the whole form is valid.
func (f *Form) Validate() bool {
	valid := true
	f.Elements().Walk(func(e *model.Element) {
		if e.Validate() != "" {
			valid = false
		}
	})
	f.logger.Debug("form validated", zap.Bool("valid", valid))
	return valid
}

// Errors returns current error messages keyed by Element.Key, children
// included. It does not re-run validators.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	f.Elements().Walk(func(e *model.Element) {
		if msg := e.ErrorMessage(); msg != "" {
			out[e.Key()] = msg
		}
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// Values collects set values of top-level input elements keyed by
// Element.Key. Buttons are skipped.
func (f *Form) Values() map[string]any {
	out := make(map[string]any)
	f.Elements().Each(func(_ int, e *model.Element) {
		if !e.Kind().Input() {
			return
		}
		if value, ok := e.Get(model.AttrValue); ok {
			out[e.Key()] = value
		}
	})
	return out
}

// Close releases the binding and every subscription the form created. The
// element list and its elements remain usable. Close is idempotent.
func (f *Form) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.unbind()
	f.own.Dispose()
	f.attrs.Release()
	f.logger.Debug("form closed")
}

// onRelatedModelChange releases the old binding before checking the new
// value, so a rejected model never leaves the previous one wired.
func (f *Form) onRelatedModelChange(c observable.Change) {
	f.unbind()
	if c.Unset || c.Value == nil {
		return
	}
	related, ok := c.Value.(observable.Observable)
	if !ok {
		panic(&BindingCapabilityError{Value: c.Value})
	}
	f.rebind(related)
}

func (f *Form) rebind(related observable.Observable) {
	f.unbind()
	if related == nil {
		return
	}
	f.binding = Bind(f.Elements(), related)
	f.logger.Debug("form bound", zap.Int("bound", f.binding.Len()))
}

func (f *Form) unbind() {
	if f.binding == nil {
		return
	}
	count := f.binding.Len()
	f.binding.Dispose()
	f.binding = nil
	f.logger.Debug("form unbound", zap.Int("released", count))
}
