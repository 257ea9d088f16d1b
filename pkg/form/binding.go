package form

import (
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
)

// Binding is the disposable handle for one bind pass against one related
// model. Each bound element gets its own subscription group and its own
// provenance token, so elements sharing a related key still see each
// other's writes.
//
// Unsetting an element value unsets the related key when the related model
// implements Unsetter. Otherwise the key is set to nil.
type Binding struct {
	related  observable.Observable
	elements map[*model.Element]*elementBinding
	order    []*model.Element
	disposed bool
}

// Unsetter is implemented by related models that can drop a key.
type Unsetter interface {
	Unset(key string, opts ...observable.Options)
}

type elementBinding struct {
	group  *observable.Group
	origin *observable.Provenance
}

// Bind seeds and subscribes every element of list that declares a related
// key. Elements without one are skipped.
func Bind(list *model.ElementList, related observable.Observable) *Binding {
	b := &Binding{
		related:  related,
		elements: make(map[*model.Element]*elementBinding),
	}
	for _, e := range list.Bound() {
		b.Add(e)
	}
	return b
}

// Add binds a single element. It is a no-op for elements without a related
// key, for elements already bound, and after Dispose.
func (b *Binding) Add(e *model.Element) {
	if b == nil || b.disposed || e == nil {
		return
	}
	key := e.RelatedKey()
	if key == "" {
		return
	}
	if _, ok := b.elements[e]; ok {
		return
	}

	origin := observable.NewProvenance("form.binding:" + key)
	tag := observable.Options{Origin: origin}

	// pull
	if value, ok := b.related.Get(key); ok {
		e.Set(model.AttrValue, value, tag)
	} else {
		e.Unset(model.AttrValue, tag)
	}

	group := &observable.Group{}
	group.Add(
		b.related.OnChange(key, func(c observable.Change) {
			if c.Options.From(origin) {
				return
			}
			if c.Unset {
				e.Unset(model.AttrValue, tag)
				return
			}
			e.Set(model.AttrValue, c.Value, tag)
		}),
		e.OnChange(model.AttrValue, func(c observable.Change) {
			if c.Options.From(origin) {
				return
			}
			if c.Unset {
				if u, ok := b.related.(Unsetter); ok {
					u.Unset(key, tag)
					return
				}
			}
			b.related.Set(key, c.Value, tag)
		}),
	)
	b.elements[e] = &elementBinding{group: group, origin: origin}
	b.order = append(b.order, e)
}

// Remove releases the subscriptions held for e.
func (b *Binding) Remove(e *model.Element) {
	if b == nil {
		return
	}
	entry, ok := b.elements[e]
	if !ok {
		return
	}
	entry.group.Dispose()
	delete(b.elements, e)
	for i, item := range b.order {
		if item == e {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Dispose releases every subscription. Nothing propagates in either
// direction afterwards.
func (b *Binding) Dispose() {
	if b == nil || b.disposed {
		return
	}
	b.disposed = true
	for _, e := range b.order {
		b.elements[e].group.Dispose()
	}
	b.elements = nil
	b.order = nil
}

// Active reports whether the binding still holds subscriptions.
func (b *Binding) Active() bool {
	return b != nil && !b.disposed
}

// Related returns the related model of this pass.
func (b *Binding) Related() observable.Observable {
	if b == nil {
		return nil
	}
	return b.related
}

// Origin returns the provenance token tagging writes made on behalf of e,
// or nil when e is not bound.
func (b *Binding) Origin(e *model.Element) *observable.Provenance {
	if b == nil {
		return nil
	}
	entry, ok := b.elements[e]
	if !ok {
		return nil
	}
	return entry.origin
}

// Elements returns the bound elements in bind order.
func (b *Binding) Elements() []*model.Element {
	if b == nil {
		return nil
	}
	return append([]*model.Element(nil), b.order...)
}

// Len returns the number of bound elements.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.order)
}
