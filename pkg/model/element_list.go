package model

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formbind/pkg/observable"
)

// ListListener is notified when an element joins or leaves a list.
type ListListener func(e *Element, index int)

// ElementList is an ordered collection that owns its Elements. Each element
// belongs to at most one list; adding an element owned elsewhere moves it.
// Elements are keyed by position and by ID.
type ElementList struct {
	items     []*Element
	owner     *Element
	childKind Kind

	nextListener int
	onAdd        map[int]ListListener
	onRemove     map[int]ListListener
}

// NewElementList builds a list from descriptors, plain maps or existing
// elements (a single item or a slice of them, mixed slices included).
// Construction is all-or-nothing: on error no element changes owner.
func NewElementList(source any) (*ElementList, error) {
	return newElementList(source, "")
}

// MustElementList is NewElementList for static sources; it panics on error.
func MustElementList(source any) *ElementList {
	list, err := NewElementList(source)
	if err != nil {
		panic(err)
	}
	return list
}

func newElementList(source any, childKind Kind) (*ElementList, error) {
	list := &ElementList{childKind: childKind}
	items, err := flattenSource(source)
	if err != nil {
		return nil, err
	}

	elements := make([]*Element, 0, len(items))
	seen := make(map[string]*Element, len(items))
	for _, item := range items {
		e, err := list.upgrade(item)
		if err != nil {
			return nil, err
		}
		if prior, ok := seen[e.ID()]; ok && prior != e {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.ID())
		}
		if _, ok := seen[e.ID()]; ok {
			continue
		}
		seen[e.ID()] = e
		elements = append(elements, e)
	}

	for _, e := range elements {
		if _, err := list.insert(len(list.items), e); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func flattenSource(source any) ([]any, error) {
	switch src := source.(type) {
	case nil:
		return nil, nil
	case *ElementList:
		if src == nil {
			return nil, nil
		}
		items := make([]any, 0, src.Len())
		for _, e := range src.items {
			items = append(items, e)
		}
		return items, nil
	case Descriptor, *Element, map[string]any:
		return []any{src}, nil
	case []Descriptor:
		items := make([]any, 0, len(src))
		for _, d := range src {
			items = append(items, d)
		}
		return items, nil
	case []*Element:
		items := make([]any, 0, len(src))
		for _, e := range src {
			items = append(items, e)
		}
		return items, nil
	case []map[string]any:
		items := make([]any, 0, len(src))
		for _, m := range src {
			items = append(items, m)
		}
		return items, nil
	case []any:
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, source)
	}
}

func (l *ElementList) upgrade(item any) (*Element, error) {
	switch typed := item.(type) {
	case *Element:
		if typed == nil {
			return nil, fmt.Errorf("%w: nil element", ErrUnsupportedSource)
		}
		return typed, nil
	case Descriptor:
		if typed.Type == "" && l.childKind != "" {
			typed.Type = string(l.childKind)
		}
		return NewElement(typed)
	case map[string]any:
		d, err := DescriptorFromMap(typed)
		if err != nil {
			return nil, err
		}
		return l.upgrade(d)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, item)
	}
}

// Len returns the number of elements.
func (l *ElementList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at index, or nil when out of range.
func (l *ElementList) At(index int) *Element {
	if l == nil || index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// Get returns the element with the given ID, or nil.
func (l *ElementList) Get(id string) *Element {
	if l == nil {
		return nil
	}
	for _, e := range l.items {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// IndexOf returns the position of e, or -1.
func (l *ElementList) IndexOf(e *Element) int {
	if l == nil || e == nil {
		return -1
	}
	for i, item := range l.items {
		if item == e {
			return i
		}
	}
	return -1
}

// Elements returns a copy of the ordered elements.
func (l *ElementList) Elements() []*Element {
	if l == nil {
		return nil
	}
	return append([]*Element(nil), l.items...)
}

// Each calls fn for every element in order over a snapshot of the list.
func (l *ElementList) Each(fn func(index int, e *Element)) {
	for i, e := range l.Elements() {
		fn(i, e)
	}
}

// Walk visits every element depth-first, descending into grouping children.
func (l *ElementList) Walk(fn func(e *Element)) {
	l.Each(func(_ int, e *Element) {
		fn(e)
		if children := e.Children(); children != nil {
			children.Walk(fn)
		}
	})
}

// Where returns the elements whose attribute equals value.
func (l *ElementList) Where(key string, value any) []*Element {
	var out []*Element
	l.Each(func(_ int, e *Element) {
		if current, ok := e.Get(key); ok && observable.Equal(current, value) {
			out = append(out, e)
		}
	})
	return out
}

// Bound returns the elements that declare a related key, in order.
func (l *ElementList) Bound() []*Element {
	var out []*Element
	l.Each(func(_ int, e *Element) {
		if e.RelatedKey() != "" {
			out = append(out, e)
		}
	})
	return out
}

// Owner returns the grouping element that owns this list, or nil for a
// top-level list.
func (l *ElementList) Owner() *Element {
	if l == nil {
		return nil
	}
	return l.owner
}

// Add appends a descriptor, map or element and returns the member element.
func (l *ElementList) Add(item any) (*Element, error) {
	return l.Insert(l.Len(), item)
}

// Unshift inserts at the front, shifting existing positions by one. It is
// used to install synthetic entries such as a placeholder choice.
func (l *ElementList) Unshift(item any) (*Element, error) {
	return l.Insert(0, item)
}

// Insert places item at index, clamped to the list bounds.
func (l *ElementList) Insert(index int, item any) (*Element, error) {
	e, err := l.upgrade(item)
	if err != nil {
		return nil, err
	}
	return l.insert(index, e)
}

// Remove detaches e from the list. It reports whether e was a member.
func (l *ElementList) Remove(e *Element) bool {
	index := l.IndexOf(e)
	if index < 0 {
		return false
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	e.list = nil
	l.notify(l.onRemove, e, index)
	return true
}

// OnAdd registers fn for element insertions.
func (l *ElementList) OnAdd(fn ListListener) observable.Subscription {
	return l.subscribe(&l.onAdd, fn)
}

// OnRemove registers fn for element removals.
func (l *ElementList) OnRemove(fn ListListener) observable.Subscription {
	return l.subscribe(&l.onRemove, fn)
}

func (l *ElementList) insert(index int, e *Element) (*Element, error) {
	if e.list == l {
		return e, nil
	}
	if existing := l.Get(e.ID()); existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.ID())
	}
	if e.list != nil {
		e.list.Remove(e)
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.items) {
		index = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = e
	e.list = l
	l.notify(l.onAdd, e, index)
	return e, nil
}

func (l *ElementList) subscribe(target *map[int]ListListener, fn ListListener) observable.Subscription {
	if fn == nil {
		return observable.SubscriptionFunc(nil)
	}
	if *target == nil {
		*target = make(map[int]ListListener)
	}
	id := l.nextListener
	l.nextListener++
	(*target)[id] = fn
	listeners := *target
	return observable.SubscriptionFunc(func() {
		delete(listeners, id)
	})
}

func (l *ElementList) notify(listeners map[int]ListListener, e *Element, index int) {
	if len(listeners) == 0 {
		return
	}
	ids := make([]int, 0, len(listeners))
	for id := range listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := listeners[id]; ok {
			fn(e, index)
		}
	}
}
