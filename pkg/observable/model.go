package observable

import (
	"sort"
	"strings"
)

// EventChange is emitted after every effective mutation, following the
// per-key events.
const EventChange = "change"

const changePrefix = EventChange + ":"

// ChangeEvent returns the per-attribute event name, e.g. "change:value".
func ChangeEvent(key string) string {
	return changePrefix + key
}

// Change describes a single notification.
type Change struct {
	// Source is the entity whose attribute changed.
	Source Observable
	// Key is the attribute name. For the generic change event emitted by
	// SetMany it is empty and Changed lists the keys instead.
	Key      string
	Value    any
	Previous any
	// Unset is true when the attribute was removed.
	Unset   bool
	Changed []string
	Options Options
}

// Listener receives change notifications.
type Listener func(Change)

// Observable is the capability set the binding protocol relies on. Any
// related model must implement it.
type Observable interface {
	Get(key string) (any, bool)
	Set(key string, value any, opts ...Options)
	OnChange(key string, fn Listener) Subscription
}

// ModelOption configures a Model at construction.
type ModelOption func(*Model)

// WithSource overrides the entity reported as Change.Source. Types that wrap
// a Model use it so listeners see the wrapper.
func WithSource(source Observable) ModelOption {
	return func(m *Model) {
		if source != nil {
			m.source = source
		}
	}
}

// Model is a key/value entity with change notification.
type Model struct {
	attrs     map[string]any
	listeners map[string][]*listener
	source    Observable
}

var _ Observable = (*Model)(nil)

// New creates a model seeded with a copy of attrs. Seeding does not notify.
func New(attrs map[string]any, options ...ModelOption) *Model {
	m := &Model{
		attrs:     make(map[string]any, len(attrs)),
		listeners: make(map[string][]*listener),
	}
	for key, value := range attrs {
		m.attrs[key] = value
	}
	m.source = m
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Get returns the attribute value and whether it is set. Unset attributes
// return (nil, false).
func (m *Model) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.attrs[key]
	return value, ok
}

// Value returns the attribute value or nil when unset.
func (m *Model) Value(key string) any {
	value, _ := m.Get(key)
	return value
}

// String returns the attribute as a string, or "" when unset or not a string.
func (m *Model) String(key string) string {
	value, _ := m.Get(key)
	str, _ := value.(string)
	return str
}

// Has reports whether the attribute is set.
func (m *Model) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the set attribute names, sorted.
func (m *Model) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.attrs))
	for key := range m.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Attributes returns a shallow copy of the attribute map.
func (m *Model) Attributes() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.attrs))
	for key, value := range m.attrs {
		out[key] = value
	}
	return out
}

// Set stores value under key. When the value differs from the current one it
// emits change:<key> followed by change. Only the first Options is used.
func (m *Model) Set(key string, value any, opts ...Options) {
	previous, _ := m.attrs[key]
	if Equal(previous, value) {
		return
	}
	m.attrs[key] = value
	options := firstOptions(opts)
	change := Change{
		Source:   m.source,
		Key:      key,
		Value:    value,
		Previous: previous,
		Changed:  []string{key},
		Options:  options,
	}
	m.emit(ChangeEvent(key), change)
	m.emit(EventChange, change)
}

// SetMany applies every entry of attrs. It emits one change:<key> per
// changed key, in sorted key order, then a single change event.
func (m *Model) SetMany(attrs map[string]any, opts ...Options) {
	options := firstOptions(opts)
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var changes []Change
	for _, key := range keys {
		value := attrs[key]
		previous, _ := m.attrs[key]
		if Equal(previous, value) {
			continue
		}
		m.attrs[key] = value
		changes = append(changes, Change{
			Source:   m.source,
			Key:      key,
			Value:    value,
			Previous: previous,
			Options:  options,
		})
	}
	if len(changes) == 0 {
		return
	}
	changed := make([]string, 0, len(changes))
	for _, change := range changes {
		changed = append(changed, change.Key)
	}
	for _, change := range changes {
		change.Changed = changed
		m.emit(ChangeEvent(change.Key), change)
	}
	m.emit(EventChange, Change{Source: m.source, Changed: changed, Options: options})
}

// Unset removes key. It notifies like Set when the attribute was present.
func (m *Model) Unset(key string, opts ...Options) {
	previous, ok := m.attrs[key]
	if !ok {
		return
	}
	delete(m.attrs, key)
	change := Change{
		Source:   m.source,
		Key:      key,
		Previous: previous,
		Unset:    true,
		Changed:  []string{key},
		Options:  firstOptions(opts),
	}
	m.emit(ChangeEvent(key), change)
	m.emit(EventChange, change)
}

// On subscribes fn to an arbitrary event name.
func (m *Model) On(event string, fn Listener) Subscription {
	if fn == nil {
		return SubscriptionFunc(nil)
	}
	l := &listener{fn: fn, active: true}
	m.listeners[event] = append(m.listeners[event], l)
	return SubscriptionFunc(func() {
		m.off(event, l)
	})
}

// OnChange subscribes fn to change:<key>.
func (m *Model) OnChange(key string, fn Listener) Subscription {
	return m.On(ChangeEvent(key), fn)
}

// OnAnyChange subscribes fn to the generic change event.
func (m *Model) OnAnyChange(fn Listener) Subscription {
	return m.On(EventChange, fn)
}

// ListenerCount returns the number of live listeners for event. An empty
// event name counts every listener on the model.
func (m *Model) ListenerCount(event string) int {
	if m == nil {
		return 0
	}
	if event != "" {
		return len(m.listeners[event])
	}
	total := 0
	for _, entries := range m.listeners {
		total += len(entries)
	}
	return total
}

// AttributeListenerCount counts live listeners on every change:<key> event.
func (m *Model) AttributeListenerCount() int {
	total := 0
	for event, entries := range m.listeners {
		if strings.HasPrefix(event, changePrefix) {
			total += len(entries)
		}
	}
	return total
}

// Release drops every listener. Listeners mid-dispatch are not invoked again.
func (m *Model) Release() {
	for _, entries := range m.listeners {
		for _, l := range entries {
			l.active = false
		}
	}
	m.listeners = make(map[string][]*listener)
}

func (m *Model) off(event string, target *listener) {
	if !target.active {
		return
	}
	target.active = false
	entries := m.listeners[event]
	kept := make([]*listener, 0, len(entries))
	for _, l := range entries {
		if l != target {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(m.listeners, event)
		return
	}
	m.listeners[event] = kept
}

func (m *Model) emit(event string, change Change) {
	entries := m.listeners[event]
	if len(entries) == 0 {
		return
	}
	snapshot := append([]*listener(nil), entries...)
	for _, l := range snapshot {
		if !l.active {
			continue
		}
		l.fn(change)
	}
}
