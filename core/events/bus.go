package events

import "strings"

// Well-known event names.
const (
	All    = "all"
	Change = "change"
	Add    = "add"
	Remove = "remove"
	Reset  = "reset"
)

const changePrefix = Change + ":"

// ChangeOf returns the per-attribute change event name for key.
func ChangeOf(key string) string {
	return changePrefix + key
}

// AttrOf extracts the attribute from a per-attribute change event name.
func AttrOf(name string) (string, bool) {
	if !strings.HasPrefix(name, changePrefix) {
		return "", false
	}
	return strings.TrimPrefix(name, changePrefix), true
}

// Event is a single notification.
type Event struct {
	// Name is the event name, e.g. "change:author".
	Name string
	// Target is the model or collection the event concerns.
	Target any
	// Key is the attribute for per-attribute change events.
	Key string
	// Value carries the new attribute value, or the affected member for
	// collection events.
	Value any
}

// Handler receives events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription uint64

type entry struct {
	id   Subscription
	name string
	fn   Handler
	once bool
}

// Bus dispatches events to handlers. The zero value is ready to use.
type Bus struct {
	next     Subscription
	handlers map[string][]entry
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]entry)}
}

// On registers fn for events named name.
func (b *Bus) On(name string, fn Handler) Subscription {
	return b.add(name, fn, false)
}

// Once registers fn for the next event named name only.
func (b *Bus) Once(name string, fn Handler) Subscription {
	return b.add(name, fn, true)
}

func (b *Bus) add(name string, fn Handler, once bool) Subscription {
	if fn == nil {
		return 0
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]entry)
	}
	b.next++
	b.handlers[name] = append(b.handlers[name], entry{id: b.next, name: name, fn: fn, once: once})
	return b.next
}

// Off removes the handler registered under sub. It reports whether a handler
// was removed.
func (b *Bus) Off(sub Subscription) bool {
	for name, list := range b.handlers {
		for i, e := range list {
			if e.id != sub {
				continue
			}
			b.handlers[name] = append(list[:i:i], list[i+1:]...)
			if len(b.handlers[name]) == 0 {
				delete(b.handlers, name)
			}
			return true
		}
	}
	return false
}

// OffAll removes every handler for name, or every handler at all when name is
// empty.
func (b *Bus) OffAll(name string) {
	if name == "" {
		b.handlers = nil
		return
	}
	delete(b.handlers, name)
}

// Count returns the number of handlers registered for name.
func (b *Bus) Count(name string) int {
	return len(b.handlers[name])
}

// Trigger delivers e to the handlers registered for e.Name, then to the All
// handlers.
func (b *Bus) Trigger(e Event) {
	if b == nil || len(b.handlers) == 0 {
		return
	}
	b.dispatch(e.Name, e)
	if e.Name != All {
		b.dispatch(All, e)
	}
}

func (b *Bus) dispatch(name string, e Event) {
	list := b.handlers[name]
	if len(list) == 0 {
		return
	}
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	for _, h := range snapshot {
		if h.once && !b.Off(h.id) {
			continue
		}
		h.fn(e)
	}
}
