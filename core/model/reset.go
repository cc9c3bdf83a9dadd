package model

import "nested-models/core/events"

// propagateReset emits "reset" on every collection nested in c's members,
// depth first, each collection once.
func (c *Collection) propagateReset() {
	seen := map[*Collection]bool{c: true}
	c.walkNested(seen)
}

func (c *Collection) walkNested(seen map[*Collection]bool) {
	for _, m := range c.models {
		for _, key := range m.typ.Schema.Keys() {
			nested, ok := m.attributes[key].(*Collection)
			if !ok || nested == nil || seen[nested] {
				continue
			}
			seen[nested] = true
			nested.trigger(events.Event{Name: events.Reset, Target: nested})
			nested.walkNested(seen)
		}
	}
}
