package model

import "maps"

// Snapshotter is implemented by values that serialize to plain data.
type Snapshotter interface {
	Snapshot() any
}

// ToJSON returns the attributes as plain data: related models become mappings
// and related collections become sequences, recursively. The result never
// aliases the model's own attribute mapping.
func (m *Model) ToJSON() map[string]any {
	out := maps.Clone(m.attributes)
	if out == nil {
		out = make(map[string]any)
	}
	for key := range m.typ.Schema {
		v, ok := out[key]
		if !ok || isAbsent(v) {
			continue
		}
		if s, ok := v.(Snapshotter); ok {
			out[key] = s.Snapshot()
		}
	}
	return out
}

// Snapshot implements Snapshotter.
func (m *Model) Snapshot() any {
	return m.ToJSON()
}

// ToJSON returns the members' snapshots in order.
func (c *Collection) ToJSON() []any {
	out := make([]any, len(c.models))
	for i, m := range c.models {
		out[i] = m.ToJSON()
	}
	return out
}

// Snapshot implements Snapshotter.
func (c *Collection) Snapshot() any {
	return c.ToJSON()
}
