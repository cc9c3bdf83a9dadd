package model

import "maps"

// txn is one outermost Set and everything it transitively causes: nested merges,
// collection reconciliation and reentrant Set calls from handlers.
type txn struct {
	// previous is the attribute snapshot taken when the transaction opened.
	previous map[string]any
	// changed holds the attributes that differ from previous.
	changed map[string]any
	// pending is raised whenever a wave of changes still owes an aggregate
	// notification.
	pending bool
}

func newTxn(attributes map[string]any) *txn {
	return &txn{
		previous: maps.Clone(attributes),
		changed:  make(map[string]any),
	}
}

func (m *Model) changes() *txn {
	if m.tx != nil {
		return m.tx
	}
	return m.last
}

// Changed returns the attributes changed by the current or last Set.
func (m *Model) Changed() Attrs {
	tx := m.changes()
	if tx == nil {
		return Attrs{}
	}
	return maps.Clone(tx.changed)
}

// HasChanged reports whether key changed in the current or last Set. An empty
// key asks whether anything changed.
func (m *Model) HasChanged(key string) bool {
	tx := m.changes()
	if tx == nil {
		return false
	}
	if key == "" {
		return len(tx.changed) > 0
	}
	_, ok := tx.changed[key]
	return ok
}

// Previous returns the value key had before the current or last Set.
func (m *Model) Previous(key string) any {
	tx := m.changes()
	if tx == nil {
		return nil
	}
	return tx.previous[key]
}

// PreviousAttributes returns the snapshot taken before the current or last Set.
func (m *Model) PreviousAttributes() Attrs {
	tx := m.changes()
	if tx == nil {
		return Attrs{}
	}
	return maps.Clone(tx.previous)
}

// Changing reports whether a Set is in progress on this model.
func (m *Model) Changing() bool {
	return m.tx != nil
}
