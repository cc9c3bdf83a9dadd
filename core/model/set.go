package model

import (
	"nested-models/core/events"

	"go.uber.org/zap"
)

// Set applies attrs in key order. See SetBatch.
func (m *Model) Set(attrs Attrs, opts Options) error {
	if len(attrs) == 0 {
		return nil
	}
	return m.SetBatch(BatchOf(attrs), opts)
}

// SetKey applies a single attribute.
func (m *Model) SetKey(key string, value any, opts Options) error {
	return m.SetBatch(NewBatch().Put(key, value), opts)
}

// Unset removes key.
func (m *Model) Unset(key string, opts Options) error {
	opts.Unset = true
	return m.SetKey(key, nil, opts)
}

// Clear removes every attribute.
func (m *Model) Clear(opts Options) error {
	b := NewBatch()
	for _, key := range sortedKeys(m.attributes) {
		b.Put(key, nil)
	}
	opts.Unset = true
	return m.SetBatch(b, opts)
}

// SetBatch applies b to the model in batch order.
//
// The prospective attributes are validated first; on failure nothing changes,
// nothing is notified and a *ValidationError is returned. Each value is then
// resolved against the schema (see the package documentation) and committed.
// Unless opts.Silent is set, one "change:<attr>" event fires per changed
// attribute after the whole batch is committed, followed at the outermost call
// by the aggregate "change" event, repeated while handlers keep changing the
// model.
func (m *Model) SetBatch(b *Batch, opts Options) error {
	_, err := m.apply(b, opts)
	return err
}

// apply runs one Set and reports whether it changed the model, directly or
// through a nested merge.
func (m *Model) apply(b *Batch, opts Options) (bool, error) {
	if m == nil || b.Len() == 0 {
		return false, nil
	}
	if err := m.validate(b, opts); err != nil {
		return false, err
	}

	outer := m.tx == nil
	if outer {
		m.tx = newTxn(m.attributes)
		// a panicking handler must not leave the model mid-transaction
		defer func() { m.tx = nil }()
	}
	tx := m.tx

	var changes []string
	nested := false
	b.Each(func(key string, value any) {
		resolved, mutated := m.resolve(key, value, opts)
		if mutated {
			nested = true
		}

		current, exists := m.attributes[key]
		next := slot{val: resolved, ok: !opts.Unset}
		if !m.rt.sameSlot(slot{val: current, ok: exists}, next) {
			changes = append(changes, key)
		}
		prev, hadPrev := tx.previous[key]
		if m.rt.sameSlot(slot{val: prev, ok: hadPrev}, next) {
			delete(tx.changed, key)
		} else {
			tx.changed[key] = next.val
		}

		m.track(key, current, exists, next)
		if opts.Unset {
			delete(m.attributes, key)
		} else {
			m.attributes[key] = resolved
		}
	})

	if !opts.Silent {
		if len(changes) > 0 || nested {
			tx.pending = true
		}
		for _, key := range changes {
			m.trigger(events.Event{
				Name:   events.ChangeOf(key),
				Target: m,
				Key:    key,
				Value:  m.attributes[key],
			})
		}
	}

	changed := len(changes) > 0 || nested
	if !outer {
		return changed, nil
	}

	if !opts.Silent {
		for tx.pending {
			tx.pending = false
			m.trigger(events.Event{Name: events.Change, Target: m})
		}
	}
	tx.pending = false
	m.tx = nil
	m.last = tx
	m.rt.metrics.ObserveTransaction(m.typ.name(), len(tx.changed))
	return changed, nil
}

// validate checks the attributes the model would hold after b.
func (m *Model) validate(b *Batch, opts Options) error {
	if m.typ.Validator == nil {
		return nil
	}
	prospective := m.Attributes()
	b.Each(func(key string, value any) {
		if opts.Unset {
			delete(prospective, key)
			return
		}
		prospective[key] = value
	})
	err := m.typ.Validator.Validate(prospective)
	if err == nil {
		m.validationErr = nil
		return nil
	}
	m.validationErr = &ValidationError{Type: m.typ.name(), Err: err}
	m.rt.metrics.ObserveValidationFailure(m.typ.name())
	m.log.Debug("set rejected by validator", zap.Error(err))
	return m.validationErr
}
