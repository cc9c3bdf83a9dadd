package model

import (
	"go.uber.org/zap"
)

// resolve turns an incoming value into the value to store under key. It reports
// whether resolving mutated an established relation in place.
func (m *Model) resolve(key string, value any, opts Options) (any, bool) {
	current, exists := m.attributes[key]
	if opts.Unset && exists {
		m.detach(current)
	}
	if isAbsent(value) {
		return nil, false
	}

	rel, ok := m.typ.Schema[key]
	if !ok || !rel.hasFactory() {
		return value, false
	}
	switch rel.Kind {
	case KindCustom:
		return m.convert(key, rel, value), false
	case KindOne, KindMany:
		return m.resolveRelated(key, rel, current, value, opts)
	default:
		return value, false
	}
}

func (m *Model) convert(key string, rel Relation, value any) any {
	out, err := rel.Convert(value)
	if err != nil {
		m.log.Debug("conversion failed, storing raw value", zap.String("attr", key), zap.Error(err))
		return value
	}
	return out
}

func (m *Model) resolveRelated(key string, rel Relation, current, value any, opts Options) (any, bool) {
	switch existing := current.(type) {
	case *Collection:
		if existing != nil {
			return m.mergeCollection(key, existing, value, opts)
		}
	case *Model:
		if existing != nil {
			return m.mergeModel(key, rel, existing, value, opts)
		}
	}

	if !isObjectLike(value) || rel.owns(value) {
		return value, false
	}
	return m.build(key, rel, value), false
}

// nestedOptions are the options a parent Set hands to the merges it causes.
func nestedOptions(opts Options) Options {
	return Options{Silent: opts.Silent}
}

// build constructs a new relation instance from raw data, falling back to the
// raw value when that is not possible.
func (m *Model) build(key string, rel Relation, value any) any {
	switch rel.Kind {
	case KindOne:
		attrs, ok := objectBatch(value)
		if !ok {
			return value
		}
		child, err := m.rt.construct(rel.Model, attrs, linkage{parent: m})
		if err != nil {
			m.log.Debug("relation construction failed, storing raw value", zap.String("attr", key), zap.Error(err))
			return value
		}
		return child
	case KindMany:
		items, ok := sequenceOf(value)
		if !ok {
			items = []any{value}
		}
		return m.rt.newCollection(rel.Collection, items, m)
	default:
		return value
	}
}

func (m *Model) mergeModel(key string, rel Relation, existing *Model, value any, opts Options) (any, bool) {
	var attrs *Batch
	switch in := value.(type) {
	case *Model:
		if in == existing {
			return existing, false
		}
		if rel.owns(in) {
			if id := in.ID(); id != nil && !sameIdentity(id, existing.ID()) {
				return in, false
			}
		}
		attrs = BatchOf(in.attributes)
	default:
		b, ok := objectBatch(value)
		if !ok {
			// scalars and sequences never overwrite an established relation
			return existing, false
		}
		attrs = b
	}

	changed, err := existing.apply(attrs, nestedOptions(opts))
	if err != nil {
		m.log.Debug("nested merge rejected", zap.String("attr", key), zap.Error(err))
		return existing, false
	}
	return existing, changed
}

func (m *Model) mergeCollection(key string, existing *Collection, value any, opts Options) (any, bool) {
	if in, ok := value.(*Collection); ok && in == existing {
		return existing, false
	}
	if items, ok := sequenceOf(value); ok {
		_, changed := existing.reconcile(items, nestedOptions(opts))
		return existing, changed
	}
	if obj, ok := objectBatch(value); ok {
		return existing, existing.narrow(obj, nestedOptions(opts))
	}
	m.log.Debug("scalar ignored over collection relation", zap.String("attr", key))
	return existing, false
}
