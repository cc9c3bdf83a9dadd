package model

// objectBatch views v as an attribute object.
func objectBatch(v any) (*Batch, bool) {
	switch o := v.(type) {
	case *Batch:
		if o != nil {
			return o, true
		}
	case map[string]any:
		return BatchOf(o), true
	case *Model:
		if o != nil {
			return BatchOf(o.attributes), true
		}
	}
	return nil, false
}

// sequenceOf views v as an ordered sequence of items.
func sequenceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	case []*Batch:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	case []*Model:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	case *Collection:
		if s == nil {
			return nil, false
		}
		out := make([]any, len(s.models))
		for i, item := range s.models {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// isObjectLike reports whether v could seed a related model or collection.
func isObjectLike(v any) bool {
	if _, ok := objectBatch(v); ok {
		return true
	}
	_, ok := sequenceOf(v)
	return ok
}

// incomingID reads the identity of a raw item.
func incomingID(item any, idAttribute string) any {
	switch o := item.(type) {
	case *Model:
		if o != nil {
			return o.ID()
		}
	case *Batch:
		v, _ := o.Get(idAttribute)
		return v
	case map[string]any:
		return o[idAttribute]
	}
	return nil
}
