package model

import "reflect"

// Equal is the default equality primitive: sub-models and collections compare
// by identity, everything else structurally.
func Equal(a, b any) bool {
	if isEntity(a) || isEntity(b) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func isEntity(v any) bool {
	switch e := v.(type) {
	case *Model:
		return e != nil
	case *Collection:
		return e != nil
	default:
		return false
	}
}

// isAbsent reports an incoming null, including typed nil entities.
func isAbsent(v any) bool {
	switch e := v.(type) {
	case nil:
		return true
	case *Model:
		return e == nil
	case *Collection:
		return e == nil
	case *Batch:
		return e == nil
	default:
		return false
	}
}

// slot is an attribute value together with its presence.
type slot struct {
	val any
	ok  bool
}

func (rt *Runtime) sameSlot(a, b slot) bool {
	if a.ok != b.ok {
		return false
	}
	if !a.ok {
		return true
	}
	return rt.equal(a.val, b.val)
}
