package model

import (
	"weak"

	"nested-models/core/utils"
)

// attach points a sub-model or collection back at m.
func (m *Model) attach(v any) {
	switch child := v.(type) {
	case *Model:
		if child != nil && child != m {
			child.parent = weak.Make(m)
		}
	case *Collection:
		if child != nil {
			child.parent = weak.Make(m)
		}
	}
}

// detach clears the back-reference of v when it points at m.
func (m *Model) detach(v any) {
	switch child := v.(type) {
	case *Model:
		if child != nil && child.parent.Value() == m {
			child.parent = weak.Pointer[Model]{}
		}
	case *Collection:
		if child != nil && child.parent.Value() == m {
			child.parent = weak.Pointer[Model]{}
		}
	}
}

// track keeps back-references of relation attribute key in line with a commit
// replacing old by next.
func (m *Model) track(key string, old any, hadOld bool, next slot) {
	rel, ok := m.typ.Schema[key]
	if !ok || !rel.related() {
		return
	}
	if hadOld && isEntity(old) && (!next.ok || old != next.val) {
		m.detach(old)
	}
	if next.ok {
		m.attach(next.val)
	}
}

// sameIdentity compares identity values; numbers match across numeric types and
// an absent identity matches nothing.
func sameIdentity(a, b any) bool {
	return utils.SameScalar(a, b)
}
