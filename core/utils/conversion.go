package utils

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ToFloat64 reports the numeric value of val. The second result is false when val
// is not a Go numeric type.
func ToFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// IsNumber reports whether val holds a Go numeric type.
func IsNumber(val any) bool {
	_, ok := ToFloat64(val)
	return ok
}

// ToInt converts various types to int. Strings and byte slices are parsed; anything
// else falls back to its fmt representation.
func ToInt(val any) int {
	if f, ok := ToFloat64(val); ok {
		return int(f)
	}
	switch v := val.(type) {
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return i
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		i, _ := strconv.Atoi(fmt.Sprintf("%v", v))
		return i
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		if f, ok := ToFloat64(v); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// Numbers are true when equal to 1; strings accept "1" and "true".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case []byte:
		s := string(v)
		return s == "1" || strings.EqualFold(s, "true")
	default:
		if f, ok := ToFloat64(v); ok {
			return f == 1
		}
		return false
	}
}

// SameScalar compares two identity-like values. Numbers compare by value across
// Go numeric types (1, int64(1) and 1.0 are the same), everything else must be
// comparable and equal. Integers are compared exactly, so ids above 2^53 stay
// distinct. Nil never matches anything, including nil.
func SameScalar(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	na, okA := numberOf(a)
	nb, okB := numberOf(b)
	if okA && okB {
		return na.equal(nb)
	}
	if okA != okB {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

type numKind uint8

const (
	numSigned numKind = iota
	numUnsigned
	numFloat
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func numberOf(val any) (number, bool) {
	switch v := val.(type) {
	case int:
		return number{kind: numSigned, i: int64(v)}, true
	case int64:
		return number{kind: numSigned, i: v}, true
	case int32:
		return number{kind: numSigned, i: int64(v)}, true
	case int16:
		return number{kind: numSigned, i: int64(v)}, true
	case int8:
		return number{kind: numSigned, i: int64(v)}, true
	case uint:
		return number{kind: numUnsigned, u: uint64(v)}, true
	case uint64:
		return number{kind: numUnsigned, u: v}, true
	case uint32:
		return number{kind: numUnsigned, u: uint64(v)}, true
	case uint16:
		return number{kind: numUnsigned, u: uint64(v)}, true
	case uint8:
		return number{kind: numUnsigned, u: uint64(v)}, true
	case float64:
		return number{kind: numFloat, f: v}, true
	case float32:
		return number{kind: numFloat, f: float64(v)}, true
	default:
		return number{}, false
	}
}

func (n number) equal(o number) bool {
	if n.kind > o.kind {
		n, o = o, n
	}
	switch {
	case n.kind == numSigned && o.kind == numSigned:
		return n.i == o.i
	case n.kind == numUnsigned && o.kind == numUnsigned:
		return n.u == o.u
	case n.kind == numSigned && o.kind == numUnsigned:
		return n.i >= 0 && uint64(n.i) == o.u
	case n.kind == numFloat:
		return n.f == o.f
	}
	// Integer against float: the float must hold exactly that integer.
	f := o.f
	if f != math.Trunc(f) {
		return false
	}
	if n.kind == numSigned {
		if f < -(1<<63) || f >= 1<<63 {
			return false
		}
		return int64(f) == n.i
	}
	if f < 0 || f >= 1<<64 {
		return false
	}
	return uint64(f) == n.u
}
