package reactivity

import (
	"math"
	"reflect"
	"unsafe"
)

// identity returns the address that stands for v in the dependency store.
// Maps and pointers use their own address, slices the address of their
// backing array. Anything else, and slices without a backing array, have no
// identity.
func identity(v any) (unsafe.Pointer, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan:
		if rv.IsNil() {
			return nil, false
		}
		return rv.UnsafePointer(), true
	case reflect.Slice:
		if rv.Cap() == 0 {
			return nil, false
		}
		return rv.UnsafePointer(), true
	default:
		return nil, false
	}
}

// Same reports whether a and b are the same value: NaN is the same as NaN,
// +0 and -0 differ, maps, slices and pointers compare by identity and two
// non-nil funcs are never the same.
func Same(a, b any) (same bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && sameFloat(av, bv)
	case float32:
		bv, ok := b.(float32)
		return ok && sameFloat(float64(av), float64(bv))
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Map:
		ia, okA := identity(a)
		ib, okB := identity(b)
		return okA == okB && ia == ib
	case reflect.Slice:
		if reflect.ValueOf(a).Len() != reflect.ValueOf(b).Len() {
			return false
		}
		ia, okA := identity(a)
		ib, okB := identity(b)
		return okA == okB && ia == ib
	}
	if !ta.Comparable() {
		return false
	}

	// Comparable struct types can still hold uncomparable values behind
	// interface fields.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}
