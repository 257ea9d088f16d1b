package observable

import "reflect"

// Equal is the shallow comparison used by Set. Comparable values use ==;
// maps, pointers, channels and unsafe pointers compare by identity, slices by
// identity and length. Functions never compare equal, so assigning one always
// notifies.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	return comparableEqual(a, b)
}

func comparableEqual(a, b any) (equal bool) {
	// Structs and arrays holding interfaces can still panic on ==.
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
