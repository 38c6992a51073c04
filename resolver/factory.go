package resolver

import "reflect"

// New resolves name, wraps it according to c and returns a default
// instance of the resulting type.
func (r *Resolver) New(name string, c Container) (any, error) {
	h, err := r.TypeOfName(name, c)
	if err != nil {
		return nil, err
	}
	return Instantiate(h)
}

// Instantiate builds a default instance of h:
//   - a registered constructor is used when present;
//   - structs and arrays yield a pointer to a zero value, ready to be filled;
//   - pointers and optionals yield a pointer to a zero element;
//   - lists and maps yield empty, non-nil values;
//   - other primitives yield their zero value.
//
// Interfaces, functions and channels have no default instance.
func Instantiate(h *Handle) (any, error) {
	if h == nil {
		return nil, &InstantiationError{Type: "null", Reason: "the null type has no instances"}
	}
	if h.named != nil && h.named.New != nil {
		return h.named.New(), nil
	}

	rtype := h.rtype
	switch rtype.Kind() {
	case reflect.Interface:
		return nil, &InstantiationError{Type: h.name, Reason: "interface types are abstract"}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, &InstantiationError{Type: h.name, Reason: rtype.Kind().String() + " types have no default value"}
	case reflect.Struct, reflect.Array:
		return reflect.New(rtype).Interface(), nil
	case reflect.Pointer:
		return reflect.New(rtype.Elem()).Interface(), nil
	case reflect.Slice:
		return reflect.MakeSlice(rtype, 0, 0).Interface(), nil
	case reflect.Map:
		return reflect.MakeMap(rtype).Interface(), nil
	default:
		return reflect.Zero(rtype).Interface(), nil
	}
}
