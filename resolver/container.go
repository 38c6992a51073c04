package resolver

import "reflect"

// Wrapper is a parameterization applied to an item handle.
type Wrapper int

const (
	Optional Wrapper = iota
	List
	Map
)

// Container selects the shape requested from TypeOfName and New.
type Container int

const (
	None Container = iota
	ArrayOf
	MapOf
)

func (c Container) String() string {
	switch c {
	case None:
		return "none"
	case ArrayOf:
		return "array"
	case MapOf:
		return "map"
	}
	return "unknown"
}

// Wrap builds the container handle of the given wrapper over item. It never
// fails:
//   - Optional wraps value-semantics primitives in a pointer and returns any
//     other handle, including nil, unchanged;
//   - List and Map build []T and map[string]T, substituting Dynamic for a
//     nil item.
func Wrap(item *Handle, w Wrapper) *Handle {
	switch w {
	case Optional:
		if !item.IsValue() {
			return item
		}
		return &Handle{kind: KindOptional, name: "*" + item.name, elem: item, rtype: reflect.PointerTo(item.rtype)}
	case List:
		if item == nil {
			item = Dynamic
		}
		rtype := reflect.SliceOf(item.rtype)
		if h, ok := primitiveByType[rtype]; ok {
			return h
		}
		return &Handle{kind: KindList, name: "[]" + item.name, elem: item, rtype: rtype}
	case Map:
		if item == nil {
			item = Dynamic
		}
		return &Handle{kind: KindMap, name: "map[string]" + item.name, elem: item, rtype: reflect.MapOf(stringType, item.rtype)}
	}
	return item
}
