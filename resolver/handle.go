package resolver

import (
	"reflect"

	"github.com/vk/avrotype/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Kind identifies the shape of a Handle.
type Kind int

const (
	KindPrimitive Kind = iota
	KindDynamic
	KindOptional
	KindList
	KindMap
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindDynamic:
		return "dynamic"
	case KindOptional:
		return "optional"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindNamed:
		return "named"
	}
	return "unknown"
}

// Handle describes a resolved Go type. Handles are immutable and safe to
// share between goroutines.
type Handle struct {
	kind  Kind
	name  string
	elem  *Handle
	rtype reflect.Type
	named *registry.Type
}

var (
	stringType = reflect.TypeFor[string]()
	anyType    = reflect.TypeFor[any]()
)

// Primitive handles for the Avro primitive types, plus the dynamic handle
// used for values whose type is only known at run time.
var (
	Boolean = primitive("bool", reflect.TypeFor[bool]())
	Int     = primitive("int32", reflect.TypeFor[int32]())
	Long    = primitive("int64", reflect.TypeFor[int64]())
	Float   = primitive("float32", reflect.TypeFor[float32]())
	Double  = primitive("float64", reflect.TypeFor[float64]())
	Bytes   = primitive("[]byte", reflect.TypeFor[[]byte]())
	String  = primitive("string", stringType)
	Dynamic = &Handle{kind: KindDynamic, name: "any", rtype: anyType}
)

var primitiveByType = map[reflect.Type]*Handle{
	Boolean.rtype: Boolean,
	Int.rtype:     Int,
	Long.rtype:    Long,
	Float.rtype:   Float,
	Double.rtype:  Double,
	Bytes.rtype:   Bytes,
	String.rtype:  String,
	anyType:       Dynamic,
}

func primitive(name string, rtype reflect.Type) *Handle {
	return &Handle{kind: KindPrimitive, name: name, rtype: rtype}
}

// fromRegistry converts a registry entry into a handle. Go builtins come
// back as primitive handles so that a name lookup of "int32" and the Avro
// int schema agree.
func fromRegistry(t *registry.Type) *Handle {
	if h, ok := primitiveByType[t.Type]; ok && t.Module == registry.CoreModule {
		return h
	}
	if t.Module == registry.CoreModule && registry.IsBuiltin(t.Type) && t.Type.Kind() != reflect.Interface {
		return primitive(t.Name, t.Type)
	}
	return &Handle{kind: KindNamed, name: t.Name, rtype: t.Type, named: t}
}

// Kind returns the shape of the handle.
func (h *Handle) Kind() Kind { return h.kind }

// Name returns the Go spelling of the type, such as "int32", "[]string",
// "map[string]com.acme.User" or "com.acme.User".
func (h *Handle) Name() string { return h.name }

func (h *Handle) String() string { return h.name }

// Elem returns the element of an optional, list or map handle.
func (h *Handle) Elem() *Handle { return h.elem }

// Type returns the Go type values of this handle have.
func (h *Handle) Type() reflect.Type { return h.rtype }

// Registered returns the registry entry behind a named handle.
func (h *Handle) Registered() *registry.Type { return h.named }

// IsValue reports whether the handle is a primitive with value semantics,
// that is one that cannot already represent absence.
func (h *Handle) IsValue() bool {
	if h == nil || h.kind != KindPrimitive {
		return false
	}
	switch h.rtype.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return false
	}
	return true
}

// Equal reports whether two handles describe the same type.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.kind == other.kind && h.name == other.name && h.rtype == other.rtype
}

// CtyType maps the handle onto the cty type system.
func (h *Handle) CtyType() cty.Type {
	if h == nil {
		return cty.DynamicPseudoType
	}
	switch h.kind {
	case KindOptional:
		return h.elem.CtyType()
	case KindList:
		return cty.List(h.elem.CtyType())
	case KindMap:
		return cty.Map(h.elem.CtyType())
	case KindDynamic:
		return cty.DynamicPseudoType
	case KindPrimitive:
		switch h.rtype.Kind() {
		case reflect.Bool:
			return cty.Bool
		case reflect.String:
			return cty.String
		case reflect.Slice:
			// Bytes travel as base64 text wherever cty values are rendered.
			return cty.String
		case reflect.Interface:
			return cty.DynamicPseudoType
		default:
			return cty.Number
		}
	}
	if h.rtype.Kind() == reflect.Interface || refersToItself(h.rtype, map[reflect.Type]bool{}) {
		return cty.DynamicPseudoType
	}
	implied, err := gocty.ImpliedType(reflect.Zero(h.rtype).Interface())
	if err != nil {
		return cty.DynamicPseudoType
	}
	return implied
}

// refersToItself reports whether rtype reaches itself through the parts
// gocty follows when implying a type: pointers, slices, arrays, maps and
// cty-tagged struct fields. gocty has no cycle detection.
func refersToItself(rtype reflect.Type, path map[reflect.Type]bool) bool {
	if path[rtype] {
		return true
	}
	path[rtype] = true
	defer delete(path, rtype)

	switch rtype.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return refersToItself(rtype.Elem(), path)
	case reflect.Map:
		return refersToItself(rtype.Key(), path) || refersToItself(rtype.Elem(), path)
	case reflect.Struct:
		for i := 0; i < rtype.NumField(); i++ {
			f := rtype.Field(i)
			if _, tagged := f.Tag.Lookup("cty"); !tagged {
				continue
			}
			if refersToItself(f.Type, path) {
				return true
			}
		}
	}
	return false
}
