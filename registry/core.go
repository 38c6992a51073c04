package registry

import "reflect"

// CoreModule is the name of the source holding Go's predeclared types.
const CoreModule = "core"

// Core returns a new source with Go's predeclared types registered under
// their Go spelling. "byte" and "uint8" are the same type, as are "rune"
// and "int32", and "any" and "interface{}".
func Core() *Module {
	m := NewModule(CoreModule)
	Register[bool](m, "bool")
	Register[string](m, "string")
	Register[int](m, "int")
	Register[int8](m, "int8")
	Register[int16](m, "int16")
	Register[int32](m, "int32")
	Register[int64](m, "int64")
	Register[uint](m, "uint")
	Register[uint8](m, "uint8")
	Register[uint16](m, "uint16")
	Register[uint32](m, "uint32")
	Register[uint64](m, "uint64")
	Register[uintptr](m, "uintptr")
	Register[float32](m, "float32")
	Register[float64](m, "float64")
	Register[complex64](m, "complex64")
	Register[complex128](m, "complex128")
	Register[byte](m, "byte")
	Register[rune](m, "rune")
	Register[any](m, "any")
	Register[any](m, "interface{}")
	Register[error](m, "error")
	return m
}

// IsBuiltin reports whether rType is one of Go's predeclared types.
func IsBuiltin(rType reflect.Type) bool {
	return rType != nil && rType.PkgPath() == "" && rType.Name() != ""
}
