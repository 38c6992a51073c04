// Package resolver maps Avro schemas and type names to Go type handles and
// builds default instances of the resolved types.
//
// Primitive schemas map to fixed handles (int to int32, long to int64,
// bytes to []byte and so on). Arrays and maps map to []T and map[string]T.
// A two member union with a null branch maps to *T when T is a value
// primitive and to T otherwise; every other union maps to any. Named
// schemas are looked up by full name through a Scanner, normally a
// registry.Registry, and the result is cached per resolver.
//
//	r := resolver.New(reg)
//	h, err := r.TypeOf(s)            // schema -> handle
//	h, err = r.TypeOfName("com.acme.User", resolver.ArrayOf)
//	v, err := r.New("com.acme.User", resolver.None)
//
// All methods are safe for concurrent use. Concurrent lookups of the same
// uncached name trigger a single scan.
package resolver
