package resolver

import (
	"fmt"

	"github.com/vk/avrotype/schema"
)

var primitiveByTag = map[schema.Tag]*Handle{
	schema.Boolean: Boolean,
	schema.Int:     Int,
	schema.Long:    Long,
	schema.Float:   Float,
	schema.Double:  Double,
	schema.Bytes:   Bytes,
	schema.String:  String,
}

// TypeOf returns the handle for s. The null schema has no handle and
// yields (nil, nil).
func (r *Resolver) TypeOf(s schema.Schema) (*Handle, error) {
	if s == nil {
		return nil, nil
	}
	tag := s.Tag()
	switch {
	case tag == schema.Null:
		return nil, nil
	case tag.IsPrimitive():
		return primitiveByTag[tag], nil
	case tag.IsNamed():
		if n, ok := s.(schema.NamedSchema); ok {
			return r.Resolve(n.FullName())
		}
		return r.Resolve(s.Name())
	}

	switch tag {
	case schema.Union:
		u, ok := s.(*schema.UnionSchema)
		if !ok {
			return Dynamic, nil
		}
		inner, ok := u.Nullable()
		if !ok {
			return Dynamic, nil
		}
		h, err := r.TypeOf(inner)
		if err != nil {
			return nil, err
		}
		return Wrap(h, Optional), nil
	case schema.Array:
		a, ok := s.(*schema.ArraySchema)
		if !ok {
			return nil, fmt.Errorf("array schema has unexpected type %T", s)
		}
		item, err := r.TypeOf(a.Items())
		if err != nil {
			return nil, err
		}
		return Wrap(item, List), nil
	case schema.Map:
		m, ok := s.(*schema.MapSchema)
		if !ok {
			return nil, fmt.Errorf("map schema has unexpected type %T", s)
		}
		value, err := r.TypeOf(m.Values())
		if err != nil {
			return nil, err
		}
		return Wrap(value, Map), nil
	}
	return nil, fmt.Errorf("unsupported schema tag %s", tag)
}

// TypeOfName resolves name and wraps the result according to c.
func (r *Resolver) TypeOfName(name string, c Container) (*Handle, error) {
	h, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	switch c {
	case ArrayOf:
		return Wrap(h, List), nil
	case MapOf:
		return Wrap(h, Map), nil
	}
	return h, nil
}
