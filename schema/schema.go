// Package schema is the read-only Avro schema object model consumed by the
// resolver. Schemas form a closed sum type: every value implementing Schema
// is one of the concrete types declared in this package.
package schema

import "strings"

// Tag identifies the shape of a schema.
type Tag int

const (
	Null Tag = iota
	Boolean
	Int
	Long
	Float
	Double
	Bytes
	String
	Union
	Array
	Map
	Enum
	Record
	Fixed
	Error
)

var tagNames = [...]string{
	Null:    "null",
	Boolean: "boolean",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Bytes:   "bytes",
	String:  "string",
	Union:   "union",
	Array:   "array",
	Map:     "map",
	Enum:    "enum",
	Record:  "record",
	Fixed:   "fixed",
	Error:   "error",
}

// String returns the Avro spelling of the tag.
func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return "unknown"
	}
	return tagNames[t]
}

// IsPrimitive reports whether the tag is one of the eight Avro primitives.
func (t Tag) IsPrimitive() bool { return t >= Null && t <= String }

// IsNamed reports whether schemas with this tag carry a full name.
func (t Tag) IsNamed() bool { return t == Enum || t == Record || t == Fixed || t == Error }

// Schema is the root interface of the object model.
type Schema interface {
	Tag() Tag
	// Name is the simple name for named schemas and the Avro type name otherwise.
	Name() string
}

// NamedSchema is implemented by enum, record, fixed and error schemas.
type NamedSchema interface {
	Schema
	FullName() string
	Namespace() string
	Aliases() []string
	Doc() string
}

// Primitive is one of null, boolean, int, long, float, double, bytes or string.
type Primitive struct {
	tag Tag
}

var primitives = map[Tag]*Primitive{}

func init() {
	for t := Null; t <= String; t++ {
		primitives[t] = &Primitive{tag: t}
	}
}

// NewPrimitive returns the shared primitive schema for tag. It panics when
// tag is not a primitive.
func NewPrimitive(tag Tag) *Primitive {
	p, ok := primitives[tag]
	if !ok {
		panic("schema: " + tag.String() + " is not a primitive")
	}
	return p
}

func (p *Primitive) Tag() Tag { return p.tag }
func (p *Primitive) Name() string { return p.tag.String() }
func (p *Primitive) String() string { return p.tag.String() }

// UnionSchema is an ordered list of member schemas.
type UnionSchema struct {
	types []Schema
}

func NewUnion(types ...Schema) *UnionSchema { return &UnionSchema{types: types} }

func (u *UnionSchema) Tag() Tag { return Union }
func (u *UnionSchema) Name() string { return Union.String() }
func (u *UnionSchema) Types() []Schema { return u.types }

// Nullable returns the non-null member of a two member union that has a
// null branch.
func (u *UnionSchema) Nullable() (Schema, bool) {
	if len(u.types) != 2 {
		return nil, false
	}
	switch {
	case u.types[0].Tag() == Null:
		return u.types[1], true
	case u.types[1].Tag() == Null:
		return u.types[0], true
	}
	return nil, false
}

// ArraySchema holds an item schema.
type ArraySchema struct {
	items Schema
}

func NewArray(items Schema) *ArraySchema { return &ArraySchema{items: items} }

func (a *ArraySchema) Tag() Tag { return Array }
func (a *ArraySchema) Name() string { return Array.String() }
func (a *ArraySchema) Items() Schema { return a.items }

// MapSchema holds a value schema. Keys are always strings.
type MapSchema struct {
	values Schema
}

func NewMap(values Schema) *MapSchema { return &MapSchema{values: values} }

func (m *MapSchema) Tag() Tag { return Map }
func (m *MapSchema) Name() string { return Map.String() }
func (m *MapSchema) Values() Schema { return m.values }

// QName is a namespace qualified Avro name.
type QName struct {
	Name      string
	Namespace string
}

// NewQName builds a QName from a possibly dotted name and the enclosing
// namespace. A dotted name carries its own namespace.
func NewQName(name, namespace string) QName {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return QName{Name: name[i+1:], Namespace: name[:i]}
	}
	return QName{Name: name, Namespace: namespace}
}

// Full returns the namespace qualified name.
func (q QName) Full() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + "." + q.Name
}

type named struct {
	qname   QName
	aliases []string
	doc     string
}

func (n *named) Name() string { return n.qname.Name }
func (n *named) FullName() string { return n.qname.Full() }
func (n *named) Namespace() string { return n.qname.Namespace }
func (n *named) Aliases() []string { return n.aliases }
func (n *named) Doc() string { return n.doc }

// Field is a single record field.
type Field struct {
	Name    string
	Type    Schema
	Doc     string
	Default any
	Aliases []string
}

// RecordSchema is a record or an error schema.
type RecordSchema struct {
	named
	isError bool
	fields  []*Field
}

// NewRecord creates a record schema. Fields may be added later with
// AddField so that recursive definitions can refer to the record itself.
func NewRecord(name QName, fields ...*Field) *RecordSchema {
	return &RecordSchema{named: named{qname: name}, fields: fields}
}

// NewError creates an error schema, which Avro models as a record.
func NewError(name QName, fields ...*Field) *RecordSchema {
	r := NewRecord(name, fields...)
	r.isError = true
	return r
}

func (r *RecordSchema) Tag() Tag {
	if r.isError {
		return Error
	}
	return Record
}

func (r *RecordSchema) Fields() []*Field { return r.fields }
func (r *RecordSchema) AddField(f *Field) { r.fields = append(r.fields, f) }

// EnumSchema lists its symbols.
type EnumSchema struct {
	named
	symbols []string
	def     string
}

func NewEnum(name QName, symbols ...string) *EnumSchema {
	return &EnumSchema{named: named{qname: name}, symbols: symbols}
}

func (e *EnumSchema) Tag() Tag { return Enum }
func (e *EnumSchema) Symbols() []string { return e.symbols }
func (e *EnumSchema) Default() string { return e.def }

// FixedSchema is a named fixed-size byte sequence.
type FixedSchema struct {
	named
	size int
}

func NewFixed(name QName, size int) *FixedSchema {
	return &FixedSchema{named: named{qname: name}, size: size}
}

func (f *FixedSchema) Tag() Tag { return Fixed }
func (f *FixedSchema) Size() int { return f.size }
