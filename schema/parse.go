package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseError reports a malformed schema document. Path is a JSON Pointer to
// the offending node.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	if e.Cause != nil {
		return fmt.Sprintf("schema: %s at %s: %v", e.Message, path, e.Cause)
	}
	return fmt.Sprintf("schema: %s at %s", e.Message, path)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Parse parses an Avro schema written as JSON.
func Parse(data []byte) (Schema, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: "invalid JSON", Cause: err}
	}
	return newParser().parse(doc, "", "")
}

// ParseYAML parses an Avro schema written as YAML. The document model is the
// same as for JSON.
func ParseYAML(data []byte) (Schema, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: "invalid YAML", Cause: err}
	}
	return newParser().parse(normalizeYAML(doc), "", "")
}

// ParseFile reads path and parses it as YAML when the extension is .yaml or
// .yml and as JSON otherwise.
func ParseFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// normalizeYAML turns map[any]any nodes, which yaml.v3 produces for
// non-string keys, into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return v
	}
}

type parser struct {
	named map[string]NamedSchema
}

func newParser() *parser {
	return &parser{named: make(map[string]NamedSchema)}
}

var primitiveTags = map[string]Tag{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"bytes":   Bytes,
	"string":  String,
}

func (p *parser) parse(node any, namespace, path string) (Schema, error) {
	switch v := node.(type) {
	case string:
		return p.reference(v, namespace, path)
	case []any:
		members := make([]Schema, 0, len(v))
		for i, item := range v {
			if _, nested := item.([]any); nested {
				return nil, &ParseError{Path: fmt.Sprintf("%s/%d", path, i), Message: "unions may not immediately contain other unions"}
			}
			s, err := p.parse(item, namespace, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			members = append(members, s)
		}
		return NewUnion(members...), nil
	case map[string]any:
		return p.complex(v, namespace, path)
	case nil:
		return nil, &ParseError{Path: path, Message: "missing schema"}
	default:
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("unexpected %T", node)}
	}
}

func (p *parser) reference(name, namespace, path string) (Schema, error) {
	if tag, ok := primitiveTags[name]; ok {
		return NewPrimitive(tag), nil
	}
	if s, ok := p.named[NewQName(name, namespace).Full()]; ok {
		return s, nil
	}
	if s, ok := p.named[name]; ok {
		return s, nil
	}
	return nil, &ParseError{Path: path, Message: fmt.Sprintf("unknown type %q", name)}
}

func (p *parser) complex(obj map[string]any, namespace, path string) (Schema, error) {
	typ, ok := obj["type"]
	if !ok {
		return nil, &ParseError{Path: path, Message: "missing \"type\""}
	}
	name, isString := typ.(string)
	if !isString {
		// {"type": {...}} and {"type": [...]} wrap another schema.
		return p.parse(typ, namespace, path+"/type")
	}

	switch name {
	case "array":
		items, err := p.parse(obj["items"], namespace, path+"/items")
		if err != nil {
			return nil, err
		}
		return NewArray(items), nil
	case "map":
		values, err := p.parse(obj["values"], namespace, path+"/values")
		if err != nil {
			return nil, err
		}
		return NewMap(values), nil
	case "record", "error":
		return p.record(obj, name == "error", namespace, path)
	case "enum":
		n, err := p.define(obj, namespace, path)
		if err != nil {
			return nil, err
		}
		e := &EnumSchema{named: n}
		e.symbols, err = stringList(obj["symbols"], path+"/symbols")
		if err != nil {
			return nil, err
		}
		e.def, _ = obj["default"].(string)
		p.named[e.FullName()] = e
		return e, nil
	case "fixed":
		n, err := p.define(obj, namespace, path)
		if err != nil {
			return nil, err
		}
		size, ok := toInt(obj["size"])
		if !ok || size < 0 {
			return nil, &ParseError{Path: path + "/size", Message: "fixed size must be a non-negative integer"}
		}
		f := &FixedSchema{named: n, size: size}
		p.named[f.FullName()] = f
		return f, nil
	default:
		// {"type": "string", "logicalType": ...} and references by name.
		return p.reference(name, namespace, path+"/type")
	}
}

func (p *parser) record(obj map[string]any, isError bool, namespace, path string) (Schema, error) {
	n, err := p.define(obj, namespace, path)
	if err != nil {
		return nil, err
	}
	r := &RecordSchema{named: n, isError: isError}
	// Registered before the fields so that they may refer to the record.
	p.named[r.FullName()] = r

	rawFields, ok := obj["fields"].([]any)
	if !ok {
		return nil, &ParseError{Path: path + "/fields", Message: "record fields must be an array"}
	}
	seen := make(map[string]struct{}, len(rawFields))
	for i, raw := range rawFields {
		fpath := fmt.Sprintf("%s/fields/%d", path, i)
		fobj, ok := raw.(map[string]any)
		if !ok {
			return nil, &ParseError{Path: fpath, Message: "field must be an object"}
		}
		fname, _ := fobj["name"].(string)
		if fname == "" {
			return nil, &ParseError{Path: fpath + "/name", Message: "field name is required"}
		}
		if _, dup := seen[fname]; dup {
			return nil, &ParseError{Path: fpath + "/name", Message: fmt.Sprintf("duplicate field %q", fname)}
		}
		seen[fname] = struct{}{}

		ftype, err := p.parse(fobj["type"], r.Namespace(), fpath+"/type")
		if err != nil {
			return nil, err
		}
		field := &Field{Name: fname, Type: ftype, Default: fobj["default"]}
		field.Doc, _ = fobj["doc"].(string)
		if field.Aliases, err = stringList(fobj["aliases"], fpath+"/aliases"); err != nil {
			return nil, err
		}
		r.AddField(field)
	}
	return r, nil
}

func (p *parser) define(obj map[string]any, namespace, path string) (named, error) {
	name, _ := obj["name"].(string)
	if name == "" {
		return named{}, &ParseError{Path: path + "/name", Message: "named schema requires a name"}
	}
	if ns, ok := obj["namespace"].(string); ok {
		namespace = ns
	}
	n := named{qname: NewQName(name, namespace)}
	if _, exists := p.named[n.FullName()]; exists {
		return named{}, &ParseError{Path: path + "/name", Message: fmt.Sprintf("%q is already defined", n.FullName())}
	}
	n.doc, _ = obj["doc"].(string)
	aliases, err := stringList(obj["aliases"], path+"/aliases")
	if err != nil {
		return named{}, err
	}
	for _, a := range aliases {
		n.aliases = append(n.aliases, NewQName(a, n.qname.Namespace).Full())
	}
	return n, nil
}

func stringList(v any, path string) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &ParseError{Path: path, Message: "expected an array of strings"}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ParseError{Path: fmt.Sprintf("%s/%d", path, i), Message: "expected a string"}
		}
		out = append(out, s)
	}
	return out, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}
