// Package typename rewrites the type names found in schemas and user input
// into the canonical Go spelling used as registry and cache keys.
//
// Container spellings borrowed from other ecosystems are folded into their Go
// equivalents: T?, Optional<T> and Nullable<T> become *T, list-like generics
// become []T, dictionary-like generics become map[string]T, and any other
// angle-bracket instantiation G<A,B> becomes G[A,B].
package typename

import "strings"

// Prefix identifies the composite form of a normalized name.
type Prefix int

const (
	None Prefix = iota
	Pointer
	Slice
	Map
)

const mapPrefix = "map[string]"

var (
	optionalNames = map[string]bool{"Optional": true, "Nullable": true, "optional": true, "nullable": true}
	listNames     = map[string]bool{"IList": true, "List": true, "list": true, "array": true, "IEnumerable": true, "ICollection": true}
	mapNames      = map[string]bool{"IDictionary": true, "Dictionary": true, "map": true, "Map": true}
)

// Normalize returns the canonical spelling of raw. It never fails: input it
// does not understand is returned trimmed but otherwise unchanged.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return name
	}
	out, ok := rewrite(name)
	if !ok {
		return name
	}
	return out
}

func rewrite(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if strings.HasSuffix(name, "?") {
		inner, ok := rewrite(name[:len(name)-1])
		if !ok {
			return "", false
		}
		return "*" + inner, true
	}

	open := strings.IndexByte(name, '<')
	if open < 0 {
		if strings.ContainsRune(name, '>') {
			return "", false
		}
		return name, true
	}
	if !strings.HasSuffix(name, ">") {
		return "", false
	}
	head := strings.TrimSpace(name[:open])
	args, ok := splitArgs(name[open+1 : len(name)-1])
	if !ok || head == "" {
		return "", false
	}
	for i, a := range args {
		if args[i], ok = rewrite(a); !ok {
			return "", false
		}
	}

	simple := head
	if i := strings.LastIndexByte(head, '.'); i >= 0 {
		simple = head[i+1:]
	}
	switch {
	case optionalNames[simple] && len(args) == 1:
		return "*" + args[0], true
	case listNames[simple] && len(args) == 1:
		return "[]" + args[0], true
	case mapNames[simple] && len(args) == 1:
		return mapPrefix + args[0], true
	case mapNames[simple] && len(args) == 2 && args[0] == "string":
		return mapPrefix + args[1], true
	}
	return head + "[" + strings.Join(args, ",") + "]", true
}

// splitArgs splits a generic argument list on top level commas.
func splitArgs(s string) ([]string, bool) {
	var (
		args  []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	args = append(args, s[start:])
	return args, true
}

// Split reports the composite prefix of a normalized name and the element
// name that follows it.
func Split(name string) (Prefix, string) {
	switch {
	case strings.HasPrefix(name, "*") && len(name) > 1:
		return Pointer, name[1:]
	case strings.HasPrefix(name, "[]") && len(name) > 2:
		return Slice, name[2:]
	case strings.HasPrefix(name, mapPrefix) && len(name) > len(mapPrefix):
		return Map, name[len(mapPrefix):]
	}
	return None, name
}

// Simple returns the last dot separated segment of a name, ignoring any
// generic argument list.
func Simple(name string) string {
	base := name
	if i := strings.IndexByte(base, '['); i > 0 {
		base = base[:i]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
