package schema

// Walk calls fn for every named schema reachable from s, depth first, each
// one exactly once. Walking stops at the first error returned by fn.
func Walk(s Schema, fn func(NamedSchema) error) error {
	seen := make(map[string]struct{})
	var visit func(Schema) error
	visit = func(s Schema) error {
		switch v := s.(type) {
		case *UnionSchema:
			for _, m := range v.Types() {
				if err := visit(m); err != nil {
					return err
				}
			}
		case *ArraySchema:
			return visit(v.Items())
		case *MapSchema:
			return visit(v.Values())
		case NamedSchema:
			if _, ok := seen[v.FullName()]; ok {
				return nil
			}
			seen[v.FullName()] = struct{}{}
			if err := fn(v); err != nil {
				return err
			}
			if r, ok := v.(*RecordSchema); ok {
				for _, f := range r.Fields() {
					if err := visit(f.Type); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return visit(s)
}
