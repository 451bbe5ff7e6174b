package hmc

// Kind names a concrete entity kind as it appears in the content-type
// indicator and in nested element tags.
type Kind string

// Schema is the attribute table of one concrete kind: a static mapping from
// field name to the slash-separated path locating that field inside the
// payload element. A subtype's effective table is the union of its own
// entries and all ancestor tables, with the subtype winning on collision.
type Schema struct {
	Kind   Kind
	Parent *Schema
	Fields map[string]string
}

// Path resolves a field name to its payload path, walking the parent chain.
func (s *Schema) Path(field string) (string, bool) {
	for schema := s; schema != nil; schema = schema.Parent {
		if path, ok := schema.Fields[field]; ok {
			return path, true
		}
	}

	return "", false
}

// FieldNames returns the union of field names declared by this schema and
// its ancestors.
func (s *Schema) FieldNames() []string {
	seen := make(map[string]bool)

	var names []string

	for schema := s; schema != nil; schema = schema.Parent {
		for name := range schema.Fields {
			if !seen[name] {
				seen[name] = true

				names = append(names, name)
			}
		}
	}

	return names
}
