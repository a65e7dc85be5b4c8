package recast

// ExpandedField is one node of a fully inlined descriptor tree: every nested
// schema reference resolved into its descriptor list.
type ExpandedField struct {
	Key      string          `json:"key"`
	Path     string          `json:"path,omitempty"`
	Kind     Kind            `json:"kind"`
	Optional bool            `json:"optional,omitempty"`
	CastName string          `json:"cast,omitempty"`
	Children []ExpandedField `json:"children,omitempty"`

	cast castFn
}

// Expand inlines every nested schema reference in s, recursively. There is
// no cycle detection: expanding a self-referential schema graph does not
// terminate.
func Expand(s *Schema) []ExpandedField {
	out := make([]ExpandedField, 0, len(s.fields))
	for _, f := range s.fields {
		ef := ExpandedField{
			Key:      f.key,
			Path:     f.path,
			Kind:     f.kind,
			Optional: f.opts.optional,
			CastName: f.castName,
			cast:     f.cast,
		}
		switch f.kind {
		case KindHasOne, KindHasMany:
			ef.Children = Expand(f.child.schema())
		case KindAggregate:
			ef.Children = Expand(f.inner)
		}
		out = append(out, ef)
	}
	return out
}

// PathEntry pairs an absolute source path with the cast unit applied there.
type PathEntry struct {
	Path     string
	CastName string
	Cast     func(any) Result
}

// FlattenPaths reduces an expanded tree to the ordered list of absolute
// source paths its leaves read from. Nested kinds concatenate parent and
// child paths with a dot; aggregate children recurse without concatenation
// since aggregates read from the same document node as their parent.
func FlattenPaths(fields []ExpandedField) []PathEntry {
	var out []PathEntry
	flattenInto("", fields, &out)
	return out
}

func flattenInto(prefix string, fields []ExpandedField, out *[]PathEntry) {
	for _, f := range fields {
		abs := joinPath(prefix, f.Path)
		switch f.Kind {
		case KindSimple, KindListOf:
			*out = append(*out, PathEntry{Path: abs, CastName: f.CastName, Cast: f.cast})
		case KindHasOne, KindHasMany:
			flattenInto(abs, f.Children, out)
		case KindAggregate:
			flattenInto(prefix, f.Children, out)
		}
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
