package recast

import "fmt"

// Kind discriminates the five field descriptor variants.
type Kind uint8

const (
	KindSimple Kind = iota
	KindListOf
	KindHasOne
	KindHasMany
	KindAggregate
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "field"
	case KindListOf:
		return "listOf"
	case KindHasOne:
		return "hasOne"
	case KindHasMany:
		return "hasMany"
	case KindAggregate:
		return "aggregate"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Field is one declarative rule describing how to populate one target key.
// Fields are immutable once built and safe to share across concurrent Cast
// calls.
type Field struct {
	key      string
	path     string
	kind     Kind
	cast     castFn
	castName string
	child    SchemaRef // hasOne / hasMany
	inner    *Schema   // aggregate intermediate
	opts     fieldOptions
}

// Key returns the target key the field writes to.
func (f Field) Key() string { return f.key }

// Path returns the source path token handed to the accessor.
func (f Field) Path() string { return f.path }

// Kind returns the descriptor variant.
func (f Field) Kind() Kind { return f.kind }

type fieldOptions struct {
	optional bool
	empty    []any      // nil means the default set {nil}
	def      func() any // default supplier, may be nil
}

// emptySet merges the field's options with the engine defaults. An explicit
// EmptyValues replaces the default set wholesale, it is never unioned.
func (o fieldOptions) emptySet() []any {
	if o.empty == nil {
		return []any{nil}
	}
	return o.empty
}

// FieldOption configures required/empty/default semantics on one descriptor.
type FieldOption func(*fieldOptions)

// Optional marks the field as optional: an empty value resolves through the
// default supplier when present, or passes through unchanged.
func Optional() FieldOption {
	return func(o *fieldOptions) { o.optional = true }
}

// EmptyValues replaces the set of values the field treats as empty.
// Membership is decided by value equality. The engine default is {nil}.
func EmptyValues(vs ...any) FieldOption {
	return func(o *fieldOptions) {
		o.empty = vs
		if o.empty == nil {
			o.empty = []any{}
		}
	}
}

// Default installs a zero-argument supplier used when an optional field
// resolves to an empty value.
func Default(fn func() any) FieldOption {
	return func(o *fieldOptions) { o.def = fn }
}

// Simple declares a scalar field: the raw value at path is handed to unit
// directly.
func Simple(key, path string, unit any, opts ...FieldOption) Field {
	cast, name := mustUnit(key, unit)
	return Field{
		key:      key,
		path:     path,
		kind:     KindSimple,
		cast:     cast,
		castName: name,
		opts:     buildOptions(opts),
	}
}

// ListOf declares a list-of-scalars field: the raw value at path must be a
// sequence and unit is applied per element, preserving order.
func ListOf(key, path string, unit any, opts ...FieldOption) Field {
	cast, name := mustUnit(key, unit)
	return Field{
		key:      key,
		path:     path,
		kind:     KindListOf,
		cast:     cast,
		castName: name,
		opts:     buildOptions(opts),
	}
}

// HasOne declares a single nested record populated from the child schema
// against the raw node found at path.
func HasOne(key, path string, child SchemaRef, opts ...FieldOption) Field {
	if child == nil {
		panic(fmt.Sprintf("recast: field %q: nil child schema", key))
	}
	return Field{key: key, path: path, kind: KindHasOne, child: child, opts: buildOptions(opts)}
}

// HasMany declares a list of nested records, one per element of the sequence
// found at path, preserving order.
func HasMany(key, path string, child SchemaRef, opts ...FieldOption) Field {
	if child == nil {
		panic(fmt.Sprintf("recast: field %q: nil child schema", key))
	}
	return Field{key: key, path: path, kind: KindHasMany, child: child, opts: buildOptions(opts)}
}

// Aggregate declares a field synthesized from several independent source
// locations: the inner fields run against the same source node the parent
// schema is reading, and the intermediate record they produce is handed to
// unit as a single value.
func Aggregate(key string, unit any, fields []Field, opts ...FieldOption) Field {
	cast, name := mustUnit(key, unit)
	return Field{
		key:      key,
		kind:     KindAggregate,
		cast:     cast,
		castName: name,
		inner:    NewSchema(fields...),
		opts:     buildOptions(opts),
	}
}

func buildOptions(opts []FieldOption) fieldOptions {
	var o fieldOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// mustUnit normalizes a cast unit at build time. A malformed unit is a
// schema construction bug, so it panics rather than surfacing later as a
// data error.
func mustUnit(key string, unit any) (castFn, string) {
	fn, name, err := normalizeUnit(unit)
	if err != nil {
		panic(fmt.Sprintf("recast: field %q: %v", key, err))
	}
	return fn, name
}
