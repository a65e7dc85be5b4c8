package recast

import (
	"fmt"
	"reflect"
	"strings"
)

// Schema is an ordered list of field descriptors bound to a record shape.
// Descriptor order drives processing order; on failure no partial record is
// ever returned, so order only decides which error surfaces first.
type Schema struct {
	fields   []Field
	newShell func() Shell
	rtype    reflect.Type // nil for open map schemas
}

// Fields returns the schema's descriptors in processing order.
func (s *Schema) Fields() []Field { return s.fields }

// SchemaRef resolves to a schema. A *Schema is its own reference; Lazy
// defers resolution so schemas can reference themselves or each other.
type SchemaRef interface {
	schema() *Schema
}

func (s *Schema) schema() *Schema { return s }

type lazyRef func() *Schema

func (r lazyRef) schema() *Schema { return r() }

// Lazy wraps a schema constructor so a descriptor can reference a schema
// that is not built yet. Note that Expand on a self-referential schema graph
// does not terminate; Lazy breaks construction cycles, not expansion cycles.
func Lazy(fn func() *Schema) SchemaRef { return lazyRef(fn) }

// Shell is the record under construction. The engine creates a fresh shell
// per Cast call and writes one key at a time, in descriptor order.
type Shell interface {
	Set(key string, value any) error
	Value() any
}

// NewSchema builds a schema over an open map record. Aggregate intermediates
// use this shape, and it is handy when no struct type exists for the target.
func NewSchema(fields ...Field) *Schema {
	return &Schema{
		fields:   fields,
		newShell: func() Shell { return mapShell{} },
	}
}

// SchemaOf builds a schema over the struct type T. Target keys are resolved
// against T's json tags, falling back to the field name. Unknown keys are a
// construction bug and panic here rather than failing per Cast call.
func SchemaOf[T any](fields ...Field) *Schema {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("recast: SchemaOf requires a struct type, got %s", rt))
	}
	index := buildFieldIndex(rt)
	for _, f := range fields {
		if _, ok := index[f.key]; !ok {
			panic(fmt.Sprintf("recast: %s has no writable key %q", rt, f.key))
		}
	}
	return &Schema{
		fields: fields,
		rtype:  rt,
		newShell: func() Shell {
			return &structShell{ptr: reflect.New(rt), index: index}
		},
	}
}

// buildFieldIndex maps target keys to struct field indices, honoring json
// tags the way encoding/json does for the tag name.
func buildFieldIndex(rt reflect.Type) map[string]int {
	index := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		key := strings.Split(f.Tag.Get("json"), ",")[0]
		if key == "-" {
			continue
		}
		if key == "" {
			key = f.Name
		}
		index[key] = i
	}
	return index
}

// mapShell is an open record: any key is writable.
type mapShell map[string]any

func (m mapShell) Set(key string, value any) error {
	m[key] = value
	return nil
}

func (m mapShell) Value() any { return map[string]any(m) }

// structShell writes into a freshly allocated struct via reflection.
type structShell struct {
	ptr   reflect.Value // Ptr to struct
	index map[string]int
}

func (s *structShell) Set(key string, value any) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("record %s has no writable key %q", s.ptr.Type().Elem(), key)
	}
	if err := assignValue(s.ptr.Elem().Field(i), value); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}

func (s *structShell) Value() any { return s.ptr.Interface() }

// assignValue stores v into dst, bridging the representational gaps the
// engine produces: nested records arrive as struct pointers, collected lists
// as []any. Numeric conversions are allowed; anything lossy or surprising
// (like int to string) is not.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)

	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}

	// *Child into Child
	if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Type().Elem().AssignableTo(dst.Type()) {
		dst.Set(rv.Elem())
		return nil
	}

	// Child into *Child
	if dst.Kind() == reflect.Ptr && rv.Type().AssignableTo(dst.Type().Elem()) {
		p := reflect.New(dst.Type().Elem())
		p.Elem().Set(rv)
		dst.Set(p)
		return nil
	}

	// []any into []T, element-wise
	if dst.Kind() == reflect.Slice && rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := assignValue(out.Index(i), rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	}

	if isNumeric(rv.Kind()) && isNumeric(dst.Kind()) && rv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}

	return fmt.Errorf("cannot store %T into %s", v, dst.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
