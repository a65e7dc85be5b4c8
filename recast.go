// Package recast implements a fail-fast, path-preserving casting engine
// generalized over arbitrary source formats via a small Accessor abstraction.
package recast

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
)

// Mapper casts source documents into records of type T through a schema and
// an accessor. A Mapper is immutable after construction and safe for
// concurrent use; every Cast call owns its record under construction
// exclusively.
type Mapper[T any] struct {
	schema *Schema
	acc    Accessor
	log    *slog.Logger
}

// New returns a Mapper that logs with slog.Default(). A nil accessor falls
// back to MapAccessor.
func New[T any](schema *Schema, acc Accessor) *Mapper[T] {
	return NewWithLogger[T](schema, acc, slog.Default())
}

// NewWithLogger lets the caller supply their own logger.
func NewWithLogger[T any](schema *Schema, acc Accessor, log *slog.Logger) *Mapper[T] {
	if acc == nil {
		acc = MapAccessor{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Mapper[T]{schema: schema, acc: acc, log: log}
}

// Cast runs the schema against one source document and returns either a
// fully populated record or the first failure, annotated with the full path
// from the record root to the failing field. No partial record is returned.
func (m *Mapper[T]) Cast(src any) (*T, error) {
	m.log.Debug("cast started", "record", fmt.Sprintf("%T", (*T)(nil)), "fields", len(m.schema.fields))

	shell, err := m.schema.run(src, m.acc, m.log)
	if err != nil {
		m.log.Debug("cast failed", "error", err)
		return nil, err
	}

	rec, ok := shell.Value().(*T)
	if !ok {
		return nil, fmt.Errorf("%w: schema produces %T, mapper wants *%s",
			ErrSchemaMismatch, shell.Value(), reflect.TypeOf((*T)(nil)).Elem())
	}
	m.log.Debug("cast finished")
	return rec, nil
}

// CastAll casts many source documents concurrently. The first failure
// cancels the batch and is returned annotated with the source index.
func (m *Mapper[T]) CastAll(ctx context.Context, sources []any, optFns ...func(*Options)) ([]*T, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	r := opts.Runner
	if r == nil {
		if opts.MaxConcurrency > 0 {
			r = NewLimitedRunner(ctx, opts.MaxConcurrency)
		} else {
			r = DefaultRunner(ctx)
		}
	}

	out := make([]*T, len(sources))
	for i, src := range sources {
		i, src := i, src
		r.Go(func() error {
			rec, err := m.Cast(src)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			out[i] = rec
			return nil
		})
	}
	if err := r.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// run is the engine driver: a fail-fast reduction over the descriptor list.
// The first error stops processing; later descriptors, and their cast units,
// are never touched.
func (s *Schema) run(src any, acc Accessor, log *slog.Logger) (Shell, error) {
	shell := s.newShell()
	for _, f := range s.fields {
		log.Debug("casting field", "key", f.key, "kind", f.kind.String(), "path", f.path)
		val, err := processField(f, src, acc, log)
		if err != nil {
			return nil, wrapField(f.key, err)
		}
		if err := shell.Set(f.key, val); err != nil {
			return nil, wrapField(f.key, err)
		}
	}
	return shell, nil
}

// processField dispatches one descriptor to its kind-specific cast step. All
// kinds share the same skeleton: fetch the raw value through the accessor,
// then resolve it through the empty/optional/default machinery with a
// kind-specific cast in the middle.
func processField(f Field, src any, acc Accessor, log *slog.Logger) (any, error) {
	switch f.kind {
	case KindSimple:
		return resolveValue(acc.Field(src, f.path), f.cast, f.opts)

	case KindListOf:
		return resolveValue(acc.ListOf(src, f.path), castEach(f.cast), f.opts)

	case KindHasOne:
		return resolveValue(acc.HasOne(src, f.path), castNested(f.child, acc, log), f.opts)

	case KindHasMany:
		return resolveValue(acc.HasMany(src, f.path), castEach(castNested(f.child, acc, log)), f.opts)

	case KindAggregate:
		// The intermediate record reads from the same source node, not a
		// sub-path, so one target field can combine independent locations.
		inter, err := f.inner.run(src, acc, log)
		if err != nil {
			return nil, err
		}
		return resolveValue(inter.Value(), f.cast, f.opts)
	}
	return nil, fmt.Errorf("unknown field kind %d", f.kind)
}

// castEach lifts a per-element cast over an ordered sequence. The first
// element failure halts with the element's index on the error path; success
// preserves source order.
func castEach(cast castFn) castFn {
	return func(raw any) Result {
		seq, ok := asSequence(raw)
		if !ok {
			return Failf("%w: got %T", ErrNotASequence, raw)
		}
		out := make([]any, 0, len(seq))
		for i, el := range seq {
			res := cast(el)
			switch res.kind {
			case resultError:
				return Fail(wrapField(strconv.Itoa(i), res.reason))
			case resultEmpty:
				out = append(out, nil)
			default:
				out = append(out, res.value)
			}
		}
		return Ok(out)
	}
}

// castNested turns a recursive schema run into a cast step, so nested
// records flow through the same resolution machinery as scalars.
func castNested(ref SchemaRef, acc Accessor, log *slog.Logger) castFn {
	return func(node any) Result {
		shell, err := ref.schema().run(node, acc, log)
		if err != nil {
			return Fail(err)
		}
		return Ok(shell.Value())
	}
}

// asSequence accepts []any directly and any other slice or array via
// reflection. Strings and maps are not sequences here.
func asSequence(raw any) ([]any, bool) {
	if seq, ok := raw.([]any); ok {
		return seq, true
	}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	seq := make([]any, rv.Len())
	for i := range seq {
		seq[i] = rv.Index(i).Interface()
	}
	return seq, true
}
