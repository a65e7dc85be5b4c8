// Package recast converts semi-structured source data (maps, JSON, YAML,
// TOML, XML) into strongly-typed records according to a declarative schema:
// an ordered list of field descriptors describing which target fields exist,
// where their raw values live in the source, and how to cast them. It is
// aimed at consuming external API payloads into trusted internal
// representations.
//
// # Problem Statement
//
// Hand-rolled payload validation scatters the same concerns everywhere:
//
//   - Lookup logic: digging values out of nested maps or XML trees
//   - Conversion overhead: turning raw strings into proper Go types per field
//   - Inconsistent emptiness rules: nil, "", and missing keys handled ad hoc
//   - Useless errors: failures that don't say which nested field broke
//
// The recast package centralizes all four: a schema declares every target
// field once, the engine fetches, casts and validates uniformly, and a
// failure pinpoints the first broken field by its full dotted path.
//
// # Basic Usage
//
// Declare a schema against a struct type and cast a document:
//
//	type Post struct {
//	    Title string   `json:"title"`
//	    Tags  []string `json:"tags"`
//	}
//
//	schema := recast.SchemaOf[Post](
//	    recast.Simple("title", "title", recast.AsString),
//	    recast.ListOf("tags", "tags", recast.AsString, recast.Optional()),
//	)
//
//	mapper := recast.New[Post](schema, recast.MapAccessor{})
//	post, err := mapper.Cast(map[string]any{
//	    "title": "hello",
//	    "tags":  []any{"go", "schemas"},
//	})
//
// # Field Kinds
//
// Five descriptor kinds cover the usual shapes: Simple for scalars, ListOf
// for sequences of scalars, HasOne and HasMany for nested records driven by
// a child schema, and Aggregate for one target field synthesized from
// several independent source locations.
//
// # Cast Units
//
// A cast unit converts one raw value and returns a three-way Result: Ok with
// the value, Fail with a reason, or Empty. Units may be plain functions,
// values implementing Caster, or a Partial binding fixed arguments. A unit
// returning anything outside the Result contract panics with a
// ContractViolationError: that is a bug in schema construction, not bad
// input.
//
// # Emptiness and Defaults
//
// Each field decides what counts as empty (default: nil) and what to do
// about it. Required fields fail with ErrEmptyRequired; optional fields pass
// the empty value through or resolve it via a Default supplier. Emptiness is
// checked both before and after casting, so a cast that filters its input
// down to nothing triggers the same resolution as an absent value.
//
// # Sources
//
// The engine reads through a pluggable Accessor. MapAccessor serves
// map[string]any trees; JSONSource, YAMLSource and TOMLSource decode
// payloads into that shape; XMLSource and XMLAccessor serve XML documents.
// DetectSource sniffs the payload format and picks the pair for you.
//
// # Concurrency
//
// The engine is purely computational: no I/O, no blocking. Schemas and
// mappers are immutable after construction, so any number of Cast calls may
// run in parallel. CastAll batches documents across a Runner backed by
// errgroup.
package recast
