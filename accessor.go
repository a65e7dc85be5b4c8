package recast

import "strings"

// Accessor extracts raw values at a path from a source document of one
// format. Implementations must never fail on a well-formed "not found":
// absence is reported as nil, which the engine's default empty set matches.
//
// The four operations mirror the four field kind families; an implementation
// may serve several of them with the same lookup when the format does not
// distinguish scalars from nodes.
type Accessor interface {
	Field(src any, path string) any
	ListOf(src any, path string) any
	HasOne(src any, path string) any
	HasMany(src any, path string) any
}

// MapAccessor navigates map[string]any trees. Path tokens are dot-separated
// keys; a missing key at any depth yields nil. JSON, YAML and TOML sources
// all decode into this shape.
type MapAccessor struct{}

func (MapAccessor) Field(src any, path string) any   { return navigateMap(src, path) }
func (MapAccessor) ListOf(src any, path string) any  { return navigateMap(src, path) }
func (MapAccessor) HasOne(src any, path string) any  { return navigateMap(src, path) }
func (MapAccessor) HasMany(src any, path string) any { return navigateMap(src, path) }

func navigateMap(src any, path string) any {
	current := src
	for _, seg := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return current
}
