package recast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type empties struct {
	Value string `json:"value"`
}

// Pre-cast and post-cast emptiness resolve identically: a raw nil and a cast
// producing nil both land on the default.
func TestEmptinessSymmetry(t *testing.T) {
	toNil := func(v any) Result { return Ok(nil) }

	schema := SchemaOf[empties](
		Simple("value", "value", toNil,
			Optional(),
			Default(func() any { return "D" }),
		),
	)
	mapper := New[empties](schema, MapAccessor{})

	rec, err := mapper.Cast(map[string]any{"value": nil})
	require.NoError(t, err)
	assert.Equal(t, "D", rec.Value, "raw emptiness triggers the default")

	rec, err = mapper.Cast(map[string]any{"value": "x"})
	require.NoError(t, err)
	assert.Equal(t, "D", rec.Value, "casted emptiness triggers the default")
}

func TestResolveRequiredEmpty(t *testing.T) {
	_, err := resolveValue(nil, castFn(Identity), fieldOptions{})
	assert.ErrorIs(t, err, ErrEmptyRequired)
}

func TestResolveOptionalPassThrough(t *testing.T) {
	v, err := resolveValue(nil, castFn(Identity), fieldOptions{optional: true})
	require.NoError(t, err)
	assert.Nil(t, v, "empty value passes through unchanged without a default")
}

func TestResolveEmptyValueSkipsCast(t *testing.T) {
	unit := NewCountingUnit(Identity)
	v, err := resolveValue(nil, unit.Cast, fieldOptions{optional: true})
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 0, unit.Calls(), "cast is skipped for raw empty values")
}

func TestResolveCustomEmptySet(t *testing.T) {
	o := fieldOptions{optional: true, def: func() any { return "filled" }}
	EmptyValues(nil, "")(&o)

	v, err := resolveValue("", castFn(Identity), o)
	require.NoError(t, err)
	assert.Equal(t, "filled", v)

	// membership is by value equality, so an equal-but-distinct slice matches
	o2 := fieldOptions{optional: true}
	EmptyValues([]any{})(&o2)
	v, err = resolveValue([]any{}, castFn(Identity), o2)
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)
}

// An explicit EmptyValues replaces the default set: nil stops being empty.
func TestResolveEmptySetOverridesDefaults(t *testing.T) {
	o := fieldOptions{}
	EmptyValues("")(&o)

	seen := false
	unit := func(v any) Result {
		seen = true
		assert.Nil(t, v)
		return Ok("cast ran")
	}
	v, err := resolveValue(nil, mustTestUnit(t, unit), o)
	require.NoError(t, err)
	assert.True(t, seen, "nil is no longer empty, so it reaches the cast")
	assert.Equal(t, "cast ran", v)
}

func TestResolveEmptySignal(t *testing.T) {
	signal := func(v any) Result { return Empty }

	_, err := resolveValue("raw", mustTestUnit(t, signal), fieldOptions{})
	assert.ErrorIs(t, err, ErrEmptyRequired)

	v, err := resolveValue("raw", mustTestUnit(t, signal), fieldOptions{
		optional: true,
		def:      func() any { return 9 },
	})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestResolveCastFailurePropagates(t *testing.T) {
	unit := func(v any) Result { return Failf("no good") }
	_, err := resolveValue("raw", mustTestUnit(t, unit), fieldOptions{})
	require.Error(t, err)
	assert.EqualError(t, err, "no good")
}

func TestResolveDefaultPanics(t *testing.T) {
	o := fieldOptions{
		optional: true,
		def:      func() any { panic("supplier bug") },
	}
	_, err := resolveValue(nil, castFn(Identity), o)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDefaultPanic)
	assert.Contains(t, err.Error(), "supplier bug")
}

func mustTestUnit(t *testing.T, unit any) castFn {
	t.Helper()
	fn, _, err := normalizeUnit(unit)
	require.NoError(t, err)
	return fn
}
