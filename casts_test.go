package recast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeakScalarCasts(t *testing.T) {
	v, ok := AsInt("42").Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = AsString(42).Value()
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = AsBool("true").Value()
	assert.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = AsFloat("2.5").Value()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	res := AsInt("not a number")
	assert.Error(t, res.Err())
}

func TestAsGeneric(t *testing.T) {
	type coords struct {
		Lat float64 `mapstructure:"lat"`
		Lon float64 `mapstructure:"lon"`
	}
	unit := As[coords]()

	v, ok := unit(map[string]any{"lat": "40.7", "lon": -74.0}).Value()
	require.True(t, ok)
	assert.Equal(t, coords{Lat: 40.7, Lon: -74.0}, v)
}

func TestAsTime(t *testing.T) {
	unit := AsTime("2006-01-02")

	v, ok := unit("2021-11-11").Value()
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 11, 11, 0, 0, 0, 0, time.UTC), v)

	assert.Error(t, unit("11/11/2021").Err())
	assert.Error(t, unit(20211111).Err())
}

func TestIdentity(t *testing.T) {
	v, ok := Identity([]any{1, 2}).Value()
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2}, v)
}
