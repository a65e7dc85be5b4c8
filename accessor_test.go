package recast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAccessorNavigation(t *testing.T) {
	src := map[string]any{
		"post": map[string]any{
			"author": map[string]any{"name": "ada"},
			"tags":   []any{"a", "b"},
		},
	}
	acc := MapAccessor{}

	assert.Equal(t, "ada", acc.Field(src, "post.author.name"))
	assert.Equal(t, []any{"a", "b"}, acc.ListOf(src, "post.tags"))
	assert.Equal(t, map[string]any{"name": "ada"}, acc.HasOne(src, "post.author"))
}

func TestMapAccessorAbsence(t *testing.T) {
	src := map[string]any{"a": map[string]any{"b": 1}}
	acc := MapAccessor{}

	assert.Nil(t, acc.Field(src, "a.missing"))
	assert.Nil(t, acc.Field(src, "missing.b"))
	assert.Nil(t, acc.Field(src, "a.b.tooDeep"), "descending through a scalar is absence, not an error")
	assert.Nil(t, acc.Field("not a map", "a"))
	assert.Nil(t, acc.Field(nil, "a"))
}
