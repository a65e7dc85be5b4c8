package recast

import (
	"fmt"
	"reflect"
)

// resolveValue applies the empty/optional/default state machine around one
// cast step. Emptiness is checked twice: on the raw value before casting,
// and on whatever the cast produces. A raw absent value and a cast that
// filters its input down to an empty-equivalent value are both legitimate
// emptiness signals and resolve identically.
func resolveValue(raw any, cast castFn, o fieldOptions) (any, error) {
	empties := o.emptySet()

	if containsValue(empties, raw) {
		return resolveEmpty(raw, o)
	}

	res := cast(raw)
	switch res.kind {
	case resultError:
		return nil, res.reason
	case resultEmpty:
		return resolveEmpty(nil, o)
	}

	if containsValue(empties, res.value) {
		return resolveEmpty(res.value, o)
	}
	return res.value, nil
}

// resolveEmpty decides the fate of an empty value: an error when the field
// is required, the default supplier's value when one is installed, otherwise
// the empty value passes through unchanged.
func resolveEmpty(empty any, o fieldOptions) (any, error) {
	if !o.optional {
		return nil, ErrEmptyRequired
	}
	if o.def != nil {
		return callDefault(o.def)
	}
	return empty, nil
}

// callDefault shields the engine from a panicking default supplier; the
// panic surfaces as a data error on the owning field.
func callDefault(fn func() any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %v", ErrDefaultPanic, r)
		}
	}()
	return fn(), nil
}

// containsValue reports set membership by value equality, not identity.
func containsValue(set []any, v any) bool {
	for _, m := range set {
		if m == nil && v == nil {
			return true
		}
		if reflect.DeepEqual(m, v) {
			return true
		}
	}
	return false
}
