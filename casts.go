package recast

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// Identity passes the raw value through unchanged.
func Identity(v any) Result { return Ok(v) }

// As builds a weakly-typed cast unit for T: strings holding numbers become
// numbers, numbers become strings, and so on, per mapstructure's weak
// decoding rules.
func As[T any]() func(any) Result {
	return func(v any) Result {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &out,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return Fail(err)
		}
		if err := dec.Decode(v); err != nil {
			return Fail(err)
		}
		return Ok(out)
	}
}

// Common scalar cast units.
var (
	AsString = As[string]()
	AsInt    = As[int]()
	AsFloat  = As[float64]()
	AsBool   = As[bool]()
)

// AsTime builds a cast unit parsing a string value with the given layout.
func AsTime(layout string) func(any) Result {
	return func(v any) Result {
		s, ok := v.(string)
		if !ok {
			return Failf("time: expected string, got %T", v)
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return Fail(err)
		}
		return Ok(t)
	}
}
