package recast

import "sync/atomic"

// CountingUnit wraps a cast unit and counts invocations. It exists for
// instrumented tests, e.g. proving that a failed field stops later cast
// units from ever running.
type CountingUnit struct {
	inner castFn
	calls atomic.Int64
}

// NewCountingUnit wraps unit; the wrapper satisfies Caster.
func NewCountingUnit(unit any) *CountingUnit {
	fn, _, err := normalizeUnit(unit)
	if err != nil {
		panic("recast: " + err.Error())
	}
	return &CountingUnit{inner: fn}
}

func (c *CountingUnit) Cast(v any) Result {
	c.calls.Add(1)
	return c.inner(v)
}

// Calls reports how many times the unit has been invoked.
func (c *CountingUnit) Calls() int { return int(c.calls.Load()) }
