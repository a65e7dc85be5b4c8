package recast

// Options holds per-call knobs for batch casting.
type Options struct {
	Runner         Runner // nil → DefaultRunner
	MaxConcurrency int    // 0 → one task per CPU; ignored when Runner is set
}

// WithRunner replaces the runner used by CastAll.
func WithRunner(r Runner) func(*Options) {
	return func(o *Options) { o.Runner = r }
}

// WithConcurrency caps the number of documents cast at once.
func WithConcurrency(n int) func(*Options) {
	return func(o *Options) { o.MaxConcurrency = n }
}
