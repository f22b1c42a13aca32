package reactivity

// ReactiveEffect is a re-runnable computation. While it runs it is the
// active subscriber, so every tracked read is recorded against it.
type ReactiveEffect struct {
	rs        *ReactiveSystem
	fn        func() any
	scheduler func()
	onStop    func()

	// deps back-references every subscriber set this effect belongs to.
	deps   []dep
	active bool
}

type EffectOption func(e *ReactiveEffect)

// WithScheduler makes triggers call fn instead of re-running the effect.
func WithScheduler(fn func()) EffectOption {
	return func(e *ReactiveEffect) {
		e.scheduler = fn
	}
}

func WithOnStop(fn func()) EffectOption {
	return func(e *ReactiveEffect) {
		e.onStop = fn
	}
}

// NewReactiveEffect builds an effect without running it.
func NewReactiveEffect(rs *ReactiveSystem, fn func() any, opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{
		rs:     rs,
		fn:     fn,
		active: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ReactiveEffect) Active() bool {
	return e.active
}

// Run executes the computation. A stopped effect still runs but records
// nothing.
func (e *ReactiveEffect) Run() any {
	if !e.active {
		e.rs.PauseTracking()
		defer e.rs.ResumeTracking()
		return e.fn()
	}

	e.cleanup()
	e.rs.pushEffect(e)
	defer e.rs.popEffect()
	return e.fn()
}

// Stop removes the effect from every subscriber set and marks it inactive.
// Only the first call has any effect.
func (e *ReactiveEffect) Stop() {
	if !e.active {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

func (e *ReactiveEffect) cleanup() {
	for _, d := range e.deps {
		d.Remove(e)
	}
	e.deps = e.deps[:0]
}

func (e *ReactiveEffect) notify() {
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}

// Runner is the handle returned by Effect. Calling Run re-executes the
// computation; Effect reaches the underlying ReactiveEffect.
type Runner struct {
	effect *ReactiveEffect
}

func (r *Runner) Run() any {
	return r.effect.Run()
}

func (r *Runner) Effect() *ReactiveEffect {
	return r.effect
}

// Effect creates an effect, runs it once and returns its runner.
func Effect(rs *ReactiveSystem, fn func() any, opts ...EffectOption) *Runner {
	e := NewReactiveEffect(rs, fn, opts...)
	e.Run()
	return &Runner{effect: e}
}

func Stop(runner *Runner) {
	runner.effect.Stop()
}
