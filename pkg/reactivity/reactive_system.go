package reactivity

import (
	"log/slog"
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"
)

// dep is the set of effects subscribed to a single (target, key) pair or to
// a ref. It has no ordering and no duplicates.
type dep = mapset.Set[*ReactiveEffect]

func newDep() dep {
	return mapset.NewThreadUnsafeSet[*ReactiveEffect]()
}

// ReactiveSystem owns the dependency store, the stack of running effects and
// the wrapper cache. Independent systems never observe each other.
type ReactiveSystem struct {
	logger *slog.Logger

	targets map[unsafe.Pointer]map[any]dep

	// effectStack holds the effects whose computations are running, innermost
	// last. A nil entry pauses tracking.
	effectStack []*ReactiveEffect

	batchDepth   int
	pending      mapset.Set[*ReactiveEffect]
	pendingOrder []*ReactiveEffect

	proxies [variantCount]map[proxyKey]*Object
}

type Option func(rs *ReactiveSystem)

// WithLogger sets the logger used for policy warnings such as writes to
// readonly wrappers.
func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

func CreateReactiveSystem(opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		logger:  slog.Default(),
		targets: map[unsafe.Pointer]map[any]dep{},
		pending: mapset.NewThreadUnsafeSet[*ReactiveEffect](),
	}
	for i := range rs.proxies {
		rs.proxies[i] = map[proxyKey]*Object{}
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *ReactiveSystem) Logger() *slog.Logger {
	return rs.logger
}

// ActiveEffect returns the effect whose computation is currently running,
// or nil when none is or tracking is paused.
func (rs *ReactiveSystem) ActiveEffect() *ReactiveEffect {
	if n := len(rs.effectStack); n > 0 {
		return rs.effectStack[n-1]
	}
	return nil
}

// IsTracking reports whether a read right now would be recorded.
func (rs *ReactiveSystem) IsTracking() bool {
	e := rs.ActiveEffect()
	return e != nil && e.active
}

func (rs *ReactiveSystem) pushEffect(e *ReactiveEffect) {
	rs.effectStack = append(rs.effectStack, e)
}

func (rs *ReactiveSystem) popEffect() {
	rs.effectStack[len(rs.effectStack)-1] = nil
	rs.effectStack = rs.effectStack[:len(rs.effectStack)-1]
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pushEffect(nil)
}

func (rs *ReactiveSystem) ResumeTracking() {
	rs.popEffect()
}

// Untrack runs fn without recording any of its reads against the running
// effect.
func (rs *ReactiveSystem) Untrack(fn func()) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	fn()
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes a batch. When the outermost batch closes every effect
// notified during it runs once, in first-notified order.
func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth > 0 {
		return
	}
	queued := rs.pendingOrder
	rs.pendingOrder = nil
	rs.pending.Clear()
	for _, e := range queued {
		if e.active {
			e.notify()
		}
	}
}

func (rs *ReactiveSystem) Batch(cb func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	cb()
}

// Track records a read of key on target against the running effect. Reads
// outside of an effect, or while tracking is paused, are ignored.
func (rs *ReactiveSystem) Track(target, key any) {
	if !rs.IsTracking() {
		return
	}
	id, ok := identity(target)
	if !ok {
		return
	}
	depsMap, ok := rs.targets[id]
	if !ok {
		depsMap = map[any]dep{}
		rs.targets[id] = depsMap
	}
	d, ok := depsMap[key]
	if !ok {
		d = newDep()
		depsMap[key] = d
	}
	rs.trackEffects(d)
}

func (rs *ReactiveSystem) trackEffects(d dep) {
	e := rs.ActiveEffect()
	if e == nil || !e.active {
		return
	}
	if d.Add(e) {
		e.deps = append(e.deps, d)
	}
}

// Trigger notifies every effect that read key on target. A write to a key
// nobody read is ignored.
func (rs *ReactiveSystem) Trigger(target, key any) {
	id, ok := identity(target)
	if !ok {
		return
	}
	depsMap, ok := rs.targets[id]
	if !ok {
		return
	}
	d, ok := depsMap[key]
	if !ok {
		return
	}
	rs.triggerEffects(d)
}

func (rs *ReactiveSystem) triggerEffects(d dep) {
	running := rs.ActiveEffect()
	// Effects may subscribe, unsubscribe or stop while we notify, so walk a
	// snapshot.
	for _, e := range d.ToSlice() {
		if e == running || !e.active {
			continue
		}
		if rs.batchDepth > 0 {
			if rs.pending.Add(e) {
				rs.pendingOrder = append(rs.pendingOrder, e)
			}
			continue
		}
		e.notify()
	}
}

// subscriberCount is used by tests through export_test.go.
func (rs *ReactiveSystem) subscriberCount(target, key any) int {
	id, ok := identity(target)
	if !ok {
		return 0
	}
	if d, ok := rs.targets[id][key]; ok {
		return d.Cardinality()
	}
	return 0
}
