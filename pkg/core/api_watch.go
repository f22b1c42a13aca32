package core

import (
	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/delaneyj/vnodeparty/pkg/scheduler"
)

// WatchEffect runs fn now and again before the next render flush whenever
// something it read changes. Called during setup, the watcher is stopped
// when the component unmounts.
func (r *Renderer) WatchEffect(fn func()) (stop func()) {
	var effect *reactivity.ReactiveEffect
	job := scheduler.NewJob("watchEffect", func() {
		if effect.Active() {
			effect.Run()
		}
	})
	effect = reactivity.NewReactiveEffect(r.rs, func() any {
		fn()
		return nil
	}, reactivity.WithScheduler(func() {
		r.scheduler.QueuePreFlush(job)
	}))
	effect.Run()

	if inst := r.currentInstance; inst != nil {
		inst.effects = append(inst.effects, effect)
	}
	return func() {
		effect.Stop()
		r.scheduler.Invalidate(job)
	}
}
