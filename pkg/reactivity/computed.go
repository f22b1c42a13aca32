package reactivity

// ComputedRef caches the result of getter. The getter runs on the first read
// and again only on a read after one of its dependencies changed.
type ComputedRef[T any] struct {
	rs     *ReactiveSystem
	effect *ReactiveEffect
	getter func() T
	value  T
	dirty  bool
	dep    dep
}

func Computed[T any](rs *ReactiveSystem, getter func() T) *ComputedRef[T] {
	c := &ComputedRef[T]{
		rs:     rs,
		getter: getter,
		dirty:  true,
		dep:    newDep(),
	}
	c.effect = NewReactiveEffect(rs, func() any {
		c.value = c.getter()
		return nil
	}, WithScheduler(func() {
		if c.dirty {
			return
		}
		c.dirty = true
		rs.triggerEffects(c.dep)
	}))
	return c
}

func (c *ComputedRef[T]) isRef() {}

func (c *ComputedRef[T]) anyValue() any {
	return c.Value()
}

func (c *ComputedRef[T]) Value() T {
	c.rs.trackEffects(c.dep)
	if c.dirty {
		c.effect.Run()
		c.dirty = false
	}
	return c.value
}

// Effect exposes the owned effect so callers can stop the computed.
func (c *ComputedRef[T]) Effect() *ReactiveEffect {
	return c.effect
}
