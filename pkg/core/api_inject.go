package core

// provideTable is one level of the provide chain. A component shares its
// parent's table until it provides something itself.
type provideTable struct {
	values map[any]any
	parent *provideTable
}

func newProvideTable(parent *provideTable) *provideTable {
	return &provideTable{
		values: map[any]any{},
		parent: parent,
	}
}

func (t *provideTable) lookup(key any) (any, bool) {
	for p := t; p != nil; p = p.parent {
		if v, ok := p.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (inst *Instance) parentProvides() *provideTable {
	if inst.Parent != nil {
		return inst.Parent.provides
	}
	return inst.appContext.provides
}

// Provide makes value available to descendants of the component whose setup
// is running. Outside of setup it does nothing.
func (r *Renderer) Provide(key, value any) {
	inst := r.currentInstance
	if inst == nil {
		r.logger.Warn("core: provide called outside of setup", "key", key)
		return
	}
	parentProvides := inst.parentProvides()
	if inst.provides == parentProvides {
		inst.provides = newProvideTable(parentProvides)
	}
	inst.provides.values[key] = value
}

// Inject looks key up in the ancestors of the component whose setup is
// running. When nothing provides it, def is returned, or called if it is a
// func() any. Outside of setup Inject returns nil.
func (r *Renderer) Inject(key, def any) any {
	inst := r.currentInstance
	if inst == nil {
		r.logger.Warn("core: inject called outside of setup", "key", key)
		return nil
	}
	if v, ok := inst.parentProvides().lookup(key); ok {
		return v
	}
	if factory, ok := def.(func() any); ok {
		return factory()
	}
	return def
}
