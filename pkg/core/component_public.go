package core

import "github.com/delaneyj/vnodeparty/pkg/reactivity"

// PublicInstance is what a render function sees as its receiver.
type PublicInstance struct {
	inst *Instance
}

var publicProperties = map[string]func(inst *Instance) any{
	"$el":    func(inst *Instance) any { return inst.VNode.El },
	"$slots": func(inst *Instance) any { return inst.Slots },
	"$props": func(inst *Instance) any { return inst.propsProxy },
}

// Get resolves key against setup state, then props, then $el, $slots and
// $props. Refs in setup state come back unwrapped.
func (p *PublicInstance) Get(key string) any {
	inst := p.inst
	if inst.SetupState.Has(key) {
		return inst.SetupState.Get(key)
	}
	if _, ok := inst.Props[key]; ok {
		return inst.propsProxy.Get(key)
	}
	if getter, ok := publicProperties[key]; ok {
		return getter(inst)
	}
	return nil
}

// Set writes setup state. Props and reserved keys are read only.
func (p *PublicInstance) Set(key string, value any) bool {
	inst := p.inst
	if inst.SetupState.Has(key) {
		return inst.SetupState.Set(key, value)
	}
	inst.renderer.logger.Warn("core: cannot set key on component instance",
		"component", inst.name(),
		"key", key,
	)
	return false
}

func (p *PublicInstance) Props() *reactivity.Object {
	return p.inst.propsProxy
}

func (p *PublicInstance) Slots() Slots {
	return p.inst.Slots
}

func (p *PublicInstance) Emit(event string, args ...any) {
	Emit(p.inst, event, args...)
}

func (p *PublicInstance) Instance() *Instance {
	return p.inst
}
