package core

import (
	"fmt"

	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/delaneyj/vnodeparty/pkg/scheduler"
)

// RenderFunc builds the component's subtree. It runs inside the component's
// render effect, so every reactive read re-renders the component.
type RenderFunc func(self *PublicInstance) *VNode

// Component is a component definition. Setup runs once per instance with
// tracking paused and may return:
//   - nil
//   - a map[string]any or *reactivity.Object exposed to Render through
//     PublicInstance.Get, refs unwrapped
//   - a RenderFunc used instead of Render
type Component struct {
	Name   string
	Setup  func(props *reactivity.Object, ctx *SetupContext) any
	Render RenderFunc
}

// SetupContext is handed to Setup.
type SetupContext struct {
	inst  *Instance
	Slots Slots
}

func (ctx *SetupContext) Emit(event string, args ...any) {
	Emit(ctx.inst, event, args...)
}

// Instance is the live state of a mounted component.
type Instance struct {
	UID    uint64
	VNode  *VNode
	Type   *Component
	Parent *Instance

	// Props is updated in place on every parent-driven update.
	Props      Props
	Slots      Slots
	SetupState *reactivity.RefsView
	Proxy      *PublicInstance

	IsMounted   bool
	IsUnmounted bool
	SubTree     *VNode
	// Next is the vnode of a pending parent-driven update.
	Next   *VNode
	Update *reactivity.Runner

	renderer   *Renderer
	render     RenderFunc
	propsProxy *reactivity.Object
	job        *scheduler.Job
	effects    []*reactivity.ReactiveEffect
	provides   *provideTable
	appContext *appContext
}

func (inst *Instance) Emit(event string, args ...any) {
	Emit(inst, event, args...)
}

func (inst *Instance) name() string {
	if inst.Type.Name != "" {
		return inst.Type.Name
	}
	return "anonymous"
}

func (r *Renderer) createComponentInstance(vnode *VNode, parent *Instance) *Instance {
	r.lastUID++
	inst := &Instance{
		UID:      r.lastUID,
		VNode:    vnode,
		Type:     vnode.Type.(*Component),
		Parent:   parent,
		renderer: r,
	}
	switch {
	case parent != nil:
		inst.appContext = parent.appContext
	case vnode.appContext != nil:
		inst.appContext = vnode.appContext
	default:
		inst.appContext = r.context
	}
	inst.provides = inst.parentProvides()
	return inst
}

func (r *Renderer) setupComponent(inst *Instance) {
	inst.Props = make(Props, len(inst.VNode.Props))
	for k, v := range inst.VNode.Props {
		inst.Props[k] = v
	}
	inst.propsProxy = reactivity.ShallowReadonly(r.rs, inst.Props)
	initSlots(inst, inst.VNode)
	inst.Proxy = &PublicInstance{inst: inst}
	inst.SetupState = reactivity.ProxyRefs(r.rs, map[string]any{})
	inst.render = inst.Type.Render

	if inst.Type.Setup != nil {
		r.handleSetupResult(inst, r.callSetup(inst))
	}
	if inst.render == nil {
		r.logger.Warn("core: component is missing a render function", "component", inst.name())
	}
}

func (r *Renderer) callSetup(inst *Instance) any {
	prev := r.currentInstance
	r.currentInstance = inst
	r.rs.PauseTracking()
	defer func() {
		r.rs.ResumeTracking()
		r.currentInstance = prev
	}()
	return inst.Type.Setup(inst.propsProxy, &SetupContext{inst: inst, Slots: inst.Slots})
}

func (r *Renderer) handleSetupResult(inst *Instance, result any) {
	switch res := result.(type) {
	case nil:
	case RenderFunc:
		inst.render = res
	case func(self *PublicInstance) *VNode:
		inst.render = res
	case map[string]any, *reactivity.Object:
		inst.SetupState = reactivity.ProxyRefs(r.rs, res)
	default:
		r.logger.Warn("core: unsupported setup result", "component", inst.name(), "type", typeName(result))
	}
}

func (r *Renderer) renderComponentRoot(inst *Instance) *VNode {
	var tree *VNode
	if inst.render != nil {
		tree = inst.render(inst.Proxy)
	}
	if tree == nil {
		tree = CreateTextVNode("")
	}
	return tree
}

func (r *Renderer) updateComponentPreRender(inst *Instance, next *VNode) {
	next.Component = inst
	inst.VNode = next
	inst.Next = nil

	for k := range inst.Props {
		if _, ok := next.Props[k]; !ok {
			delete(inst.Props, k)
		}
	}
	for k, v := range next.Props {
		inst.Props[k] = v
	}
	initSlots(inst, next)
}

// shouldUpdateComponent reports whether a parent-driven update must re-render
// the child. Slot children always do, since slot functions close over the
// parent's state.
func shouldUpdateComponent(prev, next *VNode) bool {
	if next.ShapeFlags.Has(ShapeSlotsChildren) || next.ShapeFlags.Has(ShapeArrayChildren) ||
		next.ShapeFlags.Has(ShapeTextChildren) {
		return true
	}
	if len(prev.Props) != len(next.Props) {
		return true
	}
	for k, v := range next.Props {
		old, ok := prev.Props[k]
		if !ok || !reactivity.Same(old, v) {
			return true
		}
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
