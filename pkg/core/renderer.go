package core

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/delaneyj/vnodeparty/pkg/scheduler"
)

// Host is the environment the renderer draws into. Insert of a node that is
// already attached moves it. A nil anchor means append. NextSibling returns
// nil after the last child.
type Host interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
	SetText(node Node, text string)
	SetElementText(el Node, text string)
	PatchProp(el Node, key string, prev, next any)
	Insert(child, parent, anchor Node)
	Remove(child Node)
	NextSibling(node Node) Node
}

type Renderer struct {
	host      Host
	rs        *reactivity.ReactiveSystem
	scheduler *scheduler.Scheduler
	logger    *slog.Logger

	context         *appContext
	roots           map[Node]*VNode
	currentInstance *Instance
	lastUID         uint64
}

type Option func(r *Renderer)

func WithReactiveSystem(rs *reactivity.ReactiveSystem) Option {
	return func(r *Renderer) {
		r.rs = rs
	}
}

func WithScheduler(s *scheduler.Scheduler) Option {
	return func(r *Renderer) {
		r.scheduler = s
	}
}

// WithLogger is also handed to the reactive system and scheduler the
// renderer creates when none are given.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func NewRenderer(host Host, opts ...Option) *Renderer {
	r := &Renderer{
		host:    host,
		logger:  slog.Default(),
		context: newAppContext(),
		roots:   map[Node]*VNode{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rs == nil {
		r.rs = reactivity.CreateReactiveSystem(reactivity.WithLogger(r.logger))
	}
	if r.scheduler == nil {
		r.scheduler = scheduler.New(scheduler.WithLogger(r.logger))
	}
	return r
}

func (r *Renderer) ReactiveSystem() *reactivity.ReactiveSystem {
	return r.rs
}

func (r *Renderer) Scheduler() *scheduler.Scheduler {
	return r.scheduler
}

// CurrentInstance returns the component whose setup is running, or nil.
func (r *Renderer) CurrentInstance() *Instance {
	return r.currentInstance
}

// NextTick flushes pending updates and then calls fn, if any.
func (r *Renderer) NextTick(fn func()) {
	r.scheduler.NextTick(fn)
}

// Render patches vnode into container against whatever was rendered there
// before. A nil vnode unmounts it.
func (r *Renderer) Render(vnode *VNode, container Node) {
	prev := r.roots[container]
	if vnode == nil {
		if prev != nil {
			r.unmount(prev, nil, true)
			delete(r.roots, container)
		}
		return
	}
	r.patch(prev, vnode, container, nil, nil)
	r.roots[container] = vnode
}

func (r *Renderer) patch(n1, n2 *VNode, container, anchor Node, parent *Instance) {
	if n1 == n2 {
		return
	}
	if n1 != nil && !isSameVNodeType(n1, n2) {
		anchor = r.nextHostNode(n1)
		r.unmount(n1, parent, true)
		n1 = nil
	}

	switch typ := n2.Type.(type) {
	case Marker:
		switch typ {
		case Text:
			r.processText(n1, n2, container, anchor)
		case Fragment:
			r.processFragment(n1, n2, container, anchor, parent)
		default:
			panic(fmt.Sprintf("core: unsupported marker %v", typ))
		}
	case string:
		r.processElement(n1, n2, container, anchor, parent)
	case *Component:
		r.processComponent(n1, n2, container, anchor, parent)
	default:
		panic(fmt.Sprintf("core: unsupported vnode type %T", n2.Type))
	}
}

func (r *Renderer) processText(n1, n2 *VNode, container, anchor Node) {
	if n1 == nil {
		n2.El = r.host.CreateText(n2.Text)
		r.host.Insert(n2.El, container, anchor)
		return
	}
	n2.El = n1.El
	if n2.Text != n1.Text {
		r.host.SetText(n2.El, n2.Text)
	}
}

// processFragment brackets the children with two empty text nodes so the
// fragment can be moved, removed and used as an anchor as a unit.
func (r *Renderer) processFragment(n1, n2 *VNode, container, anchor Node, parent *Instance) {
	if n1 == nil {
		n2.El = r.host.CreateText("")
		n2.Anchor = r.host.CreateText("")
		r.host.Insert(n2.El, container, anchor)
		r.host.Insert(n2.Anchor, container, anchor)
		r.mountChildren(n2.Children, container, n2.Anchor, parent)
		return
	}
	n2.El, n2.Anchor = n1.El, n1.Anchor
	r.patchChildren(n1, n2, container, n2.Anchor, parent)
}

func (r *Renderer) processElement(n1, n2 *VNode, container, anchor Node, parent *Instance) {
	if n1 == nil {
		r.mountElement(n2, container, anchor, parent)
		return
	}
	r.patchElement(n1, n2, parent)
}

func (r *Renderer) mountElement(vnode *VNode, container, anchor Node, parent *Instance) {
	el := r.host.CreateElement(vnode.Type.(string))
	vnode.El = el

	switch {
	case vnode.ShapeFlags.Has(ShapeTextChildren):
		r.host.SetElementText(el, vnode.Text)
	case vnode.ShapeFlags.Has(ShapeArrayChildren):
		r.mountChildren(vnode.Children, el, nil, parent)
	}

	for _, key := range sortedKeys(vnode.Props) {
		r.host.PatchProp(el, key, nil, vnode.Props[key])
	}
	r.host.Insert(el, container, anchor)
}

func (r *Renderer) mountChildren(children []*VNode, container, anchor Node, parent *Instance) {
	for _, c := range children {
		r.patch(nil, c, container, anchor, parent)
	}
}

func (r *Renderer) patchElement(n1, n2 *VNode, parent *Instance) {
	el := n1.El
	n2.El = el
	r.patchChildren(n1, n2, el, nil, parent)
	r.patchProps(el, n1.Props, n2.Props)
}

func (r *Renderer) patchProps(el Node, oldProps, newProps Props) {
	if reactivity.Same(oldProps, newProps) {
		return
	}
	for _, key := range sortedKeys(newProps) {
		prev, next := oldProps[key], newProps[key]
		if !reactivity.Same(prev, next) {
			r.host.PatchProp(el, key, prev, next)
		}
	}
	for _, key := range sortedKeys(oldProps) {
		if _, ok := newProps[key]; !ok {
			r.host.PatchProp(el, key, oldProps[key], nil)
		}
	}
}

func (r *Renderer) processComponent(n1, n2 *VNode, container, anchor Node, parent *Instance) {
	if n1 == nil {
		r.mountComponent(n2, container, anchor, parent)
		return
	}
	r.updateComponent(n1, n2)
}

func (r *Renderer) mountComponent(vnode *VNode, container, anchor Node, parent *Instance) {
	inst := r.createComponentInstance(vnode, parent)
	vnode.Component = inst
	r.setupComponent(inst)
	r.setupRenderEffect(inst, container, anchor)
}

// setupRenderEffect runs the first render now. Later renders are queued on
// the scheduler so any number of writes in one tick re-render once.
func (r *Renderer) setupRenderEffect(inst *Instance, container, anchor Node) {
	inst.job = scheduler.NewJob(inst.name(), func() {
		if inst.IsUnmounted {
			return
		}
		inst.Update.Run()
	})

	componentUpdate := func() any {
		if !inst.IsMounted {
			subTree := r.renderComponentRoot(inst)
			inst.SubTree = subTree
			r.patch(nil, subTree, container, anchor, inst)
			inst.VNode.El = subTree.El
			inst.IsMounted = true
			return nil
		}

		if next := inst.Next; next != nil {
			next.El = inst.VNode.El
			r.updateComponentPreRender(inst, next)
		}
		nextTree := r.renderComponentRoot(inst)
		prevTree := inst.SubTree
		inst.SubTree = nextTree
		r.patch(prevTree, nextTree, container, nil, inst)
		inst.VNode.El = nextTree.El
		// ancestors rooted at this component share its host node
		for p, vnode := inst.Parent, inst.VNode; p != nil && p.SubTree == vnode; p = p.Parent {
			p.VNode.El = nextTree.El
			vnode = p.VNode
		}
		return nil
	}

	inst.Update = reactivity.Effect(r.rs, componentUpdate, reactivity.WithScheduler(func() {
		r.scheduler.QueueJob(inst.job)
	}))
}

func (r *Renderer) updateComponent(n1, n2 *VNode) {
	inst := n1.Component
	n2.Component = inst
	if !shouldUpdateComponent(n1, n2) {
		n2.El = n1.El
		inst.VNode = n2
		return
	}
	inst.Next = n2
	// the update below makes any queued re-render redundant
	r.scheduler.Invalidate(inst.job)
	inst.Update.Run()
}

// unmount tears vnode down. Host nodes are only removed at the top of the
// removed subtree; descendants go with their ancestor.
func (r *Renderer) unmount(vnode *VNode, parent *Instance, doRemove bool) {
	switch {
	case vnode.ShapeFlags.Has(ShapeStatefulComponent):
		r.unmountComponent(vnode.Component, doRemove)
	case vnode.Type == Fragment:
		r.unmountChildren(vnode.Children, parent, doRemove)
		if doRemove {
			r.host.Remove(vnode.El)
			r.host.Remove(vnode.Anchor)
		}
	default:
		if vnode.ShapeFlags.Has(ShapeArrayChildren) {
			r.unmountChildren(vnode.Children, parent, false)
		}
		if doRemove {
			r.host.Remove(vnode.El)
		}
	}
}

func (r *Renderer) unmountChildren(children []*VNode, parent *Instance, doRemove bool) {
	for _, c := range children {
		r.unmount(c, parent, doRemove)
	}
}

func (r *Renderer) unmountComponent(inst *Instance, doRemove bool) {
	if inst == nil || inst.IsUnmounted {
		return
	}
	for _, e := range inst.effects {
		e.Stop()
	}
	inst.effects = nil
	if inst.Update != nil {
		reactivity.Stop(inst.Update)
	}
	r.scheduler.Invalidate(inst.job)
	if inst.SubTree != nil {
		r.unmount(inst.SubTree, inst, doRemove)
	}
	inst.IsUnmounted = true
}

// move reinserts the host nodes of vnode before anchor.
func (r *Renderer) move(vnode *VNode, container, anchor Node) {
	switch {
	case vnode.ShapeFlags.Has(ShapeStatefulComponent):
		r.move(vnode.Component.SubTree, container, anchor)
	case vnode.Type == Fragment:
		r.host.Insert(vnode.El, container, anchor)
		for _, c := range vnode.Children {
			r.move(c, container, anchor)
		}
		r.host.Insert(vnode.Anchor, container, anchor)
	default:
		r.host.Insert(vnode.El, container, anchor)
	}
}

// nextHostNode returns the host node following vnode's subtree.
func (r *Renderer) nextHostNode(vnode *VNode) Node {
	if vnode.ShapeFlags.Has(ShapeStatefulComponent) {
		return r.nextHostNode(vnode.Component.SubTree)
	}
	if vnode.Anchor != nil {
		return r.host.NextSibling(vnode.Anchor)
	}
	return r.host.NextSibling(vnode.El)
}

func sortedKeys(props Props) []string {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
