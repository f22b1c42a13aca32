package core

// Slot renders a named slot with the props passed by the slot's owner.
type Slot func(props Props) []*VNode

// Slots maps slot names to slot functions. "default" is used for plain
// component children.
type Slots map[string]Slot

// SlotOf adapts a slot function that renders a single vnode.
func SlotOf(fn func(props Props) *VNode) Slot {
	return func(props Props) []*VNode {
		if v := fn(props); v != nil {
			return []*VNode{v}
		}
		return nil
	}
}

func initSlots(inst *Instance, vnode *VNode) {
	slots := Slots{}
	switch {
	case vnode.ShapeFlags.Has(ShapeSlotsChildren):
		for name, slot := range vnode.Slots {
			slots[name] = slot
		}
	case vnode.ShapeFlags.Has(ShapeArrayChildren):
		children := vnode.Children
		slots["default"] = func(Props) []*VNode { return children }
	case vnode.ShapeFlags.Has(ShapeTextChildren):
		text := vnode.Text
		slots["default"] = func(Props) []*VNode { return []*VNode{CreateTextVNode(text)} }
	}
	inst.Slots = slots
}

// RenderSlots renders the named slot into a fragment, or returns nil when
// the slot was not provided.
func RenderSlots(slots Slots, name string, props Props) *VNode {
	slot, ok := slots[name]
	if !ok || slot == nil {
		return nil
	}
	return H(Fragment, nil, slot(props))
}
