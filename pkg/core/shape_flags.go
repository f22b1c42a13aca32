package core

import "strings"

// ShapeFlags classify a vnode's type and children so the renderer can branch
// without inspecting them again.
type ShapeFlags uint8

const (
	ShapeElement ShapeFlags = 1 << iota
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotsChildren
)

func (f ShapeFlags) Has(flag ShapeFlags) bool {
	return f&flag != 0
}

var shapeFlagNames = []struct {
	flag ShapeFlags
	name string
}{
	{ShapeElement, "element"},
	{ShapeStatefulComponent, "component"},
	{ShapeTextChildren, "text_children"},
	{ShapeArrayChildren, "array_children"},
	{ShapeSlotsChildren, "slots_children"},
}

func (f ShapeFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, n := range shapeFlagNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
