package core

import (
	"fmt"

	"github.com/delaneyj/vnodeparty/pkg/reactivity"
)

// Node is a handle owned by the host adapter.
type Node = any

// Props holds attributes, event handlers and component props. Keys matching
// on<Capital> are event handlers.
type Props = map[string]any

// Marker types the vnodes that are neither elements nor components.
type Marker uint8

const (
	Fragment Marker = iota + 1
	Text
)

func (m Marker) String() string {
	switch m {
	case Fragment:
		return "Fragment"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode describes a host node, a fragment or a component instance.
type VNode struct {
	// Type is a tag string, a *Component, Fragment or Text.
	Type     any
	Props    Props
	Key      any
	Text     string   // ShapeTextChildren
	Children []*VNode // ShapeArrayChildren
	Slots    Slots    // ShapeSlotsChildren

	// El is the first host node of the mounted subtree. Anchor is the end
	// marker of a fragment.
	El        Node
	Anchor    Node
	Component *Instance

	ShapeFlags ShapeFlags

	appContext *appContext
}

// H creates a vnode. Children may be strings, *VNode, []*VNode or a single
// Slots value for components; nil children are skipped. A "key" prop becomes
// the vnode key and is not passed on as a prop.
func H(typ any, props Props, children ...any) *VNode {
	v := &VNode{
		Type:       typ,
		ShapeFlags: shapeFlagOf(typ),
	}
	if key, ok := props["key"]; ok {
		v.Key = key
		rest := make(Props, len(props)-1)
		for k, val := range props {
			if k != "key" {
				rest[k] = val
			}
		}
		props = rest
	}
	v.Props = props
	normalizeChildren(v, children)
	return v
}

// CreateTextVNode creates a vnode for a lone host text node.
func CreateTextVNode(text string) *VNode {
	return &VNode{
		Type:       Text,
		Text:       text,
		ShapeFlags: ShapeTextChildren,
	}
}

func shapeFlagOf(typ any) ShapeFlags {
	switch typ.(type) {
	case string:
		return ShapeElement
	case *Component:
		return ShapeStatefulComponent
	case Marker:
		return 0
	default:
		panic(fmt.Sprintf("core: unsupported vnode type %T", typ))
	}
}

func normalizeChildren(v *VNode, children []any) {
	if len(children) == 1 && v.Type != Fragment {
		switch c := children[0].(type) {
		case string:
			v.Text = c
			v.ShapeFlags |= ShapeTextChildren
			return
		case Slots:
			if v.ShapeFlags.Has(ShapeStatefulComponent) {
				v.Slots = c
				v.ShapeFlags |= ShapeSlotsChildren
				return
			}
		}
	}

	var out []*VNode
	for _, c := range children {
		switch c := c.(type) {
		case nil:
		case *VNode:
			if c != nil {
				out = append(out, c)
			}
		case []*VNode:
			for _, cc := range c {
				if cc != nil {
					out = append(out, cc)
				}
			}
		case string:
			out = append(out, CreateTextVNode(c))
		default:
			panic(fmt.Sprintf("core: unsupported child type %T", c))
		}
	}
	if len(out) > 0 || v.Type == Fragment {
		v.Children = out
		v.ShapeFlags |= ShapeArrayChildren
	}
}

func isSameVNodeType(a, b *VNode) bool {
	return a.Type == b.Type && reactivity.Same(a.Key, b.Key)
}
