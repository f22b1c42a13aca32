package hostdom

import (
	"fmt"
	"strings"

	"github.com/delaneyj/vnodeparty/pkg/core"
)

type OpKind uint8

const (
	OpCreateElement OpKind = iota
	OpCreateText
	OpInsert
	OpRemove
	OpSetText
	OpSetElementText
	OpPatchProp
)

func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "createElement"
	case OpCreateText:
		return "createText"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpSetText:
		return "setText"
	case OpSetElementText:
		return "setElementText"
	case OpPatchProp:
		return "patchProp"
	default:
		return "unknown"
	}
}

// Op is one recorded host mutation. Moved is set on inserts of a node that
// was already attached.
type Op struct {
	Kind   OpKind
	Node   *Node
	Parent *Node
	Anchor *Node
	Key    string
	Value  any
	Moved  bool
}

func (op Op) String() string {
	switch op.Kind {
	case OpInsert:
		verb := "insert"
		if op.Moved {
			verb = "move"
		}
		return fmt.Sprintf("%s %s", verb, describe(op.Node))
	case OpPatchProp:
		return fmt.Sprintf("patchProp %s %s=%v", describe(op.Node), op.Key, op.Value)
	case OpSetText, OpSetElementText:
		return fmt.Sprintf("%s %s %q", op.Kind, describe(op.Node), op.Value)
	default:
		return fmt.Sprintf("%s %s", op.Kind, describe(op.Node))
	}
}

func describe(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind == TextNode {
		return fmt.Sprintf("#text(%q)", n.Text)
	}
	return "<" + n.Tag + ">"
}

// Host is the default core.Host. It records every mutation so callers can
// assert on what the renderer did.
type Host struct {
	ops []Op
}

var _ core.Host = (*Host)(nil)

func New() *Host {
	return &Host{}
}

func (h *Host) record(op Op) {
	h.ops = append(h.ops, op)
}

func (h *Host) Ops() []Op {
	return h.ops
}

func (h *Host) ResetOps() {
	h.ops = nil
}

// Count returns how many recorded ops are of kind.
func (h *Host) Count(kind OpKind) int {
	n := 0
	for _, op := range h.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Moves returns how many recorded inserts moved an attached node.
func (h *Host) Moves() int {
	n := 0
	for _, op := range h.ops {
		if op.Kind == OpInsert && op.Moved {
			n++
		}
	}
	return n
}

func (h *Host) CreateElement(tag string) core.Node {
	n := NewElement(tag)
	h.record(Op{Kind: OpCreateElement, Node: n})
	return n
}

func (h *Host) CreateText(text string) core.Node {
	n := NewText(text)
	h.record(Op{Kind: OpCreateText, Node: n, Value: text})
	return n
}

func (h *Host) SetText(node core.Node, text string) {
	n := asNode(node)
	n.Text = text
	h.record(Op{Kind: OpSetText, Node: n, Value: text})
}

// SetElementText replaces every child of el with a single text node, or with
// nothing when text is empty.
func (h *Host) SetElementText(el core.Node, text string) {
	n := asNode(el)
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text != "" {
		t := NewText(text)
		t.Parent = n
		n.Children = []*Node{t}
	}
	h.record(Op{Kind: OpSetElementText, Node: n, Value: text})
}

// PatchProp binds on<Capital> keys as event listeners and stores everything
// else as an attribute. A nil or false value removes the attribute.
func (h *Host) PatchProp(el core.Node, key string, prev, next any) {
	n := asNode(el)
	h.record(Op{Kind: OpPatchProp, Node: n, Key: key, Value: next})

	if core.IsOn(key) {
		event := strings.ToLower(key[2:])
		inv, ok := n.listeners[event]
		switch {
		case next == nil:
			delete(n.listeners, event)
		case ok:
			inv.value = next
		default:
			if n.listeners == nil {
				n.listeners = map[string]*invoker{}
			}
			n.listeners[event] = &invoker{value: next}
		}
		return
	}

	if next == nil || next == false {
		delete(n.Attrs, key)
		return
	}
	if n.Attrs == nil {
		n.Attrs = map[string]any{}
	}
	n.Attrs[key] = next
}

func (h *Host) Insert(child, parent, anchor core.Node) {
	c, p := asNode(child), asNode(parent)
	a, _ := anchor.(*Node)
	moved := c.Parent != nil
	p.insertBefore(c, a)
	h.record(Op{Kind: OpInsert, Node: c, Parent: p, Anchor: a, Moved: moved})
}

func (h *Host) Remove(child core.Node) {
	c := asNode(child)
	c.detach()
	h.record(Op{Kind: OpRemove, Node: c})
}

func (h *Host) NextSibling(node core.Node) core.Node {
	next := asNode(node).nextSibling()
	if next == nil {
		return nil
	}
	return next
}

func asNode(v core.Node) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("hostdom: expected *hostdom.Node, got %T", v))
	}
	return n
}
