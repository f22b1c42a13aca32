package hostdom

import (
	"sort"
	"strings"
)

type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is an element or text node of the host tree.
type Node struct {
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]any
	Parent   *Node
	Children []*Node

	listeners map[string]*invoker
}

// NewElement creates a detached element outside of any Host, typically the
// container an app is mounted into.
func NewElement(tag string) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: map[string]any{}}
}

func NewText(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	p := n.Parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = nil
}

func (n *Node) insertBefore(child, anchor *Node) {
	child.detach()
	child.Parent = n
	i := -1
	if anchor != nil {
		i = n.indexOf(anchor)
	}
	if i < 0 {
		n.Children = append(n.Children, child)
		return
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

func (n *Node) nextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// TextContent concatenates the text of every descendant text node.
func (n *Node) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// ElementChildren skips text nodes, including fragment anchors.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HTML renders the subtree as markup with attributes in key order.
func (n *Node) HTML() string {
	return nodeMarkup(n)
}

type attr struct {
	Key   string
	Value any
}

func (n *Node) sortedAttrs() []attr {
	if len(n.Attrs) == 0 {
		return nil
	}
	out := make([]attr, 0, len(n.Attrs))
	for k, v := range n.Attrs {
		out = append(out, attr{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sortedEvents(n *Node) []string {
	if len(n.listeners) == 0 {
		return nil
	}
	events := make([]string, 0, len(n.listeners))
	for e := range n.listeners {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// HasListener reports whether an event handler is bound for event.
func (n *Node) HasListener(event string) bool {
	_, ok := n.listeners[event]
	return ok
}
