package hostdom_test

import (
	"testing"

	"github.com/delaneyj/vnodeparty/pkg/hostdom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAppendsAndMoves(t *testing.T) {
	h := hostdom.New()
	root := hostdom.NewElement("ul")
	a := h.CreateElement("li").(*hostdom.Node)
	b := h.CreateElement("li").(*hostdom.Node)

	h.Insert(a, root, nil)
	h.Insert(b, root, nil)
	require.Equal(t, []*hostdom.Node{a, b}, root.Children)
	assert.Equal(t, 0, h.Moves())

	h.Insert(b, root, a)
	assert.Equal(t, []*hostdom.Node{b, a}, root.Children)
	assert.Equal(t, 1, h.Moves())
	assert.Equal(t, 3, h.Count(hostdom.OpInsert))
	assert.Same(t, root, b.Parent)
}

func TestNextSibling(t *testing.T) {
	h := hostdom.New()
	root := hostdom.NewElement("div")
	a := h.CreateText("a")
	b := h.CreateText("b")
	h.Insert(a, root, nil)
	h.Insert(b, root, nil)

	assert.Same(t, b, h.NextSibling(a))
	assert.Nil(t, h.NextSibling(b))
}

func TestRemove(t *testing.T) {
	h := hostdom.New()
	root := hostdom.NewElement("div")
	a := h.CreateElement("p")
	h.Insert(a, root, nil)

	h.Remove(a)
	assert.Empty(t, root.Children)
	assert.Nil(t, a.(*hostdom.Node).Parent)
	assert.Equal(t, 1, h.Count(hostdom.OpRemove))
}

func TestSetElementText(t *testing.T) {
	h := hostdom.New()
	el := h.CreateElement("p")
	h.Insert(h.CreateElement("span"), el, nil)

	h.SetElementText(el, "hello")
	assert.Equal(t, "<p>hello</p>", el.(*hostdom.Node).HTML())

	h.SetElementText(el, "")
	assert.Empty(t, el.(*hostdom.Node).Children)
}

func TestPatchPropAttributes(t *testing.T) {
	h := hostdom.New()
	el := h.CreateElement("input").(*hostdom.Node)

	h.PatchProp(el, "type", nil, "text")
	h.PatchProp(el, "disabled", nil, true)
	assert.Equal(t, `<input disabled="true" type="text"></input>`, el.HTML())

	h.PatchProp(el, "disabled", true, false)
	h.PatchProp(el, "type", "text", nil)
	assert.Empty(t, el.Attrs)
	assert.Equal(t, 4, h.Count(hostdom.OpPatchProp))
}

// should swap handlers without rebinding the listener
func TestPatchPropEvents(t *testing.T) {
	h := hostdom.New()
	el := h.CreateElement("button").(*hostdom.Node)

	calls := []string{}
	h.PatchProp(el, "onClick", nil, func() { calls = append(calls, "first") })
	assert.True(t, el.HasListener("click"))
	assert.Empty(t, el.Attrs)

	ok, err := hostdom.Dispatch(el, "click")
	require.NoError(t, err)
	assert.True(t, ok)

	h.PatchProp(el, "onClick", nil, func(e any) { calls = append(calls, e.(string)) })
	_, err = hostdom.Dispatch(el, "click", "second")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)

	h.PatchProp(el, "onClick", nil, nil)
	ok, err = hostdom.Dispatch(el, "click")
	assert.False(t, ok)
	assert.NoError(t, err)

	h.PatchProp(el, "online", nil, "yes")
	assert.False(t, el.HasListener("line"))
	assert.Equal(t, "yes", el.Attrs["online"])
}

func TestDispatchUnsupportedHandler(t *testing.T) {
	h := hostdom.New()
	el := h.CreateElement("button").(*hostdom.Node)
	h.PatchProp(el, "onClick", nil, 42)

	_, err := hostdom.Dispatch(el, "click")
	assert.Error(t, err)
}

func TestHTMLEscapes(t *testing.T) {
	h := hostdom.New()
	el := h.CreateElement("p").(*hostdom.Node)
	h.PatchProp(el, "title", nil, `"q"`)
	h.Insert(h.CreateText("<b>&"), el, nil)

	assert.Equal(t, `<p title="&quot;q&quot;">&lt;b&gt;&amp;</p>`, el.HTML())
	assert.Equal(t, "<b>&", el.TextContent())
}

func TestFingerprint(t *testing.T) {
	build := func(text string, attrs map[string]any) *hostdom.Node {
		el := hostdom.NewElement("div")
		for k, v := range attrs {
			el.Attrs[k] = v
		}
		txt := hostdom.NewText(text)
		txt.Parent = el
		el.Children = append(el.Children, txt)
		return el
	}

	a := build("x", map[string]any{"id": 1, "class": "c"})
	b := build("x", map[string]any{"class": "c", "id": 1})
	c := build("y", map[string]any{"id": 1, "class": "c"})

	assert.Equal(t, hostdom.Fingerprint(a), hostdom.Fingerprint(b))
	assert.NotEqual(t, hostdom.Fingerprint(a), hostdom.Fingerprint(c))
}

func TestOpString(t *testing.T) {
	h := hostdom.New()
	root := hostdom.NewElement("ul")
	a := h.CreateElement("li")
	h.Insert(a, root, nil)
	h.Insert(a, root, nil)

	ops := h.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, "createElement <li>", ops[0].String())
	assert.Equal(t, "insert <li>", ops[1].String())
	assert.Equal(t, "move <li>", ops[2].String())

	h.ResetOps()
	assert.Empty(t, h.Ops())
}
