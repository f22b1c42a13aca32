package reactivity_test

import (
	"math"
	"testing"

	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefHappyPath(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, 1)
	assert.Equal(t, 1, a.Value())

	a.SetValue(2)
	assert.Equal(t, 2, a.Value())
	assert.Equal(t, 2, a.Peek())
}

// should only trigger when the raw value actually changes
func TestRefIsIdempotent(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, 1)

	calls := 0
	var dummy any
	reactivity.Effect(rs, func() any {
		calls++
		dummy = a.Value()
		return nil
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, dummy)

	a.SetValue(2)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, dummy)

	a.SetValue(2)
	assert.Equal(t, 2, calls)

	a.SetValue(math.NaN())
	assert.Equal(t, 3, calls)
	a.SetValue(math.NaN())
	assert.Equal(t, 3, calls)

	a.SetValue(0.0)
	assert.Equal(t, 4, calls)
	a.SetValue(math.Copysign(0, -1))
	assert.Equal(t, 5, calls)
}

func TestRefWrapsObjects(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, map[string]any{"count": 1})

	var dummy int
	reactivity.Effect(rs, func() any {
		dummy = a.Value().(*reactivity.Object).Get("count").(int)
		return nil
	})
	assert.Equal(t, 1, dummy)

	a.Value().(*reactivity.Object).Set("count", 2)
	assert.Equal(t, 2, dummy)
}

func TestRefSameRawObjectDoesNotTrigger(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	raw := map[string]any{"count": 1}
	a := reactivity.NewRef(rs, raw)

	calls := 0
	reactivity.Effect(rs, func() any {
		calls++
		return a.Value()
	})

	a.SetValue(raw)
	a.SetValue(reactivity.Reactive(rs, raw))
	assert.Equal(t, 1, calls)

	a.SetValue(map[string]any{"count": 1})
	assert.Equal(t, 2, calls)
}

func TestIsRefAndUnref(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, 1)
	c := reactivity.Computed(rs, func() int { return 3 })

	assert.True(t, reactivity.IsRef(a))
	assert.True(t, reactivity.IsRef(c))
	assert.False(t, reactivity.IsRef(1))
	assert.False(t, reactivity.IsRef(reactivity.Reactive(rs, map[string]any{})))

	assert.Equal(t, 1, reactivity.Unref(a))
	assert.Equal(t, 3, reactivity.Unref(c))
	assert.Equal(t, "x", reactivity.Unref("x"))
}

func TestProxyRefs(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	age := reactivity.NewRef(rs, 10)
	user := map[string]any{
		"age":  age,
		"name": "xiaohong",
	}
	proxy := reactivity.ProxyRefs(rs, user)

	assert.Equal(t, 10, proxy.Get("age"))
	assert.Equal(t, "xiaohong", proxy.Get("name"))
	assert.True(t, proxy.Has("age"))
	assert.Same(t, proxy, reactivity.ProxyRefs(rs, proxy))

	proxy.Set("age", 20)
	assert.Equal(t, 20, proxy.Get("age"))
	assert.Equal(t, 20, age.Value())
	assert.Same(t, age, user["age"])

	next := reactivity.NewRef(rs, 10)
	proxy.Set("age", next)
	assert.Equal(t, 10, proxy.Get("age"))
	assert.Same(t, next, user["age"])
	assert.Equal(t, 20, age.Value())
}

func TestProxyRefsOverReactiveTracks(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	count := reactivity.NewRef(rs, 1)
	state := reactivity.Reactive(rs, map[string]any{"count": count})
	proxy := reactivity.ProxyRefs(rs, state)

	var dummy any
	reactivity.Effect(rs, func() any {
		dummy = proxy.Get("count")
		return nil
	})
	require.Equal(t, 1, dummy)

	proxy.Set("count", 5)
	assert.Equal(t, 5, dummy)
}
