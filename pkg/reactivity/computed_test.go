package reactivity_test

import (
	"testing"

	"github.com/delaneyj/vnodeparty/pkg/reactivity"
	"github.com/stretchr/testify/assert"
)

func TestComputedHappyPath(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	user := reactivity.Reactive(rs, map[string]any{"age": 1})

	age := reactivity.Computed(rs, func() int {
		return user.Get("age").(int)
	})
	assert.Equal(t, 1, age.Value())
}

// should compute lazily and cache until a dependency changes
func TestComputedIsLazy(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	value := reactivity.Reactive(rs, map[string]any{"foo": 1})

	calls := 0
	cValue := reactivity.Computed(rs, func() int {
		calls++
		return value.Get("foo").(int)
	})
	assert.Equal(t, 0, calls)

	assert.Equal(t, 1, cValue.Value())
	assert.Equal(t, 1, calls)

	cValue.Value()
	assert.Equal(t, 1, calls)

	value.Set("foo", 2)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 2, cValue.Value())
	assert.Equal(t, 2, calls)

	cValue.Value()
	assert.Equal(t, 2, calls)
}

func TestComputedTriggersEffects(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	value := reactivity.Reactive(rs, map[string]any{"foo": 1})
	double := reactivity.Computed(rs, func() int {
		return value.Get("foo").(int) * 2
	})

	runs := 0
	var dummy int
	reactivity.Effect(rs, func() any {
		runs++
		dummy = double.Value()
		return nil
	})
	assert.Equal(t, 2, dummy)

	value.Set("foo", 5)
	assert.Equal(t, 10, dummy)
	assert.Equal(t, 2, runs)
}

func TestComputedChain(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, 1)
	b := reactivity.Computed(rs, func() int { return a.Value().(int) + 1 })
	c := reactivity.Computed(rs, func() int { return b.Value() * 10 })

	assert.Equal(t, 20, c.Value())
	a.SetValue(2)
	assert.Equal(t, 30, c.Value())
}

func TestComputedStop(t *testing.T) {
	rs := reactivity.CreateReactiveSystem()
	a := reactivity.NewRef(rs, 1)

	calls := 0
	c := reactivity.Computed(rs, func() int {
		calls++
		return a.Value().(int)
	})
	assert.Equal(t, 1, c.Value())

	c.Effect().Stop()
	a.SetValue(2)
	assert.Equal(t, 1, c.Value())
	assert.Equal(t, 1, calls)
}
