package scheduler_test

import (
	"testing"

	"github.com/delaneyj/vnodeparty/pkg/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestMicrotasksRunInOrder(t *testing.T) {
	m := scheduler.NewMicrotasks()
	var order []int
	m.Defer(func() {
		order = append(order, 1)
		m.Defer(func() { order = append(order, 3) })
		m.Drain()
	})
	m.Defer(func() { order = append(order, 2) })
	assert.Empty(t, order)

	m.Drain()
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, m.Len())
}
