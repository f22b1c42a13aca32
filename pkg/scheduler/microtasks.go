package scheduler

// Microtasks is the one asynchronous boundary of the runtime. Deferred
// callbacks do not run until Drain is called, and then run in the order they
// were deferred, including callbacks deferred while draining.
type Microtasks struct {
	queue    []func()
	draining bool
}

func NewMicrotasks() *Microtasks {
	return &Microtasks{}
}

func (m *Microtasks) Defer(fn func()) {
	m.queue = append(m.queue, fn)
}

// Drain runs deferred callbacks until none are left. A Drain called from
// inside a callback returns immediately; the outer Drain picks up whatever
// was deferred.
func (m *Microtasks) Drain() {
	if m.draining {
		return
	}
	m.draining = true
	defer func() {
		m.draining = false
	}()

	for len(m.queue) > 0 {
		fn := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		fn()
	}
}

// Len returns the number of callbacks waiting for the next Drain.
func (m *Microtasks) Len() int {
	return len(m.queue)
}
