package hostdom

import "fmt"

// invoker stays bound to the node while the handler it calls is swapped on
// every patch.
type invoker struct {
	value any
}

func (inv *invoker) call(args ...any) error {
	switch fn := inv.value.(type) {
	case func():
		fn()
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		fn(arg)
	case func(...any):
		fn(args...)
	default:
		return fmt.Errorf("hostdom: unsupported handler type %T", inv.value)
	}
	return nil
}

// Dispatch calls the handler bound for event on n. It reports false when no
// handler is bound.
func Dispatch(n *Node, event string, args ...any) (bool, error) {
	inv, ok := n.listeners[event]
	if !ok {
		return false, nil
	}
	return true, inv.call(args...)
}
