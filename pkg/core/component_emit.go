package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Emit calls the handler prop for event: "add-foo" is handled by onAddFoo.
// A missing handler is ignored.
func Emit(inst *Instance, event string, args ...any) {
	if inst == nil {
		return
	}
	name := toHandlerKey(camelize(event))
	switch h := inst.Props[name].(type) {
	case nil:
	case func(args ...any):
		h(args...)
	case func():
		h()
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		h(arg)
	default:
		inst.renderer.logger.Warn("core: unsupported event handler",
			"component", inst.name(),
			"handler", name,
			"type", typeName(h),
		)
	}
}

func camelize(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func toHandlerKey(s string) string {
	if s == "" {
		return ""
	}
	return "on" + capitalize(s)
}

// IsOn reports whether key names an event handler prop: "on" followed by
// an upper case letter.
func IsOn(key string) bool {
	if len(key) < 3 || !strings.HasPrefix(key, "on") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key[2:])
	return unicode.IsUpper(r)
}
