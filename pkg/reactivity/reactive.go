package reactivity

import (
	"sort"
	"unsafe"
)

// Flag keys answer introspection questions when read through Get instead of
// reaching the raw object.
type Flag string

const (
	FlagIsReactive Flag = "__v_isReactive"
	FlagIsReadonly Flag = "__v_isReadonly"
	FlagRaw        Flag = "__v_raw"
)

// iterateKey is tracked by Len and Keys and triggered when a map gains a key.
type iterateKeyType struct{}

var iterateKey = iterateKeyType{}

type variant uint8

const (
	variantMutable variant = iota
	variantReadonly
	variantShallowReadonly
	variantCount
)

func (v variant) String() string {
	switch v {
	case variantMutable:
		return "reactive"
	case variantReadonly:
		return "readonly"
	case variantShallowReadonly:
		return "shallowReadonly"
	default:
		return "unknown"
	}
}

type handlers struct {
	get func(o *Object, key any) any
	set func(o *Object, key, value any) bool
}

var handlerTable = [variantCount]handlers{
	variantMutable:         {get: createGetter(false, false), set: mutableSet},
	variantReadonly:        {get: createGetter(true, false), set: readonlySet},
	variantShallowReadonly: {get: createGetter(true, true), set: readonlySet},
}

// Accessor is the keyed read/write surface shared by Object and RefsView.
type Accessor interface {
	Get(key any) any
	Set(key, value any) bool
	Has(key any) bool
}

// Object intercepts reads and writes on a raw map[string]any or []any.
// Map keys are strings, slice keys are ints.
type Object struct {
	rs      *ReactiveSystem
	raw     any
	variant variant
}

var _ Accessor = (*Object)(nil)

func (o *Object) Get(key any) any {
	return handlerTable[o.variant].get(o, key)
}

// Set writes through to the raw object. On readonly wrappers it logs a
// warning and reports success without writing.
func (o *Object) Set(key, value any) bool {
	return handlerTable[o.variant].set(o, key, value)
}

func (o *Object) Has(key any) bool {
	if o.variant == variantMutable {
		o.rs.Track(o.raw, key)
	}
	_, ok := rawGet(o.raw, key)
	return ok
}

// Len returns the number of entries and tracks structural changes.
func (o *Object) Len() int {
	if o.variant == variantMutable {
		o.rs.Track(o.raw, iterateKey)
	}
	switch raw := o.raw.(type) {
	case map[string]any:
		return len(raw)
	case []any:
		return len(raw)
	}
	return 0
}

// Keys returns the sorted keys of a map target. Slices have none.
func (o *Object) Keys() []string {
	m, ok := o.raw.(map[string]any)
	if !ok {
		return nil
	}
	if o.variant == variantMutable {
		o.rs.Track(o.raw, iterateKey)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *Object) Raw() any {
	return o.raw
}

func createGetter(isReadonly, shallow bool) func(o *Object, key any) any {
	return func(o *Object, key any) any {
		switch key {
		case FlagIsReactive:
			return !isReadonly
		case FlagIsReadonly:
			return isReadonly
		case FlagRaw:
			return o.raw
		}

		res, _ := rawGet(o.raw, key)
		if !isReadonly {
			o.rs.Track(o.raw, key)
		}
		if shallow || !isObject(res) {
			return res
		}
		if isReadonly {
			return Readonly(o.rs, res)
		}
		return Reactive(o.rs, res)
	}
}

func mutableSet(o *Object, key, value any) bool {
	value = ToRaw(value)
	old, had := rawGet(o.raw, key)
	if !rawSet(o.raw, key, value) {
		o.rs.logger.Warn("reactivity: unsupported key", "key", key, "target", typeName(o.raw))
		return false
	}
	if !had {
		o.rs.Trigger(o.raw, key)
		o.rs.Trigger(o.raw, iterateKey)
		return true
	}
	if !Same(old, value) {
		o.rs.Trigger(o.raw, key)
	}
	return true
}

func readonlySet(o *Object, key, value any) bool {
	o.rs.logger.Warn("reactivity: set on readonly target",
		"key", key,
		"variant", o.variant.String(),
	)
	return true
}

func rawGet(raw, key any) (any, bool) {
	switch raw := raw.(type) {
	case map[string]any:
		k, ok := key.(string)
		if !ok {
			return nil, false
		}
		v, ok := raw[k]
		return v, ok
	case []any:
		i, ok := key.(int)
		if !ok || i < 0 || i >= len(raw) {
			return nil, false
		}
		return raw[i], true
	}
	return nil, false
}

func rawSet(raw, key, value any) bool {
	switch raw := raw.(type) {
	case map[string]any:
		k, ok := key.(string)
		if !ok {
			return false
		}
		raw[k] = value
		return true
	case []any:
		i, ok := key.(int)
		if !ok || i < 0 || i >= len(raw) {
			return false
		}
		raw[i] = value
		return true
	}
	return false
}

func isObject(v any) bool {
	switch v := v.(type) {
	case map[string]any:
		return v != nil
	case []any:
		return v != nil
	}
	return false
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "map"
	case []any:
		return "slice"
	default:
		return "unknown"
	}
}

func createReactiveObject(rs *ReactiveSystem, raw any, v variant) *Object {
	if o, ok := raw.(*Object); ok {
		return o
	}
	if !isObject(raw) {
		rs.logger.Warn("reactivity: value cannot be made "+v.String(), "type", typeName(raw))
		return nil
	}
	key, ok := proxyKeyOf(raw)
	if ok {
		if cached, ok := rs.proxies[v][key]; ok {
			return cached
		}
	}
	o := &Object{rs: rs, raw: raw, variant: v}
	if ok {
		rs.proxies[v][key] = o
	}
	return o
}

// proxyKey identifies a cached wrapper. Slices sharing a backing array are
// told apart by their length and capacity.
type proxyKey struct {
	ptr      unsafe.Pointer
	len, cap int
}

func proxyKeyOf(raw any) (proxyKey, bool) {
	id, ok := identity(raw)
	if !ok {
		return proxyKey{}, false
	}
	key := proxyKey{ptr: id}
	if s, isSlice := raw.([]any); isSlice {
		key.len, key.cap = len(s), cap(s)
	}
	return key, true
}

// Reactive wraps raw so that reads are tracked and writes trigger. Nested
// maps and slices come back wrapped the same way.
func Reactive(rs *ReactiveSystem, raw any) *Object {
	return createReactiveObject(rs, raw, variantMutable)
}

// Readonly wraps raw so that writes are rejected and reads are not tracked.
// Nested maps and slices come back readonly too.
func Readonly(rs *ReactiveSystem, raw any) *Object {
	return createReactiveObject(rs, raw, variantReadonly)
}

// ShallowReadonly rejects writes on raw itself and returns nested values
// unwrapped.
func ShallowReadonly(rs *ReactiveSystem, raw any) *Object {
	return createReactiveObject(rs, raw, variantShallowReadonly)
}

func IsReactive(v any) bool {
	o, ok := v.(*Object)
	if !ok || o == nil {
		return false
	}
	return o.Get(FlagIsReactive).(bool)
}

func IsReadonly(v any) bool {
	o, ok := v.(*Object)
	if !ok || o == nil {
		return false
	}
	return o.Get(FlagIsReadonly).(bool)
}

func IsProxy(v any) bool {
	return IsReactive(v) || IsReadonly(v)
}

// ToRaw returns the object behind a wrapper, or v itself.
func ToRaw(v any) any {
	if o, ok := v.(*Object); ok && o != nil {
		return o.raw
	}
	return v
}

func toReactive(rs *ReactiveSystem, v any) any {
	if isObject(v) {
		return Reactive(rs, v)
	}
	return v
}
