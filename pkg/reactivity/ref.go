package reactivity

// refLike is implemented by Ref and ComputedRef.
type refLike interface {
	isRef()
	anyValue() any
}

// Ref is a single reactive cell. Object values are exposed through Reactive.
type Ref struct {
	rs       *ReactiveSystem
	rawValue any
	value    any
	dep      dep
}

func NewRef(rs *ReactiveSystem, value any) *Ref {
	raw := ToRaw(value)
	return &Ref{
		rs:       rs,
		rawValue: raw,
		value:    toReactive(rs, raw),
		dep:      newDep(),
	}
}

func (r *Ref) isRef() {}

func (r *Ref) anyValue() any {
	return r.Value()
}

// Value returns the tracked value and records the read when an effect is
// running.
func (r *Ref) Value() any {
	r.rs.trackEffects(r.dep)
	return r.value
}

// Peek returns the value without tracking.
func (r *Ref) Peek() any {
	return r.value
}

// SetValue stores v and notifies subscribers, unless v is the same as the
// stored raw value.
func (r *Ref) SetValue(v any) {
	raw := ToRaw(v)
	if Same(raw, r.rawValue) {
		return
	}
	r.rawValue = raw
	r.value = toReactive(r.rs, raw)
	r.rs.triggerEffects(r.dep)
}

func IsRef(v any) bool {
	_, ok := v.(refLike)
	return ok
}

// Unref returns the value held by a ref, or v itself.
func Unref(v any) any {
	if r, ok := v.(refLike); ok {
		return r.anyValue()
	}
	return v
}

// plainAccessor reads a raw map without tracking.
type plainAccessor map[string]any

func (p plainAccessor) Get(key any) any {
	v, _ := rawGet(map[string]any(p), key)
	return v
}

func (p plainAccessor) Set(key, value any) bool {
	return rawSet(map[string]any(p), key, value)
}

func (p plainAccessor) Has(key any) bool {
	_, ok := rawGet(map[string]any(p), key)
	return ok
}

// RefsView unwraps refs on read and writes through refs on write.
type RefsView struct {
	target Accessor
}

var _ Accessor = (*RefsView)(nil)

// ProxyRefs returns a view over a map[string]any or an Object. Reading a key
// holding a ref returns the ref's value; writing a plain value to such a key
// updates the ref in place.
func ProxyRefs(rs *ReactiveSystem, target any) *RefsView {
	switch t := target.(type) {
	case *RefsView:
		return t
	case *Object:
		return &RefsView{target: t}
	case map[string]any:
		return &RefsView{target: plainAccessor(t)}
	}
	rs.logger.Warn("reactivity: proxyRefs target must be a map or object", "type", typeName(target))
	return &RefsView{target: plainAccessor(map[string]any{})}
}

func (v *RefsView) Get(key any) any {
	return Unref(v.target.Get(key))
}

func (v *RefsView) Set(key, value any) bool {
	if old, ok := v.target.Get(key).(*Ref); ok && !IsRef(value) {
		old.SetValue(value)
		return true
	}
	return v.target.Set(key, value)
}

func (v *RefsView) Has(key any) bool {
	return v.target.Has(key)
}
