package value

import (
	"sort"
	"strconv"
)

// Object is the set of internal methods every object implements. Receiver is
// the value the operation was originally performed on; it differs from the
// object itself when the lookup was delegated through the prototype chain or
// a proxy.
type Object interface {
	GetPrototypeOf() Object
	SetPrototypeOf(proto Object) bool
	GetOwnProperty(key PropertyKey) (*Descriptor, bool)
	DefineOwnProperty(key PropertyKey, desc Descriptor) bool
	Has(key PropertyKey) bool
	Get(key PropertyKey, receiver Value) (Value, error)
	Set(key PropertyKey, v Value, receiver Value) (bool, error)
	Delete(key PropertyKey) bool
	OwnKeys() []PropertyKey
}

// Callable is an object that can be called with a receiver and arguments.
type Callable interface {
	Object
	Call(this Value, args []Value) (Value, error)
}

// Constructor is an object that can be instantiated. newTarget decides the
// prototype of the created instance.
type Constructor interface {
	Object
	Construct(args []Value, newTarget Object) (Value, error)
}

// Descriptor describes an own property. A descriptor with Get or Set is an
// accessor property; otherwise it is a data property holding Value.
type Descriptor struct {
	Value        Value
	Get          Callable
	Set          Callable
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// IsAccessor reports whether d describes an accessor property.
func (d *Descriptor) IsAccessor() bool { return d.Get != nil || d.Set != nil }

// DataDescriptor is the descriptor of a plain assignment: writable, enumerable
// and configurable.
func DataDescriptor(v Value) Descriptor {
	return Descriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// PlainObject is an ordinary object with insertion-ordered own properties.
type PlainObject struct {
	prototype  Object
	keys       []PropertyKey
	props      map[PropertyKey]*Descriptor
	extensible bool
}

// NewObject creates an empty object whose prototype is proto (nil for none).
func NewObject(proto Object) *PlainObject {
	return &PlainObject{
		prototype:  proto,
		props:      make(map[PropertyKey]*Descriptor),
		extensible: true,
	}
}

// NewObjectFrom creates an object with the given own data properties. Keys are
// defined in sorted order so the resulting key order is deterministic.
func NewObjectFrom(props map[string]Value) *PlainObject {
	o := NewObject(nil)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		o.SetOwn(name, props[name])
	}
	return o
}

func (o *PlainObject) GetPrototypeOf() Object { return o.prototype }

func (o *PlainObject) SetPrototypeOf(proto Object) bool {
	if proto == o.prototype {
		return true
	}
	if !o.extensible {
		return false
	}
	// Refuse cycles
	for p := proto; p != nil; p = p.GetPrototypeOf() {
		if p == Object(o) {
			return false
		}
		if _, isProxy := p.(*Proxy); isProxy {
			break
		}
	}
	o.prototype = proto
	return true
}

func (o *PlainObject) GetOwnProperty(key PropertyKey) (*Descriptor, bool) {
	d, ok := o.props[key]
	if !ok {
		return nil, false
	}
	cp := *d
	return &cp, true
}

func (o *PlainObject) DefineOwnProperty(key PropertyKey, desc Descriptor) bool {
	if cur, ok := o.props[key]; ok {
		if !cur.Configurable {
			// Only a writable data property may still change its value
			if cur.IsAccessor() || desc.IsAccessor() || !cur.Writable {
				return false
			}
			if desc.Configurable || desc.Enumerable != cur.Enumerable {
				return false
			}
			cur.Value = desc.Value
			cur.Writable = desc.Writable
			return true
		}
		*cur = desc
		return true
	}
	if !o.extensible {
		return false
	}
	d := desc
	o.props[key] = &d
	o.keys = append(o.keys, key)
	return true
}

func (o *PlainObject) Has(key PropertyKey) bool {
	if _, ok := o.props[key]; ok {
		return true
	}
	if o.prototype != nil {
		return o.prototype.Has(key)
	}
	return false
}

func (o *PlainObject) Get(key PropertyKey, receiver Value) (Value, error) {
	return OrdinaryGet(o, key, receiver)
}

func (o *PlainObject) Set(key PropertyKey, v Value, receiver Value) (bool, error) {
	return OrdinarySet(o, key, v, receiver)
}

func (o *PlainObject) Delete(key PropertyKey) bool {
	d, ok := o.props[key]
	if !ok {
		return true
	}
	if !d.Configurable {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys lists own keys in property order: integer indexes ascending, then
// string names in insertion order, then symbols in insertion order.
func (o *PlainObject) OwnKeys() []PropertyKey {
	var indexes, names, symbols []PropertyKey
	for _, k := range o.keys {
		switch {
		case k.IsSymbol():
			symbols = append(symbols, k)
		case k.IsIndex():
			indexes = append(indexes, k)
		default:
			names = append(names, k)
		}
	}
	sort.Slice(indexes, func(i, j int) bool {
		a, _ := strconv.ParseUint(indexes[i].name, 10, 32)
		b, _ := strconv.ParseUint(indexes[j].name, 10, 32)
		return a < b
	})
	out := make([]PropertyKey, 0, len(o.keys))
	out = append(out, indexes...)
	out = append(out, names...)
	return append(out, symbols...)
}

// PreventExtensions stops new own properties from being added.
func (o *PlainObject) PreventExtensions() { o.extensible = false }

// IsExtensible reports whether new own properties can be added.
func (o *PlainObject) IsExtensible() bool { return o.extensible }

// GetOwn looks up a direct (own) data property by name.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	d, ok := o.props[Key(name)]
	if !ok || d.IsAccessor() {
		return nil, ok
	}
	return d.Value, true
}

// SetOwn sets or defines an own data property with regular assignment
// attributes. If the property exists and is non-writable, this is a no-op.
func (o *PlainObject) SetOwn(name string, v Value) {
	o.SetOwnByKey(Key(name), v)
}

// SetOwnByKey is SetOwn for arbitrary key kinds.
func (o *PlainObject) SetOwnByKey(key PropertyKey, v Value) {
	if d, ok := o.props[key]; ok {
		if d.Writable && !d.IsAccessor() {
			d.Value = v
		}
		return
	}
	o.DefineOwnProperty(key, DataDescriptor(v))
}

// SetOwnNonEnumerable defines an own data property that is skipped by
// enumeration, the way built-in methods are.
func (o *PlainObject) SetOwnNonEnumerable(name string, v Value) {
	o.DefineOwnProperty(Key(name), Descriptor{Value: v, Writable: true, Configurable: true})
}

// DefineAccessor defines an accessor own property. Either getter or setter may
// be nil.
func (o *PlainObject) DefineAccessor(name string, getter, setter Callable) bool {
	return o.DefineOwnProperty(Key(name), Descriptor{Get: getter, Set: setter, Enumerable: true, Configurable: true})
}

// OrdinaryGet implements property lookup through o's prototype chain, calling
// accessor getters with receiver as this.
func OrdinaryGet(o Object, key PropertyKey, receiver Value) (Value, error) {
	desc, ok := o.GetOwnProperty(key)
	if !ok {
		proto := o.GetPrototypeOf()
		if proto == nil {
			return nil, nil
		}
		return proto.Get(key, receiver)
	}
	if desc.IsAccessor() {
		if desc.Get == nil {
			return nil, nil
		}
		return desc.Get.Call(receiver, nil)
	}
	return desc.Value, nil
}

// OrdinarySet implements assignment: a setter found on the chain is called
// with receiver as this; otherwise the value lands as an own data property of
// receiver.
func OrdinarySet(o Object, key PropertyKey, v Value, receiver Value) (bool, error) {
	desc, ok := o.GetOwnProperty(key)
	if !ok {
		if proto := o.GetPrototypeOf(); proto != nil {
			return proto.Set(key, v, receiver)
		}
		d := DataDescriptor(nil)
		desc = &d
	}
	if desc.IsAccessor() {
		if desc.Set == nil {
			return false, nil
		}
		if _, err := desc.Set.Call(receiver, []Value{v}); err != nil {
			return false, err
		}
		return true, nil
	}
	if !desc.Writable {
		return false, nil
	}
	r, ok := receiver.(Object)
	if !ok {
		return false, nil
	}
	if existing, ok := r.GetOwnProperty(key); ok {
		if existing.IsAccessor() || !existing.Writable {
			return false, nil
		}
		existing.Value = v
		return r.DefineOwnProperty(key, *existing), nil
	}
	return r.DefineOwnProperty(key, DataDescriptor(v)), nil
}
