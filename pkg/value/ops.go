package value

import (
	"moxy/pkg/errors"
)

// The helpers below are the Reflect-style entry points test code uses to
// operate on objects and doubles.

func toObject(v Value, op string) (Object, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, errors.NewTypeError(errors.ErrNotObject, "cannot %s on %s", op, Inspect(v))
	}
	return obj, nil
}

// Get reads v[key] with v as receiver.
func Get(v Value, key PropertyKey) (Value, error) {
	obj, err := toObject(v, "read property '"+key.String()+"'")
	if err != nil {
		return nil, err
	}
	return obj.Get(key, obj)
}

// GetWithReceiver reads v[key] with an explicit receiver.
func GetWithReceiver(v Value, key PropertyKey, receiver Value) (Value, error) {
	obj, err := toObject(v, "read property '"+key.String()+"'")
	if err != nil {
		return nil, err
	}
	return obj.Get(key, receiver)
}

// Set assigns v[key] = val with v as receiver. It reports whether the object
// accepted the write.
func Set(v Value, key PropertyKey, val Value) (bool, error) {
	obj, err := toObject(v, "set property '"+key.String()+"'")
	if err != nil {
		return false, err
	}
	return obj.Set(key, val, obj)
}

// MustSet is Set that fails when the write is rejected.
func MustSet(v Value, key PropertyKey, val Value) error {
	ok, err := Set(v, key, val)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewTypeError(errors.ErrInvalidArgument, "cannot assign to read only property '%s' of %s", key, Inspect(v))
	}
	return nil
}

// HasProperty reports whether key is present on v or its prototype chain.
func HasProperty(v Value, key PropertyKey) bool {
	obj, ok := v.(Object)
	return ok && obj.Has(key)
}

// OwnKeys returns the own keys of v, or nil for primitives.
func OwnKeys(v Value) []PropertyKey {
	obj, ok := v.(Object)
	if !ok {
		return nil
	}
	return obj.OwnKeys()
}

// GetOwnPropertyDescriptor returns the descriptor of an own property of v.
func GetOwnPropertyDescriptor(v Value, key PropertyKey) (*Descriptor, bool) {
	obj, ok := v.(Object)
	if !ok {
		return nil, false
	}
	return obj.GetOwnProperty(key)
}

// DefineProperty defines an own property on v.
func DefineProperty(v Value, key PropertyKey, desc Descriptor) bool {
	obj, ok := v.(Object)
	return ok && obj.DefineOwnProperty(key, desc)
}

// DeleteProperty removes an own property of v.
func DeleteProperty(v Value, key PropertyKey) bool {
	obj, ok := v.(Object)
	return ok && obj.Delete(key)
}

// GetPrototypeOf returns the prototype of v, or nil.
func GetPrototypeOf(v Value) Object {
	obj, ok := v.(Object)
	if !ok {
		return nil
	}
	return obj.GetPrototypeOf()
}

// SetPrototypeOf changes the prototype of v.
func SetPrototypeOf(v Value, proto Object) bool {
	obj, ok := v.(Object)
	return ok && obj.SetPrototypeOf(proto)
}

// InstanceOf reports whether ctor.prototype appears on v's prototype chain.
func InstanceOf(v Value, ctor Value) bool {
	c, ok := ctor.(Object)
	if !ok {
		return false
	}
	proto := PrototypeFor(c)
	if proto == nil {
		return false
	}
	for p := GetPrototypeOf(v); p != nil; p = p.GetPrototypeOf() {
		if p == proto {
			return true
		}
	}
	return false
}

// Call invokes fn with the given receiver and arguments.
func Call(fn Value, this Value, args ...Value) (Value, error) {
	return Apply(fn, this, args)
}

// Apply invokes fn with the given receiver and argument list.
func Apply(fn Value, this Value, args []Value) (Value, error) {
	if !IsCallable(fn) {
		return nil, errors.NewTypeError(errors.ErrNotCallable, "%s is not a function", Inspect(fn))
	}
	return fn.(Callable).Call(this, args)
}

// Construct instantiates ctor with the given arguments. A nil newTarget means
// ctor itself.
func Construct(ctor Value, args []Value, newTarget Object) (Value, error) {
	if !IsConstructor(ctor) {
		return nil, errors.NewTypeError(errors.ErrNotConstructor, "%s is not a constructor", Inspect(ctor))
	}
	c := ctor.(Constructor)
	if newTarget == nil {
		newTarget = c
	}
	return c.Construct(args, newTarget)
}

// New is Construct with ctor as newTarget.
func New(ctor Value, args ...Value) (Value, error) {
	return Construct(ctor, args, nil)
}

// Invoke calls the method stored at v[key] with v as receiver.
func Invoke(v Value, key PropertyKey, args ...Value) (Value, error) {
	fn, err := Get(v, key)
	if err != nil {
		return nil, err
	}
	if !IsCallable(fn) {
		return nil, errors.NewTypeError(errors.ErrNotCallable, "%s.%s is not a function", Inspect(v), key)
	}
	return Apply(fn, v, args)
}
