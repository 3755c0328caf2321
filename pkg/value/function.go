package value

import (
	"fmt"
	"reflect"

	"moxy/pkg/errors"
)

// NativeFunc is the Go body of a Function.
type NativeFunc func(this Value, args []Value) (Value, error)

// Function is a callable object backed by a NativeFunc. Like an ECMAScript
// function it owns "name" and "length" properties and, when constructible, a
// "prototype" object whose "constructor" points back at it.
type Function struct {
	PlainObject
	name          string
	arity         int
	fn            NativeFunc
	constructible bool
}

// NewFunction creates a constructible function.
func NewFunction(name string, arity int, fn NativeFunc) *Function {
	f := newFunction(name, arity, fn)
	f.constructible = true
	proto := NewObject(nil)
	proto.SetOwnNonEnumerable("constructor", f)
	f.DefineOwnProperty(Key("prototype"), Descriptor{Value: proto, Writable: true})
	return f
}

// NewArrowFunction creates a function that can be called but not constructed
// and has no "prototype" property.
func NewArrowFunction(name string, arity int, fn NativeFunc) *Function {
	return newFunction(name, arity, fn)
}

func newFunction(name string, arity int, fn NativeFunc) *Function {
	f := &Function{
		PlainObject: *NewObject(nil),
		name:        name,
		arity:       arity,
		fn:          fn,
	}
	f.DefineOwnProperty(Key("length"), Descriptor{Value: arity, Configurable: true})
	f.DefineOwnProperty(Key("name"), Descriptor{Value: name, Configurable: true})
	return f
}

func (f *Function) Name() string        { return f.name }
func (f *Function) Arity() int          { return f.arity }
func (f *Function) IsConstructor() bool { return f.constructible }

func (f *Function) Call(this Value, args []Value) (Value, error) {
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(this, args)
}

// Construct runs the function with a fresh instance as this. The instance's
// prototype is newTarget.prototype; an object returned by the body replaces the
// instance.
func (f *Function) Construct(args []Value, newTarget Object) (Value, error) {
	if !f.constructible {
		return nil, errors.NewTypeError(errors.ErrNotConstructor, "%s is not a constructor", f.describe())
	}
	if newTarget == nil {
		newTarget = f
	}
	instance := NewObject(PrototypeFor(newTarget))
	res, err := f.Call(instance, args)
	if err != nil {
		return nil, err
	}
	if obj, ok := res.(Object); ok {
		return obj, nil
	}
	return instance, nil
}

func (f *Function) describe() string {
	if f.name == "" {
		return "anonymous function"
	}
	return f.name
}

// PrototypeFor reads newTarget.prototype, returning nil when it is not an object.
func PrototypeFor(newTarget Object) Object {
	if newTarget == nil {
		return nil
	}
	v, err := newTarget.Get(Key("prototype"), newTarget)
	if err != nil {
		return nil
	}
	proto, _ := v.(Object)
	return proto
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// FromFunc lifts an ordinary Go func into a callable Function. Arguments are
// converted to the parameter types (nil becomes the zero value). A trailing
// error result is returned as the thrown value; a single remaining result is
// returned as is, several remaining results as a []Value. The receiver is not
// visible to the Go func.
func FromFunc(name string, fn any) *Function {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		panic(fmt.Sprintf("value.FromFunc: %T is not a func", fn))
	}
	rt := rv.Type()
	arity := rt.NumIn()
	if rt.IsVariadic() {
		arity--
	}
	return NewArrowFunction(name, arity, func(_ Value, args []Value) (Value, error) {
		in, err := convertArgs(rt, args)
		if err != nil {
			return nil, err
		}
		return convertResults(rt, rv.Call(in))
	})
}

func convertArgs(rt reflect.Type, args []Value) ([]reflect.Value, error) {
	n := rt.NumIn()
	fixed := n
	if rt.IsVariadic() {
		fixed--
	}
	in := make([]reflect.Value, 0, max(n, len(args)))
	for i := 0; i < fixed; i++ {
		var arg Value
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, rt.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, v)
	}
	if rt.IsVariadic() {
		elem := rt.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func convertArg(arg Value, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Type().ConvertibleTo(t) && sameKindFamily(v.Kind(), t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, errors.NewTypeError(errors.ErrInvalidArgument, "cannot use %s as %s", Inspect(arg), t)
}

// sameKindFamily keeps conversions to numeric<->numeric and string<->string;
// reflect would otherwise happily turn an int into a one-rune string.
func sameKindFamily(a, b reflect.Kind) bool {
	numeric := func(k reflect.Kind) bool { return k >= reflect.Int && k <= reflect.Float64 }
	if numeric(a) || numeric(b) {
		return numeric(a) && numeric(b)
	}
	return true
}

func convertResults(rt reflect.Type, out []reflect.Value) (Value, error) {
	if n := rt.NumOut(); n > 0 && rt.Out(n-1) == errorType {
		if errVal := out[n-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		res := make([]Value, len(out))
		for i, v := range out {
			res[i] = v.Interface()
		}
		return res, nil
	}
}
