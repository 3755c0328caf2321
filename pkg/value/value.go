// Package value is the reflective object model the engine intercepts.
//
// A Value is any Go value. nil stands for "undefined". Objects are values that
// implement Object; they carry own properties described by Descriptors and a
// prototype link. Callable and Constructor objects can additionally be invoked
// and instantiated. Everything else (strings, numbers, bools, structs passed by
// value, ...) is a primitive and cannot be proxied.
package value

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value represents any value flowing through the object model.
type Value = any

// Type classifies a Value the way typeof does.
type Type uint8

const (
	TypeUndefined Type = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeSymbol
	TypeObject
	TypeFunction
	TypePromise
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	case TypePromise:
		return "promise"
	default:
		return "unknown"
	}
}

// TypeOf returns the Type of v.
func TypeOf(v Value) Type {
	switch x := v.(type) {
	case nil:
		return TypeUndefined
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	case string:
		return TypeString
	case *Symbol:
		return TypeSymbol
	case *Promise:
		return TypePromise
	case Object:
		if IsCallable(x) {
			return TypeFunction
		}
		return TypeObject
	default:
		return TypeObject
	}
}

// IsObject reports whether v takes part in the object protocol.
func IsObject(v Value) bool {
	_, ok := v.(Object)
	return ok
}

// IsProxifiable reports whether a double can be produced for v: objects and
// callables, never primitives and never promises.
func IsProxifiable(v Value) bool {
	if _, ok := v.(*Promise); ok {
		return false
	}
	return IsObject(v)
}

// IsCallable reports whether v can be called. Objects whose callability is
// only known at runtime (proxies) answer through IsCallable() themselves.
func IsCallable(v Value) bool {
	if c, ok := v.(interface{ IsCallable() bool }); ok {
		return c.IsCallable()
	}
	_, ok := v.(Callable)
	return ok
}

// IsConstructor reports whether v can be instantiated.
func IsConstructor(v Value) bool {
	if c, ok := v.(interface{ IsConstructor() bool }); ok {
		return c.IsConstructor()
	}
	_, ok := v.(Constructor)
	return ok
}

// SameValue compares two values by identity. Unlike ==, it never panics on
// values of non-comparable dynamic types (slices, maps, funcs); those are
// compared by their underlying pointer.
func SameValue(a, b Value) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

// Inspect renders v for diagnostics.
func Inspect(v Value) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case string:
		return strconv.Quote(x)
	case *Symbol:
		return x.String()
	case *Promise:
		return "a Promise"
	case *Function:
		return fmt.Sprintf("[Function: %s]", x.Name())
	case *Proxy:
		return "[Proxy]"
	case Object:
		return fmt.Sprintf("[object %T]", x)
	default:
		return fmt.Sprint(x)
	}
}
