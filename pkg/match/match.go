// Package match provides argument predicates for mock.FakeWhenArgs.
//
// Values are compared deeply. Doubles, functions, promises, symbols and
// struct records compare by identity; plain objects compare by prototype
// identity and own properties.
package match

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"moxy/pkg/mock"
	"moxy/pkg/value"
)

var options cmp.Options

func init() {
	options = cmp.Options{
		cmp.Comparer(func(a, b value.PropertyKey) bool { return a == b }),
		cmp.Comparer(func(a, b *value.Symbol) bool { return a == b }),
		cmp.Comparer(func(a, b *value.Proxy) bool { return a == b }),
		cmp.Comparer(func(a, b *value.Function) bool { return a == b }),
		cmp.Comparer(func(a, b *value.Promise) bool { return a == b }),
		cmp.Comparer(func(a, b *value.Record) bool { return a == b }),
		cmp.Comparer(equalObjects),
		cmpopts.EquateEmpty(),
		cmp.Exporter(func(reflect.Type) bool { return true }),
	}
}

func equalObjects(a, b *value.PlainObject) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.GetPrototypeOf() != b.GetPrototypeOf() {
		return false
	}
	ka, kb := a.OwnKeys(), b.OwnKeys()
	if len(ka) != len(kb) {
		return false
	}
	for i, k := range ka {
		if kb[i] != k {
			return false
		}
		da, _ := a.GetOwnProperty(k)
		db, _ := b.GetOwnProperty(k)
		if da.IsAccessor() || db.IsAccessor() {
			if da.Get != db.Get || da.Set != db.Set {
				return false
			}
			continue
		}
		if !cmp.Equal(da.Value, db.Value, options) {
			return false
		}
	}
	return true
}

// DeepEqual reports whether x and y are deeply equal.
func DeepEqual(x, y value.Value) bool {
	return cmp.Equal(x, y, options)
}

// Diff renders the difference between x and y, or "" when they are equal.
func Diff(x, y value.Value) string {
	return cmp.Diff(x, y, options)
}

// Equal matches calls whose arguments equal expected.
func Equal(expected ...value.Value) mock.Predicate {
	return func(actual ...value.Value) bool {
		return cmp.Equal(expected, actual, options)
	}
}

// BeginWith matches calls whose first arguments equal expected.
func BeginWith(expected ...value.Value) mock.Predicate {
	return func(actual ...value.Value) bool {
		if len(actual) < len(expected) {
			return false
		}
		return cmp.Equal(expected, actual[:len(expected)], options)
	}
}

// EndWith matches calls whose last arguments equal expected.
func EndWith(expected ...value.Value) mock.Predicate {
	return func(actual ...value.Value) bool {
		if len(actual) < len(expected) {
			return false
		}
		return cmp.Equal(expected, actual[len(actual)-len(expected):], options)
	}
}

// NthIs matches calls whose idx-th argument equals expected. A missing
// argument is nil.
func NthIs(idx int, expected value.Value) mock.Predicate {
	return func(actual ...value.Value) bool {
		var arg value.Value
		if idx >= 0 && idx < len(actual) {
			arg = actual[idx]
		}
		return cmp.Equal(expected, arg, options)
	}
}
