// Package moxy is the entry point for creating test doubles.
//
//	proxify := moxy.Factory(reg)
//	fn, _ := proxify(target, mock.WithRecordGetter(true))
//	m, _ := mock.Of(fn)
//	m.FakeReturnValue(42)
package moxy

import (
	"moxy/pkg/config"
	"moxy/pkg/mock"
	"moxy/pkg/value"
)

// ProxifyFunc creates a double over target with the given options.
type ProxifyFunc func(target value.Value, opts ...mock.Option) (value.Value, error)

// Factory returns a ProxifyFunc that applies reg's defaults before the
// per-call options. Defaults are read on every call, so later SetDefaults
// calls affect doubles created afterwards. A nil reg means no defaults.
func Factory(reg *config.Registry) ProxifyFunc {
	return func(target value.Value, opts ...mock.Option) (value.Value, error) {
		var m *mock.Mock
		if reg != nil {
			m = reg.NewMock(opts...)
		} else {
			m = mock.New(opts...)
		}
		if target == nil {
			target = emptyFunction()
		}
		return m.Proxify(target)
	}
}

// New creates a double over target using only opts. A nil target yields a
// double over a function that returns undefined.
func New(target value.Value, opts ...mock.Option) (value.Value, error) {
	return Factory(nil)(target, opts...)
}

// MustNew is like New but panics on error.
func MustNew(target value.Value, opts ...mock.Option) value.Value {
	v, err := New(target, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func emptyFunction() *value.Function {
	return value.NewFunction("", 0, func(value.Value, []value.Value) (value.Value, error) {
		return nil, nil
	})
}
