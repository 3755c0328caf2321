// Package track holds optional add-ons that reshape what a Mock records:
// constructed instances tracked by a chosen Mock, and call chains of curried
// functions.
package track

import (
	"moxy/pkg/mock"
	"moxy/pkg/value"
)

// ConstructedInstances replaces the construct trap so every instance built
// through the double is proxified by tracker, or by the double's own Mock when
// tracker is nil. The construction itself is not recorded.
func ConstructedInstances(tracker *mock.Mock) mock.Middleware {
	return func(h value.ProxyHandler, source value.Object, owner *mock.Mock) value.ProxyHandler {
		h.Construct = func(_ value.Object, args []value.Value, newTarget value.Object) (value.Value, error) {
			instance, err := value.Construct(source, args, newTarget)
			if err != nil {
				return nil, err
			}
			m := tracker
			if m == nil {
				m = owner
			}
			return m.Proxify(instance)
		}
		return h
	}
}

// NewInstances is the WrapFunc counterpart of ConstructedInstances: install it
// with Wrap on the Mock of a class double and every constructed instance is
// proxified by tracker (or that Mock), while the construction is still
// recorded.
func NewInstances(tracker *mock.Mock) mock.WrapFunc {
	return func(original mock.Impl, owner *mock.Mock) mock.Impl {
		m := tracker
		if m == nil {
			m = owner
		}
		return func(this value.Value, args []value.Value) (value.Value, error) {
			instance, err := original(this, args)
			if err != nil {
				return nil, err
			}
			if !value.IsObject(instance) {
				instance = this
			}
			return m.Proxify(instance)
		}
	}
}
