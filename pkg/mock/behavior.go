package mock

import (
	"moxy/pkg/value"
)

// Impl is the behavior behind an intercepted operation. For calls it receives
// the receiver and arguments; for constructions the fresh instance and the
// arguments; for property reads the receiver and no arguments; for property
// writes the receiver and the assigned value.
type Impl func(this value.Value, args []value.Value) (value.Value, error)

// WrapFunc turns the original behavior of an operation into the behavior to
// run instead.
type WrapFunc func(original Impl, m *Mock) Impl

// Predicate decides on the arguments of a call. The matchers of package match
// are Predicates.
type Predicate func(args ...value.Value) bool

// Func lifts an ordinary Go func into an Impl, converting arguments the way
// value.FromFunc does.
func Func(fn any) Impl {
	f := value.FromFunc("fake", fn)
	return f.Call
}

// Wrap installs a persistent transform, replacing the previous one.
func (m *Mock) Wrap(fn WrapFunc) *Mock {
	m.mu.Lock()
	m.wrapper = fn
	m.mu.Unlock()
	return m
}

// WrapOnce queues a transform used by the next operation only. Queued
// transforms are consumed in the order they were added.
func (m *Mock) WrapOnce(fn WrapFunc) *Mock {
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
	return m
}

func fakeWith(impl Impl) WrapFunc {
	return func(Impl, *Mock) Impl { return impl }
}

// Fake replaces the behavior with impl until reset.
func (m *Mock) Fake(impl Impl) *Mock { return m.Wrap(fakeWith(impl)) }

// FakeOnce replaces the behavior of the next operation with impl.
func (m *Mock) FakeOnce(impl Impl) *Mock { return m.WrapOnce(fakeWith(impl)) }

// FakeWhenArgs runs impl for calls whose arguments satisfy pred. Other calls
// run the persistent transform installed before this one, or the original.
func (m *Mock) FakeWhenArgs(pred Predicate, impl Impl) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.wrapper
	m.wrapper = func(original Impl, m *Mock) Impl {
		fallback := original
		if prev != nil {
			fallback = prev(original, m)
		}
		return func(this value.Value, args []value.Value) (value.Value, error) {
			if pred(args...) {
				return impl(this, args)
			}
			return fallback(this, args)
		}
	}
	return m
}

func returning(v value.Value) Impl {
	return func(value.Value, []value.Value) (value.Value, error) { return v, nil }
}

func (m *Mock) FakeReturnValue(v value.Value) *Mock { return m.Fake(returning(v)) }

func (m *Mock) FakeReturnValueOnce(v value.Value) *Mock { return m.FakeOnce(returning(v)) }

func resolving(v value.Value) Impl {
	return func(value.Value, []value.Value) (value.Value, error) { return value.Resolved(v), nil }
}

func rejecting(err error) Impl {
	return func(value.Value, []value.Value) (value.Value, error) { return value.Rejected(err), nil }
}

// FakeResolvedValue makes every call return a promise fulfilled with v.
func (m *Mock) FakeResolvedValue(v value.Value) *Mock { return m.Fake(resolving(v)) }

func (m *Mock) FakeResolvedValueOnce(v value.Value) *Mock { return m.FakeOnce(resolving(v)) }

// FakeRejectedValue makes every call return a promise rejected with err.
func (m *Mock) FakeRejectedValue(err error) *Mock { return m.Fake(rejecting(err)) }

func (m *Mock) FakeRejectedValueOnce(err error) *Mock { return m.FakeOnce(rejecting(err)) }

// Implementation resolves the behavior for one operation: the front of the
// once-queue (consumed), else the persistent transform, else original.
func (m *Mock) Implementation(original Impl) Impl {
	m.mu.Lock()
	var wrap WrapFunc
	if len(m.queue) > 0 {
		wrap = m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
	} else {
		wrap = m.wrapper
	}
	m.mu.Unlock()
	if wrap == nil {
		return original
	}
	return wrap(original, m)
}

