package track

import (
	"fmt"

	"moxy/pkg/mock"
	"moxy/pkg/value"
)

// FunctionApplyChain folds the calls of a curried function into one record.
// After f(1)(2)(3) the Mock of f holds a single Call whose Args are the
// argument groups [[1] [2] [3]] and whose Result is the final value.
//
// depth bounds the number of argument groups tracked; 0 tracks until the
// returned value is no longer a function.
func FunctionApplyChain(depth int) mock.Middleware {
	return func(h value.ProxyHandler, _ value.Object, m *mock.Mock) value.ProxyHandler {
		apply := h.Apply
		h.Apply = func(target value.Object, this value.Value, args []value.Value) (value.Value, error) {
			next, err := apply(target, this, args)
			if err != nil {
				return nil, err
			}
			n := m.CallCount()
			if n == 0 {
				return nil, fmt.Errorf("track.FunctionApplyChain: no initial call recorded")
			}
			m.UpdateCall(n-1, func(c *mock.Call) {
				c.Args = []value.Value{c.Args}
			})
			return foldNext(next, m, 1, depth), nil
		}
		return h
	}
}

func foldNext(next value.Value, m *mock.Mock, depth, maxDepth int) value.Value {
	if !value.IsCallable(next) || (maxDepth > 0 && depth >= maxDepth) {
		return next
	}
	return value.NewArrowFunction("trackedChain", 0, func(this value.Value, args []value.Value) (value.Value, error) {
		res, err := value.Apply(next, this, args)
		if err != nil {
			return nil, err
		}
		i, ok := m.FindCall(func(c mock.Call) bool { return value.SameValue(c.Result, next) })
		if !ok {
			return nil, fmt.Errorf("track.FunctionApplyChain: no call returned the function being called")
		}
		m.UpdateCall(i, func(c *mock.Call) {
			c.Args = setGroup(c.Args, depth, args)
			c.Result = res
		})
		return foldNext(res, m, depth+1, maxDepth), nil
	})
}

func setGroup(groups []value.Value, i int, args []value.Value) []value.Value {
	for len(groups) <= i {
		groups = append(groups, nil)
	}
	groups[i] = args
	return groups
}

// CurriedFunction keeps one record per step of a curried call chain: every
// intermediate function returned by the original is proxified by the same
// Mock, so f(1)(2)(3) records three calls. Install it with Mock.Wrap.
//
// It does not fold the chain into one record with nested argument groups
// [[1] [2] [3]]; FunctionApplyChain records that shape.
func CurriedFunction() mock.WrapFunc {
	return curried(nil, false)
}

// CurriedFunctionReturning is CurriedFunction that fakes the final value of
// the chain with v.
func CurriedFunctionReturning(v value.Value) mock.WrapFunc {
	return curried(v, true)
}

func curried(final value.Value, fake bool) mock.WrapFunc {
	return func(original mock.Impl, m *mock.Mock) mock.Impl {
		return func(this value.Value, args []value.Value) (value.Value, error) {
			next, err := original(this, args)
			if err != nil {
				return nil, err
			}
			if value.IsCallable(next) {
				return m.Proxify(next)
			}
			if fake {
				return final, nil
			}
			return next, nil
		}
	}
}
