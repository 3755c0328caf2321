package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromiseSettlesOnce(t *testing.T) {
	p, resolve, reject := NewPromise()
	assert.Equal(t, PromisePending, p.State())

	resolve(1)
	reject(errors.New("late"))
	resolve(2)

	assert.Equal(t, PromiseFulfilled, p.State())
	v, err := p.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestPromiseThen(t *testing.T) {
	p, resolve, _ := NewPromise()
	var seen []Value
	next := p.Then(func(v Value) (Value, error) {
		seen = append(seen, v)
		return v.(int) + 1, nil
	}, nil)

	assert.Empty(t, seen)
	resolve(1)
	assert.Equal(t, []Value{1}, seen, "reactions run at settlement")

	v, err := next.Await()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestPromiseRejectionPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	called := false
	next := Rejected(boom).Then(func(Value) (Value, error) {
		called = true
		return nil, nil
	}, nil)
	_, err := next.Await()
	assert.Same(t, boom, err)
	assert.False(t, called)

	recovered, err := Rejected(boom).Catch(func(err error) (Value, error) { return err.Error(), nil }).Await()
	require.NoError(t, err)
	assert.Equal(t, "boom", recovered)
}

func TestPromiseAdoption(t *testing.T) {
	inner, resolveInner, _ := NewPromise()
	outer := Resolved(inner)
	assert.Equal(t, PromisePending, outer.State())

	resolveInner("done")
	v, err := outer.Await()
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	self, resolve, _ := NewPromise()
	resolve(self)
	_, err = self.Await()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Chaining cycle")
}

func TestPromiseStateString(t *testing.T) {
	assert.Equal(t, "pending", PromisePending.String())
	assert.Equal(t, "fulfilled", PromiseFulfilled.String())
	assert.Equal(t, "rejected", PromiseRejected.String())
}

func TestPromiseLazy(t *testing.T) {
	runs := 0
	lazy := Resolved(1).Lazy(func(v Value) (Value, error) {
		runs++
		return v.(int) * 10, nil
	})
	assert.Zero(t, runs)
	assert.Equal(t, PromisePending, lazy.State())

	v, err := lazy.Await()
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	_, _ = lazy.Await()
	lazy.Then(nil, nil)
	assert.Equal(t, 1, runs)

	boom := errors.New("boom")
	_, err = Rejected(boom).Lazy(func(Value) (Value, error) {
		runs++
		return nil, nil
	}).Await()
	assert.Same(t, boom, err)
	assert.Equal(t, 1, runs)
}

func TestPromiseLazyObservedByThen(t *testing.T) {
	src, resolve, _ := NewPromise()
	var seen Value
	src.Lazy(func(v Value) (Value, error) { return v, nil }).Then(func(v Value) (Value, error) {
		seen = v
		return nil, nil
	}, nil)
	assert.Nil(t, seen)
	resolve("late")
	assert.Equal(t, "late", seen)
}
