package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moxyerrors "moxy/pkg/errors"
)

func TestFunctionShape(t *testing.T) {
	f := NewFunction("Point", 2, nil)

	name, err := Get(f, Key("name"))
	require.NoError(t, err)
	assert.Equal(t, "Point", name)
	length, err := Get(f, Key("length"))
	require.NoError(t, err)
	assert.Equal(t, 2, length)

	proto := PrototypeFor(f)
	require.NotNil(t, proto)
	ctor, err := Get(proto, Key("constructor"))
	require.NoError(t, err)
	assert.Same(t, f, ctor)

	arrow := NewArrowFunction("arrow", 0, nil)
	assert.Nil(t, PrototypeFor(arrow))
	assert.False(t, IsConstructor(arrow))
}

func TestFunctionConstruct(t *testing.T) {
	point := NewFunction("Point", 2, func(this Value, args []Value) (Value, error) {
		o := this.(*PlainObject)
		o.SetOwn("x", args[0])
		o.SetOwn("y", args[1])
		return nil, nil
	})

	p, err := New(point, 1, 2)
	require.NoError(t, err)
	assert.True(t, InstanceOf(p, point))
	x, _ := Get(p, Key("x"))
	assert.Equal(t, 1, x)

	replaced := NewObject(nil)
	factory := NewFunction("Factory", 0, func(Value, []Value) (Value, error) { return replaced, nil })
	got, err := New(factory)
	require.NoError(t, err)
	assert.Same(t, replaced, got)
	assert.False(t, InstanceOf(got, factory))
}

func TestFromFunc(t *testing.T) {
	double := FromFunc("double", func(n int) int { return n * 2 })
	res, err := Call(double, nil, 21)
	require.NoError(t, err)
	assert.Equal(t, 42, res)

	res, err = Call(double, nil, 2.9)
	require.NoError(t, err)
	assert.Equal(t, 4, res, "numeric arguments are converted")

	res, err = Call(double, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res, "missing arguments are zero values")

	_, err = Call(double, nil, "21")
	require.Error(t, err)
	assert.True(t, errors.Is(err, moxyerrors.ErrInvalidArgument))
}

func TestFromFuncResults(t *testing.T) {
	boom := errors.New("boom")
	div := FromFunc("div", func(a, b int) (int, error) {
		if b == 0 {
			return 0, boom
		}
		return a / b, nil
	})
	res, err := Call(div, nil, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, res)
	_, err = Call(div, nil, 1, 0)
	assert.Same(t, boom, err)

	pair := FromFunc("pair", func() (string, int) { return "a", 1 })
	res, err = Call(pair, nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{"a", 1}, res)

	sum := FromFunc("sum", func(ns ...int) int {
		total := 0
		for _, n := range ns {
			total += n
		}
		return total
	})
	assert.Equal(t, 0, sum.Arity())
	res, err = Call(sum, nil, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, res)

	assert.Panics(t, func() { FromFunc("bad", 3) })
}

func TestInvoke(t *testing.T) {
	o := NewObject(nil)
	o.SetOwn("self", NewArrowFunction("self", 0, func(this Value, _ []Value) (Value, error) { return this, nil }))
	o.SetOwn("n", 1)

	res, err := Invoke(o, Key("self"))
	require.NoError(t, err)
	assert.Same(t, o, res)

	_, err = Invoke(o, Key("n"))
	assert.True(t, errors.Is(err, moxyerrors.ErrNotCallable))
}
