package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyKey(t *testing.T) {
	sym := NewSymbol("tag")
	assert.Equal(t, Key("a"), Key("a"))
	assert.True(t, SymbolKey(sym) == SymbolKey(sym))
	assert.False(t, SymbolKey(sym) == SymbolKey(NewSymbol("tag")), "symbols are keys by identity")
	assert.Equal(t, "Symbol(tag)", SymbolKey(sym).String())

	for name, want := range map[string]bool{"0": true, "42": true, "01": false, "-1": false, "x": false, "": false} {
		assert.Equal(t, want, Key(name).IsIndex(), name)
	}

	k, ok := ToKey(3)
	require.True(t, ok)
	assert.Equal(t, IndexKey(3), k)
	_, ok = ToKey(1.5)
	assert.False(t, ok)
}

func TestOwnKeysOrder(t *testing.T) {
	sym := NewSymbol("s")
	o := NewObject(nil)
	o.SetOwn("b", 1)
	o.SetOwnByKey(SymbolKey(sym), 2)
	o.SetOwn("10", 3)
	o.SetOwn("a", 4)
	o.SetOwn("2", 5)

	assert.Equal(t, []PropertyKey{Key("2"), Key("10"), Key("b"), Key("a"), SymbolKey(sym)}, o.OwnKeys())

	assert.True(t, o.Delete(Key("b")))
	assert.Equal(t, []PropertyKey{Key("2"), Key("10"), Key("a"), SymbolKey(sym)}, o.OwnKeys())
}

func TestPrototypeChain(t *testing.T) {
	proto := NewObject(nil)
	proto.SetOwn("greet", "hi")
	o := NewObject(proto)

	v, err := Get(o, Key("greet"))
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
	assert.True(t, HasProperty(o, Key("greet")))

	// assignment shadows instead of writing the prototype
	require.NoError(t, MustSet(o, Key("greet"), "hello"))
	own, _ := o.GetOwn("greet")
	assert.Equal(t, "hello", own)
	inherited, _ := proto.GetOwn("greet")
	assert.Equal(t, "hi", inherited)

	assert.False(t, SetPrototypeOf(proto, o), "cycles are refused")
}

func TestAccessors(t *testing.T) {
	var stored Value
	o := NewObject(nil)
	o.DefineAccessor("x",
		NewArrowFunction("get", 0, func(this Value, _ []Value) (Value, error) { return stored, nil }),
		NewArrowFunction("set", 1, func(this Value, args []Value) (Value, error) {
			stored = args[0]
			return nil, nil
		}),
	)

	require.NoError(t, MustSet(o, Key("x"), 7))
	assert.Equal(t, 7, stored)
	v, err := Get(o, Key("x"))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	ro := NewObject(nil)
	ro.DefineAccessor("y", NewArrowFunction("get", 0, nil), nil)
	ok, err := Set(ro, Key("y"), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNonWritable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty(Key("c"), Descriptor{Value: 1})

	err := MustSet(o, Key("c"), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read only")
	assert.False(t, o.Delete(Key("c")))

	o.PreventExtensions()
	assert.False(t, o.DefineOwnProperty(Key("d"), DataDescriptor(1)))
}

func TestOpsOnPrimitives(t *testing.T) {
	_, err := Get(42, Key("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TypeError")

	_, err = Call("str", nil)
	require.Error(t, err)
	_, err = New(NewArrowFunction("arrow", 0, nil))
	require.Error(t, err)

	assert.Nil(t, OwnKeys(1))
	assert.False(t, HasProperty(nil, Key("x")))
	assert.Nil(t, GetPrototypeOf("s"))
}

func TestTypeOfAndInspect(t *testing.T) {
	tests := []struct {
		v    Value
		want Type
	}{
		{nil, TypeUndefined},
		{true, TypeBoolean},
		{1.5, TypeNumber},
		{"s", TypeString},
		{NewSymbol("x"), TypeSymbol},
		{NewObject(nil), TypeObject},
		{NewFunction("f", 0, nil), TypeFunction},
		{Resolved(1), TypePromise},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeOf(tt.v), Inspect(tt.v))
	}
	assert.Equal(t, "undefined", Inspect(nil))
	assert.Equal(t, `"s"`, Inspect("s"))
	assert.Equal(t, "[Function: f]", Inspect(NewFunction("f", 0, nil)))
}

func TestSameValue(t *testing.T) {
	s := []int{1, 2}
	o := NewObject(nil)
	assert.True(t, SameValue(nil, nil))
	assert.True(t, SameValue(1, 1))
	assert.False(t, SameValue(1, int64(1)))
	assert.True(t, SameValue(o, o))
	assert.False(t, SameValue(o, NewObject(nil)))
	assert.True(t, SameValue(s, s))
	assert.False(t, SameValue(s, s[:1]))
	assert.NotPanics(t, func() { SameValue(map[string]int{}, map[string]int{}) })
}

func TestIsProxifiable(t *testing.T) {
	assert.True(t, IsProxifiable(NewObject(nil)))
	assert.True(t, IsProxifiable(NewFunction("f", 0, nil)))
	assert.False(t, IsProxifiable(Resolved(nil)))
	assert.False(t, IsProxifiable("x"))
	assert.False(t, IsProxifiable(nil))
}
