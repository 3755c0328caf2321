package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moxy/pkg/mock"
	"moxy/pkg/value"
)

func vals(vs ...value.Value) []value.Value { return vs }

func TestEqual(t *testing.T) {
	pred := Equal(1, "two", []int{3})

	assert.True(t, pred(1, "two", []int{3}))
	assert.False(t, pred(1, "two"))
	assert.False(t, pred(1, "two", []int{3}, 4))
	assert.False(t, pred(1, "2", []int{3}))
	assert.True(t, Equal()())
	assert.False(t, Equal()(1))
}

func TestBeginWith(t *testing.T) {
	pred := BeginWith("a", "b")

	assert.True(t, pred("a", "b"))
	assert.True(t, pred("a", "b", "c"))
	assert.False(t, pred("a"))
	assert.False(t, pred("b", "a", "c"))
	assert.True(t, BeginWith()("anything"))
}

func TestEndWith(t *testing.T) {
	pred := EndWith("b", "c")

	assert.True(t, pred("b", "c"))
	assert.True(t, pred("a", "b", "c"))
	assert.False(t, pred("c"))
	assert.False(t, pred("b", "c", "d"))
}

func TestNthIs(t *testing.T) {
	assert.True(t, NthIs(1, "x")("a", "x"))
	assert.False(t, NthIs(0, "x")("a", "x"))
	assert.True(t, NthIs(5, nil)("a"))
	assert.False(t, NthIs(-1, "a")("a"))
	assert.True(t, NthIs(0, map[string]int{"k": 1})(map[string]int{"k": 1}))
}

func TestDeepEqualObjects(t *testing.T) {
	proto := value.NewObject(nil)
	a := value.NewObject(proto)
	a.SetOwn("n", 1)
	a.SetOwn("nested", value.NewObjectFrom(map[string]value.Value{"deep": true}))
	b := value.NewObject(proto)
	b.SetOwn("n", 1)
	b.SetOwn("nested", value.NewObjectFrom(map[string]value.Value{"deep": true}))

	assert.True(t, DeepEqual(a, b))
	assert.Empty(t, Diff(a, b))

	b.SetOwn("n", 2)
	assert.False(t, DeepEqual(a, b))
	assert.NotEmpty(t, Diff(a, b))

	assert.False(t, DeepEqual(value.NewObject(proto), value.NewObject(nil)), "prototypes differ")
}

func TestDeepEqualIdentityTypes(t *testing.T) {
	fn := value.NewFunction("f", 0, nil)
	sym := value.NewSymbol("s")
	d := mock.New().MustProxify(value.NewObject(nil))

	assert.True(t, DeepEqual(fn, fn))
	assert.False(t, DeepEqual(fn, value.NewFunction("f", 0, nil)))
	assert.True(t, DeepEqual(sym, sym))
	assert.False(t, DeepEqual(sym, value.NewSymbol("s")))
	assert.True(t, DeepEqual(d, d))
	assert.False(t, DeepEqual(d, mock.New().MustProxify(value.NewObject(nil))))
	assert.True(t, DeepEqual(vals(value.Key("a")), vals(value.Key("a"))))
}

func TestDeepEqualStructs(t *testing.T) {
	type point struct{ x, y int }
	assert.True(t, DeepEqual(point{1, 2}, point{1, 2}))
	assert.False(t, DeepEqual(point{1, 2}, point{2, 1}))
	assert.True(t, DeepEqual([]int(nil), []int{}))
}

func TestFakeWhenArgsWithMatchers(t *testing.T) {
	m := mock.New()
	fn := m.MustProxify(value.FromFunc("greet", func(greeting, name string) string {
		return greeting + ", " + name
	}))
	m.FakeWhenArgs(NthIs(1, "bob"), mock.Func(func(string, string) string { return "go away" })).
		FakeWhenArgs(BeginWith("hola"), mock.Func(func(string, string) string { return "¡hola!" }))

	tests := []struct {
		args []value.Value
		want string
	}{
		{vals("hi", "alice"), "hi, alice"},
		{vals("hi", "bob"), "go away"},
		{vals("hola", "carol"), "¡hola!"},
		{vals("hola", "bob"), "¡hola!"},
	}
	for _, tt := range tests {
		res, err := value.Apply(fn, nil, tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res)
	}
}
