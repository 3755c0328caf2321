package mock

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"moxy/pkg/value"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"foo", "foo", true},
		{"foo", "foobar", false},
		{"ba*", "bar", true},
		{"ba*", "ba", true},
		{"ba*", "abar", false},
		{"?oo", "zoo", true},
		{"?oo", "zzoo", false},
		{"*Handler", "onClickHandler", true},
		{"/^get[A-Z]/", "getName", true},
		{"/^get[A-Z]/", "getname", false},
		{"/^GET/i", "getName", true},
		{"/name$/", "firstname", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.name, func(t *testing.T) {
			p := compilePattern(tt.pattern, zerolog.Nop())
			assert.Equal(t, tt.want, p.match(tt.name))
		})
	}
}

func TestInvalidRegexMatchesLiterally(t *testing.T) {
	var buf bytes.Buffer
	p := compilePattern("/(unclosed/", zerolog.New(&buf))

	assert.Nil(t, p.re)
	assert.True(t, p.match("/(unclosed/"))
	assert.False(t, p.match("unclosed"))
	assert.Contains(t, buf.String(), "invalid property pattern")
}

func TestSplitRegexLiteral(t *testing.T) {
	src, flags, ok := splitRegexLiteral("/a.c/gi")
	assert.True(t, ok)
	assert.Equal(t, "a.c", src)
	assert.Equal(t, "gi", flags)

	for _, raw := range []string{"abc", "/", "/abc", ""} {
		_, _, ok := splitRegexLiteral(raw)
		assert.False(t, ok, raw)
	}
}

func TestShouldWrap(t *testing.T) {
	obj := value.NewObject(nil)
	fn := value.NewFunction("f", 0, nil)
	sym := value.NewSymbol("s")
	f := newPropertyFilter(Options{
		MockMethod:        true,
		IncludeProperties: []string{"ba*"},
		ExcludeProperties: []string{"baz", "skip*"},
		IncludeSymbols:    []*value.Symbol{sym},
		Logger:            zerolog.Nop(),
	})

	tests := []struct {
		name string
		key  value.PropertyKey
		v    value.Value
		want bool
	}{
		{"included object", value.Key("bar"), obj, true},
		{"excluded wins", value.Key("baz"), obj, false},
		{"excluded method", value.Key("skipMe"), fn, false},
		{"unmatched object", value.Key("foo"), obj, false},
		{"method", value.Key("foo"), fn, true},
		{"index", value.IndexKey(0), fn, false},
		{"primitive", value.Key("bar"), "str", false},
		{"promise", value.Key("bar"), value.Resolved(nil), false},
		{"included symbol", value.SymbolKey(sym), obj, true},
		{"other symbol", value.SymbolKey(value.NewSymbol("s")), obj, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.shouldWrap(tt.key, tt.v))
		})
	}
}

func TestShouldWrapWithoutMethods(t *testing.T) {
	f := newPropertyFilter(Options{Logger: zerolog.Nop()})
	assert.False(t, f.shouldWrap(value.Key("fn"), value.NewFunction("fn", 0, nil)))
}
