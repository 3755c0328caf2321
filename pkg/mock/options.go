package mock

import (
	"github.com/rs/zerolog"

	"moxy/pkg/value"
)

// DefaultAccessKey is the property through which a double exposes its Mock.
const DefaultAccessKey = "mock"

// Options configures a Mock. Child mocks created for nested doubles share the
// options of their parent.
type Options struct {
	// AccessKey is the property of a double that returns its Mock.
	AccessKey value.PropertyKey

	// Middlewares transform the interception handler, applied in order.
	Middlewares []Middleware

	// MockReturn turns objects and functions returned by calls into doubles.
	MockReturn bool
	// MockNewInstance turns constructed instances into doubles.
	MockNewInstance bool
	// MockMethod turns function-valued properties into doubles.
	MockMethod bool

	// IncludeProperties are property patterns whose values are turned into
	// doubles. A pattern is a glob ("ba*", "?oo") or a regular expression
	// written "/source/flags".
	IncludeProperties []string
	// ExcludeProperties are property patterns never turned into doubles.
	// Exclusion wins over inclusion.
	ExcludeProperties []string
	IncludeSymbols    []*value.Symbol
	ExcludeSymbols    []*value.Symbol

	RecordGetter bool
	RecordSetter bool

	Logger zerolog.Logger
}

// DefaultOptions returns the options a Mock uses when none are given.
func DefaultOptions() Options {
	return Options{
		AccessKey:       value.Key(DefaultAccessKey),
		MockReturn:      false,
		MockNewInstance: true,
		MockMethod:      true,
		RecordGetter:    false,
		RecordSetter:    true,
		Logger:          zerolog.Nop(),
	}
}

// Option mutates Options. Scalar options overwrite; list options append, so
// defaults followed by per-mock options concatenate their lists.
type Option func(*Options)

// WithOptions replaces the options wholesale.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
		opts.Middlewares = append([]Middleware(nil), o.Middlewares...)
		opts.IncludeProperties = append([]string(nil), o.IncludeProperties...)
		opts.ExcludeProperties = append([]string(nil), o.ExcludeProperties...)
		opts.IncludeSymbols = append([]*value.Symbol(nil), o.IncludeSymbols...)
		opts.ExcludeSymbols = append([]*value.Symbol(nil), o.ExcludeSymbols...)
	}
}

func WithAccessKey(name string) Option {
	return func(o *Options) { o.AccessKey = value.Key(name) }
}

func WithAccessSymbol(sym *value.Symbol) Option {
	return func(o *Options) { o.AccessKey = value.SymbolKey(sym) }
}

func WithMiddlewares(mws ...Middleware) Option {
	return func(o *Options) { o.Middlewares = append(o.Middlewares, mws...) }
}

func WithMockReturn(on bool) Option {
	return func(o *Options) { o.MockReturn = on }
}

func WithMockNewInstance(on bool) Option {
	return func(o *Options) { o.MockNewInstance = on }
}

func WithMockMethod(on bool) Option {
	return func(o *Options) { o.MockMethod = on }
}

func WithIncludeProperties(patterns ...string) Option {
	return func(o *Options) { o.IncludeProperties = append(o.IncludeProperties, patterns...) }
}

func WithExcludeProperties(patterns ...string) Option {
	return func(o *Options) { o.ExcludeProperties = append(o.ExcludeProperties, patterns...) }
}

func WithIncludeSymbols(syms ...*value.Symbol) Option {
	return func(o *Options) { o.IncludeSymbols = append(o.IncludeSymbols, syms...) }
}

func WithExcludeSymbols(syms ...*value.Symbol) Option {
	return func(o *Options) { o.ExcludeSymbols = append(o.ExcludeSymbols, syms...) }
}

func WithRecordGetter(on bool) Option {
	return func(o *Options) { o.RecordGetter = on }
}

func WithRecordSetter(on bool) Option {
	return func(o *Options) { o.RecordSetter = on }
}

// WithLogger sets the logger mocks write their traces to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
