// Package mock produces test doubles over objects of package value and
// records every interaction with them.
//
// A Mock controls one or more doubles. Calls and constructions of a double
// land in the Mock's own log; property reads and writes land in the log of a
// per-property sub-mock (see Getter and Setter). Objects and functions flowing
// out of a double are turned into doubles themselves, each backed by a child
// Mock that shares its parent's options.
package mock

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"moxy/pkg/errors"
	"moxy/pkg/value"
)

var (
	// IsMoxyKey is the property through which a double reports that it is one.
	IsMoxyKey = value.SymbolKey(value.NewSymbol("is_moxy"))

	// mockKey exposes the controller whatever the configured access key.
	mockKey = value.SymbolKey(value.NewSymbol("moxy_controller"))
)

// Mock records the interactions with its doubles and decides their behavior.
type Mock struct {
	id      uuid.UUID
	options Options
	filter  *propertyFilter
	log     zerolog.Logger

	returns *identityCache // doubles of call results and constructed instances
	props   *identityCache // doubles of property values

	mu      sync.Mutex
	calls   []Call
	getters map[value.PropertyKey]*Mock
	setters map[value.PropertyKey]*Mock
	wrapper WrapFunc
	queue   []WrapFunc
}

// New creates a Mock. Options are applied over DefaultOptions.
func New(opts ...Option) *Mock {
	return newMock(buildOptions(opts), nil)
}

func newMock(o Options, parent *Mock) *Mock {
	m := &Mock{
		id:      uuid.New(),
		options: o,
		returns: newIdentityCache(),
		props:   newIdentityCache(),
		getters: make(map[value.PropertyKey]*Mock),
		setters: make(map[value.PropertyKey]*Mock),
	}
	ctx := o.Logger.With().Str("mock", m.id.String())
	if parent != nil {
		ctx = ctx.Str("parent", parent.id.String())
	}
	m.log = ctx.Logger()
	fo := o
	fo.Logger = m.log
	m.filter = newPropertyFilter(fo)
	return m
}

// ID identifies the Mock in log output.
func (m *Mock) ID() uuid.UUID { return m.id }

// Options returns a copy of the options the Mock was created with.
func (m *Mock) Options() Options {
	var o Options
	WithOptions(m.options)(&o)
	return o
}

// Proxify returns a double over target. Doubles are returned unchanged.
// Proxify fails when target is not an object or when a middleware drops one
// of the interception traps.
func (m *Mock) Proxify(target value.Value) (value.Value, error) {
	if IsMoxy(target) {
		return target, nil
	}
	if !value.IsProxifiable(target) {
		return nil, errors.NewTypeError(errors.ErrInvalidTarget, "Cannot create a proxy with %s", value.Inspect(target))
	}
	return m.proxify(target.(value.Object))
}

// MustProxify is Proxify that panics on error.
func (m *Mock) MustProxify(target value.Value) value.Value {
	d, err := m.Proxify(target)
	if err != nil {
		panic(err)
	}
	return d
}

func (m *Mock) proxify(source value.Object) (*value.Proxy, error) {
	var double *value.Proxy
	isSelf := func(receiver value.Value) bool {
		return double != nil && receiver == value.Value(double)
	}
	h, err := m.composeHandler(m.baseHandler(source, isSelf), source)
	if err != nil {
		return nil, err
	}
	double = value.NewProxy(standIn(source), h)
	m.log.Debug().Str("source", value.Inspect(source)).Msg("double created")
	return double, nil
}

// standIn creates the inert object receiving the operations of a double.
func standIn(source value.Object) value.Object {
	if value.IsCallable(source) {
		return value.NewFunction("moxyDouble", 0, nil)
	}
	return value.NewObject(nil)
}

// produce returns the nested double of v from cache, spawning a child Mock on
// a miss. Doubles are returned unchanged.
func (m *Mock) produce(cache *identityCache, v value.Value) (value.Value, error) {
	if IsMoxy(v) {
		return v, nil
	}
	return cache.produce(v.(value.Object), func() *Mock {
		m.log.Debug().Msg("child mock created")
		return newMock(m.options, m)
	})
}

// Calls returns a snapshot of the recorded calls and constructions.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.clone()
	}
	return out
}

// CallCount returns the number of recorded calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// UpdateCall rewrites the i-th recorded call in place. It reports false when
// there is no such call. Tracking middlewares use it to fold call chains.
func (m *Mock) UpdateCall(i int, fn func(*Call)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.calls) {
		return false
	}
	fn(&m.calls[i])
	return true
}

// FindCall returns the index of the most recent call satisfying pred.
func (m *Mock) FindCall(pred func(Call) bool) (int, bool) {
	m.mu.Lock()
	calls := slices.Clone(m.calls)
	m.mu.Unlock()
	for i := len(calls) - 1; i >= 0; i-- {
		if pred(calls[i]) {
			return i, true
		}
	}
	return -1, false
}

func (m *Mock) record(c Call) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

// Getter returns the sub-mock of reads of key, creating it on first use.
func (m *Mock) Getter(key value.PropertyKey) *Mock {
	return m.subMock(&m.getters, key)
}

// Setter returns the sub-mock of writes of key, creating it on first use.
func (m *Mock) Setter(key value.PropertyKey) *Mock {
	return m.subMock(&m.setters, key)
}

func (m *Mock) subMock(mocks *map[value.PropertyKey]*Mock, key value.PropertyKey) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := (*mocks)[key]; ok {
		return sub
	}
	sub := newMock(DefaultOptions(), m)
	sub.log = m.log.With().Str("property", key.String()).Logger()
	(*mocks)[key] = sub
	return sub
}

// Clear drops the recorded calls, including those of the property sub-mocks,
// and forgets every nested double. Installed fakes are kept.
func (m *Mock) Clear() {
	m.mu.Lock()
	m.calls = nil
	subs := make([]*Mock, 0, len(m.getters)+len(m.setters))
	for _, sub := range m.getters {
		subs = append(subs, sub)
	}
	for _, sub := range m.setters {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	m.returns.reset()
	m.props.reset()
	for _, sub := range subs {
		sub.Clear()
	}
}

// Reset is Clear that also drops installed fakes and property sub-mocks.
func (m *Mock) Reset() {
	m.Clear()
	m.mu.Lock()
	m.wrapper = nil
	m.queue = nil
	m.getters = make(map[value.PropertyKey]*Mock)
	m.setters = make(map[value.PropertyKey]*Mock)
	m.mu.Unlock()
}

// IsMoxy reports whether v is a double.
func IsMoxy(v value.Value) bool {
	obj, ok := v.(*value.Proxy)
	if !ok {
		return false
	}
	marker, err := obj.Get(IsMoxyKey, obj)
	return err == nil && marker == true
}

// Of returns the Mock controlling the double v.
func Of(v value.Value) (*Mock, bool) {
	obj, ok := v.(*value.Proxy)
	if !ok {
		return nil, false
	}
	res, err := obj.Get(mockKey, obj)
	if err != nil {
		return nil, false
	}
	m, ok := res.(*Mock)
	return m, ok
}
