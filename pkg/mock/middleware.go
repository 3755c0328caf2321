package mock

import (
	"reflect"
	"runtime"
	"slices"
	"strings"

	"moxy/pkg/errors"
	"moxy/pkg/value"
)

// Middleware transforms the interception handler of a double over source.
// It must keep every trap of the handler it receives; it may replace them.
type Middleware func(h value.ProxyHandler, source value.Object, m *Mock) value.ProxyHandler

// composeHandler folds the middlewares over base, left to right. A middleware
// whose handler misses a trap of base fails the whole composition.
func (m *Mock) composeHandler(base value.ProxyHandler, source value.Object) (value.ProxyHandler, error) {
	required := base.Traps()
	h := base
	for i, mw := range m.options.Middlewares {
		h = mw(h, source, m)
		defined := h.Traps()
		for _, trap := range required {
			if !slices.Contains(defined, trap) {
				return value.ProxyHandler{}, errors.MissingTrap(i, middlewareName(mw), trap)
			}
		}
	}
	return h, nil
}

// middlewareName returns the short Go name of mw, e.g. "track.FunctionApplyChain.func1".
func middlewareName(mw Middleware) string {
	fn := runtime.FuncForPC(reflect.ValueOf(mw).Pointer())
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
