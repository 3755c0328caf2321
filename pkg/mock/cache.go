package mock

import (
	"reflect"
	"sync"
	"weak"

	"moxy/pkg/value"
)

// sweepEvery is the number of inserts between two sweeps of dead entries.
const sweepEvery = 64

type addrKey struct {
	addr uintptr
	typ  reflect.Type
}

// cacheEntry binds an original to its double, both held weakly. The child
// Mock is reachable only through the double: its logs reference the double
// and the original, so holding it here would pin both. A double collected
// while its original is still alive is rebuilt with a fresh Mock.
type cacheEntry struct {
	key    weak.Pointer[byte]
	double weak.Pointer[value.Proxy]
}

// identityCache maps originals to their doubles without keeping the originals
// alive. Objects that are not pointers cannot be referenced weakly and are
// kept in a strong map instead.
type identityCache struct {
	mu      sync.Mutex
	entries map[addrKey]*cacheEntry
	strong  map[value.Value]*cacheEntry
	inserts int
}

func newIdentityCache() *identityCache {
	return &identityCache{
		entries: make(map[addrKey]*cacheEntry),
		strong:  make(map[value.Value]*cacheEntry),
	}
}

func (c *identityCache) reset() {
	c.mu.Lock()
	c.entries = make(map[addrKey]*cacheEntry)
	c.strong = make(map[value.Value]*cacheEntry)
	c.inserts = 0
	c.mu.Unlock()
}

func pointerOf(v value.Value) (addrKey, *byte, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return addrKey{}, nil, false
	}
	ptr := rv.UnsafePointer()
	return addrKey{addr: uintptr(ptr), typ: rv.Type()}, (*byte)(ptr), true
}

func isComparable(v value.Value) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}

// lookup returns the entry for v, pruning it if its key was collected.
// Must be called with c.mu held.
func (c *identityCache) lookup(v value.Value) *cacheEntry {
	if k, ptr, ok := pointerOf(v); ok {
		e, found := c.entries[k]
		if !found {
			return nil
		}
		if e.key.Value() != ptr {
			delete(c.entries, k)
			return nil
		}
		return e
	}
	if isComparable(v) {
		return c.strong[v]
	}
	return nil
}

// store must be called with c.mu held.
func (c *identityCache) store(v value.Value, e *cacheEntry) {
	if k, ptr, ok := pointerOf(v); ok {
		e.key = weak.Make(ptr)
		c.entries[k] = e
		c.inserts++
		if c.inserts%sweepEvery == 0 {
			c.sweep()
		}
		return
	}
	if isComparable(v) {
		c.strong[v] = e
	}
}

func (c *identityCache) sweep() {
	for k, e := range c.entries {
		if e.key.Value() == nil {
			delete(c.entries, k)
		}
	}
}

// produce returns the cached double of v, building one with a Mock from spawn
// on a miss. The lock is never held while a double is built, since building
// runs middlewares.
func (c *identityCache) produce(v value.Object, spawn func() *Mock) (*value.Proxy, error) {
	c.mu.Lock()
	e := c.lookup(v)
	if e != nil {
		if d := e.double.Value(); d != nil {
			c.mu.Unlock()
			return d, nil
		}
	}
	c.mu.Unlock()

	d, err := spawn().proxify(v)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cur := c.lookup(v); cur != nil {
		if live := cur.double.Value(); live != nil {
			return live, nil
		}
		cur.double = weak.Make(d)
		return d, nil
	}
	c.store(v, &cacheEntry{double: weak.Make(d)})
	return d, nil
}

func (c *identityCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.strong)
	for _, e := range c.entries {
		if e.key.Value() != nil {
			n++
		}
	}
	return n
}
