package value

import (
	"moxy/pkg/errors"
)

// Trap names, as reported by ProxyHandler.Traps.
const (
	TrapApply                    = "apply"
	TrapConstruct                = "construct"
	TrapGet                      = "get"
	TrapSet                      = "set"
	TrapGetOwnPropertyDescriptor = "getOwnPropertyDescriptor"
	TrapDefineProperty           = "defineProperty"
	TrapDeleteProperty           = "deleteProperty"
	TrapGetPrototypeOf           = "getPrototypeOf"
	TrapSetPrototypeOf           = "setPrototypeOf"
	TrapHas                      = "has"
	TrapOwnKeys                  = "ownKeys"
)

// ProxyHandler holds the traps of a Proxy. Every trap receives the proxy
// target first. A nil trap forwards the operation to the target unchanged.
type ProxyHandler struct {
	Apply                    func(target Object, this Value, args []Value) (Value, error)
	Construct                func(target Object, args []Value, newTarget Object) (Value, error)
	Get                      func(target Object, key PropertyKey, receiver Value) (Value, error)
	Set                      func(target Object, key PropertyKey, v Value, receiver Value) (bool, error)
	GetOwnPropertyDescriptor func(target Object, key PropertyKey) (*Descriptor, bool)
	DefineProperty           func(target Object, key PropertyKey, desc Descriptor) bool
	DeleteProperty           func(target Object, key PropertyKey) bool
	GetPrototypeOf           func(target Object) Object
	SetPrototypeOf           func(target Object, proto Object) bool
	Has                      func(target Object, key PropertyKey) bool
	OwnKeys                  func(target Object) []PropertyKey
}

// Traps lists the names of the traps h defines, in declaration order.
func (h ProxyHandler) Traps() []string {
	var names []string
	add := func(defined bool, name string) {
		if defined {
			names = append(names, name)
		}
	}
	add(h.Apply != nil, TrapApply)
	add(h.Construct != nil, TrapConstruct)
	add(h.Get != nil, TrapGet)
	add(h.Set != nil, TrapSet)
	add(h.GetOwnPropertyDescriptor != nil, TrapGetOwnPropertyDescriptor)
	add(h.DefineProperty != nil, TrapDefineProperty)
	add(h.DeleteProperty != nil, TrapDeleteProperty)
	add(h.GetPrototypeOf != nil, TrapGetPrototypeOf)
	add(h.SetPrototypeOf != nil, TrapSetPrototypeOf)
	add(h.Has != nil, TrapHas)
	add(h.OwnKeys != nil, TrapOwnKeys)
	return names
}

// Proxy routes every internal method through a ProxyHandler. It is callable
// exactly when its target is callable and constructible exactly when its target
// is constructible.
type Proxy struct {
	target  Object
	handler ProxyHandler
}

// NewProxy creates a proxy over target.
func NewProxy(target Object, handler ProxyHandler) *Proxy {
	return &Proxy{target: target, handler: handler}
}

// Target returns the proxy's target object
func (p *Proxy) Target() Object { return p.target }

// Handler returns the proxy's handler
func (p *Proxy) Handler() ProxyHandler { return p.handler }

func (p *Proxy) IsCallable() bool    { return IsCallable(p.target) }
func (p *Proxy) IsConstructor() bool { return IsConstructor(p.target) }

func (p *Proxy) GetPrototypeOf() Object {
	if p.handler.GetPrototypeOf != nil {
		return p.handler.GetPrototypeOf(p.target)
	}
	return p.target.GetPrototypeOf()
}

func (p *Proxy) SetPrototypeOf(proto Object) bool {
	if p.handler.SetPrototypeOf != nil {
		return p.handler.SetPrototypeOf(p.target, proto)
	}
	return p.target.SetPrototypeOf(proto)
}

func (p *Proxy) GetOwnProperty(key PropertyKey) (*Descriptor, bool) {
	if p.handler.GetOwnPropertyDescriptor != nil {
		return p.handler.GetOwnPropertyDescriptor(p.target, key)
	}
	return p.target.GetOwnProperty(key)
}

func (p *Proxy) DefineOwnProperty(key PropertyKey, desc Descriptor) bool {
	if p.handler.DefineProperty != nil {
		return p.handler.DefineProperty(p.target, key, desc)
	}
	return p.target.DefineOwnProperty(key, desc)
}

func (p *Proxy) Has(key PropertyKey) bool {
	if p.handler.Has != nil {
		return p.handler.Has(p.target, key)
	}
	return p.target.Has(key)
}

func (p *Proxy) Get(key PropertyKey, receiver Value) (Value, error) {
	if p.handler.Get != nil {
		return p.handler.Get(p.target, key, receiver)
	}
	return p.target.Get(key, receiver)
}

func (p *Proxy) Set(key PropertyKey, v Value, receiver Value) (bool, error) {
	if p.handler.Set != nil {
		return p.handler.Set(p.target, key, v, receiver)
	}
	return p.target.Set(key, v, receiver)
}

func (p *Proxy) Delete(key PropertyKey) bool {
	if p.handler.DeleteProperty != nil {
		return p.handler.DeleteProperty(p.target, key)
	}
	return p.target.Delete(key)
}

func (p *Proxy) OwnKeys() []PropertyKey {
	if p.handler.OwnKeys != nil {
		return p.handler.OwnKeys(p.target)
	}
	return p.target.OwnKeys()
}

func (p *Proxy) Call(this Value, args []Value) (Value, error) {
	if !p.IsCallable() {
		return nil, errors.NewTypeError(errors.ErrNotCallable, "proxy target is not a function")
	}
	if p.handler.Apply != nil {
		return p.handler.Apply(p.target, this, args)
	}
	return p.target.(Callable).Call(this, args)
}

func (p *Proxy) Construct(args []Value, newTarget Object) (Value, error) {
	if !p.IsConstructor() {
		return nil, errors.NewTypeError(errors.ErrNotConstructor, "proxy target is not a constructor")
	}
	if newTarget == nil {
		newTarget = p
	}
	if p.handler.Construct != nil {
		return p.handler.Construct(p.target, args, newTarget)
	}
	return p.target.(Constructor).Construct(args, newTarget)
}
