package mock

import (
	"slices"

	"moxy/pkg/value"
)

// isFunctionShapeKey reports whether key is one of the intrinsic properties a
// double over a function always reads from its source, so the double keeps
// the shape of the function.
func isFunctionShapeKey(key value.PropertyKey) bool {
	if !key.IsString() {
		return false
	}
	switch key.Name() {
	case "name", "length", "prototype":
		return true
	}
	return false
}

// hasSetter reports whether key resolves to an accessor with a setter
// somewhere on the prototype chain of o.
func hasSetter(o value.Object, key value.PropertyKey) bool {
	for ; o != nil; o = o.GetPrototypeOf() {
		if d, ok := o.GetOwnProperty(key); ok {
			return d.Set != nil
		}
	}
	return false
}

func (m *Mock) trace(trap string, key *value.PropertyKey) {
	e := m.log.Trace().Str("trap", trap)
	if key != nil {
		e = e.Stringer("key", *key)
	}
	e.Msg("intercepted")
}

// baseHandler builds the traps of a double over source. The proxy target
// handed to every trap is the stand-in. isSelf reports whether a receiver is
// the double itself.
func (m *Mock) baseHandler(source value.Object, isSelf func(value.Value) bool) value.ProxyHandler {
	callable := value.IsCallable(source)

	return value.ProxyHandler{
		Apply: func(_ value.Object, this value.Value, args []value.Value) (value.Value, error) {
			m.trace(value.TrapApply, nil)
			impl := m.Implementation(func(this value.Value, args []value.Value) (value.Value, error) {
				return value.Apply(source, this, args)
			})

			call := Call{Args: slices.Clone(args), Instance: this}
			res, err := impl(this, args)
			if err == nil && m.options.MockReturn {
				res, err = m.wrapReturn(res)
			}
			if err != nil {
				call.Result, call.IsThrown = err, true
				m.record(call)
				return nil, err
			}
			call.Result = res
			m.record(call)
			return res, nil
		},

		Construct: func(_ value.Object, args []value.Value, newTarget value.Object) (value.Value, error) {
			m.trace(value.TrapConstruct, nil)
			impl := m.Implementation(func(_ value.Value, args []value.Value) (value.Value, error) {
				return value.Construct(source, args, newTarget)
			})

			call := Call{Args: slices.Clone(args), IsConstructor: true}
			instance, err := construct(impl, args, newTarget)
			if err == nil && m.options.MockNewInstance {
				instance, err = m.produce(m.returns, instance)
			}
			if err != nil {
				call.Result, call.IsThrown = err, true
				m.record(call)
				return nil, err
			}
			call.Instance = instance
			m.record(call)
			return instance, nil
		},

		Get: func(target value.Object, key value.PropertyKey, receiver value.Value) (value.Value, error) {
			if isSelf(receiver) {
				switch key {
				case IsMoxyKey:
					return true, nil
				case mockKey, m.options.AccessKey:
					return m, nil
				}
			}
			m.trace(value.TrapGet, &key)

			getter := m.Getter(key)
			impl := getter.Implementation(func(this value.Value, _ []value.Value) (value.Value, error) {
				if callable && isFunctionShapeKey(key) {
					return source.Get(key, this)
				}
				if _, own := target.GetOwnProperty(key); own {
					return target.Get(key, this)
				}
				return source.Get(key, this)
			})

			call := Call{Instance: receiver}
			res, err := impl(receiver, nil)
			if err == nil && m.filter.shouldWrap(key, res) {
				res, err = m.produce(m.props, res)
			}
			if err != nil {
				call.Result, call.IsThrown = err, true
			} else {
				call.Result = res
			}
			if m.options.RecordGetter {
				getter.record(call)
			}
			if err != nil {
				return nil, err
			}
			return res, nil
		},

		Set: func(target value.Object, key value.PropertyKey, v value.Value, receiver value.Value) (bool, error) {
			if key == m.options.AccessKey {
				return false, nil
			}
			m.trace(value.TrapSet, &key)

			setter := m.Setter(key)
			written := true
			impl := setter.Implementation(func(this value.Value, args []value.Value) (value.Value, error) {
				var assigned value.Value
				if len(args) > 0 {
					assigned = args[0]
				}
				var err error
				if hasSetter(source, key) {
					written, err = source.Set(key, assigned, this)
				} else {
					written, err = target.Set(key, assigned, this)
				}
				return nil, err
			})

			call := Call{Args: []value.Value{v}, Instance: receiver}
			res, err := impl(receiver, []value.Value{v})
			if err != nil {
				call.Result, call.IsThrown = err, true
			} else {
				call.Result = res
			}
			if m.options.RecordSetter {
				setter.record(call)
			}
			if err != nil {
				return false, err
			}
			return written, nil
		},

		GetOwnPropertyDescriptor: func(target value.Object, key value.PropertyKey) (*value.Descriptor, bool) {
			if d, ok := target.GetOwnProperty(key); ok {
				return d, true
			}
			d, ok := source.GetOwnProperty(key)
			if !ok {
				return nil, false
			}
			cp := *d
			cp.Configurable = true
			return &cp, true
		},

		GetPrototypeOf: func(target value.Object) value.Object {
			if !callable {
				if proto := target.GetPrototypeOf(); proto != nil {
					return proto
				}
			}
			return source.GetPrototypeOf()
		},

		Has: func(target value.Object, key value.PropertyKey) bool {
			return target.Has(key) || source.Has(key)
		},

		OwnKeys: func(target value.Object) []value.PropertyKey {
			keys := target.OwnKeys()
			seen := make(map[value.PropertyKey]struct{}, len(keys))
			for _, k := range keys {
				seen[k] = struct{}{}
			}
			for _, k := range source.OwnKeys() {
				if _, dup := seen[k]; !dup {
					seen[k] = struct{}{}
					keys = append(keys, k)
				}
			}
			return keys
		},
	}
}

// construct runs impl with a fresh instance whose prototype is
// newTarget.prototype. An object returned by impl replaces the instance.
func construct(impl Impl, args []value.Value, newTarget value.Object) (value.Value, error) {
	instance := value.NewObject(value.PrototypeFor(newTarget))
	res, err := impl(instance, args)
	if err != nil {
		return nil, err
	}
	if obj, ok := res.(value.Object); ok {
		return obj, nil
	}
	return instance, nil
}

// wrapReturn turns a call result into a double. A promise is never wrapped
// itself; its fulfillment value is, through a derived promise, once the
// caller observes it.
func (m *Mock) wrapReturn(res value.Value) (value.Value, error) {
	if p, ok := res.(*value.Promise); ok {
		return p.Lazy(func(v value.Value) (value.Value, error) {
			if !value.IsProxifiable(v) {
				return v, nil
			}
			return m.produce(m.returns, v)
		}), nil
	}
	if !value.IsProxifiable(res) {
		return res, nil
	}
	return m.produce(m.returns, res)
}
