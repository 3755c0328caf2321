package value

import (
	"sync"

	"moxy/pkg/errors"
)

// PromiseState represents the state of a Promise
type PromiseState int

const (
	PromisePending PromiseState = iota
	PromiseFulfilled
	PromiseRejected
)

func (s PromiseState) String() string {
	switch s {
	case PromisePending:
		return "pending"
	case PromiseFulfilled:
		return "fulfilled"
	default:
		return "rejected"
	}
}

// Promise is a deferred value container. It settles once, either fulfilled
// with a value or rejected with an error. Reactions registered with Then run
// synchronously at settlement, or immediately when registered on a settled
// promise; there is no job queue.
type Promise struct {
	mu        sync.Mutex
	state     PromiseState
	result    Value // Fulfillment value
	reason    error // Rejection reason
	reactions []func()
	done      chan struct{}

	// observe, when set, starts settlement on first observation.
	observe  func()
	observed sync.Once
}

// NewPromise creates a pending promise together with its resolving functions.
// Resolving with another *Promise adopts its eventual state.
func NewPromise() (p *Promise, resolve func(Value), reject func(error)) {
	p = &Promise{done: make(chan struct{})}
	return p, p.resolve, p.reject
}

// Resolved returns a promise fulfilled with v (or adopting v if it is a promise).
func Resolved(v Value) *Promise {
	p, resolve, _ := NewPromise()
	resolve(v)
	return p
}

// Rejected returns a promise rejected with err.
func Rejected(err error) *Promise {
	p, _, reject := NewPromise()
	reject(err)
	return p
}

func (p *Promise) resolve(v Value) {
	if inner, ok := v.(*Promise); ok {
		if inner == p {
			p.reject(errors.NewTypeError(errors.ErrInvalidArgument, "Chaining cycle detected for promise"))
			return
		}
		inner.Then(func(v Value) (Value, error) {
			p.settle(PromiseFulfilled, v, nil)
			return nil, nil
		}, func(err error) (Value, error) {
			p.settle(PromiseRejected, nil, err)
			return nil, nil
		})
		return
	}
	p.settle(PromiseFulfilled, v, nil)
}

func (p *Promise) reject(err error) {
	p.settle(PromiseRejected, nil, err)
}

func (p *Promise) settle(state PromiseState, v Value, err error) {
	p.mu.Lock()
	if p.state != PromisePending {
		p.mu.Unlock()
		return
	}
	p.state, p.result, p.reason = state, v, err
	reactions := p.reactions
	p.reactions = nil
	close(p.done)
	p.mu.Unlock()
	for _, react := range reactions {
		react()
	}
}

// Lazy returns a promise settling like p.Then(onFulfilled, nil), except that
// onFulfilled runs only once the returned promise is observed through Then,
// Catch or Await. Until then its State is pending.
func (p *Promise) Lazy(onFulfilled func(Value) (Value, error)) *Promise {
	next, resolve, reject := NewPromise()
	next.observe = func() {
		p.Then(func(v Value) (Value, error) {
			res, err := onFulfilled(v)
			if err != nil {
				reject(err)
			} else {
				resolve(res)
			}
			return nil, nil
		}, func(err error) (Value, error) {
			reject(err)
			return nil, nil
		})
	}
	return next
}

func (p *Promise) start() {
	if p.observe != nil {
		p.observed.Do(p.observe)
	}
}

// State returns the promise state.
func (p *Promise) State() PromiseState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Then registers reactions and returns the derived promise. A nil onFulfilled
// passes the value through; a nil onRejected passes the rejection through.
func (p *Promise) Then(onFulfilled func(Value) (Value, error), onRejected func(error) (Value, error)) *Promise {
	p.start()
	next, resolve, reject := NewPromise()
	react := func() {
		// state is final once reactions run
		if p.state == PromiseFulfilled {
			if onFulfilled == nil {
				resolve(p.result)
				return
			}
			v, err := onFulfilled(p.result)
			if err != nil {
				reject(err)
				return
			}
			resolve(v)
			return
		}
		if onRejected == nil {
			reject(p.reason)
			return
		}
		v, err := onRejected(p.reason)
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	}
	p.mu.Lock()
	if p.state == PromisePending {
		p.reactions = append(p.reactions, react)
		p.mu.Unlock()
		return next
	}
	p.mu.Unlock()
	react()
	return next
}

// Catch is Then(nil, onRejected).
func (p *Promise) Catch(onRejected func(error) (Value, error)) *Promise {
	return p.Then(nil, onRejected)
}

// Await blocks until the promise settles and returns its outcome.
func (p *Promise) Await() (Value, error) {
	p.start()
	<-p.done
	return p.result, p.reason
}
