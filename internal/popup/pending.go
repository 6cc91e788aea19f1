package popup

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Pending is the outcome of an asynchronous show. It settles exactly once:
// with the value the popup was dismissed with (nil when it produced none),
// or with an error.
type Pending struct {
	done    chan struct{}
	settled atomic.Bool

	// result and err are written once, before done is closed.
	result any
	err    error

	mu       sync.Mutex
	onCancel func()
}

// NewPending returns an unsettled Pending. Presenters create one per popup.
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Failed returns a Pending already settled with err.
func Failed(err error) *Pending {
	p := NewPending()
	p.Reject(err)
	return p
}

// Resolve settles p with result. It reports false if p was already settled.
func (p *Pending) Resolve(result any) bool {
	return p.settle(result, nil)
}

// Reject settles p with err. It reports false if p was already settled.
func (p *Pending) Reject(err error) bool {
	return p.settle(nil, err)
}

func (p *Pending) settle(result any, err error) bool {
	if !p.settled.CompareAndSwap(false, true) {
		return false
	}
	p.result = result
	p.err = err
	close(p.done)
	return true
}

// Done is closed once p settles.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether p has settled.
func (p *Pending) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the settled outcome. Before settlement it returns nil, nil.
func (p *Pending) Result() (any, error) {
	select {
	case <-p.done:
		return p.result, p.err
	default:
		return nil, nil
	}
}

// Await blocks until p settles or ctx ends. An ended ctx does not dismiss
// the popup; use Cancel for that.
func (p *Pending) Await(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnCancel installs the hook Cancel runs to take the popup down. Presenters
// call it before returning p.
func (p *Pending) OnCancel(f func()) {
	p.mu.Lock()
	p.onCancel = f
	p.mu.Unlock()
}

// Cancel dismisses the popup, if still shown, and settles p with ErrCanceled.
func (p *Pending) Cancel() {
	if p.Settled() {
		return
	}
	p.mu.Lock()
	hook := p.onCancel
	p.mu.Unlock()
	if hook != nil {
		hook()
	}
	p.Reject(ErrCanceled)
}
