// Package viewmodel holds per-screen state machines. Each view-model owns its
// state behind a mutex, hands out copies, and notifies listeners after every change.
package viewmodel

import (
	"slices"
	"sync"
)

type observable[S any] struct {
	mu        sync.Mutex
	state     S
	clone     func(S) S
	listeners []func(S)
}

func newObservable[S any](initial S, clone func(S) S) *observable[S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &observable[S]{state: initial, clone: clone}
}

func (o *observable[S]) get() S {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clone(o.state)
}

func (o *observable[S]) subscribe(fn func(S)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

func (o *observable[S]) update(fn func(*S)) {
	o.updateIf(nil, fn)
}

// updateIf applies fn only while ok reports true. Listeners run after the lock is released.
func (o *observable[S]) updateIf(ok func() bool, fn func(*S)) bool {
	o.mu.Lock()
	if ok != nil && !ok() {
		o.mu.Unlock()
		return false
	}
	fn(&o.state)
	listeners := slices.Clone(o.listeners)
	snapshots := make([]S, len(listeners))
	for i := range listeners {
		snapshots[i] = o.clone(o.state)
	}
	o.mu.Unlock()

	for i, listener := range listeners {
		listener(snapshots[i])
	}
	return true
}
