// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package notifier implements the Notifier and ActiveNotifier abstractions:
// a named activity signal attached to an element, optionally able to wake
// listener tasks and cascade to dependent signals.
package notifier

import (
	"github.com/clickrouter/notifier/signal"
)

// SearchOp tells a graph search how to behave when it reaches this
// notifier.
type SearchOp int

const (
	// SearchStop ends the walk along this branch once the notifier has
	// been recorded.
	SearchStop SearchOp = iota
	// SearchContinue records the notifier and proceeds through the
	// element as normal.
	SearchContinue
	// SearchContinueWake behaves like SearchStop on the first pass but
	// marks the search as needing a second pass; on that second pass it
	// behaves like SearchContinue.
	SearchContinueWake
)

// String names a SearchOp for logging.
func (op SearchOp) String() string {
	switch op {
	case SearchStop:
		return "stop"
	case SearchContinue:
		return "continue"
	case SearchContinueWake:
		return "continue-wake"
	default:
		return "unknown"
	}
}

// Name constants under which an element publishes its notifiers. These
// are the only two capability names the core recognizes.
const (
	EmptyNotifierName = "Notifier.EMPTY"
	FullNotifierName  = "Notifier.FULL"
)

// Task is the minimal scheduler-facing surface a listener must provide.
// Reschedule is an idempotent request to run the task soon; the notifier
// does not care whether it was already scheduled.
type Task interface {
	Reschedule()
}

// Router is the subset of router.Router a Notifier needs to initialize
// itself. Kept as a small interface here, rather than importing the
// router package, so router can import notifier without a cycle.
type Router interface {
	NewBasicSignal() (signal.Signal, error)
}

// Notifier is a named activity signal owned by an element.
type Notifier interface {
	// Signal returns the notifier's signal by value.
	Signal() signal.Signal
	// Initialize requests a new basic signal from router if the
	// notifier's signal is not yet initialized. Idempotent.
	Initialize(router Router) error
	// SearchOp reports how a graph search should treat this notifier.
	SearchOp() SearchOp
	// AddListener registers task to be rescheduled on activation.
	// Default implementation is a no-op; ActiveNotifier overrides it.
	AddListener(task Task)
	// RemoveListener undoes a prior AddListener. No-op if task was never
	// added.
	RemoveListener(task Task)
	// AddDependentSignal registers dependent as a signal to be activated
	// in cascade. Default implementation is a no-op; ActiveNotifier
	// overrides it.
	AddDependentSignal(dependent *signal.Signal)
	// SignalPtr exposes the address of the notifier's own signal, so
	// another notifier can register it as a dependent signal.
	SignalPtr() *signal.Signal
}

// Base is a non-waking Notifier: it owns a signal and a search-op policy
// but never tracks listeners. It is the building block both for plain
// Notifiers and, embedded, for ActiveNotifier.
type Base struct {
	sig      signal.Signal
	searchOp SearchOp
}

// NewBase constructs an uninitialized Base with the given search policy.
func NewBase(searchOp SearchOp) *Base {
	return &Base{sig: signal.Uninitialized(), searchOp: searchOp}
}

// Signal returns the current signal by value.
func (b *Base) Signal() signal.Signal { return b.sig }

// SignalPtr exposes the address of the underlying signal field so a
// cascade can target it as a dependent signal. Only ActiveNotifier's
// registry and AddDependentSignal callers need this.
func (b *Base) SignalPtr() *signal.Signal { return &b.sig }

// SearchOp reports the notifier's search policy.
func (b *Base) SearchOp() SearchOp { return b.searchOp }

// Initialize requests a basic signal from router if none is held yet.
func (b *Base) Initialize(router Router) error {
	if b.sig.Initialized() {
		return nil
	}
	sig, err := router.NewBasicSignal()
	if err != nil {
		return err
	}
	b.sig = sig
	return nil
}

// AddListener is a no-op on a plain Base.
func (b *Base) AddListener(Task) {}

// RemoveListener is a no-op on a plain Base.
func (b *Base) RemoveListener(Task) {}

// AddDependentSignal is a no-op on a plain Base.
func (b *Base) AddDependentSignal(*signal.Signal) {}

var _ Notifier = (*Base)(nil)
