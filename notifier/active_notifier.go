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

package notifier

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/clickrouter/notifier/log"
	"github.com/clickrouter/notifier/signal"
)

// registry maps a dependent signal's address back to the ActiveNotifier
// that owns it, so Wake can tell whether cascading into it should keep
// walking a further listener list or simply stop at a bare signal.
var registry sync.Map // map[*signal.Signal]*ActiveNotifier

// partition marks where the task partition ends and dependent signals
// begin; 0 selects the task partition, 1 the signal partition, matching
// the where argument of the reference listener_change.
type partition int

const (
	taskPartition   partition = 0
	signalPartition partition = 1
)

// ActiveNotifier is a Notifier that additionally maintains a listener list
// and wakes it on activation.
//
// # Listener-list representation
//
// In the common case of exactly one task listener and no dependent
// signals, listener1 holds it directly: no allocation. Otherwise listeners
// holds a slice partitioned into two contiguous runs - tasks, then
// dependent signals - each terminated by a nil sentinel, mirroring the
// null-terminated two-partition array of the reference design.
type ActiveNotifier struct {
	*Base

	listener1 Task
	listeners []any

	logger log.Logger

	// reschedules counts wake()'s Reschedule calls, when set. Left nil by
	// default so ActiveNotifier has no telemetry dependency until a router
	// wires one in via SetReschedulesCounter.
	reschedules metric.Int64Counter
}

// NewActiveNotifier constructs an empty ActiveNotifier with the given
// search policy. logger may be nil, in which case log.DefaultLogger is
// used.
func NewActiveNotifier(searchOp SearchOp, logger log.Logger) *ActiveNotifier {
	if logger == nil {
		logger = log.DefaultLogger
	}
	an := &ActiveNotifier{Base: NewBase(searchOp), logger: logger}
	registry.Store(an.SignalPtr(), an)
	return an
}

// SetReschedulesCounter wires a router's telemetry into this notifier so
// every Reschedule call wake() makes is also counted. Optional: a nil
// counter (the default) simply disables the count.
func (a *ActiveNotifier) SetReschedulesCounter(counter metric.Int64Counter) {
	a.reschedules = counter
}

// Close deregisters the notifier from the cascade registry. Callers must
// invoke this before discarding an ActiveNotifier that was ever the target
// of AddDependentSignal, or a stale entry lingers in the registry.
func (a *ActiveNotifier) Close() {
	registry.Delete(a.SignalPtr())
}

// AddListener registers task as a listener. Adding the same task twice is
// a no-op (by identity).
func (a *ActiveNotifier) AddListener(task Task) {
	a.listenerChange(task, taskPartition, true)
}

// RemoveListener unregisters task. Removing a task that was never added
// is a silent no-op.
func (a *ActiveNotifier) RemoveListener(task Task) {
	a.listenerChange(task, taskPartition, false)
}

// AddDependentSignal registers dependent to be activated whenever this
// notifier's signal transitions to active.
func (a *ActiveNotifier) AddDependentSignal(dependent *signal.Signal) {
	a.listenerChange(dependent, signalPartition, true)
}

// Listeners returns every task currently registered, in no particular
// order relative to dependent signals.
func (a *ActiveNotifier) Listeners() []Task {
	if a.listener1 != nil {
		return []Task{a.listener1}
	}
	var out []Task
	for _, entry := range a.listeners {
		if t, ok := entry.(Task); ok {
			out = append(out, t)
		}
	}
	return out
}

// SetActive sets the notifier's own signal bits and, on a transition from
// inactive, wakes every registered listener.
//
// The reference design leaves the ordering between "set the bit" and
// "reschedule listeners" as an open question; this implementation sets
// first, matching the design notes' stated preference, so a listener that
// wakes and immediately rechecks the signal always observes it active.
func (a *ActiveNotifier) SetActive() {
	if a.Signal().ActivateReportTransition() {
		a.logger.Debug("notifier activated, waking listeners")
		a.wake()
	}
}

// SetInactive clears the notifier's own signal bits. Deactivation raises
// no callbacks; consumers discover it on their own next check.
func (a *ActiveNotifier) SetInactive() {
	a.Signal().Deactivate()
}

// wake reschedules every task listener and cascades into every dependent
// signal. Must run on the dataflow worker, same as every listener-list
// mutation; the core makes no attempt at cross-thread safety here.
func (a *ActiveNotifier) wake() {
	if a.listener1 != nil {
		a.logger.Debug("rescheduling sole listener")
		a.listener1.Reschedule()
		a.countReschedule()
		return
	}
	for _, entry := range a.listeners {
		switch v := entry.(type) {
		case Task:
			a.logger.Debug("rescheduling listener")
			v.Reschedule()
			a.countReschedule()
		case *signal.Signal:
			if v.ActivateReportTransition() {
				if owner, ok := registry.Load(v); ok {
					a.logger.Debug("cascading into dependent signal")
					owner.(*ActiveNotifier).wake()
				}
			}
		}
	}
}

// countReschedule increments the wired reschedules counter, if any.
func (a *ActiveNotifier) countReschedule() {
	if a.reschedules != nil {
		a.reschedules.Add(context.Background(), 1)
	}
}

// listenerChange is the single entry point for add/remove of either
// partition. It is a direct port of the reference ActiveNotifier's
// listener_change: a fast path for the common single-task case, and a
// general path that reallocates the backing array to size
// existing_count + 2 + (1 if adding), copying both partitions while
// deduplicating by identity.
func (a *ActiveNotifier) listenerChange(what any, where partition, add bool) {
	// fast path: empty notifier gaining its first task listener.
	if a.listener1 == nil && a.listeners == nil && where == taskPartition && add {
		a.listener1 = what.(Task)
		return
	}

	// count existing real entries across both partitions, *before* the
	// inline slot is ever promoted into a heap array.
	n := 0
	x := 0
	for i := 0; i < len(a.listeners) && x < 2; i++ {
		if a.listeners[i] != nil {
			n++
		} else {
			x++
		}
	}
	if a.listener1 != nil {
		n++
	}

	addN := 0
	if add {
		addN = 1
	}
	next := make([]any, n+2+addN)

	// promote the inline slot (real task or nothing at all) into a
	// 3-element array so the copy loop below has a uniform source.
	if a.listeners == nil {
		a.listeners = []any{a.listener1, nil, nil}
	}

	oi := 0
	x = 0
	for i := 0; x < 2 && i < len(a.listeners); i++ {
		entry := a.listeners[i]
		if entry != nil && (add || entry != what) {
			next[oi] = entry
			oi++
			if entry == what {
				add = false
			}
		} else if entry == nil {
			if add && where == partition(x) {
				next[oi] = what
				oi++
			}
			next[oi] = nil
			oi++
			x++
		}
	}

	a.listeners = nil
	a.listener1 = nil

	switch {
	case next[0] == nil && next[1] == nil:
		// fully empty: leave reset above in place.
	case next[0] != nil && next[1] == nil && next[2] == nil:
		a.listener1 = next[0].(Task)
	default:
		a.listeners = next
	}
}

var _ Notifier = (*ActiveNotifier)(nil)
