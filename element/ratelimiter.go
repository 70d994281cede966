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

package element

import (
	"github.com/google/uuid"

	"github.com/clickrouter/notifier/log"
	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/router"
)

// RateLimiter passes a single input through to a single output, gated by
// its own token availability. It publishes its gate as Notifier.EMPTY
// with SearchContinueWake: a search stops at the limiter on its first
// pass, and the second pass this triggers walks past the limiter to
// combine the gate with whatever sits further upstream.
type RateLimiter struct {
	id   router.ElementID
	name string

	gate *notifier.ActiveNotifier

	logger log.Logger
}

// NewRateLimiter constructs a RateLimiter whose gate starts closed.
func NewRateLimiter(name string, logger log.Logger) *RateLimiter {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &RateLimiter{
		id:     uuid.New(),
		name:   name,
		gate:   notifier.NewActiveNotifier(notifier.SearchContinueWake, logger),
		logger: logger,
	}
}

// Attach requests a basic signal for the gate from r.
func (l *RateLimiter) Attach(r *router.Router) error {
	if err := l.gate.Initialize(r); err != nil {
		return err
	}
	if t := r.Telemetry(); t != nil && t.Router != nil {
		l.gate.SetReschedulesCounter(t.Router.ReschedulesCount)
	}
	return nil
}

// Close deregisters the gate from the cascade registry.
func (l *RateLimiter) Close() { l.gate.Close() }

// Open marks the gate ready, waking anything waiting on it.
func (l *RateLimiter) Open() {
	l.logger.Debug("rate limiter ", l.name, " gate opened")
	l.gate.SetActive()
}

// Throttle closes the gate again.
func (l *RateLimiter) Throttle() {
	l.logger.Debug("rate limiter ", l.name, " gate throttled")
	l.gate.SetInactive()
}

func (l *RateLimiter) ID() router.ElementID { return l.id }
func (l *RateLimiter) Name() string         { return l.name }

func (l *RateLimiter) Cast(name string) notifier.Notifier {
	if name == notifier.EmptyNotifierName {
		return l.gate
	}
	return nil
}

// PortActive reports the single input as push, single output as pull.
func (l *RateLimiter) PortActive(isOutput bool, _ int) bool { return !isOutput }

// PortFlow reports a single pass-through port on the opposite side.
func (l *RateLimiter) PortFlow(bool, int) []bool { return []bool{true} }

var _ router.Element = (*RateLimiter)(nil)
