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

package router

import (
	"github.com/clickrouter/notifier/internal/xsync"
	"github.com/clickrouter/notifier/log"
	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/signal"
)

// elementFilter accumulates the result of one upstream or downstream walk:
// the combined signal of every notifier the walk landed on under name, and
// the notifiers themselves, so the caller can register a listener or a
// dependent signal against every one of them in one pass.
type elementFilter struct {
	name string

	sig       signal.Signal
	notifiers *xsync.List[notifier.Notifier]

	logger log.Logger

	// needPass2 is set when the first pass stops at a SearchContinueWake
	// notifier; it tells the caller to re-walk the graph once more,
	// treating SearchContinueWake as SearchContinue the second time.
	needPass2 bool
	pass2     bool
}

func newElementFilter(name string, logger log.Logger) *elementFilter {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &elementFilter{name: name, sig: signal.Idle(), notifiers: xsync.NewList[notifier.Notifier](), logger: logger}
}

// checkMatch inspects the notifier e publishes under f.name, if any,
// ensures it is initialized against router, and reports whether the walk
// should stop at e without crossing through it.
//
// If initialization fails (the router has exhausted its basic-signal
// budget), the failure is logged and the accumulated signal is forced to
// Busy so the search stays conservative - the consumer always tries -
// rather than surfacing the error to the caller.
func (f *elementFilter) checkMatch(router notifier.Router, e Element, isOutput bool, port int) bool {
	n := e.Cast(f.name)
	if n == nil {
		return false
	}

	if err := n.Initialize(router); err != nil {
		f.logger.Warn("notifier initialization failed, forcing busy: ", err)
		f.sig.Add(signal.Busy())
		return true
	}

	f.sig.Add(n.Signal())
	// Append dedups by identity: a notifier a CONTINUE_WAKE second pass
	// lands on again is not registered as a listener twice.
	f.notifiers.Append(n)

	switch n.SearchOp() {
	case notifier.SearchStop:
		return true
	case notifier.SearchContinueWake:
		if f.pass2 {
			return false
		}
		f.needPass2 = true
		return true
	default: // notifier.SearchContinue
		return false
	}
}

// markBoundary forces the filter's signal to Busy when the walk has hit a
// transfer-mode boundary (a push output during an upstream search, or a
// push input during a downstream search) with no notifier to consult.
// Per the design notes, a push/pull mismatch at a boundary is treated as
// always-ready rather than surfaced as an error.
func (f *elementFilter) markBoundary(active bool) {
	if active {
		f.sig.Add(signal.Busy())
	}
}
