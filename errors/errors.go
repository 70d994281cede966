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

// Package errors collects the sentinel errors returned across the module.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrSignalExhausted is returned when a router has no more basic-signal
	// bits to hand out from its SignalWord.
	ErrSignalExhausted = errors.New("router has exhausted its basic signal budget")

	// ErrListenerAllocFailed is returned when ActiveNotifier fails to grow
	// its listener list (out of memory in the reference implementation).
	ErrListenerAllocFailed = errors.New("failed to allocate listener list")

	// ErrSearchAborted is returned by a graph search that could not reach a
	// conclusive result (the router's walk primitive itself failed).
	ErrSearchAborted = errors.New("graph search aborted")

	// ErrUnknownNotifierName is returned when a capability lookup is made
	// for a name other than EmptyNotifierName or FullNotifierName.
	ErrUnknownNotifierName = errors.New("unknown notifier name")

	// ErrNotInitialized is returned when a signal is used before its
	// SignalWord has been assigned.
	ErrNotInitialized = errors.New("signal is not initialized")

	// ErrStaticWordUninitialized is returned when a singleton signal is
	// constructed before NotifierSignal static initialization has run.
	ErrStaticWordUninitialized = errors.New("static signal word not initialized")

	// ErrSchedulerNotStarted is returned when a Runnable is rescheduled on
	// a Driver that has not been started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrPortFlowUndefined is returned when an element cannot report which
	// of its ports are flow-connected.
	ErrPortFlowUndefined = errors.New("port flow is undefined")

	// ErrQueueFull is returned by Queue.Push when the ring buffer is at
	// capacity.
	ErrQueueFull = errors.New("queue is at capacity")

	// ErrQueueEmpty is returned by Queue.Pull when the ring buffer holds
	// nothing to dequeue.
	ErrQueueEmpty = errors.New("queue is empty")
)

// NewErrListenerAllocFailed wraps a lower-level allocation failure.
func NewErrListenerAllocFailed(cause error) error {
	return fmt.Errorf("%w: %v", ErrListenerAllocFailed, cause)
}

// NewErrSearchAborted wraps the router error that aborted a graph walk.
func NewErrSearchAborted(cause error) error {
	return fmt.Errorf("%w: %v", ErrSearchAborted, cause)
}
