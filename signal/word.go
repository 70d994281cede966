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

// Package signal implements the activity-signal value type shared by a
// router's notifiers: a fixed-width atomic word plus lightweight
// pointer-and-mask references into it.
package signal

import "go.uber.org/atomic"

// reserved bits on the process-wide static word. TrueBit makes the busy
// singleton always active; OverderivedBit additionally flags it as
// imprecise when combined into the overderived singleton.
const (
	TrueBit uint32 = 1 << iota
	OverderivedBit
)

// MaxBits is the width of a SignalWord. 32 bits is sufficient for any
// router in this module: two are reserved, leaving 30 basic signals.
const MaxBits = 32

// SignalWord is a fixed-width machine word shared by every basic signal a
// router hands out. It is safe to read and mutate from any goroutine; only
// the bits it stores are synchronized, never the listener bookkeeping that
// hangs off a NotifierSignal referencing it.
type SignalWord struct {
	value atomic.Uint32
}

// NewSignalWord allocates a zeroed word. A router owns exactly one of
// these for the lifetime of its basic signals.
func NewSignalWord() *SignalWord {
	return &SignalWord{}
}

// Load reads the current bits.
func (w *SignalWord) Load() uint32 {
	return w.value.Load()
}

// Set atomically ORs mask into the word. Used by a producer activating its
// basic signal.
func (w *SignalWord) Set(mask uint32) {
	for {
		old := w.value.Load()
		desired := old | mask
		if desired == old {
			return
		}
		if w.value.CompareAndSwap(old, desired) {
			return
		}
	}
}

// Clear atomically ANDs-NOT mask out of the word. Used by a producer
// deactivating its basic signal. Clearing raises no callbacks; consumers
// discover inactivity on their own next check.
func (w *SignalWord) Clear(mask uint32) {
	for {
		old := w.value.Load()
		desired := old &^ mask
		if desired == old {
			return
		}
		if w.value.CompareAndSwap(old, desired) {
			return
		}
	}
}

// staticWord is the process-wide word backing the idle/busy/overderived
// singletons. It is initialized once, in init, before any NotifierSignal
// can be constructed.
var staticWord = NewSignalWord()

func init() {
	staticWord.value.Store(TrueBit | OverderivedBit)
}

// StaticInitialize reinitializes the static word. The package-level init
// above already does this; StaticInitialize exists only so callers
// translating from the reference implementation have an explicit,
// idempotent hook to call, matching NotifierSignal::static_initialize().
func StaticInitialize() {
	staticWord.value.Store(TrueBit | OverderivedBit)
}
