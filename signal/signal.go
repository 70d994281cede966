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

package signal

import "fmt"

// Signal is a lightweight reference into a SignalWord: a word pointer plus
// a bitmask selecting one or more bits within it. The zero value is the
// uninitialized sentinel.
type Signal struct {
	word *SignalWord
	mask uint32
}

var (
	idleSignal        = Signal{word: staticWord, mask: 0}
	busySignal        = Signal{word: staticWord, mask: TrueBit}
	overderivedSignal = Signal{word: staticWord, mask: TrueBit | OverderivedBit}
)

// Idle returns the signal that is never active. It is the identity element
// of Add.
func Idle() Signal { return idleSignal }

// Busy returns the signal that is always active. Busy absorbs every other
// signal under Add except itself.
func Busy() Signal { return busySignal }

// Overderived returns the singleton used when a derived signal lost
// precision (its basic signals span more than one SignalWord). It is
// always active.
func Overderived() Signal { return overderivedSignal }

// Uninitialized returns the zero signal: no word, no mask. A caller sees
// this when initialize() never ran or a search found nothing.
func Uninitialized() Signal { return Signal{} }

// FromWord builds a basic signal selecting mask within word. Only a router
// allocating a new basic signal, or a test exercising the algebra
// directly, should call this.
func FromWord(word *SignalWord, mask uint32) Signal {
	return Signal{word: word, mask: mask}
}

// Initialized reports whether the signal refers to a word at all.
func (s Signal) Initialized() bool {
	return s.word != nil
}

// Active reports whether any bit selected by the signal's mask is set in
// its word. An uninitialized signal is never active.
func (s Signal) Active() bool {
	if s.word == nil {
		return false
	}
	return s.word.Load()&s.mask != 0
}

// Equal reports whether two signals are the same signal: both
// uninitialized, or both referencing the same word and mask.
func (s Signal) Equal(o Signal) bool {
	if !s.Initialized() && !o.Initialized() {
		return true
	}
	return s.word == o.word && s.mask == o.mask
}

// Add combines a into the receiver, following the combining algebra:
//
//	uninitialized L                -> L = R
//	L == busy                      -> L unchanged
//	R == busy                      -> L = busy
//	L.word == R.word               -> L.mask |= R.mask
//	R uninitialized (zero mask)    -> L unchanged
//	otherwise                      -> L = overderived
//
// The order above matters: the word-adoption step runs first and
// unconditionally whenever L's mask is zero (covering both "L
// uninitialized" and "L is idle"), so a subsequent same-word check can
// then fire even when L started out uninitialized.
func (s *Signal) Add(a Signal) {
	if s.mask == 0 {
		s.word = a.word
	}
	switch {
	case s.Equal(busySignal):
	case a.Equal(busySignal):
		*s = a
	case s.word == a.word || a.mask == 0:
		s.mask |= a.mask
	default:
		*s = overderivedSignal
	}
}

// Plus returns a copy of s with a Added in, leaving s unmodified. This is
// the caller-visible operator+.
func (s Signal) Plus(a Signal) Signal {
	result := s
	result.Add(a)
	return result
}

// Activate sets every bit selected by the signal's mask in its word. A
// producer owning a basic signal calls this when it becomes active. A call
// on an uninitialized signal is a no-op.
func (s Signal) Activate() {
	if s.word != nil {
		s.word.Set(s.mask)
	}
}

// Deactivate clears every bit selected by the signal's mask in its word.
// Deactivation raises no callbacks; consumers discover it on their next
// check.
func (s Signal) Deactivate() {
	if s.word != nil {
		s.word.Clear(s.mask)
	}
}

// ActivateReportTransition sets the signal's masked bits and reports
// whether they were all previously zero, i.e. whether this call is the
// inactive-to-active transition a listener walk should react to.
func (s Signal) ActivateReportTransition() bool {
	if s.word == nil {
		return false
	}
	before := s.word.Load()
	s.word.Set(s.mask)
	return before&s.mask == 0
}

// String renders "word-address/mask:masked-value", for debugging only.
func (s Signal) String() string {
	if !s.Initialized() {
		return "<uninitialized>"
	}
	return fmt.Sprintf("%p/%x:%x", s.word, s.mask, s.word.Load()&s.mask)
}
