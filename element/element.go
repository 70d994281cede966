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

// Package element holds a small set of demonstration elements - Source,
// Sink, Queue, RateLimiter, Mux - that exercise the router and notifier
// packages end to end.
package element

import (
	"github.com/google/uuid"

	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/router"
)

// Source is a push-only producer: one output port, no input, no
// notifiers of its own. Its output port is always a push boundary.
type Source struct {
	id   router.ElementID
	name string
}

// NewSource constructs a Source identified by name in logs and errors.
func NewSource(name string) *Source {
	return &Source{id: uuid.New(), name: name}
}

func (s *Source) ID() router.ElementID { return s.id }
func (s *Source) Name() string         { return s.name }

func (s *Source) Cast(string) notifier.Notifier { return nil }

func (s *Source) PortActive(isOutput bool, _ int) bool { return isOutput }

func (s *Source) PortFlow(bool, int) []bool { return nil }

var _ router.Element = (*Source)(nil)

// Sink is a pull-only consumer: one input port, no output, no notifiers
// of its own. Its input port is always a pull boundary.
type Sink struct {
	id   router.ElementID
	name string
}

// NewSink constructs a Sink identified by name in logs and errors.
func NewSink(name string) *Sink {
	return &Sink{id: uuid.New(), name: name}
}

func (s *Sink) ID() router.ElementID { return s.id }
func (s *Sink) Name() string         { return s.name }

func (s *Sink) Cast(string) notifier.Notifier { return nil }

func (s *Sink) PortActive(bool, int) bool { return false }

func (s *Sink) PortFlow(bool, int) []bool { return nil }

var _ router.Element = (*Sink)(nil)
