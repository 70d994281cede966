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

// Package router implements the element graph, its push/pull hookups, and
// the upstream/downstream notifier search that walks it.
package router

import (
	"sync"

	"github.com/google/uuid"

	"github.com/clickrouter/notifier/config"
	"github.com/clickrouter/notifier/errors"
	"github.com/clickrouter/notifier/eventstream"
	"github.com/clickrouter/notifier/log"
	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/signal"
	"github.com/clickrouter/notifier/telemetry"
)

// SearchEventsTopic is the eventstream topic a Router publishes a
// SearchEvent to after every completed UpstreamSearch/DownstreamSearch.
const SearchEventsTopic = "router.search"

// SearchEvent describes one completed graph search, for subscribers that
// want to observe search activity without touching the hot path.
type SearchEvent struct {
	Name     string
	Upstream bool
	Matched  int
	Result   signal.Signal
}

// ElementID identifies an Element within a Router's graph.
type ElementID = uuid.UUID

// Element is a node in the router's processing graph.
type Element interface {
	// ID uniquely identifies the element within its router.
	ID() ElementID
	// Name is a human-readable label, used in logs only.
	Name() string
	// Cast returns the notifier this element publishes under name, or
	// nil if it publishes none by that name.
	Cast(name string) notifier.Notifier
	// PortActive reports whether the given port operates in push mode
	// (true) or pull mode (false).
	PortActive(isOutput bool, port int) bool
	// PortFlow reports, for the given port, which ports on the opposite
	// side are reachable through this element. An empty or all-false
	// result marks this port as a back-pressure boundary.
	PortFlow(isOutput bool, port int) []bool
}

// portKey addresses one port of one element.
type portKey struct {
	id   ElementID
	port int
}

// Router owns the element graph's hookups and the single SignalWord its
// basic signals share.
type Router struct {
	mu sync.Mutex

	cfg       *config.Config
	logger    log.Logger
	telemetry *telemetry.Telemetry
	events    eventstream.Stream

	word    *signal.SignalWord
	nextBit int

	elements map[ElementID]Element
	// downstream maps an output port to the input ports it feeds.
	downstream map[portKey][]portKey
	// upstream maps an input port to the output ports feeding it.
	upstream map[portKey][]portKey
}

// Option configures a Router during New.
type Option func(*Router)

// WithConfig overrides the router's configuration.
func WithConfig(cfg *config.Config) Option {
	return func(r *Router) { r.cfg = cfg }
}

// WithTelemetry overrides the router's telemetry instruments.
func WithTelemetry(t *telemetry.Telemetry) Option {
	return func(r *Router) { r.telemetry = t }
}

// WithEventStream attaches an eventstream.Stream that the router
// publishes a SearchEvent to after every completed search. Optional: a
// router with none configured simply skips publication.
func WithEventStream(stream eventstream.Stream) Option {
	return func(r *Router) { r.events = stream }
}

// New constructs an empty Router.
func New(opts ...Option) *Router {
	r := &Router{
		elements:   make(map[ElementID]Element),
		downstream: make(map[portKey][]portKey),
		upstream:   make(map[portKey][]portKey),
		word:       signal.NewSignalWord(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg == nil {
		r.cfg = config.New()
	}
	if r.telemetry == nil {
		r.telemetry = telemetry.New()
	}
	r.logger = r.cfg.Logger
	return r
}

// register adds e to the element registry if not already present.
func (r *Router) register(e Element) {
	if _, ok := r.elements[e.ID()]; !ok {
		r.elements[e.ID()] = e
	}
}

// Connect hooks up's output port fromPort to to's input port toPort,
// registering both elements if they are new to this router.
func (r *Router) Connect(from Element, fromPort int, to Element, toPort int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.register(from)
	r.register(to)

	outKey := portKey{from.ID(), fromPort}
	inKey := portKey{to.ID(), toPort}
	r.downstream[outKey] = append(r.downstream[outKey], inKey)
	r.upstream[inKey] = append(r.upstream[inKey], outKey)
}

// NewBasicSignal allocates the next free bit in the router's SignalWord.
// It satisfies notifier.Router so a Notifier can call Initialize(router)
// directly against a *Router.
func (r *Router) NewBasicSignal() (signal.Signal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newBasicSignalLocked()
}

// newBasicSignalLocked is NewBasicSignal's body, for callers that already
// hold r.mu - a walk reaching an un-Attached notifier ends up here via
// routerLocked rather than through NewBasicSignal, since r.mu is not
// reentrant and search already holds it for the duration of the walk.
func (r *Router) newBasicSignalLocked() (signal.Signal, error) {
	if r.nextBit >= r.cfg.MaxBasicSignals() {
		r.logger.Warn("router has exhausted its basic signal budget")
		return signal.Signal{}, errors.ErrSignalExhausted
	}
	mask := uint32(1) << uint(r.nextBit)
	r.nextBit++
	return signal.FromWord(r.word, mask), nil
}

// routerLocked adapts a Router's already-locked signal allocation to
// notifier.Router, for use from within a walk that already holds r.mu.
type routerLocked struct{ r *Router }

// NewBasicSignal satisfies notifier.Router without re-locking r.mu.
func (n routerLocked) NewBasicSignal() (signal.Signal, error) {
	return n.r.newBasicSignalLocked()
}

// Telemetry exposes the router's telemetry instruments, so supporting
// packages (element, scheduler) can wire a notifier's reschedule counter
// to the same RouterMetrics the router itself reports activations to.
func (r *Router) Telemetry() *telemetry.Telemetry {
	return r.telemetry
}
