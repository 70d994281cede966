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
	gods "github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"

	"github.com/clickrouter/notifier/errors"
	"github.com/clickrouter/notifier/log"
	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/router"
)

// Queue is a bounded FIFO backed by a ring buffer, with one push input
// port and one pull output port. It publishes Notifier.EMPTY (active
// whenever it holds at least one item) and Notifier.FULL (active
// whenever it has room for at least one more).
type Queue struct {
	id         router.ElementID
	name       string
	capacity   uint64
	underlying *gods.RingBuffer

	empty *notifier.ActiveNotifier
	full  *notifier.ActiveNotifier

	logger log.Logger
}

// NewQueue constructs a Queue of the given capacity. logger may be nil.
func NewQueue(name string, capacity uint64, logger log.Logger) *Queue {
	if logger == nil {
		logger = log.DefaultLogger
	}
	q := &Queue{
		id:         uuid.New(),
		name:       name,
		capacity:   capacity,
		underlying: gods.NewRingBuffer(capacity),
		empty:      notifier.NewActiveNotifier(notifier.SearchStop, logger),
		full:       notifier.NewActiveNotifier(notifier.SearchStop, logger),
		logger:     logger,
	}
	return q
}

// Attach requests basic signals for both notifiers from r. Must be
// called once before the queue is pushed to or pulled from.
func (q *Queue) Attach(r *router.Router) error {
	if err := q.empty.Initialize(r); err != nil {
		return err
	}
	if err := q.full.Initialize(r); err != nil {
		return err
	}
	if t := r.Telemetry(); t != nil && t.Router != nil {
		q.empty.SetReschedulesCounter(t.Router.ReschedulesCount)
		q.full.SetReschedulesCounter(t.Router.ReschedulesCount)
	}
	// An empty queue starts with room: FULL begins active.
	q.full.SetActive()
	return nil
}

// Close deregisters both notifiers from the cascade registry.
func (q *Queue) Close() {
	q.empty.Close()
	q.full.Close()
}

func (q *Queue) ID() router.ElementID { return q.id }
func (q *Queue) Name() string         { return q.name }

func (q *Queue) Cast(name string) notifier.Notifier {
	switch name {
	case notifier.EmptyNotifierName:
		return q.empty
	case notifier.FullNotifierName:
		return q.full
	default:
		return nil
	}
}

// PortActive reports the queue's input as push and its output as pull,
// decoupling the two sides by design.
func (q *Queue) PortActive(isOutput bool, _ int) bool { return !isOutput }

// PortFlow always reports no pass-through: a queue absorbs the search
// rather than forwarding it, since its own notifiers answer on its
// behalf.
func (q *Queue) PortFlow(bool, int) []bool { return nil }

// Push enqueues v. It returns ErrQueueFull without blocking when the
// queue is at capacity.
func (q *Queue) Push(v any) error {
	if q.underlying.Len() >= q.capacity {
		q.logger.Debug("queue ", q.name, " is full, rejecting push")
		return errors.ErrQueueFull
	}
	if err := q.underlying.Put(v); err != nil {
		q.logger.Warn("queue ", q.name, " push failed: ", err)
		return err
	}
	q.empty.SetActive()
	if q.underlying.Len() >= q.capacity {
		q.logger.Debug("queue ", q.name, " is now full")
		q.full.SetInactive()
	}
	return nil
}

// Pull dequeues the oldest item. It returns ErrQueueEmpty without
// blocking when the queue holds nothing.
func (q *Queue) Pull() (any, error) {
	if q.underlying.Len() == 0 {
		q.logger.Debug("queue ", q.name, " is empty, rejecting pull")
		return nil, errors.ErrQueueEmpty
	}
	v, err := q.underlying.Get()
	if err != nil {
		q.logger.Warn("queue ", q.name, " pull failed: ", err)
		return nil, err
	}
	if q.underlying.Len() == 0 {
		q.logger.Debug("queue ", q.name, " is now empty")
		q.empty.SetInactive()
	}
	q.full.SetActive()
	return v, nil
}

// Len reports the number of items currently queued.
func (q *Queue) Len() uint64 { return q.underlying.Len() }

var _ router.Element = (*Queue)(nil)
