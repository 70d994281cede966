/*
 * MIT License
 *
 * Copyright (c) 2022-2023 Tochemey
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package scheduler runs the single cooperative worker the notifier core
// assumes: one goroutine draining rescheduled tasks, plus go-quartz
// triggers for anything that needs to run on a timer (a rate limiter's
// gate, a poll loop).
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/clickrouter/notifier/errors"
	"github.com/clickrouter/notifier/internal/types"
	"github.com/clickrouter/notifier/log"
)

// Runnable is a unit of work the Driver's worker goroutine executes. A
// notifier.Task typically implements it by closing over itself and
// calling Driver.Reschedule from its own Reschedule method.
type Runnable interface {
	Run(ctx context.Context)
}

// Driver is the dataflow core's single worker: every Reschedule call
// lands on the same goroutine, in the order it arrived, with duplicate
// reschedules of a task already waiting to run collapsed into one - the
// same idempotent-wake guarantee notifier.ActiveNotifier assumes of its
// listeners.
type Driver struct {
	mu sync.Mutex

	quartz  quartz.Scheduler
	started *atomic.Bool

	pending map[Runnable]struct{}
	queue   chan Runnable
	done    chan types.Unit

	logger log.Logger
}

// NewDriver constructs a stopped Driver. logger may be nil.
func NewDriver(logger log.Logger) *Driver {
	if logger == nil {
		logger = log.DefaultLogger
	}
	stdScheduler, _ := quartz.NewStdScheduler()
	return &Driver{
		quartz:  stdScheduler,
		started: atomic.NewBool(false),
		pending: make(map[Runnable]struct{}),
		queue:   make(chan Runnable, 256),
		done:    make(chan types.Unit),
		logger:  logger,
	}
}

// Start starts the quartz scheduler and the worker goroutine.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.logger.Debug("starting scheduler driver")
	d.quartz.Start(ctx)
	d.started.Store(true)
	go d.run(ctx)
}

// Stop stops the quartz scheduler, waits for its jobs to drain, and
// shuts down the worker goroutine.
func (d *Driver) Stop(ctx context.Context) {
	d.mu.Lock()
	d.logger.Debug("stopping scheduler driver")
	d.quartz.Stop()
	d.started.Store(false)
	d.mu.Unlock()

	d.quartz.Wait(ctx)
	close(d.done)
}

func (d *Driver) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case task := <-d.queue:
			d.mu.Lock()
			delete(d.pending, task)
			d.mu.Unlock()
			task.Run(ctx)
		}
	}
}

// Reschedule enqueues task to run on the worker goroutine. A task
// already waiting to run is not enqueued again.
func (d *Driver) Reschedule(task Runnable) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started.Load() {
		d.logger.Warn("reschedule requested on a stopped driver")
		return errors.ErrSchedulerNotStarted
	}
	if _, exists := d.pending[task]; exists {
		d.logger.Debug("task already pending, dropping duplicate reschedule")
		return nil
	}
	d.pending[task] = struct{}{}
	d.queue <- task
	return nil
}

// EveryFunc schedules fn to run repeatedly on interval via go-quartz,
// independent of the Reschedule queue - useful for a RateLimiter's timed
// gate or a periodic poll of an external source.
func (d *Driver) EveryFunc(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	trigger := quartz.NewSimpleTrigger(interval)
	fnJob := job.NewFunctionJob(func(ctx context.Context) (bool, error) {
		fn(ctx)
		return true, nil
	})
	jobDetail := quartz.NewJobDetail(fnJob, quartz.NewJobKey(uuid.NewString()))
	return d.quartz.ScheduleJob(jobDetail, trigger)
}
