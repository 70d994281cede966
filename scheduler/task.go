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

package scheduler

import (
	"context"

	"github.com/clickrouter/notifier/notifier"
)

// RunnableFunc adapts a plain function to Runnable.
type RunnableFunc func(ctx context.Context)

// Run calls f.
func (f RunnableFunc) Run(ctx context.Context) { f(ctx) }

// TaskAdapter bridges a Runnable to notifier.Task. A notifier that wakes
// an adapter does not run the Runnable inline on its own call stack; it
// hands it to the driver's worker goroutine instead, the same indirection
// every other listener goes through.
type TaskAdapter struct {
	driver *Driver
	task   Runnable
}

// NewTaskAdapter wraps task so Notifier.AddListener can register it; a
// wake enqueues task onto driver rather than running it synchronously.
func NewTaskAdapter(driver *Driver, task Runnable) *TaskAdapter {
	return &TaskAdapter{driver: driver, task: task}
}

// Reschedule implements notifier.Task. The adapter itself is what the
// driver queues, so duplicate wakes collapse by adapter identity even when
// the wrapped Runnable is a func value, which cannot be a map key.
func (a *TaskAdapter) Reschedule() {
	if err := a.driver.Reschedule(a); err != nil {
		a.driver.logger.Warn("task reschedule dropped: ", err)
	}
}

// Run implements Runnable by running the wrapped task.
func (a *TaskAdapter) Run(ctx context.Context) { a.task.Run(ctx) }

var _ notifier.Task = (*TaskAdapter)(nil)
