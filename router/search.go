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
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"

	"github.com/clickrouter/notifier/errors"
	"github.com/clickrouter/notifier/notifier"
	"github.com/clickrouter/notifier/signal"
)

// UpstreamSearch walks backward from origin's input port, looking for
// every Notifier.EMPTY notifier reachable without crossing a push
// boundary, and combines their signals. If task is non-nil it is
// registered as a listener on every notifier found; if dependent is
// non-nil, dependent's signal is registered as a cascade target of every
// notifier found.
func (r *Router) UpstreamSearch(origin Element, port int, task notifier.Task, dependent notifier.Notifier) (signal.Signal, error) {
	return r.search(origin, port, true, notifier.EmptyNotifierName, task, dependent)
}

// DownstreamSearch walks forward from origin's output port, looking for
// every Notifier.FULL notifier reachable without crossing a pull
// boundary. See UpstreamSearch for the task/dependent semantics.
func (r *Router) DownstreamSearch(origin Element, port int, task notifier.Task, dependent notifier.Notifier) (signal.Signal, error) {
	return r.search(origin, port, false, notifier.FullNotifierName, task, dependent)
}

func (r *Router) search(origin Element, port int, upstream bool, name string, task notifier.Task, dependent notifier.Notifier) (signal.Signal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := newElementFilter(name, r.logger)
	var errs error

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.SearchTimeout)
	defer cancel()

	errs = multierr.Append(errs, r.walk(ctx, origin, port, upstream, filter, mapset.NewSet[ElementID]()))

	if filter.needPass2 && !filter.sig.Equal(signal.Idle()) {
		filter.pass2 = true
		errs = multierr.Append(errs, r.walk(ctx, origin, port, upstream, filter, mapset.NewSet[ElementID]()))
	}

	if errs != nil {
		return signal.Signal{}, errors.NewErrSearchAborted(errs)
	}

	if filter.sig.Equal(signal.Idle()) {
		return signal.Uninitialized(), nil
	}

	matched := filter.notifiers.Items()

	if task != nil {
		for _, n := range matched {
			n.AddListener(task)
		}
	}
	if dependent != nil {
		for _, n := range matched {
			n.AddDependentSignal(dependent.SignalPtr())
		}
	}

	if r.telemetry != nil && r.telemetry.Router != nil {
		r.telemetry.Router.ActivationsCount.Add(context.Background(), int64(len(matched)))
	}

	if r.events != nil {
		r.events.Publish(SearchEventsTopic, SearchEvent{
			Name:     name,
			Upstream: upstream,
			Matched:  len(matched),
			Result:   filter.sig,
		})
	}

	return filter.sig, nil
}

// walk performs one depth-first pass over the graph reachable from
// (origin, port) in the given direction, recording matches into filter.
// visited is fresh per pass so a second CONTINUE_WAKE pass can revisit
// elements the first pass already stopped at. ctx bounds the whole pass
// per the router's configured SearchTimeout.
func (r *Router) walk(ctx context.Context, e Element, port int, upstream bool, filter *elementFilter, visited mapset.Set[ElementID]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := portKey{e.ID(), port}

	var landings []portKey
	if upstream {
		landings = r.upstream[key]
	} else {
		landings = r.downstream[key]
	}

	for _, landing := range landings {
		elem, ok := r.elements[landing.id]
		if !ok {
			return errors.ErrPortFlowUndefined
		}
		if !visited.Add(elem.ID()) {
			continue
		}

		if filter.checkMatch(routerLocked{r}, elem, upstream, landing.port) {
			continue
		}

		flow := elem.PortFlow(upstream, landing.port)
		active := elem.PortActive(upstream, landing.port)
		if active || allZero(flow) {
			// back-pressure boundary: either PortFlow reports nothing
			// reachable, or PortActive flips push/pull across this
			// port - either way the search does not cross it.
			filter.markBoundary(active)
			continue
		}

		for nextPort, reachable := range flow {
			if !reachable {
				continue
			}
			if err := r.walk(ctx, elem, nextPort, upstream, filter, visited); err != nil {
				return err
			}
		}
	}

	return nil
}

func allZero(flow []bool) bool {
	for _, reachable := range flow {
		if reachable {
			return false
		}
	}
	return true
}
