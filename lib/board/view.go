// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package board

import (
	"context"
	"log/slog"
	"sync"

	"github.com/swiftticket/swiftticket/lib/authorization"
	"github.com/swiftticket/swiftticket/lib/ticketfilter"
)

// View holds the snapshot for one open screen.
type View struct {
	loader  *Loader
	session *authorization.Session
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	spec       ticketfilter.Spec
	snapshot   *Snapshot
	generation uint64
	committed  uint64
	closed     bool
	wg         sync.WaitGroup
}

// NewView creates a view whose refreshes are bound to parent. The
// view holds no snapshot until the first Refresh commits.
func NewView(parent context.Context, loader *Loader, session *authorization.Session, spec ticketfilter.Spec) *View {
	ctx, cancel := context.WithCancel(parent)
	return &View{
		loader:  loader,
		session: session,
		logger:  loader.logger,
		ctx:     ctx,
		cancel:  cancel,
		spec:    spec,
	}
}

// Snapshot returns the last committed snapshot, or nil before the
// first successful refresh.
func (view *View) Snapshot() *Snapshot {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.snapshot
}

// Spec returns the view's current filter.
func (view *View) Spec() ticketfilter.Spec {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.spec
}

// SetSpec changes the filter and re-derives the committed snapshot
// from the data already fetched. No request is made.
func (view *View) SetSpec(spec ticketfilter.Spec) *Snapshot {
	view.mu.Lock()
	defer view.mu.Unlock()
	view.spec = spec
	if view.snapshot != nil && !view.closed {
		view.snapshot = view.snapshot.Refilter(spec, view.session)
	}
	return view.snapshot
}

// Refresh starts a background load. The returned channel receives
// exactly one value and is then closed: nil when the result was
// committed or dropped, or the load error. A result is dropped when
// the view was closed or a later Refresh committed first.
func (view *View) Refresh() <-chan error {
	done := make(chan error, 1)

	view.mu.Lock()
	if view.closed {
		view.mu.Unlock()
		done <- nil
		close(done)
		return done
	}
	view.generation++
	generation := view.generation
	spec := view.spec
	view.wg.Add(1)
	view.mu.Unlock()

	go func() {
		defer view.wg.Done()
		defer close(done)

		snapshot, err := view.loader.Load(view.ctx, view.session, spec)

		view.mu.Lock()
		defer view.mu.Unlock()
		switch {
		case view.closed:
			view.logger.Debug("discarding refresh result for closed view")
			done <- nil
		case err != nil:
			done <- err
		case generation < view.committed:
			done <- nil
		default:
			if view.spec != spec {
				snapshot = snapshot.Refilter(view.spec, view.session)
			}
			view.snapshot = snapshot
			view.committed = generation
			done <- nil
		}
	}()
	return done
}

// Close cancels any refresh in flight. Results that arrive afterwards
// are discarded. Safe to call multiple times.
func (view *View) Close() {
	view.mu.Lock()
	view.closed = true
	view.mu.Unlock()
	view.cancel()
}

// Wait blocks until every refresh goroutine has exited.
func (view *View) Wait() {
	view.wg.Wait()
}
