// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import "context"

// Task is a one-shot future over a single deferred handle. It settles
// exactly once; after settlement the outcome is immutable and polling
// never resumes.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc

	result *ExtractionResult
	err    error
}

// Spawn starts polling the handle on its own goroutine and returns a Task
// that settles when the handle does.
func (a *Awaiter) Spawn(ctx context.Context, h DeferredHandle) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		t.result, t.err = a.Await(ctx, h)
	}()
	return t
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the task settles and returns the settled outcome.
// Repeated calls return the identical outcome.
func (t *Task) Result() (*ExtractionResult, error) {
	<-t.done
	return t.result, t.err
}

// Cancel requests cooperative cancellation. If the task has not settled
// yet, it settles as CancelledError on its next wake at the latest. The
// underlying native operation is not stopped; its handle is abandoned.
func (t *Task) Cancel() {
	t.cancel()
}

// BatchTask is the batch analogue of Task.
type BatchTask struct {
	done   chan struct{}
	cancel context.CancelFunc

	results []*ExtractionResult
	err     error
}

// SpawnBatch starts polling the batch handle on its own goroutine and
// returns a BatchTask that settles when the whole batch does.
func (a *Awaiter) SpawnBatch(ctx context.Context, h BatchHandle) *BatchTask {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	t := &BatchTask{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		t.results, t.err = a.AwaitBatch(ctx, h)
	}()
	return t
}

// Done is closed once the task has settled.
func (t *BatchTask) Done() <-chan struct{} {
	return t.done
}

// Results blocks until the task settles and returns the settled outcome,
// one result per submitted input in submission order.
func (t *BatchTask) Results() ([]*ExtractionResult, error) {
	<-t.done
	return t.results, t.err
}

// Cancel requests cooperative cancellation, as with Task.Cancel.
func (t *BatchTask) Cancel() {
	t.cancel()
}
