// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package bridge adapts the native extraction core's poll-based completion
// primitive into Go's asynchronous idioms.
//
// The core exposes one pending operation as an opaque deferred handle with
// a non-blocking readiness probe and a single-use result accessor. This
// package drives such handles with an adaptive backoff loop (doubling from
// a small floor up to a cap) so that callers get an ordinary context-aware
// call or a one-shot Task future, without any goroutine busy-spinning on
// the probe and without the core needing a wake/notify callback.
//
// Cancellation is cooperative and bridge-local: cancelling an await stops
// the polling, but the core offers no cancel endpoint, so the underlying
// native operation keeps running and its handle is abandoned.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sassoftware/xtract-bridge/logger"
	"golang.org/x/sync/semaphore"
)

// Awaiter turns deferred handles into settled results using the polling
// policy in its Config. An Awaiter is safe for concurrent use; every await
// drives its own handle independently.
type Awaiter struct {
	cfg *Config
	sem *semaphore.Weighted

	// delay is the sole suspension point of the polling loop. Replaced in
	// tests to observe backoff intervals without sleeping.
	delay func(ctx context.Context, d time.Duration) error
}

// NewAwaiter validates the config and creates a new Awaiter.
func NewAwaiter(cfg *Config) *Awaiter {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	var sem *semaphore.Weighted
	if cfg.MaxConcurrentAwaits > 0 {
		sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentAwaits))
	}

	logger.Debug(fmt.Sprintf("Awaiter initialized: initial_interval=%v max_interval=%v timeout=%v max_concurrent_awaits=%d",
		cfg.InitialInterval, cfg.MaxInterval, cfg.Timeout, cfg.MaxConcurrentAwaits), true)

	return &Awaiter{
		cfg:   cfg,
		sem:   sem,
		delay: sleepContext,
	}
}

// Await blocks until the handle settles, then returns its outcome.
//
// The calling goroutine suspends only on the backoff timer, one interval at
// a time; cancellation and deadlines from ctx (or Config.Timeout) settle
// the await as CancelledError or TimeoutError without touching the
// accessor. On readiness the accessor is called exactly once and its
// outcome, success or native error, is returned verbatim.
func (a *Awaiter) Await(ctx context.Context, h DeferredHandle) (*ExtractionResult, error) {
	if h == nil {
		return nil, newValidationError("nil deferred handle", nil)
	}

	ctx, cancel := a.boundContext(ctx)
	defer cancel()

	taskID := uuid.NewString()
	start := time.Now()

	if err := a.acquireSlot(ctx, taskID, start); err != nil {
		return nil, err
	}
	defer a.releaseSlot()

	logger.Debug(fmt.Sprintf("Await started: task=%s", taskID), true)

	if err := a.pollUntilReady(ctx, taskID, start, h.IsReady); err != nil {
		return nil, err
	}

	result, err := h.Result()
	if err != nil {
		logger.Debug(fmt.Sprintf("Await rejected: task=%s err=%v", taskID, err), true)
		return nil, err
	}

	logger.Debug(fmt.Sprintf("Await resolved: task=%s elapsed=%v", taskID, time.Since(start)), true)
	return result, nil
}

// AwaitBatch blocks until the batch handle settles, then returns one result
// per submitted input, in submission order. The batch is a single unit of
// readiness; no partial results are surfaced.
func (a *Awaiter) AwaitBatch(ctx context.Context, h BatchHandle) ([]*ExtractionResult, error) {
	if h == nil {
		return nil, newValidationError("nil batch handle", nil)
	}

	ctx, cancel := a.boundContext(ctx)
	defer cancel()

	taskID := uuid.NewString()
	start := time.Now()

	if err := a.acquireSlot(ctx, taskID, start); err != nil {
		return nil, err
	}
	defer a.releaseSlot()

	logger.Debug(fmt.Sprintf("Batch await started: task=%s", taskID), true)

	if err := a.pollUntilReady(ctx, taskID, start, h.IsReady); err != nil {
		return nil, err
	}

	results, err := h.Results()
	if err != nil {
		logger.Debug(fmt.Sprintf("Batch await rejected: task=%s err=%v", taskID, err), true)
		return nil, err
	}

	logger.Debug(fmt.Sprintf("Batch await resolved: task=%s results=%d elapsed=%v", taskID, len(results), time.Since(start)), true)
	return results, nil
}

// ExtractFile submits a file to the core and awaits the result.
func (a *Awaiter) ExtractFile(ctx context.Context, core Extractor, path string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	if core == nil {
		return nil, newValidationError("nil extractor", nil)
	}
	h, err := core.SubmitFile(path, cfg)
	if err != nil {
		return nil, err
	}
	return a.Await(ctx, h)
}

// ExtractBytes submits an in-memory document to the core and awaits the result.
func (a *Awaiter) ExtractBytes(ctx context.Context, core Extractor, data []byte, mimeType string, cfg *ExtractionConfig) (*ExtractionResult, error) {
	if core == nil {
		return nil, newValidationError("nil extractor", nil)
	}
	h, err := core.SubmitBytes(data, mimeType, cfg)
	if err != nil {
		return nil, err
	}
	return a.Await(ctx, h)
}

// BatchExtractFiles submits multiple files to the core and awaits all results.
func (a *Awaiter) BatchExtractFiles(ctx context.Context, core Extractor, paths []string, cfg *ExtractionConfig) ([]*ExtractionResult, error) {
	if core == nil {
		return nil, newValidationError("nil extractor", nil)
	}
	h, err := core.SubmitBatchFiles(paths, cfg)
	if err != nil {
		return nil, err
	}
	return a.AwaitBatch(ctx, h)
}

// BatchExtractBytes submits multiple in-memory documents to the core and
// awaits all results.
func (a *Awaiter) BatchExtractBytes(ctx context.Context, core Extractor, items []BytesWithMime, cfg *ExtractionConfig) ([]*ExtractionResult, error) {
	if core == nil {
		return nil, newValidationError("nil extractor", nil)
	}
	h, err := core.SubmitBatchBytes(items, cfg)
	if err != nil {
		return nil, err
	}
	return a.AwaitBatch(ctx, h)
}

// pollUntilReady drives the adaptive backoff loop for one handle. It
// returns nil once the probe reports readiness. A non-nil return means the
// await settled early (cancelled or timed out) and the accessor must not
// be called.
func (a *Awaiter) pollUntilReady(ctx context.Context, taskID string, start time.Time, probe func() bool) error {
	interval := a.cfg.InitialInterval
	probes := 0

	for {
		if err := ctx.Err(); err != nil {
			return a.settleEarly(taskID, probes, start, err)
		}

		// Readiness is checked before any suspension, so an operation that
		// is ready on the first probe resolves without sleeping at all.
		probes++
		if probe() {
			logger.Debug(fmt.Sprintf("Handle ready: task=%s probes=%d", taskID, probes), true)
			return nil
		}

		if err := a.delay(ctx, interval); err != nil {
			return a.settleEarly(taskID, probes, start, err)
		}

		interval = nextInterval(interval, a.cfg.MaxInterval)
	}
}

// settleEarly maps a context error to the matching settlement kind. The
// native operation cannot be stopped from here; its handle is abandoned.
func (a *Awaiter) settleEarly(taskID string, probes int, start time.Time, cause error) error {
	err := settlementError(cause, time.Since(start))
	logger.Debug(fmt.Sprintf("Await settled early: task=%s probes=%d err=%v handle abandoned", taskID, probes, err), true)
	return err
}

// boundContext layers the awaiter-level timeout, if any, onto the caller's
// context.
func (a *Awaiter) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (a *Awaiter) acquireSlot(ctx context.Context, taskID string, start time.Time) error {
	if a.sem == nil {
		return nil
	}
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return a.settleEarly(taskID, 0, start, err)
	}
	logger.Debug(fmt.Sprintf("Slot acquired: task=%s", taskID), true)
	return nil
}

func (a *Awaiter) releaseSlot() {
	if a.sem != nil {
		a.sem.Release(1)
	}
}

func nextInterval(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		next = limit
	}
	return next
}

// sleepContext suspends the goroutine for d, waking early if ctx ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
