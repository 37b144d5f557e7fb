// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package sim provides an in-process stand-in for the native extraction
// core, implementing the bridge's Extractor, DeferredHandle, and
// BatchHandle contracts. Submissions spawn the simulated work on a
// goroutine and fill a mutex-guarded slot that the readiness probe checks.
//
// Latency and failure injection make it suitable for examples and for
// exercising the bridge's timing-sensitive behavior in tests.
package sim

import (
	"fmt"
	"sync"
	"time"

	bridge "github.com/sassoftware/xtract-bridge"
	"golang.org/x/sync/errgroup"
)

// Core simulates the native extraction core.
type Core struct {
	latency     time.Duration
	itemLatency map[string]time.Duration
	failures    map[string]failure
}

type failure struct {
	kind    string
	message string
}

// Option configures a simulated Core.
type Option func(*Core)

// WithLatency sets the simulated extraction time applied to every input.
func WithLatency(d time.Duration) Option {
	return func(c *Core) {
		c.latency = d
	}
}

// WithItemLatency overrides the latency for one input key (a file path, or
// the MIME type for byte submissions). Distinct per-item latencies let a
// batch complete its sub-items out of order.
func WithItemLatency(key string, d time.Duration) Option {
	return func(c *Core) {
		c.itemLatency[key] = d
	}
}

// WithFailure makes extraction of the given input key fail with a native
// error of the given kind and message.
func WithFailure(key string, kind string, message string) Option {
	return func(c *Core) {
		c.failures[key] = failure{kind: kind, message: message}
	}
}

// NewCore creates a simulated core.
func NewCore(opts ...Option) *Core {
	c := &Core{
		itemLatency: make(map[string]time.Duration),
		failures:    make(map[string]failure),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitFile starts a simulated single-file extraction and returns its
// handle immediately.
func (c *Core) SubmitFile(path string, cfg *bridge.ExtractionConfig) (bridge.DeferredHandle, error) {
	if path == "" {
		return nil, bridge.NewNativeExtractionError("validation", "Validation error: empty file path")
	}
	d := newDeferred()
	go func() {
		d.complete(c.extractOne(path, "application/pdf"))
	}()
	return d, nil
}

// SubmitBytes starts a simulated in-memory extraction and returns its
// handle immediately.
func (c *Core) SubmitBytes(data []byte, mimeType string, cfg *bridge.ExtractionConfig) (bridge.DeferredHandle, error) {
	if mimeType == "" {
		return nil, bridge.NewNativeExtractionError("validation", "Validation error: empty mime type")
	}
	d := newDeferred()
	go func() {
		d.complete(c.extractOne(mimeType, mimeType))
	}()
	return d, nil
}

// SubmitBatchFiles starts a simulated batch extraction. Sub-items run
// concurrently and may finish in any order; the result slice always maps
// index i to paths[i].
func (c *Core) SubmitBatchFiles(paths []string, cfg *bridge.ExtractionConfig) (bridge.BatchHandle, error) {
	d := newBatchDeferred()
	go func() {
		d.complete(c.extractAll(paths, func(p string) (*bridge.ExtractionResult, error) {
			return c.extractOne(p, "application/pdf")
		}))
	}()
	return d, nil
}

// SubmitBatchBytes is the byte-based batch analogue of SubmitBatchFiles.
func (c *Core) SubmitBatchBytes(items []bridge.BytesWithMime, cfg *bridge.ExtractionConfig) (bridge.BatchHandle, error) {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.MimeType
	}
	d := newBatchDeferred()
	go func() {
		d.complete(c.extractAll(keys, func(k string) (*bridge.ExtractionResult, error) {
			return c.extractOne(k, k)
		}))
	}()
	return d, nil
}

func (c *Core) extractOne(key string, mimeType string) (*bridge.ExtractionResult, error) {
	time.Sleep(c.latencyFor(key))
	if f, ok := c.failures[key]; ok {
		return nil, bridge.NewNativeExtractionError(f.kind, f.message)
	}
	return &bridge.ExtractionResult{
		Content:  fmt.Sprintf("extracted content of %s", key),
		MimeType: mimeType,
		Success:  true,
	}, nil
}

func (c *Core) extractAll(keys []string, one func(string) (*bridge.ExtractionResult, error)) ([]*bridge.ExtractionResult, error) {
	results := make([]*bridge.ExtractionResult, len(keys))
	g := new(errgroup.Group)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			res, err := one(key)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Core) latencyFor(key string) time.Duration {
	if d, ok := c.itemLatency[key]; ok {
		return d
	}
	return c.latency
}

// deferred is a single-result slot, filled once by the worker goroutine
// and drained once by the accessor.
type deferred struct {
	mu       sync.Mutex
	ready    bool
	consumed bool
	result   *bridge.ExtractionResult
	err      error
}

func newDeferred() *deferred {
	return &deferred{}
}

func (d *deferred) complete(result *bridge.ExtractionResult, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.result = result
	d.err = err
	d.ready = true
}

// IsReady reports whether the slot has been filled.
func (d *deferred) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Result drains the slot. Calling it before readiness or twice violates
// the single-use handle contract and returns an InvalidStateError.
func (d *deferred) Result() (*bridge.ExtractionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		return nil, bridge.NewInvalidStateError("result requested before the operation completed")
	}
	if d.consumed {
		return nil, bridge.NewInvalidStateError("deferred handle already consumed")
	}
	d.consumed = true
	return d.result, d.err
}

// batchDeferred is the batch slot. The whole batch is one unit of
// readiness: the slot is filled only after every sub-item finished.
type batchDeferred struct {
	mu       sync.Mutex
	ready    bool
	consumed bool
	results  []*bridge.ExtractionResult
	err      error
}

func newBatchDeferred() *batchDeferred {
	return &batchDeferred{}
}

func (d *batchDeferred) complete(results []*bridge.ExtractionResult, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = results
	d.err = err
	d.ready = true
}

// IsReady reports whether all sub-items have completed.
func (d *batchDeferred) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Results drains the slot, preserving submission order.
func (d *batchDeferred) Results() ([]*bridge.ExtractionResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		return nil, bridge.NewInvalidStateError("results requested before the batch completed")
	}
	if d.consumed {
		return nil, bridge.NewInvalidStateError("batch handle already consumed")
	}
	d.consumed = true
	return d.results, d.err
}
