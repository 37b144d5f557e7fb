// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

// DeferredHandle is an opaque, single-use reference to one in-flight
// operation owned by the native core.
//
// A handle passed to an Awaiter is exclusively owned by that await until
// settlement: no other goroutine may probe or read it, and it must not be
// touched again after the accessor returns, successfully or with error.
type DeferredHandle interface {
	// IsReady reports whether the result is durably available. It is
	// non-blocking and side-effect-free, and may be called any number of
	// times while the operation is pending.
	IsReady() bool

	// Result returns the extraction outcome and consumes the handle.
	// Valid only once IsReady has returned true; implementations return an
	// *InvalidStateError when called while still pending. The polling loop
	// never triggers that path by construction.
	Result() (*ExtractionResult, error)
}

// BatchHandle is the batch analogue of DeferredHandle. The batch is a
// single unit of readiness: no partial results are observable before the
// whole batch completes.
type BatchHandle interface {
	// IsReady reports whether all results are durably available.
	IsReady() bool

	// Results returns one result per submitted input and consumes the
	// handle. Index i of the returned slice corresponds to index i of the
	// submitted input list, even when the core completed sub-items out of
	// order internally.
	Results() ([]*ExtractionResult, error)
}

// Extractor is the submission surface of the native core. Submissions
// return immediately with a handle; the work runs inside the core.
type Extractor interface {
	SubmitFile(path string, cfg *ExtractionConfig) (DeferredHandle, error)
	SubmitBytes(data []byte, mimeType string, cfg *ExtractionConfig) (DeferredHandle, error)
	SubmitBatchFiles(paths []string, cfg *ExtractionConfig) (BatchHandle, error)
	SubmitBatchBytes(items []BytesWithMime, cfg *ExtractionConfig) (BatchHandle, error)
}
