// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package sim

import (
	"context"
	"testing"
	"time"

	bridge "github.com/sassoftware/xtract-bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCore_SingleExtraction(t *testing.T) {
	core := NewCore(WithLatency(5 * time.Millisecond))
	awaiter := bridge.NewAwaiter(nil)

	result, err := awaiter.ExtractFile(context.Background(), core, "report.pdf", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "extracted content of report.pdf", result.Content)
	assert.Equal(t, "application/pdf", result.MimeType)
}

func TestCore_BytesExtraction(t *testing.T) {
	core := NewCore()
	awaiter := bridge.NewAwaiter(nil)

	result, err := awaiter.ExtractBytes(context.Background(), core, []byte("<html></html>"), "text/html", nil)
	require.NoError(t, err)

	assert.Equal(t, "text/html", result.MimeType)
}

// Sub-items finish in reverse submission order; the batch result slice
// still maps index i to input i.
func TestCore_BatchOrderingUnderOutOfOrderCompletion(t *testing.T) {
	paths := []string{"slow.pdf", "medium.pdf", "fast.pdf"}
	core := NewCore(
		WithItemLatency("slow.pdf", 30*time.Millisecond),
		WithItemLatency("medium.pdf", 15*time.Millisecond),
		WithItemLatency("fast.pdf", 1*time.Millisecond),
	)
	awaiter := bridge.NewAwaiter(nil)

	results, err := awaiter.BatchExtractFiles(context.Background(), core, paths, nil)
	require.NoError(t, err)

	require.Len(t, results, len(paths))
	for i, path := range paths {
		assert.Equal(t, "extracted content of "+path, results[i].Content,
			"result %d does not correspond to input %d", i, i)
	}
}

func TestCore_BatchFailurePropagates(t *testing.T) {
	core := NewCore(
		WithFailure("bad.pdf", "parsing", "Parsing error: damaged xref table"),
	)
	awaiter := bridge.NewAwaiter(nil)

	_, err := awaiter.BatchExtractFiles(context.Background(), core, []string{"good.pdf", "bad.pdf"}, nil)

	var native *bridge.NativeExtractionError
	require.ErrorAs(t, err, &native)
	assert.Equal(t, "Parsing error: damaged xref table", native.Error())
	assert.Equal(t, "parsing", native.NativeKind)
}

func TestCore_SingleFailurePropagates(t *testing.T) {
	core := NewCore(
		WithFailure("bad.pdf", "ocr", "OCR error: tesseract binary not found"),
	)
	awaiter := bridge.NewAwaiter(nil)

	_, err := awaiter.ExtractFile(context.Background(), core, "bad.pdf", nil)

	var native *bridge.NativeExtractionError
	require.ErrorAs(t, err, &native)
	assert.Equal(t, "OCR error: tesseract binary not found", native.Error())
}

// The defensive single-use contract of the handle itself.
func TestDeferred_PrematureAccess(t *testing.T) {
	core := NewCore(WithLatency(200 * time.Millisecond))

	h, err := core.SubmitFile("slow.pdf", nil)
	require.NoError(t, err)

	assert.False(t, h.IsReady())
	_, err = h.Result()

	var invalid *bridge.InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

func TestDeferred_SingleUse(t *testing.T) {
	core := NewCore()
	awaiter := bridge.NewAwaiter(nil)

	h, err := core.SubmitFile("doc.pdf", nil)
	require.NoError(t, err)

	_, err = awaiter.Await(context.Background(), h)
	require.NoError(t, err)

	// The handle was consumed by the await; reading again must fail.
	_, err = h.Result()
	var invalid *bridge.InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

func TestCore_SubmitValidation(t *testing.T) {
	core := NewCore()

	_, err := core.SubmitFile("", nil)
	var native *bridge.NativeExtractionError
	require.ErrorAs(t, err, &native)

	_, err = core.SubmitBytes([]byte("data"), "", nil)
	require.ErrorAs(t, err, &native)
}

func TestCore_BatchBytes(t *testing.T) {
	core := NewCore()
	awaiter := bridge.NewAwaiter(nil)

	items := []bridge.BytesWithMime{
		{Data: []byte("a"), MimeType: "text/plain"},
		{Data: []byte("b"), MimeType: "text/html"},
	}
	results, err := awaiter.BatchExtractBytes(context.Background(), core, items, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "text/plain", results[0].MimeType)
	assert.Equal(t, "text/html", results[1].MimeType)
}

func TestCore_EmptyBatch(t *testing.T) {
	core := NewCore()
	awaiter := bridge.NewAwaiter(nil)

	results, err := awaiter.BatchExtractFiles(context.Background(), core, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
