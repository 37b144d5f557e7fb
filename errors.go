// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of a bridge error.
type ErrorKind string

const (
	ErrorKindInvalidState ErrorKind = "invalid_state"
	ErrorKindExtraction   ErrorKind = "extraction"
	ErrorKindCancelled    ErrorKind = "cancelled"
	ErrorKindTimedOut     ErrorKind = "timed_out"
	ErrorKindValidation   ErrorKind = "validation"
)

// BridgeError is implemented by all error types returned by this package.
type BridgeError interface {
	error
	Kind() ErrorKind
}

type baseError struct {
	kind    ErrorKind
	message string
	cause   error
}

func (e *baseError) Error() string {
	return e.message
}

func (e *baseError) Kind() ErrorKind {
	return e.kind
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// InvalidStateError reports an accessor call on a handle that is still
// pending. The polling loop probes readiness before every accessor call,
// so a correctly driven handle can never produce one.
type InvalidStateError struct {
	baseError
}

// NewInvalidStateError builds the defensive error a handle implementation
// returns when its accessor is invoked before readiness.
func NewInvalidStateError(message string) *InvalidStateError {
	return &InvalidStateError{baseError{
		kind:    ErrorKindInvalidState,
		message: messageWithFallback(message, "accessor called before handle was ready"),
	}}
}

// NativeExtractionError carries a failure reported by the native core.
// Message and native kind are forwarded verbatim; the bridge never
// interprets or rewrites them.
type NativeExtractionError struct {
	baseError
	NativeKind string
}

// NewNativeExtractionError wraps a native failure for propagation through
// an await.
func NewNativeExtractionError(nativeKind string, message string) *NativeExtractionError {
	return &NativeExtractionError{
		baseError: baseError{
			kind:    ErrorKindExtraction,
			message: messageWithFallback(message, "native extraction failed"),
		},
		NativeKind: nativeKind,
	}
}

// CancelledError reports that cancellation was observed before readiness.
// It wraps context.Canceled so errors.Is keeps working.
type CancelledError struct {
	baseError
}

func newCancelledError(cause error) *CancelledError {
	return &CancelledError{baseError{
		kind:    ErrorKindCancelled,
		message: "await cancelled before handle was ready",
		cause:   cause,
	}}
}

// TimeoutError reports that the deadline elapsed before readiness.
// It wraps context.DeadlineExceeded so errors.Is keeps working.
type TimeoutError struct {
	baseError
}

func newTimeoutError(elapsed time.Duration, cause error) *TimeoutError {
	return &TimeoutError{baseError{
		kind:    ErrorKindTimedOut,
		message: fmt.Sprintf("await timed out after %v", elapsed),
		cause:   cause,
	}}
}

// ValidationError reports bad configuration or submission input.
type ValidationError struct {
	baseError
}

func newValidationError(message string, cause error) *ValidationError {
	msg := messageWithFallback(message, "invalid input")
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &ValidationError{baseError{
		kind:    ErrorKindValidation,
		message: msg,
		cause:   cause,
	}}
}

func messageWithFallback(message string, fallback string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed != "" {
		return trimmed
	}
	return fallback
}

// settlementError maps the context error that ended a polling loop to the
// corresponding settlement kind. Cancellation and timeout are bridge-local
// outcomes and are never conflated with native extraction errors.
func settlementError(cause error, elapsed time.Duration) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		return newTimeoutError(elapsed, cause)
	}
	return newCancelledError(cause)
}
