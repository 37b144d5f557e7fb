// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package tracer

import (
	"fmt"
	"sync"
)

var (
	mu            sync.Mutex
	traceMessages []string
)

// Log adds a message to the trace log.
// Bridges poll from independent goroutines, so the log is guarded.
func Log(msg string) {
	mu.Lock()
	defer mu.Unlock()
	traceMessages = append(traceMessages, msg)
}

// Snapshot returns a copy of the accumulated trace log.
func Snapshot() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(traceMessages))
	copy(out, traceMessages)
	return out
}

// Flush prints the accumulated trace log and resets it.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	for _, msg := range traceMessages {
		fmt.Println(msg)
	}
	// reset so the next run starts fresh
	traceMessages = nil
}
