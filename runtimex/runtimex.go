// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex provides process level runtime information.
package runtimex

import (
	"runtime"
	"sync"
)

var numCPU = sync.OnceValue(func() int {
	if n := activeProcessorCount(); n > 0 {
		return n
	}
	return runtime.NumCPU()
})

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, it counts CPUs in all processor groups, while
// runtime.NumCPU only counts a single group (up to 64).
func NumCPU() int {
	return numCPU()
}
