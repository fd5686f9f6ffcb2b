// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtimex

import (
	"runtime"
	"testing"
)

func TestNumCPU(t *testing.T) {
	got := NumCPU()
	if got < 1 {
		t.Errorf("NumCPU()=%d; want >= 1", got)
	}
	if runtime.GOOS != "windows" && got != runtime.NumCPU() {
		t.Errorf("NumCPU()=%d; want %d", got, runtime.NumCPU())
	}
}
