// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	for _, tc := range []struct {
		dur  time.Duration
		want string
	}{
		{want: "0.00s"},
		{dur: time.Millisecond, want: "0.00s"},
		{dur: 10 * time.Millisecond, want: "0.01s"},
		{dur: 12*time.Second + 345*time.Millisecond, want: "12.35s"},
		{dur: time.Minute, want: "1m00.00s"},
		{dur: time.Minute + time.Second + 100*time.Millisecond, want: "1m01.10s"},
		{dur: time.Hour + 12*time.Minute + 34*time.Second + 100*time.Millisecond, want: "1h12m34.10s"},
	} {
		got := FormatDuration(tc.dur)
		if got != tc.want {
			t.Errorf("FormatDuration(%v)=%q; want %q", tc.dur, got, tc.want)
		}
	}
}

func TestIsTerminal_file(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Errorf("IsTerminal(%s)=true; want false", f.Name())
	}
}
