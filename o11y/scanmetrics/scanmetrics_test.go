// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scanmetrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/nsdeps/scandeps"
)

func TestFileDone(t *testing.T) {
	m := New("test")
	m.FileDone(&scandeps.Result{
		Public:     true,
		Lines:      10,
		Candidates: 4,
		Stats: map[scandeps.Status]int{
			scandeps.Resolved:   2,
			scandeps.Known:      1,
			scandeps.Unresolved: 1,
		},
	}, nil)
	m.FileDone(&scandeps.Result{
		Lines:      3,
		Candidates: 1,
		Stats: map[scandeps.Status]int{
			scandeps.Lone: 1,
		},
	}, nil)
	m.FileDone(nil, errors.New("read error"))

	want := Stats{
		Files:       3,
		PublicFiles: 1,
		FileErrs:    1,
		Lines:       13,
		Candidates:  5,
		Resolved:    2,
		Known:       1,
		Unresolved:  1,
	}
	if diff := cmp.Diff(want, m.Stats()); diff != "" {
		t.Errorf("Stats diff -want +got:\n%s", diff)
	}
}

func TestScanStarted(t *testing.T) {
	m := New("test")
	for _, c := range []struct{ scans, waits int }{
		{1, 0},
		{4, 7},
		{2, 3},
	} {
		m.ScanStarted(c.scans, c.waits)
	}
	st := m.Stats()
	if st.PeakScans != 4 || st.PeakWaits != 7 {
		t.Errorf("Stats()=%v; want peak_scans=4 peak_waits=7", st)
	}
}

func TestNil(t *testing.T) {
	var m *ScanMetrics
	m.FileDone(&scandeps.Result{Lines: 1}, nil)
	m.ScanStarted(1, 1)
	if got := m.Stats(); got != (Stats{}) {
		t.Errorf("nil Stats=%v; want zero", got)
	}
	if got := m.Name(); got != "<nil>" {
		t.Errorf("nil Name=%q; want <nil>", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New("pkg")
	m.FileDone(&scandeps.Result{Lines: 7}, nil)
	m.ScanStarted(2, 5)
	fname := filepath.Join(t.TempDir(), "nsdeps.prom")
	err := m.WriteTextfile(fname)
	if err != nil {
		t.Fatalf("WriteTextfile(%q)=%v", fname, err)
	}
	buf, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`nsdeps_scan_files_total{name="pkg"} 1`,
		`nsdeps_scan_lines_total{name="pkg"} 7`,
		`# TYPE nsdeps_scan_unresolved_total counter`,
		`nsdeps_scan_peak_scans{name="pkg"} 2`,
		`nsdeps_scan_peak_waits{name="pkg"} 5`,
		`# TYPE nsdeps_scan_peak_waits gauge`,
	} {
		if !strings.Contains(string(buf), want) {
			t.Errorf("textfile missing %q:\n%s", want, buf)
		}
	}
}
