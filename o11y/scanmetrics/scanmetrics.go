// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scanmetrics manages scan metrics.
package scanmetrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"go.chromium.org/infra/build/nsdeps/scandeps"
)

// ScanMetrics holds scan metrics.
type ScanMetrics struct {
	name string

	mu sync.Mutex

	files       int64
	publicFiles int64
	fileErrs    int64
	lines       int64
	candidates  int64
	resolved    int64
	known       int64
	unresolved  int64

	peakScans int64
	peakWaits int64
}

// New returns new scanmetrics for name.
func New(name string) *ScanMetrics {
	return &ScanMetrics{name: name}
}

// FileDone counts when a file scan is done. err is a scan error.
func (m *ScanMetrics) FileDone(r *scandeps.Result, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files++
	if err != nil {
		m.fileErrs++
		return
	}
	if r == nil {
		return
	}
	if r.Public {
		m.publicFiles++
	}
	m.lines += int64(r.Lines)
	m.candidates += int64(r.Candidates)
	m.resolved += int64(r.Stats[scandeps.Resolved])
	m.known += int64(r.Stats[scandeps.Known])
	m.unresolved += int64(r.Stats[scandeps.Unresolved])
}

// ScanStarted records the number of files being scanned, and waiting
// to be scanned, when a file scan starts.
func (m *ScanMetrics) ScanStarted(scans, waits int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.peakScans = max(m.peakScans, int64(scans))
	m.peakWaits = max(m.peakWaits, int64(waits))
}

// Name returns the name of the scanmetrics.
func (m *ScanMetrics) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Stats holds scanmetrics.
type Stats struct {
	// Number of scanned files.
	Files int64
	// Number of public files.
	PublicFiles int64
	// Number of files failed to scan.
	FileErrs int64

	// Number of scanned lines.
	Lines int64
	// Number of candidates.
	Candidates int64

	// Number of resolved candidates.
	Resolved int64
	// Number of candidates known without dependency.
	Known int64
	// Number of unresolved candidates.
	Unresolved int64

	// Max number of files scanned concurrently.
	PeakScans int64
	// Max number of files waiting for a scan slot.
	PeakWaits int64
}

func (s Stats) String() string {
	return fmt.Sprintf("files=%d (public=%d err=%d) lines=%d candidates=%d resolved=%d known=%d unresolved=%d peak_scans=%d peak_waits=%d",
		s.Files, s.PublicFiles, s.FileErrs, s.Lines, s.Candidates, s.Resolved, s.Known, s.Unresolved, s.PeakScans, s.PeakWaits)
}

// Stats returns the snapshot of the scanmetrics.
func (m *ScanMetrics) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Files:       m.files,
		PublicFiles: m.publicFiles,
		FileErrs:    m.fileErrs,
		Lines:       m.lines,
		Candidates:  m.candidates,
		Resolved:    m.resolved,
		Known:       m.known,
		Unresolved:  m.unresolved,
		PeakScans:   m.peakScans,
		PeakWaits:   m.peakWaits,
	}
}

// Registry returns a prometheus registry exposing the scanmetrics.
// Values are read on gather.
func (m *ScanMetrics) Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"name": m.Name()}
	for _, c := range []struct {
		name string
		help string
		v    func(Stats) int64
	}{
		{"files_total", "Number of scanned files.", func(s Stats) int64 { return s.Files }},
		{"public_files_total", "Number of scanned public files.", func(s Stats) int64 { return s.PublicFiles }},
		{"file_errors_total", "Number of files failed to scan.", func(s Stats) int64 { return s.FileErrs }},
		{"lines_total", "Number of scanned lines.", func(s Stats) int64 { return s.Lines }},
		{"candidates_total", "Number of qualified name candidates.", func(s Stats) int64 { return s.Candidates }},
		{"resolved_total", "Number of resolved candidates.", func(s Stats) int64 { return s.Resolved }},
		{"known_total", "Number of candidates known without dependency.", func(s Stats) int64 { return s.Known }},
		{"unresolved_total", "Number of unresolved candidates.", func(s Stats) int64 { return s.Unresolved }},
	} {
		v := c.v
		reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "nsdeps",
			Subsystem:   "scan",
			Name:        c.name,
			Help:        c.help,
			ConstLabels: labels,
		}, func() float64 {
			return float64(v(m.Stats()))
		}))
	}
	for _, g := range []struct {
		name string
		help string
		v    func(Stats) int64
	}{
		{"peak_scans", "Max number of files scanned concurrently.", func(s Stats) int64 { return s.PeakScans }},
		{"peak_waits", "Max number of files waiting for a scan slot.", func(s Stats) int64 { return s.PeakWaits }},
	} {
		v := g.v
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "nsdeps",
			Subsystem:   "scan",
			Name:        g.name,
			Help:        g.help,
			ConstLabels: labels,
		}, func() float64 {
			return float64(v(m.Stats()))
		}))
	}
	return reg
}

// WriteTextfile writes the scanmetrics to fname in the prometheus text
// format, for node exporter's textfile collector.
func (m *ScanMetrics) WriteTextfile(fname string) error {
	return prometheus.WriteToTextfile(fname, m.Registry())
}
