// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package watch watches a package for changes of files to scan.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"go.chromium.org/infra/build/nsdeps/pkgscan"
)

// DefaultDebounce is the default duration to wait for more changes
// before notifying.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files in a package.
type Watcher struct {
	pkg      *pkgscan.Package
	debounce time.Duration
	onChange func(context.Context, []pkgscan.File) error

	fsw     *fsnotify.Watcher
	pending map[string]pkgscan.File
}

// New creates a watcher of pkg.
// onChange is called with changed files, sorted by path, after no
// change is observed for debounce.
func New(pkg *pkgscan.Package, debounce time.Duration, onChange func(context.Context, []pkgscan.File) error) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		pkg:      pkg,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		pending:  make(map[string]pkgscan.File),
	}
	err = w.addRecursive(pkg.Root())
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close closes the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.pkg.ExcludeDir(path) {
			return filepath.SkipDir
		}
		log.Debugf("watch %s", path)
		return w.fsw.Add(path)
	})
}

// enqueueDir enqueues files in a newly created dir, since files may
// be created before the dir is watched.
func (w *Watcher) enqueueDir(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if w.pkg.ExcludeDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if f, ok := w.pkg.Classify(path); ok {
			w.pending[path] = f
		}
		return nil
	})
	if err != nil {
		log.Warnf("failed to walk %s: %v", dir, err)
	}
}

// handle handles ev and reports whether it is a change to notify.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		fi, err := os.Stat(ev.Name)
		if err == nil && fi.IsDir() {
			if w.pkg.ExcludeDir(ev.Name) {
				return false
			}
			err = w.addRecursive(ev.Name)
			if err != nil {
				log.Warnf("failed to watch %s: %v", ev.Name, err)
				return false
			}
			n := len(w.pending)
			w.enqueueDir(ev.Name)
			return len(w.pending) > n
		}
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	f, ok := w.pkg.Classify(ev.Name)
	if !ok {
		return false
	}
	w.pending[ev.Name] = f
	return true
}

// flush returns pending files that still exist, sorted by path.
func (w *Watcher) flush() []pkgscan.File {
	files := make([]pkgscan.File, 0, len(w.pending))
	for path, f := range w.pending {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("%s removed", path)
			continue
		}
		files = append(files, f)
	}
	clear(w.pending)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Run runs the watcher until ctx is done or onChange returns error.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)
		case <-timer.C:
			files := w.flush()
			if len(files) == 0 {
				continue
			}
			err := w.onChange(ctx, files)
			if err != nil {
				return err
			}
		}
	}
}
