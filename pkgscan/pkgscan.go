// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package pkgscan scans C/C++ files in a package for symbol dependencies.
//
// A package is a directory with a marker file (package.xml by default).
// Header files (.h, .hpp) under the public include dir (include by
// default) of the package are public, other headers and sources
// (.cc, .cpp, .cxx) are private.
package pkgscan

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/infra/build/nsdeps/o11y/scanmetrics"
	"go.chromium.org/infra/build/nsdeps/runtimex"
	"go.chromium.org/infra/build/nsdeps/scandeps"
	"go.chromium.org/infra/build/nsdeps/sync/semaphore"
	"go.chromium.org/infra/build/nsdeps/toolsupport/cmdutil"
)

// ErrNoPackageMarker is an error when a package root has no marker file.
var ErrNoPackageMarker = errors.New("package marker not found")

const (
	// DefaultMarker is the default marker file of a package root.
	DefaultMarker = "package.xml"

	// DefaultPublicDir is the default public include dir.
	DefaultPublicDir = "include"
)

var (
	headerExts = map[string]bool{
		".h":   true,
		".hpp": true,
	}
	sourceExts = map[string]bool{
		".cc":  true,
		".cpp": true,
		".cxx": true,
	}
)

// Option is an option of a package scan.
type Option struct {
	// Marker is a file name that must exist in the package root.
	// Empty disables the check.
	Marker string

	// PublicDir is a dir name under the package root for public headers.
	PublicDir string

	// ExcludeDirs are glob patterns of dir base names to skip.
	ExcludeDirs cmdutil.ListFlag

	// ExcludeFiles are glob patterns of file base names to skip.
	ExcludeFiles cmdutil.ListFlag

	// Jobs is the number of files scanned concurrently.
	Jobs int

	// KeepGoing skips files failed to read, rather than failing the scan.
	KeepGoing bool
}

// RegisterFlags registers flags for the option.
func (o *Option) RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.StringVar(&o.Marker, "marker", DefaultMarker, "marker file that must exist in package root. empty disables the check")
	flagSet.StringVar(&o.PublicDir, "public_dir", DefaultPublicDir, "dir in package root for public headers")
	flagSet.Var(&o.ExcludeDirs, "exclude_dir", "glob pattern of dir names to skip. can be repeated")
	flagSet.Var(&o.ExcludeFiles, "exclude_file", "glob pattern of file names to skip. can be repeated")
	flagSet.IntVar(&o.Jobs, "j", runtimex.NumCPU(), "number of files scanned concurrently")
	flagSet.BoolVar(&o.KeepGoing, "keep_going", false, "skip files failed to read with warning")
}

// File is a file in a package.
type File struct {
	Path   string
	Public bool
}

// Package is a package to scan.
type Package struct {
	root string
	opt  Option

	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob

	sema *semaphore.Semaphore
}

// Open opens a package at root.
// It returns error wrapping ErrNoPackageMarker if root doesn't have
// the marker file.
func Open(root string, opt Option) (*Package, error) {
	if opt.Marker != "" {
		fi, err := os.Stat(filepath.Join(root, opt.Marker))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%q does not contain a %q file: %w", root, opt.Marker, ErrNoPackageMarker)
			}
			return nil, err
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("%q: %q is a directory: %w", root, opt.Marker, ErrNoPackageMarker)
		}
	}
	excludeDirs, err := compileGlobs(opt.ExcludeDirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	excludeFiles, err := compileGlobs(opt.ExcludeFiles)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}
	if opt.Jobs < 1 {
		opt.Jobs = runtimex.NumCPU()
	}
	return &Package{
		root:         root,
		opt:          opt,
		excludeDirs:  excludeDirs,
		excludeFiles: excludeFiles,
		sema:         semaphore.New("scan", opt.Jobs),
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Root returns the package root.
func (p *Package) Root() string {
	return p.root
}

// Classify classifies fname in the package.
// It returns false if fname is not a C/C++ file to scan.
func (p *Package) Classify(fname string) (File, bool) {
	if matchAny(p.excludeFiles, filepath.Base(fname)) {
		return File{}, false
	}
	rel, err := filepath.Rel(p.root, fname)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return File{}, false
	}
	ext := filepath.Ext(fname)
	switch {
	case headerExts[ext]:
		return File{Path: fname, Public: p.isPublic(rel)}, true
	case sourceExts[ext]:
		return File{Path: fname}, true
	}
	return File{}, false
}

// isPublic reports whether rel is in the public include dir.
func (p *Package) isPublic(rel string) bool {
	if p.opt.PublicDir == "" {
		return false
	}
	dir, _, ok := strings.Cut(filepath.ToSlash(rel), "/")
	return ok && dir == p.opt.PublicDir
}

// ExcludeDir reports whether dir is excluded.
func (p *Package) ExcludeDir(dir string) bool {
	if filepath.Clean(dir) == filepath.Clean(p.root) {
		return false
	}
	return matchAny(p.excludeDirs, filepath.Base(dir))
}

// Files returns files to scan in the package, in lexical order.
func (p *Package) Files(ctx context.Context) ([]File, error) {
	var files []File
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p.ExcludeDir(path) {
				log.Debugf("skip dir %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		f, ok := p.Classify(path)
		if !ok {
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Scan scans files with s and returns results in the order of files.
// m may be nil.
// With KeepGoing, files failed to read are logged and omitted from
// the results.
func (p *Package) Scan(ctx context.Context, s *scandeps.Scanner, m *scanmetrics.ScanMetrics, files []File) ([]*scandeps.Result, error) {
	results := make([]*scandeps.Result, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		eg.Go(func() error {
			return p.sema.Do(ctx, func(ctx context.Context) error {
				m.ScanStarted(p.sema.NumServs(), p.sema.NumWaits())
				if log.GetLevel() <= log.DebugLevel {
					log.Debugf("scan %s [%s slot %d/%d]", f.Path, p.sema.Name(), p.sema.TID(ctx), p.sema.Capacity())
				}
				r, err := scanFile(ctx, s, f)
				m.FileDone(r, err)
				if err != nil {
					if p.opt.KeepGoing && ctx.Err() == nil {
						log.Warnf("skip %s: %v", f.Path, err)
						return nil
					}
					return err
				}
				results[i] = r
				return nil
			})
		})
	}
	err := eg.Wait()
	log.Debugf("semaphore %s: capacity=%d requests=%d", p.sema.Name(), p.sema.Capacity(), p.sema.NumRequests())
	if err != nil {
		return nil, err
	}
	ret := results[:0]
	for _, r := range results {
		if r == nil {
			continue
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func scanFile(ctx context.Context, s *scandeps.Scanner, f File) (*scandeps.Result, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return s.Scan(ctx, f.Path, r, f.Public)
}
