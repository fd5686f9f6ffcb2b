// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/nsdeps/pkgscan"
)

func setupPackage(t *testing.T) *pkgscan.Package {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"include/pkg", "src", "build"} {
		err := os.MkdirAll(filepath.Join(dir, d), 0755)
		if err != nil {
			t.Fatal(err)
		}
	}
	err := os.WriteFile(filepath.Join(dir, "package.xml"), nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	pkg, err := pkgscan.Open(dir, pkgscan.Option{
		Marker:      pkgscan.DefaultMarker,
		PublicDir:   pkgscan.DefaultPublicDir,
		ExcludeDirs: []string{"build"},
		Jobs:        1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return pkg
}

func TestNew_nilCallback(t *testing.T) {
	pkg := setupPackage(t)
	_, err := New(pkg, 0, nil)
	if !errors.Is(err, os.ErrInvalid) {
		t.Errorf("New(nil callback)=%v; want %v", err, os.ErrInvalid)
	}
}

func TestHandle(t *testing.T) {
	pkg := setupPackage(t)
	root := pkg.Root()
	w, err := New(pkg, time.Hour, func(context.Context, []pkgscan.File) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for _, fname := range []string{"include/pkg/a.hpp", "src/a.cc", "src/b.cc"} {
		err := os.WriteFile(filepath.Join(root, fname), nil, 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	for _, tc := range []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: filepath.Join(root, "include/pkg/a.hpp"), Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: filepath.Join(root, "src/a.cc"), Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: filepath.Join(root, "src/a.cc"), Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(root, "src/b.cc"), Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: filepath.Join(root, "README.md"), Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: filepath.Join(root, "build"), Op: fsnotify.Create}, false},
	} {
		got := w.handle(tc.ev)
		if got != tc.want {
			t.Errorf("handle(%v)=%t; want %t", tc.ev, got, tc.want)
		}
	}

	err = os.Remove(filepath.Join(root, "src/b.cc"))
	if err != nil {
		t.Fatal(err)
	}
	got := w.flush()
	want := []pkgscan.File{
		{Path: filepath.Join(root, "include/pkg/a.hpp"), Public: true},
		{Path: filepath.Join(root, "src/a.cc")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flush() diff -want +got:\n%s", diff)
	}
	if got := w.flush(); len(got) != 0 {
		t.Errorf("flush()=%v; want empty", got)
	}
}

func TestHandle_newDir(t *testing.T) {
	pkg := setupPackage(t)
	root := pkg.Root()
	w, err := New(pkg, time.Hour, func(context.Context, []pkgscan.File) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	dir := filepath.Join(root, "src", "detail")
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "impl.cpp"), nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if !w.handle(fsnotify.Event{Name: dir, Op: fsnotify.Create}) {
		t.Errorf("handle(create %s)=false; want true", dir)
	}
	got := w.flush()
	want := []pkgscan.File{{Path: filepath.Join(dir, "impl.cpp")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flush() diff -want +got:\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	pkg := setupPackage(t)
	root := pkg.Root()
	changed := make(chan []pkgscan.File, 1)
	w, err := New(pkg, 50*time.Millisecond, func(ctx context.Context, files []pkgscan.File) error {
		changed <- files
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	fname := filepath.Join(root, "src", "main.cc")
	err = os.WriteFile(fname, []byte("std::vector<int> v;\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case files := <-changed:
		want := []pkgscan.File{{Path: fname}}
		if diff := cmp.Diff(want, files); diff != "" {
			t.Errorf("onChange diff -want +got:\n%s", diff)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("timed out waiting for change of %s", fname)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run()=%v; want %v", err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("Run didn't return after cancel")
	}
}
