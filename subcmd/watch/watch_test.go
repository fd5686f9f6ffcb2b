// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package watch

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.chromium.org/infra/build/nsdeps/pkgscan"
)

func TestRun_errors(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "std.yaml")
	err := os.WriteFile(table, []byte("empty_token: \"std::\"\nsymbols:\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name string
		args []string
		want error
	}{
		{
			name: "no-package",
			args: []string{"-t", table},
			want: flag.ErrHelp,
		},
		{
			name: "no-marker",
			args: []string{"-t", table, dir},
			want: pkgscan.ErrNoPackageMarker,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &run{}
			c.init()
			c.out = &bytes.Buffer{}
			err := c.Flags.Parse(tc.args)
			if err != nil {
				t.Fatal(err)
			}
			err = c.run(context.Background(), c.Flags.Args())
			if !errors.Is(err, tc.want) {
				t.Errorf("run()=%v; want %v", err, tc.want)
			}
		})
	}
}

func TestRun_canceled(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "std.yaml")
	err := os.WriteFile(table, []byte("empty_token: \"std::\"\nsymbols:\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "package.xml"), nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	c := &run{}
	c.init()
	c.out = &bytes.Buffer{}
	err = c.Flags.Parse([]string{"-t", table, "-debounce", "10ms", dir})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = c.run(ctx, c.Flags.Args())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("run()=%v; want %v", err, context.DeadlineExceeded)
	}
}
