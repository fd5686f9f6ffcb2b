// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNsdepsMain(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "std.yaml")
	err := os.WriteFile(table, []byte(`empty_token: "std::"
use_angle_brackets: true
symbols:
  - symbol_name: "std::vector"
    include: "vector"
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	pkg := filepath.Join(dir, "pkg")
	err = os.MkdirAll(filepath.Join(pkg, "src"), 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(pkg, "package.xml"), nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(pkg, "src", "main.cc"), []byte("std::vector<int> v;\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tc := range []struct {
		name string
		args []string
		want int
	}{
		{
			name: "find",
			args: []string{"-log_level", "warn", "find", "-t", table, pkg},
			want: 0,
		},
		{
			name: "find-no-marker",
			args: []string{"find", "-t", table, dir},
			want: 1,
		},
		{
			name: "resolve",
			args: []string{"resolve", "-t", table, "std::vector"},
			want: 0,
		},
		{
			name: "bad-log-level",
			args: []string{"-log_level", "verbose", "find"},
			want: 2,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			os.Args = append([]string{"nsdeps"}, tc.args...)
			got := nsdepsMain()
			if got != tc.want {
				t.Errorf("nsdepsMain(%q)=%d; want %d", tc.args, got, tc.want)
			}
		})
	}
}
