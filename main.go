// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// nsdeps finds dependencies of C/C++ files from namespace qualified symbols.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/infra/build/nsdeps/subcmd/find"
	"go.chromium.org/infra/build/nsdeps/subcmd/help"
	"go.chromium.org/infra/build/nsdeps/subcmd/resolve"
	versioncmd "go.chromium.org/infra/build/nsdeps/subcmd/version"
	"go.chromium.org/infra/build/nsdeps/subcmd/watch"
)

const version = "nsdeps v0.1.0"

var logLevel = flag.String("log_level", "info", `log level. "debug", "info", "warn", "error" or "fatal"`)

func getApplication() *subcommands.DefaultApplication {
	return &subcommands.DefaultApplication{
		Name:  "nsdeps",
		Title: "tool to find dependencies of C/C++ files from namespace qualified symbols",
		Commands: []*subcommands.Command{
			find.Cmd(),
			help.Cmd(),
			resolve.Cmd(),
			versioncmd.Cmd(version),
			watch.Cmd(),
		},
	}
}

func main() {
	os.Exit(nsdepsMain())
}

func nsdepsMain() int {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -log_level: %v\n", err)
		flag.Usage()
		return 2
	}
	log.SetLevel(lvl)

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	if buildinfo, ok := debug.ReadBuildInfo(); ok {
		log.Debugf("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
	}
	return subcommands.Run(getApplication(), flag.Args())
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
