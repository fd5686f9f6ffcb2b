// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package find is find subcommand to find symbol dependencies of a package.
package find

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/infra/build/nsdeps/o11y/scanmetrics"
	"go.chromium.org/infra/build/nsdeps/pkgscan"
	"go.chromium.org/infra/build/nsdeps/report"
	"go.chromium.org/infra/build/nsdeps/scandeps"
	"go.chromium.org/infra/build/nsdeps/symtab"
	"go.chromium.org/infra/build/nsdeps/ui"
)

const usage = `find symbol dependencies of a package

Scans C/C++ files in <package_path> for namespace qualified symbols
and reports the includes, targets and exports they need.

 $ nsdeps find -t std.yaml -t ros.yaml [-p] <package_path>
`

// Cmd returns the Command for the `find` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "find <args>... <package_path>",
		ShortDesc: "find symbol dependencies of a package",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	tableopt  symtab.Option
	pkgopt    pkgscan.Option
	reportopt report.Option

	metricsTextfile string

	out io.Writer
}

func (c *run) init() {
	c.tableopt.RegisterFlags(&c.Flags)
	c.pkgopt.RegisterFlags(&c.Flags)
	c.reportopt.RegisterFlags(&c.Flags)
	c.Flags.StringVar(&c.metricsTextfile, "metrics_textfile", "", "write scan metrics in prometheus text format to the file")
	c.out = os.Stdout
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	if len(args) != 1 {
		return fmt.Errorf("want 1 package_path, got %d args: %w", len(args), flag.ErrHelp)
	}
	tables, err := c.tableopt.Load()
	if err != nil {
		return err
	}
	pkg, err := pkgscan.Open(args[0], c.pkgopt)
	if err != nil {
		return err
	}
	files, err := pkg.Files(ctx)
	if err != nil {
		return err
	}
	log.Infof("%s: %d files to scan", pkg.Root(), len(files))

	m := scanmetrics.New("find")
	started := time.Now()
	results, err := pkg.Scan(ctx, scandeps.New(tables), m, files)
	log.Infof("scan done in %s: %s", ui.FormatDuration(time.Since(started)), m.Stats())
	if c.metricsTextfile != "" {
		merr := m.WriteTextfile(c.metricsTextfile)
		if merr != nil {
			log.Warnf("failed to write metrics to %s: %v", c.metricsTextfile, merr)
		}
	}
	if err != nil {
		return err
	}
	return report.Write(c.out, results, c.reportopt)
}
