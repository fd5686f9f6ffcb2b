// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package watch is watch subcommand to rescan a package on changes.
package watch

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
	"go.chromium.org/infra/build/nsdeps/watch"
)

const usage = `watch a package and report symbol dependencies of changed files

Scans all C/C++ files in <package_path> once, then rescans and reports
files when they change, until interrupted.

 $ nsdeps watch -t std.yaml [-debounce 300ms] <package_path>
`

// Cmd returns the Command for the `watch` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "watch <args>... <package_path>",
		ShortDesc: "watch a package and report symbol dependencies",
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

	debounce        time.Duration
	metricsTextfile string

	out io.Writer
}

func (c *run) init() {
	c.tableopt.RegisterFlags(&c.Flags)
	c.pkgopt.RegisterFlags(&c.Flags)
	c.reportopt.RegisterFlags(&c.Flags)
	c.Flags.DurationVar(&c.debounce, "debounce", watch.DefaultDebounce, "duration to wait for more changes before rescan")
	c.Flags.StringVar(&c.metricsTextfile, "metrics_textfile", "", "write scan metrics in prometheus text format to the file after each scan")
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
	// Watch before the initial scan not to miss changes during the scan.
	w, err := watch.New(pkg, c.debounce, func(ctx context.Context, files []pkgscan.File) error {
		err := c.scan(ctx, pkg, tables, files)
		if err != nil && ctx.Err() == nil {
			log.Warnf("rescan failed: %v", err)
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	defer w.Close()

	files, err := pkg.Files(ctx)
	if err != nil {
		return err
	}
	err = c.scan(ctx, pkg, tables, files)
	if err != nil {
		return err
	}
	log.Infof("watching %s", pkg.Root())
	if ui.IsTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr, "press Ctrl-C to stop")
	}
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infof("interrupted")
		return nil
	}
	return err
}

func (c *run) scan(ctx context.Context, pkg *pkgscan.Package, tables []*symtab.Table, files []pkgscan.File) error {
	m := scanmetrics.New("watch")
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
