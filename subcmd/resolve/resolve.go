// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package resolve is resolve subcommand for debugging symbol tables.
package resolve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"go.chromium.org/infra/build/nsdeps/scandeps"
	"go.chromium.org/infra/build/nsdeps/symtab"
)

const usage = `resolve symbol candidates

Resolves each <candidate> (e.g. std::vector::iterator) in the symbol tables
and prints which table and record resolved it.

 $ nsdeps resolve -t std.yaml -t ros.yaml <candidate>...
`

// Cmd returns the Command for the `resolve` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "resolve <args>... <candidate>...",
		ShortDesc: "resolve symbol candidates",
		LongDesc:  usage,
		Advanced:  true,
		CommandRun: func() subcommands.CommandRun {
			c := &run{}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	tableopt symtab.Option

	out io.Writer
}

func (c *run) init() {
	c.tableopt.RegisterFlags(&c.Flags)
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
	if len(args) == 0 {
		return fmt.Errorf("no candidate: %w", flag.ErrHelp)
	}
	tables, err := c.tableopt.Load()
	if err != nil {
		return err
	}
	for _, candidate := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, status := scandeps.Resolve(candidate, tables)
		switch status {
		case scandeps.Resolved:
			fmt.Fprintf(c.out, "%s\t%s\ttable=%s prefix=%s %s\n", candidate, status, res.Table.Name, res.Prefix, res.Record)
			if res.Record.Include != "" {
				fmt.Fprintf(c.out, "  %s\n", res.Table.FormatInclude(res.Record.Include))
			}
		case scandeps.Known:
			fmt.Fprintf(c.out, "%s\t%s\ttable=%s prefix=%s\n", candidate, status, res.Table.Name, res.Prefix)
		default:
			fmt.Fprintf(c.out, "%s\t%s\n", candidate, status)
		}
	}
	return nil
}
