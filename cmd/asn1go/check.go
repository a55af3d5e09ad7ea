package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

type cmdCheck struct {
	quiet bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [options] FILE...",
		summary: "Parse and resolve modules, reporting every error",
		minArgs: 1,
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.BoolVarP(&cmd.quiet, "quiet", "q", false, "print errors only")
}

func (cmd *cmdCheck) run(ctx context.Context, c *cli, argv []string) int {
	mods, err := c.load(ctx, argv, nil, nil)
	if !cmd.quiet {
		for _, m := range mods {
			fmt.Fprintf(c.stdout, "%s: %d types, %d values\n", m.Name, len(m.Definitions), len(m.Values))
		}
	}
	if err != nil {
		c.printErrors(err)
		return exitError
	}
	return exitOK
}
