package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
)

type gainCmd struct {
	raw bool
}

func (*gainCmd) Name() string     { return "gain" }
func (*gainCmd) Synopsis() string { return "total gain of the portfolio" }
func (*gainCmd) Usage() string {
	return `epf gain [-raw]

  Prints the total gain of the portfolio: what selling every holding at its
  current price would realize, fees included.
`
}

func (c *gainCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the bare amount only, e.g. -45.00")
}

func (c *gainCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.raw {
		fmt.Fprintln(stdout, p.CalculateGain())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.GainMarkdown(eportfolio.NewReport(p, *currency)))
	return subcommands.ExitSuccess
}
