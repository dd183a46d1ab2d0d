package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	symbol     string
	words      string
	priceRange string
	json       bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search holdings by symbol, name and price" }
func (*searchCmd) Usage() string {
	return `epf search [-s <symbol>] [-n <words>] [-r <low-high>] [-json]

  Lists the holdings matching every given filter. See 'epf topic search'.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Keep symbols containing this text")
	f.StringVar(&c.words, "n", "", "Keep names containing all these words")
	f.StringVar(&c.priceRange, "r", "", "Keep prices within this range, e.g. 10-20, 10- or -20")
	f.BoolVar(&c.json, "json", false, "Print the result as json")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	found, err := p.Search(c.symbol, c.words, c.priceRange)
	if errors.Is(err, eportfolio.ErrInvalidInput) {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.json {
		if found == nil {
			found = []*eportfolio.Investment{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(found); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.QueryMarkdown(found, *currency))
	return subcommands.ExitSuccess
}
