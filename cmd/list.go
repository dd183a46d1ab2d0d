package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	html string
	json bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "report every holding with its gain" }
func (*listCmd) Usage() string {
	return `epf list [-html <file>] [-json]

  Reports every holding, its book value, market value and gain, and the
  portfolio totals.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Write the report as an HTML page into this file")
	f.BoolVar(&c.json, "json", false, "Print the report as json")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	if c.html != "" && c.json {
		fmt.Fprintln(os.Stderr, "-html and -json flags cannot be used together")
		return subcommands.ExitUsageError
	}
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report := eportfolio.NewReport(p, *currency)

	switch {
	case c.json:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	case c.html != "":
		page, err := renderer.HTML("Portfolio", renderer.ReportMarkdown(report))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.html, err)
			return subcommands.ExitFailure
		}
		logger.Info().Str("file", c.html).Msg("report written")
	default:
		printMarkdown(renderer.ReportMarkdown(report))
	}
	return subcommands.ExitSuccess
}
