package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
)

type updateCmd struct {
	symbol string
	price  string
	quotes string
	path   string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "update the price of a holding, or of all holdings from a json document"
}
func (*updateCmd) Usage() string {
	return `epf update -s <symbol> -p <price>
epf update -quotes <file.json|url> [-path <jsonpath>]

  Sets the current price of a holding, or reads the prices of all holdings
  from a JSON document. In the path, %s stands for the symbol.
  See 'epf topic quotes'.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the holding to update")
	f.StringVar(&c.price, "p", "", "New price per unit")
	f.StringVar(&c.quotes, "quotes", "", "JSON document holding the prices: a file, an http(s) URL, or '-' for the standard input")
	f.StringVar(&c.path, "path", "$.%s.price", "JSONPath of a price in the quotes document, %s stands for the symbol")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	single := c.symbol != "" || c.price != ""
	if single == (c.quotes != "") || (single && (c.symbol == "" || c.price == "")) {
		f.Usage()
		return subcommands.ExitUsageError
	}

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var updated []string
	if single {
		price, err := eportfolio.ParseAmount(c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := p.UpdatePriceBySymbol(c.symbol, price); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		updated = []string{c.symbol}
	} else {
		doc, err := c.readQuotes(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		updated, err = p.ApplyQuotes(doc, c.path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var holdings []*eportfolio.Investment
	for _, symbol := range updated {
		holdings = append(holdings, p.Get(p.Lookup(symbol)))
	}
	printMarkdown(renderer.QueryMarkdown(holdings, *currency))
	return subcommands.ExitSuccess
}

// readQuotes decodes the quotes document, from a file or an http(s) URL.
func (c *updateCmd) readQuotes(ctx context.Context) (any, error) {
	if c.quotes == "-" {
		return eportfolio.DecodeQuotes(os.Stdin)
	}
	if strings.HasPrefix(c.quotes, "http://") || strings.HasPrefix(c.quotes, "https://") {
		client := eportfolio.NewQuotesClient(filepath.Join(os.TempDir(), "epf-quotes"), logger)
		return eportfolio.FetchQuotes(ctx, client, c.quotes)
	}
	f, err := os.Open(c.quotes)
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes: %w", err)
	}
	defer f.Close()
	doc, err := eportfolio.DecodeQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read quotes in %q: %w", c.quotes, err)
	}
	return doc, nil
}
