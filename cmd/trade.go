package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
)

// --- Buy Command ---

type buyCmd struct {
	kind     string
	symbol   string
	name     string
	quantity int
	price    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy units to open or add to a holding" }
func (*buyCmd) Usage() string {
	return `epf buy [-k stock|fund] -s <symbol> [-n <name>] -q <quantity> -p <price>

  Buys units of a stock or a mutual fund. A new holding needs a name, an
  existing one keeps its kind and name. See 'epf topic fees'.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "stock", "Kind of investment: stock or fund")
	f.StringVar(&c.symbol, "s", "", "Symbol of the investment")
	f.StringVar(&c.name, "n", "", "Name of the investment, required for a new holding")
	f.IntVar(&c.quantity, "q", 0, "Number of units")
	f.StringVar(&c.price, "p", "", "Price per unit")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	kind, err := eportfolio.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing kind: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := eportfolio.ParseAmount(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := p.Buy(kind, c.symbol, c.name, price, c.quantity); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	inv := p.Get(p.Lookup(c.symbol))
	printMarkdown(renderer.TradeMarkdown(&renderer.Trade{
		Symbol:   inv.Symbol(),
		Quantity: c.quantity,
		Price:    price,
		Holding:  inv,
	}, *currency))
	return subcommands.ExitSuccess
}

// --- Sell Command ---

type sellCmd struct {
	symbol   string
	quantity int
	price    string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units to trim or close a holding" }
func (*sellCmd) Usage() string {
	return `epf sell -s <symbol> -q <quantity> -p <price>

  Sells units of a holding and prints the realized gain. A holding sold
  entirely is removed. See 'epf topic fees'.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the investment")
	f.IntVar(&c.quantity, "q", 0, "Number of units")
	f.StringVar(&c.price, "p", "", "Price per unit")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	price, err := eportfolio.ParseAmount(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	gain, err := p.Sell(c.symbol, c.quantity, price)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	trade := &renderer.Trade{
		Sold:     true,
		Symbol:   strings.ToUpper(strings.TrimSpace(c.symbol)),
		Quantity: c.quantity,
		Price:    price,
		Gain:     gain,
	}
	if i := p.Lookup(c.symbol); i >= 0 {
		trade.Holding = p.Get(i)
	}
	printMarkdown(renderer.TradeMarkdown(trade, *currency))
	return subcommands.ExitSuccess
}
