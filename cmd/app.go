// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/eportfolio"
	"github.com/etnz/eportfolio/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// command is a subcommand and the group it is listed in.
type command struct {
	subcommands.Command
	group string
}

// commands lists every subcommand.
func commands() []command {
	return []command{
		{&buyCmd{}, "portfolio"},
		{&sellCmd{}, "portfolio"},
		{&updateCmd{}, "portfolio"},
		{&gainCmd{}, "reports"},
		{&searchCmd{}, "reports"},
		{&listCmd{}, "reports"},
		{&topicCmd{}, "help"},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands() {
		c.Register(e.Command, e.group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("file", "", "Path to the portfolio file (default $EPF_FILE or "+defaultFile+")")
var currency = flag.String("currency", "", "Display currency, an ISO 4217 code (default $EPF_CURRENCY or "+defaultCurrency+")")
var logLevel = flag.String("log-level", "", "Diagnostic level: debug, info, warn or error (default $EPF_LOG_LEVEL or "+defaultLogLevel+")")
var verbose = flag.Bool("v", false, "Log debug information, same as -log-level debug")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// logger is set up by Setup.
var logger = zerolog.Nop()

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// Setup resolves the global flags against the environment, and sets up the logger.
// It must be called once the command line has been parsed.
func Setup() error {
	cfg := loadConfig()
	if *portfolioFile == "" {
		*portfolioFile = cfg.File
	}
	if *currency == "" {
		*currency = cfg.Currency
	}
	if *logLevel == "" {
		*logLevel = cfg.LogLevel
	}
	if *verbose {
		*logLevel = "debug"
	}

	*currency = strings.ToUpper(strings.TrimSpace(*currency))
	if !renderer.ValidCurrency(*currency) {
		return fmt.Errorf("unknown currency %q", *currency)
	}

	l, err := newLogger(*logLevel, os.Stderr)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// DecodePortfolio loads the portfolio from the app portfolio file.
// A missing file is an empty portfolio.
func DecodePortfolio() (*eportfolio.Portfolio, error) {
	p, err := eportfolio.LoadPortfolio(*portfolioFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("file", *portfolioFile).Msg("portfolio does not exist, starting with an empty one")
		p, err = eportfolio.NewPortfolio(), nil
	}
	if err != nil {
		return nil, err
	}
	return p.WithLogger(logger), nil
}

// EncodePortfolio saves the portfolio into the app portfolio file.
func EncodePortfolio(p *eportfolio.Portfolio) error {
	if err := eportfolio.SavePortfolio(*portfolioFile, p); err != nil {
		return err
	}
	logger.Debug().Str("file", *portfolioFile).Int("holdings", p.Size()).Msg("portfolio saved")
	return nil
}

// printMarkdown prints md rendered for the terminal, or as is in plain mode.
func printMarkdown(md string) {
	if !*plain {
		out, err := glamour.Render(md, "auto")
		if err == nil {
			md = out
		} else {
			logger.Warn().Err(err).Msg("cannot render markdown, printing it raw")
		}
	}
	fmt.Fprint(stdout, md)
}
