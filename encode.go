package eportfolio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// This file persists a portfolio as a plain text file, one holding per line:
//
//	KIND,SYMBOL,NAME,QUANTITY,PRICE,BOOKVALUE
//
// where KIND is either STOCK or MUTUAL FUND. Amounts are written with their
// two stored digits, so that saving then loading yields identical holdings.

// recordFields is the number of fields of a persisted holding.
const recordFields = 6

// fieldSeparator splits a line on runs of commas.
var fieldSeparator = regexp.MustCompile(`,+`)

// DecodePortfolio reads a portfolio. Holdings are sorted by symbol and the
// name index is built once all lines are read.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		// Start simply ignoring empty lines.
		if line == "" {
			continue
		}
		inv, err := decodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		p.holdings = append(p.holdings, inv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read portfolio: %w", err)
	}

	slices.SortStableFunc(p.holdings, func(a, b *Investment) int { return compareSymbols(a.symbol, b.symbol) })
	for i := 1; i < len(p.holdings); i++ {
		if compareSymbols(p.holdings[i-1].symbol, p.holdings[i].symbol) == 0 {
			return nil, fmt.Errorf("%w: symbol %q is held twice", ErrInvalidRecordFormat, p.holdings[i].symbol)
		}
	}
	p.reindex()
	return p, nil
}

// decodeRecord parses a single persisted holding.
func decodeRecord(line string) (*Investment, error) {
	fields := fieldSeparator.Split(line, -1)
	if len(fields) < recordFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d in %q", ErrInvalidRecordFormat, recordFields, len(fields), line)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	kind, ok := parseLabel(fields[0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecordFormat, fields[0])
	}
	quantity, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalidRecordFormat, fields[3])
	}
	price, err := decimal.NewFromString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not a decimal", ErrInvalidRecordFormat, fields[4])
	}
	bookValue, err := decimal.NewFromString(fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: book value %q is not a decimal", ErrInvalidRecordFormat, fields[5])
	}

	inv, err := NewInvestmentFromRecord(kind, fields[1], fields[2], quantity, price, bookValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecordFormat, err)
	}
	return inv, nil
}

// EncodePortfolio writes one record per holding, in symbol order.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	bw := bufio.NewWriter(w)
	for _, inv := range p.Investments() {
		if _, err := fmt.Fprintln(bw, inv.Record()); err != nil {
			return fmt.Errorf("cannot write %s: %w", inv.symbol, err)
		}
	}
	return bw.Flush()
}

// LoadPortfolio reads the portfolio stored in filename.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadPortfolio(filename string) (*Portfolio, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return p, nil
}

// SavePortfolio writes the portfolio into filename. The file is replaced
// only once it has been fully written.
func SavePortfolio(filename string, p *Portfolio) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("cannot create a temporary file for %q: %w", filename, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("cannot replace %q: %w", filename, err)
	}
	return nil
}
