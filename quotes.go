package eportfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DecodeQuotes reads a JSON document holding prices. Numbers are kept as
// json.Number so that prices are not altered by a float conversion.
func DecodeQuotes(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("not a correct json: %w", err)
	}
	return doc, nil
}

// ApplyQuotes updates the price of every holding with the value found in doc.
//
// pathTemplate is a JSONPath expression where %s stands for the symbol, e.g.
// `$.quotes.%s.last` or `$["%s"]`. Holdings without a quote are left
// untouched. It returns the symbols whose price was updated.
func (p *Portfolio) ApplyQuotes(doc any, pathTemplate string) ([]string, error) {
	if !strings.Contains(pathTemplate, "%s") {
		return nil, fmt.Errorf("%w: path %q has no %%s placeholder for the symbol", ErrInvalidInput, pathTemplate)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var updated []string
	for _, inv := range p.holdings {
		path := fmt.Sprintf(pathTemplate, inv.symbol)
		jval, err := jsonpath.Get(path, doc)
		if err != nil {
			p.log.Warn().Str("symbol", inv.symbol).Str("path", path).Err(err).Msg("no quote")
			continue
		}
		// jsonpath returns either a single value or a list of matches: keep the first one.
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				p.log.Warn().Str("symbol", inv.symbol).Str("path", path).Msg("no quote")
				continue
			}
			jval = jlist[0]
		}

		price, err := quoteValue(jval)
		if err != nil {
			return updated, fmt.Errorf("quote for %s at %q: %w", inv.symbol, path, err)
		}
		if err := inv.UpdatePrice(price); err != nil {
			return updated, fmt.Errorf("quote for %s at %q: %w", inv.symbol, path, err)
		}
		updated = append(updated, inv.symbol)
	}
	return updated, nil
}

// quoteValue converts a JSON value into a price.
func quoteValue(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case json.Number:
		return ParseAmount(v.String())
	case string:
		return ParseAmount(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %v is not a price", ErrInvalidInput, jval)
	}
}
