package eportfolio

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// maxPrice stands for an unbounded side of a price range.
var maxPrice = decimal.New(1, 308)

const (
	warnReversedRange   = "price range end is smaller than begin, assuming you want the opposite"
	warnDegenerateRange = "price range begin is equal to end"
)

// PriceRange is an inclusive range of prices.
type PriceRange struct {
	Low, High decimal.Decimal
	// Warning is set when the range had to be corrected, or is degenerate.
	Warning string
}

// AnyPrice is the range that contains every price.
func AnyPrice() PriceRange { return PriceRange{Low: maxPrice.Neg(), High: maxPrice} }

// ParsePriceRange parses "low-high". Either side can be omitted to leave it
// unbounded, and a text without a '-' does not restrict prices at all.
// Reversed bounds are swapped.
func ParsePriceRange(s string) (PriceRange, error) {
	r := AnyPrice()
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return r, nil
	}
	if lo = strings.TrimSpace(lo); lo != "" {
		d, err := ParseAmount(lo)
		if err != nil {
			return r, fmt.Errorf("invalid lower bound in price range %q: %w", s, err)
		}
		r.Low = d
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		d, err := ParseAmount(hi)
		if err != nil {
			return r, fmt.Errorf("invalid upper bound in price range %q: %w", s, err)
		}
		r.High = d
	}

	switch r.Low.Cmp(r.High) {
	case 0:
		r.Warning = warnDegenerateRange
	case 1:
		r.Low, r.High = r.High, r.Low
		r.Warning = warnReversedRange
	}
	return r, nil
}

// Contains reports whether low <= price <= high.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return r.Low.LessThanOrEqual(price) && price.LessThanOrEqual(r.High)
}

// Query returns the textual representation of every holding matching all
// filters. See Search.
func (p *Portfolio) Query(symbol, words, priceRange string) ([]string, error) {
	found, err := p.Search(symbol, words, priceRange)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(found))
	for _, inv := range found {
		res = append(res, inv.String())
	}
	return res, nil
}

// Search returns the holdings, in symbol order, that match all filters:
//   - symbol: the holding's symbol contains it, case-insensitively;
//   - words: the holding's name contains every word, in any order, case-insensitively;
//   - priceRange: the holding's price is within "low-high", see ParsePriceRange.
//
// An empty filter matches everything.
func (p *Portfolio) Search(symbol, words, priceRange string) ([]*Investment, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	tokens := nameWords(words)
	rng, err := ParsePriceRange(strings.ToLower(priceRange))
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if rng.Warning != "" {
		p.log.Warn().Str("range", priceRange).Msg(rng.Warning)
	}

	var found []*Investment
	for _, i := range p.candidates(tokens) {
		inv := p.holdings[i]
		if symbol != "" && !strings.Contains(strings.ToUpper(inv.symbol), symbol) {
			continue
		}
		if !rng.Contains(inv.price) {
			continue
		}
		found = append(found, inv.clone())
	}
	return found, nil
}

// candidates returns the sorted positions whose name contains every token.
// Without tokens, every indexed position is returned.
// It must be called with the read lock held.
func (p *Portfolio) candidates(tokens []string) []int {
	set := make(map[int]bool)
	if len(tokens) == 0 {
		for _, positions := range p.nameIndex {
			for _, i := range positions {
				set[i] = true
			}
		}
		return slices.Sorted(maps.Keys(set))
	}

	for _, i := range p.nameIndex[tokens[0]] {
		set[i] = true
	}
	for _, token := range tokens[1:] {
		next := make(map[int]bool, len(set))
		for _, i := range p.nameIndex[token] {
			if set[i] {
				next[i] = true
			}
		}
		set = next
	}
	return slices.Sorted(maps.Keys(set))
}
