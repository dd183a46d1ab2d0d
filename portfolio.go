package eportfolio

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Portfolio is a collection of investments.
//
// Holdings are always sorted by symbol, case-insensitively, so that a symbol
// can be found, or its insertion point computed, by binary search. The name
// index maps every lowercase word of a holding's name to the positions of
// the holdings whose name contains it. Positions shift whenever a holding is
// inserted or removed, hence the index is rebuilt after every structural
// change.
//
// A Portfolio is safe for concurrent use. Get, Investments and Search
// return copies of the holdings, taken under the read lock.
type Portfolio struct {
	mu        sync.RWMutex
	holdings  []*Investment
	nameIndex map[string][]int
	log       zerolog.Logger
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		holdings:  make([]*Investment, 0),
		nameIndex: make(map[string][]int),
		log:       zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report warnings and trades.
func (p *Portfolio) WithLogger(log zerolog.Logger) *Portfolio {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = log
	return p
}

// compareSymbols orders symbols case-insensitively.
func compareSymbols(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// nameWords splits a name into its lowercase words.
func nameWords(name string) []string { return strings.Fields(strings.ToLower(name)) }

// Lookup returns the position of symbol in the portfolio. If the symbol is
// not held it returns -(insertion point)-1, where the insertion point is the
// position that would keep the holdings sorted.
func (p *Portfolio) Lookup(symbol string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lookup(symbol)
}

func (p *Portfolio) lookup(symbol string) int {
	i, found := slices.BinarySearchFunc(p.holdings, strings.TrimSpace(symbol), func(inv *Investment, s string) int {
		return compareSymbols(inv.symbol, s)
	})
	if found {
		return i
	}
	return -i - 1
}

// Buy acquires quantity of symbol at price.
//
// If the symbol is already held, the holding is increased, and kind and name
// are ignored. Otherwise a new holding is inserted in symbol order.
func (p *Portfolio) Buy(kind Kind, symbol, name string, price decimal.Decimal, quantity int) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.lookup(symbol)
	if i >= 0 {
		inv := p.holdings[i]
		if inv.kind != kind {
			p.log.Warn().Str("symbol", symbol).Stringer("held", inv.kind).Stringer("requested", kind).Msg("buying into a holding of another kind, keeping the held kind")
		}
		if err := inv.Buy(quantity, price); err != nil {
			return fmt.Errorf("cannot buy %s: %w", symbol, err)
		}
		p.log.Debug().Str("symbol", symbol).Int("quantity", quantity).Stringer("price", price).Msg("bought into existing holding")
		return nil
	}

	inv, err := NewInvestment(kind, symbol, name, quantity, price)
	if err != nil {
		return fmt.Errorf("cannot buy %s: %w", symbol, err)
	}
	p.holdings = slices.Insert(p.holdings, -i-1, inv)
	p.reindex()
	p.log.Debug().Str("symbol", symbol).Int("position", -i-1).Msg("new holding")
	return nil
}

// Sell disposes of quantity of symbol at price and returns the realized
// gain. A holding sold entirely is removed from the portfolio.
func (p *Portfolio) Sell(symbol string, quantity int, price decimal.Decimal) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.lookup(symbol)
	if i < 0 {
		return decimal.Zero, fmt.Errorf("cannot sell %q: %w", symbol, ErrInvestmentNotFound)
	}
	inv := p.holdings[i]
	gain, err := inv.Sell(quantity, price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot sell %s: %w", symbol, err)
	}
	if inv.quantity == 0 {
		p.holdings = slices.Delete(p.holdings, i, i+1)
		p.reindex()
		p.log.Debug().Str("symbol", symbol).Msg("holding closed")
	}
	return gain, nil
}

// UpdatePrice sets the current price of the holding at position.
func (p *Portfolio) UpdatePrice(position int, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if position < 0 || position >= len(p.holdings) {
		return fmt.Errorf("no holding at position %d: %w", position, ErrInvestmentNotFound)
	}
	return p.holdings[position].UpdatePrice(price)
}

// UpdatePriceBySymbol sets the current price of the holding of symbol.
func (p *Portfolio) UpdatePriceBySymbol(symbol string, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.lookup(symbol)
	if i < 0 {
		return fmt.Errorf("cannot update %q: %w", symbol, ErrInvestmentNotFound)
	}
	return p.holdings[i].UpdatePrice(price)
}

// TotalGain sums the gain of all holdings, rounded half to even.
func (p *Portfolio) TotalGain() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := decimal.Zero
	for _, inv := range p.holdings {
		total = total.Add(inv.Gain())
	}
	return round2(total)
}

// CalculateGain returns the total gain as text, e.g. "-45.00".
func (p *Portfolio) CalculateGain() string { return text(p.TotalGain()) }

// Get returns a copy of the holding at position, or nil if there is none.
func (p *Portfolio) Get(position int) *Investment {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if position < 0 || position >= len(p.holdings) {
		return nil
	}
	return p.holdings[position].clone()
}

func (p *Portfolio) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.holdings)
}

func (p *Portfolio) IsEmpty() bool { return p.Size() == 0 }

// Investments iterates over a snapshot of the holdings in symbol order.
func (p *Portfolio) Investments() iter.Seq2[int, *Investment] {
	p.mu.RLock()
	holdings := make([]*Investment, len(p.holdings))
	for i, inv := range p.holdings {
		holdings[i] = inv.clone()
	}
	p.mu.RUnlock()

	return func(yield func(int, *Investment) bool) {
		for i, inv := range holdings {
			if !yield(i, inv) {
				return
			}
		}
	}
}

// reindex rebuilds the name index from the holdings.
// It must be called with the write lock held.
func (p *Portfolio) reindex() {
	p.nameIndex = make(map[string][]int, len(p.holdings))
	for i, inv := range p.holdings {
		for _, word := range nameWords(inv.name) {
			positions := p.nameIndex[word]
			// a word repeated in a name is indexed once.
			if n := len(positions); n > 0 && positions[n-1] == i {
				continue
			}
			p.nameIndex[word] = append(positions, i)
		}
	}
}
