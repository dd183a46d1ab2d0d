package eportfolio

import (
	"testing"

	"github.com/shopspring/decimal"
)

// must is a helper for tests to unwrap a value from a function that returns (value, error).
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// dec is a helper for tests to create a decimal from its text.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal fails the test if got and want are not the same number.
func assertDecimal(t *testing.T, what string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", what, got, want)
	}
}

// checkIndex verifies that every word of every holding is indexed at its position,
// and that the index references no other position.
func checkIndex(t *testing.T, p *Portfolio) {
	t.Helper()
	for i, inv := range p.holdings {
		for _, w := range nameWords(inv.name) {
			found := false
			for _, pos := range p.nameIndex[w] {
				if pos == i {
					found = true
				}
			}
			if !found {
				t.Errorf("nameIndex[%q] = %v, missing position %d of %s", w, p.nameIndex[w], i, inv.symbol)
			}
		}
	}
	for w, positions := range p.nameIndex {
		for _, pos := range positions {
			if pos < 0 || pos >= len(p.holdings) {
				t.Errorf("nameIndex[%q] = %v, position %d out of range", w, positions, pos)
				continue
			}
			found := false
			for _, hw := range nameWords(p.holdings[pos].name) {
				if hw == w {
					found = true
				}
			}
			if !found {
				t.Errorf("nameIndex[%q] references %s whose name is %q", w, p.holdings[pos].symbol, p.holdings[pos].name)
			}
		}
	}
}

// checkSorted verifies the holdings are in symbol order.
func checkSorted(t *testing.T, p *Portfolio) {
	t.Helper()
	for i := 1; i < len(p.holdings); i++ {
		if compareSymbols(p.holdings[i-1].symbol, p.holdings[i].symbol) >= 0 {
			t.Errorf("holdings not sorted: %s before %s", p.holdings[i-1].symbol, p.holdings[i].symbol)
		}
	}
}
