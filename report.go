package eportfolio

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Report is a snapshot of the portfolio holdings with their gains.
type Report struct {
	Currency  string // display currency, informative only
	Holdings  []*HoldingLine
	TotalGain decimal.Decimal
}

// HoldingLine is the state of a single holding in a Report.
type HoldingLine struct {
	Kind        Kind
	Symbol      string
	Name        string
	Quantity    int
	Price       decimal.Decimal
	BookValue   decimal.Decimal
	MarketValue decimal.Decimal
	Gain        decimal.Decimal
}

// NewReport takes a snapshot of p.
func NewReport(p *Portfolio, currency string) *Report {
	r := &Report{Currency: currency, TotalGain: decimal.Zero}
	total := decimal.Zero
	for _, inv := range p.Investments() {
		line := &HoldingLine{
			Kind:        inv.Kind(),
			Symbol:      inv.Symbol(),
			Name:        inv.Name(),
			Quantity:    inv.Quantity(),
			Price:       inv.Price(),
			BookValue:   inv.BookValue(),
			MarketValue: inv.MarketValue(),
			Gain:        inv.Gain(),
		}
		total = total.Add(line.Gain)
		r.Holdings = append(r.Holdings, line)
	}
	r.TotalGain = round2(total)
	return r
}

// TotalBookValue sums the book value of all holdings.
func (r *Report) TotalBookValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range r.Holdings {
		total = total.Add(h.BookValue)
	}
	return total
}

// TotalMarketValue sums the market value of all holdings.
func (r *Report) TotalMarketValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range r.Holdings {
		total = total.Add(h.MarketValue)
	}
	return total
}

func (h *HoldingLine) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", h.Kind.String())
	w.Append("symbol", h.Symbol)
	w.Append("name", h.Name)
	w.Append("quantity", h.Quantity)
	w.Append("price", json.Number(text(h.Price)))
	w.Append("bookValue", json.Number(text(h.BookValue)))
	w.Append("marketValue", json.Number(text(h.MarketValue)))
	w.Append("gain", json.Number(text(h.Gain)))
	return w.MarshalJSON()
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", r.Currency)
	holdings := r.Holdings
	if holdings == nil {
		holdings = []*HoldingLine{}
	}
	w.Append("holdings", holdings)
	w.Append("totalGain", json.Number(text(r.TotalGain)))
	return w.MarshalJSON()
}
