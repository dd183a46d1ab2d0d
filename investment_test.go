package eportfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewInvestment(t *testing.T) {
	testCases := []struct {
		name          string
		kind          Kind
		symbol        string
		invName       string
		quantity      int
		price         decimal.Decimal
		wantSymbol    string
		wantPrice     string
		wantBookValue string
	}{
		{
			name:          "stock is charged a commission",
			kind:          Stock,
			symbol:        "ABC",
			invName:       "Alpha",
			quantity:      10,
			price:         D(5),
			wantSymbol:    "ABC",
			wantPrice:     "5.00",
			wantBookValue: "59.99",
		},
		{
			name:          "mutual fund is not charged on acquisition",
			kind:          MutualFund,
			symbol:        "FND",
			invName:       "Some Fund",
			quantity:      100,
			price:         D(1),
			wantSymbol:    "FND",
			wantPrice:     "1.00",
			wantBookValue: "100.00",
		},
		{
			name:          "symbol is upper cased",
			kind:          Stock,
			symbol:        " abc ",
			invName:       "Alpha",
			quantity:      1,
			price:         D(10),
			wantSymbol:    "ABC",
			wantPrice:     "10.00",
			wantBookValue: "19.99",
		},
		{
			name:          "price is rounded half to even",
			kind:          Stock,
			symbol:        "ABC",
			invName:       "Alpha",
			quantity:      10,
			price:         dec("1.005"),
			wantSymbol:    "ABC",
			wantPrice:     "1.00",
			wantBookValue: "20.04", // 10.05 + 9.99
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := NewInvestment(tc.kind, tc.symbol, tc.invName, tc.quantity, tc.price)
			if err != nil {
				t.Fatalf("NewInvestment() error = %v", err)
			}
			if inv.Symbol() != tc.wantSymbol {
				t.Errorf("Symbol() = %q, want %q", inv.Symbol(), tc.wantSymbol)
			}
			if inv.Quantity() != tc.quantity {
				t.Errorf("Quantity() = %d, want %d", inv.Quantity(), tc.quantity)
			}
			assertDecimal(t, "Price()", inv.Price(), dec(tc.wantPrice))
			assertDecimal(t, "BookValue()", inv.BookValue(), dec(tc.wantBookValue))
		})
	}
}

func TestNewInvestment_InvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		kind     Kind
		symbol   string
		invName  string
		quantity int
		price    decimal.Decimal
	}{
		{"empty symbol", Stock, "", "Alpha", 1, D(1)},
		{"blank symbol", Stock, "  ", "Alpha", 1, D(1)},
		{"empty name", Stock, "ABC", "", 1, D(1)},
		{"zero quantity", Stock, "ABC", "Alpha", 0, D(1)},
		{"negative quantity", MutualFund, "ABC", "Alpha", -3, D(1)},
		{"zero price", Stock, "ABC", "Alpha", 1, D(0)},
		{"negative price", MutualFund, "ABC", "Alpha", 1, D(-1)},
		{"comma in name", Stock, "ABC", "Alpha, Inc", 1, D(1)},
		{"unknown kind", Kind(7), "ABC", "Alpha", 1, D(1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInvestment(tc.kind, tc.symbol, tc.invName, tc.quantity, tc.price)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NewInvestment() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

func TestNewInvestmentFromRecord_ZeroQuantity(t *testing.T) {
	if _, err := NewInvestmentFromRecord(Stock, "ABC", "Alpha", 0, D(5), D(0)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewInvestmentFromRecord() error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestNewInvestmentFromRecord(t *testing.T) {
	inv, err := NewInvestmentFromRecord(Stock, "abc", "Alpha", 10, D(5), dec("59.994"))
	if err != nil {
		t.Fatalf("NewInvestmentFromRecord() error = %v", err)
	}
	// no commission is applied on top of the persisted book value.
	assertDecimal(t, "BookValue()", inv.BookValue(), dec("59.99"))
	if inv.Symbol() != "ABC" {
		t.Errorf("Symbol() = %q, want %q", inv.Symbol(), "ABC")
	}
}

func TestInvestment_Buy(t *testing.T) {
	t.Run("stock is charged a commission per buy", func(t *testing.T) {
		inv := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
		if err := inv.Buy(5, D(6)); err != nil {
			t.Fatalf("Buy() error = %v", err)
		}
		if inv.Quantity() != 15 {
			t.Errorf("Quantity() = %d, want 15", inv.Quantity())
		}
		assertDecimal(t, "Price()", inv.Price(), dec("6.00"))
		assertDecimal(t, "BookValue()", inv.BookValue(), dec("99.98")) // 59.99 + 30 + 9.99
	})

	t.Run("mutual fund is never charged on buy", func(t *testing.T) {
		inv := must(NewInvestment(MutualFund, "FND", "Fund", 100, D(1)))
		if err := inv.Buy(50, D(2)); err != nil {
			t.Fatalf("Buy() error = %v", err)
		}
		if inv.Quantity() != 150 {
			t.Errorf("Quantity() = %d, want 150", inv.Quantity())
		}
		assertDecimal(t, "BookValue()", inv.BookValue(), dec("200"))
	})

	t.Run("negative quantity", func(t *testing.T) {
		inv := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
		err := inv.Buy(-1, D(5))
		var qe *IllegalQuantityError
		if !errors.As(err, &qe) || qe.Reason != Negative {
			t.Fatalf("Buy() error = %v, want a Negative IllegalQuantityError", err)
		}
		if inv.Quantity() != 10 {
			t.Errorf("Quantity() = %d, want 10", inv.Quantity())
		}
	})

	t.Run("quantity and book value accumulate", func(t *testing.T) {
		buys := []struct {
			quantity int
			price    string
		}{{10, "5"}, {3, "7.25"}, {20, "4.10"}, {1, "100"}}

		for _, kind := range []Kind{Stock, MutualFund} {
			inv := must(NewInvestment(kind, "ABC", "Alpha", buys[0].quantity, dec(buys[0].price)))
			wantQuantity := buys[0].quantity
			wantBookValue := dec(buys[0].price).Mul(D(buys[0].quantity)).Add(kind.AcquireFee())
			for _, b := range buys[1:] {
				if err := inv.Buy(b.quantity, dec(b.price)); err != nil {
					t.Fatalf("Buy() error = %v", err)
				}
				wantQuantity += b.quantity
				wantBookValue = wantBookValue.Add(dec(b.price).Mul(D(b.quantity))).Add(kind.AcquireFee())
			}
			if inv.Quantity() != wantQuantity {
				t.Errorf("%v: Quantity() = %d, want %d", kind, inv.Quantity(), wantQuantity)
			}
			assertDecimal(t, kind.String()+": BookValue()", inv.BookValue(), wantBookValue)
		}
	})
}

func TestInvestment_Sell(t *testing.T) {
	testCases := []struct {
		name          string
		inv           *Investment
		quantity      int
		price         string
		wantGain      string
		wantQuantity  int
		wantBookValue string
		wantPrice     string
	}{
		{
			name:          "half of a stock",
			inv:           must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5))),
			quantity:      5,
			price:         "6",
			wantGain:      "-9.99", // 30.00 - 30.00 (29.995 rounded half to even) - 9.99
			wantQuantity:  5,
			wantBookValue: "29.99",
			wantPrice:     "6.00",
		},
		{
			name:          "all of a stock",
			inv:           must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5))),
			quantity:      10,
			price:         "7",
			wantGain:      "0.02", // 70 - 59.99 - 9.99
			wantQuantity:  0,
			wantBookValue: "0",
			wantPrice:     "7.00",
		},
		{
			name:          "part of a mutual fund",
			inv:           must(NewInvestment(MutualFund, "FND", "Fund", 100, D(1))),
			quantity:      30,
			price:         "2",
			wantGain:      "-15", // 60 - 30 - 45
			wantQuantity:  70,
			wantBookValue: "70",
			wantPrice:     "2.00",
		},
		{
			name:          "a third keeps a non zero proportion",
			inv:           must(NewInvestment(MutualFund, "FND", "Fund", 3, D(10))),
			quantity:      1,
			price:         "10",
			wantGain:      "-45",
			wantQuantity:  2,
			wantBookValue: "20",
			wantPrice:     "10.00",
		},
		{
			name:          "a tiny proportion",
			inv:           must(NewInvestmentFromRecord(MutualFund, "FND", "Fund", 1000000, D(1), D(1000000))),
			quantity:      1,
			price:         "1",
			wantGain:      "-45",
			wantQuantity:  999999,
			wantBookValue: "999999",
			wantPrice:     "1.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gain, err := tc.inv.Sell(tc.quantity, dec(tc.price))
			if err != nil {
				t.Fatalf("Sell() error = %v", err)
			}
			assertDecimal(t, "Sell()", gain, dec(tc.wantGain))
			if tc.inv.Quantity() != tc.wantQuantity {
				t.Errorf("Quantity() = %d, want %d", tc.inv.Quantity(), tc.wantQuantity)
			}
			assertDecimal(t, "BookValue()", tc.inv.BookValue(), dec(tc.wantBookValue))
			assertDecimal(t, "Price()", tc.inv.Price(), dec(tc.wantPrice))
		})
	}
}

func TestInvestment_Sell_IllegalQuantity(t *testing.T) {
	testCases := []struct {
		quantity int
		want     QuantityViolation
	}{
		{-1, Negative},
		{0, Zero},
		{11, MoreThanHolding},
	}
	for _, tc := range testCases {
		inv := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
		_, err := inv.Sell(tc.quantity, D(6))
		var qe *IllegalQuantityError
		if !errors.As(err, &qe) {
			t.Fatalf("Sell(%d) error = %v, want an IllegalQuantityError", tc.quantity, err)
		}
		if qe.Reason != tc.want {
			t.Errorf("Sell(%d) reason = %v, want %v", tc.quantity, qe.Reason, tc.want)
		}
		if !errors.Is(err, ErrIllegalQuantity) {
			t.Errorf("errors.Is(%v, ErrIllegalQuantity) = false, want true", err)
		}
		// a rejected sell leaves the holding untouched.
		if inv.Quantity() != 10 || !inv.BookValue().Equal(dec("59.99")) || !inv.Price().Equal(D(5)) {
			t.Errorf("Sell(%d) changed the holding: %v", tc.quantity, inv)
		}
	}
}

func TestInvestment_Gain(t *testing.T) {
	fund := must(NewInvestment(MutualFund, "FND", "Fund", 100, D(1)))
	assertDecimal(t, "fund Gain()", fund.Gain(), dec("-45"))

	stock := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
	assertDecimal(t, "stock Gain()", stock.Gain(), dec("-19.98"))
	// Gain is hypothetical: calling it twice does not change anything.
	assertDecimal(t, "stock Gain()", stock.Gain(), dec("-19.98"))
	assertDecimal(t, "stock BookValue()", stock.BookValue(), dec("59.99"))

	if err := stock.UpdatePrice(D(7)); err != nil {
		t.Fatalf("UpdatePrice() error = %v", err)
	}
	assertDecimal(t, "stock Gain()", stock.Gain(), dec("0.02"))
}

func TestInvestment_UpdatePrice(t *testing.T) {
	inv := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
	if err := inv.UpdatePrice(dec("7.125")); err != nil {
		t.Fatalf("UpdatePrice() error = %v", err)
	}
	assertDecimal(t, "Price()", inv.Price(), dec("7.12"))
	assertDecimal(t, "BookValue()", inv.BookValue(), dec("59.99"))

	// non-positive prices are rejected, and leave the price unchanged.
	for _, price := range []string{"0", "-1.50"} {
		if err := inv.UpdatePrice(dec(price)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("UpdatePrice(%s) error = %v, want %v", price, err, ErrInvalidInput)
		}
	}
	assertDecimal(t, "Price()", inv.Price(), dec("7.12"))
}

func TestInvestment_Equal(t *testing.T) {
	a := must(NewInvestment(Stock, "ABC", "Alpha", 10, D(5)))
	b := must(NewInvestmentFromRecord(Stock, "ABC", "Alpha", 10, dec("5.00"), dec("59.99")))
	c := must(NewInvestmentFromRecord(MutualFund, "ABC", "Alpha", 10, dec("5.00"), dec("59.99")))

	if !a.Equal(b) {
		t.Errorf("%v.Equal(%v) = false, want true", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%v.Equal(%v) = true, want false", a, c)
	}
	if a.Equal(nil) {
		t.Errorf("Equal(nil) = true, want false")
	}
}

func TestInvestment_Text(t *testing.T) {
	stock := must(NewInvestment(Stock, "abc", "Alpha Beta", 10, D(5)))
	fund := must(NewInvestment(MutualFund, "fnd", "Some Fund", 100, D(1)))

	testCases := []struct {
		got, want string
	}{
		{stock.String(), "Stock{symbol=ABC, name=Alpha Beta, quantity=10, price=5.00, bookValue=59.99}"},
		{fund.String(), "MutualFund{symbol=FND, name=Some Fund, quantity=100, price=1.00, bookValue=100.00}"},
		{stock.Record(), "STOCK,ABC,Alpha Beta,10,5.00,59.99"},
		{fund.Record(), "MUTUAL FUND,FND,Some Fund,100,1.00,100.00"},
	}
	for _, tc := range testCases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"stock", Stock, false},
		{"STOCK", Stock, false},
		{"fund", MutualFund, false},
		{"Mutual  Fund", MutualFund, false},
		{"MUTUAL FUND", MutualFund, false},
		{"bond", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseKind(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDivBank(t *testing.T) {
	testCases := []struct {
		a, b int
		want string
	}{
		{1, 3, "0.33"},
		{2, 3, "0.67"},
		{1, 8, "0.12"},   // 0.125, tie to even
		{3, 8, "0.38"},   // 0.375, tie to even
		{-1, 8, "-0.12"}, // -0.125, tie to even
		{5, 10, "0.5"},
	}
	for _, tc := range testCases {
		got := divBank(D(tc.a), D(tc.b), 2)
		if !got.Equal(dec(tc.want)) {
			t.Errorf("divBank(%d, %d, 2) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}
