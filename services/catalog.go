package services

import "github.com/malusev998/currency-swap"

type (
	// PriceLookup resolves the price of a currency code.
	PriceLookup interface {
		Lookup(code string) (float64, bool)
	}

	// PriceTable is an immutable, deduplicated view of one feed ingestion.
	PriceTable struct {
		prices map[string]currency.Price
		order  []string
	}
)

// BuildPriceTable keeps the first record seen for each currency code. Later
// records for the same code are dropped even when their price differs, the
// upstream feed emits redundant entries for the same currency.
func BuildPriceTable(prices []currency.Price) PriceTable {
	table := PriceTable{
		prices: make(map[string]currency.Price, len(prices)),
		order:  make([]string, 0, len(prices)),
	}

	for _, p := range prices {
		if _, exists := table.prices[p.Currency]; exists {
			continue
		}

		table.prices[p.Currency] = p
		table.order = append(table.order, p.Currency)
	}

	return table
}

// Lookup matches codes by exact string equality. A zero price is reported as
// found.
func (t PriceTable) Lookup(code string) (float64, bool) {
	p, ok := t.prices[code]

	return p.Price, ok
}

func (t PriceTable) Record(code string) (currency.Price, bool) {
	p, ok := t.prices[code]

	return p, ok
}

// Currencies returns the codes in the order they first appeared in the feed.
func (t PriceTable) Currencies() []string {
	codes := make([]string, len(t.order))
	copy(codes, t.order)

	return codes
}

func (t PriceTable) Len() int {
	return len(t.order)
}
