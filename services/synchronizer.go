package services

// Synchronizer keeps the two sides of a LinkedPair consistent. It is not safe
// for concurrent use, Session serializes access to it.
type Synchronizer struct {
	prices PriceLookup
	pair   LinkedPair
}

func NewSynchronizer(prices PriceLookup, initial LinkedPair) *Synchronizer {
	if prices == nil {
		prices = PriceTable{}
	}

	return &Synchronizer{prices: prices, pair: initial}
}

func (s *Synchronizer) Pair() LinkedPair {
	return s.pair
}

// OnAmountEdited records a user edit on side and derives the other side.
func (s *Synchronizer) OnAmountEdited(side Side, amount Amount) LinkedPair {
	edited := s.pair.Get(side)
	edited.Amount = amount
	s.pair.set(side, edited)
	s.pair.LastEdited = side

	s.derive()

	return s.pair
}

// OnCurrencyChanged changes the code on side and re-derives from the side the
// user last typed into, which is not necessarily side.
func (s *Synchronizer) OnCurrencyChanged(side Side, code string) LinkedPair {
	changed := s.pair.Get(side)
	changed.Currency = code
	s.pair.set(side, changed)

	s.derive()

	return s.pair
}

// OnSwap exchanges both sides wholesale. The pair was consistent before the
// swap and stays consistent after it, so nothing is recomputed.
func (s *Synchronizer) OnSwap() LinkedPair {
	s.pair.Primary, s.pair.Secondary = s.pair.Secondary, s.pair.Primary
	s.pair.LastEdited = s.pair.LastEdited.Other()

	return s.pair
}

// OnPricesChanged replaces the price source and re-derives the pair.
func (s *Synchronizer) OnPricesChanged(prices PriceLookup) LinkedPair {
	if prices != nil {
		s.prices = prices
	}

	s.derive()

	return s.pair
}

// derive writes the converted amount to the non-source side. The write is a
// derived one: LastEdited is left alone and no further derivation follows.
// An empty source or an invalid conversion leaves the other side unchanged.
func (s *Synchronizer) derive() {
	sourceSide := s.pair.LastEdited
	source := s.pair.Get(sourceSide)
	target := s.pair.Get(sourceSide.Other())

	amount, ok := source.Amount.Value()

	if !ok {
		return
	}

	converted, ok := ConvertCurrency(s.prices, amount, source.Currency, target.Currency)

	if !ok {
		return
	}

	target.Amount = NewAmount(converted)
	s.pair.set(sourceSide.Other(), target)
}

// ExchangeRate is the value of one primary unit in secondary units.
func (s *Synchronizer) ExchangeRate() string {
	fromPrice, _ := s.prices.Lookup(s.pair.Primary.Currency)
	toPrice, _ := s.prices.Lookup(s.pair.Secondary.Currency)

	return ExchangeRate(fromPrice, toPrice)
}

// CanSubmit reports whether both amounts are positive and finite, both
// currencies have a usable price, the currencies differ and the last edited
// amount converts.
func (s *Synchronizer) CanSubmit() bool {
	p := s.pair

	if p.Primary.Currency == p.Secondary.Currency {
		return false
	}

	if !p.Primary.Amount.Positive() || !p.Secondary.Amount.Positive() {
		return false
	}

	fromPrice, ok := s.prices.Lookup(p.Primary.Currency)

	if !ok || fromPrice <= 0 || !usablePrice(fromPrice) {
		return false
	}

	toPrice, ok := s.prices.Lookup(p.Secondary.Currency)

	if !ok || toPrice <= 0 || !usablePrice(toPrice) {
		return false
	}

	// the entered amount must still convert, otherwise the other side is stale
	if p.LastEdited == Primary {
		_, ok = Convert(amountValue(p.Primary.Amount), fromPrice, toPrice)
	} else {
		_, ok = Convert(amountValue(p.Secondary.Amount), toPrice, fromPrice)
	}

	return ok
}

func amountValue(a Amount) float64 {
	value, _ := a.Value()

	return value
}
