package services

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	conversionPlaces = 6
	ratePrecision    = 32
	// RatePlaceholder is shown instead of a rate when a price is unusable.
	RatePlaceholder  = "0"
)

var (
	ErrMalformedAmount = errors.New("amount is not a number")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func usablePrice(price float64) bool {
	return price != 0 && finite(price)
}

// Convert returns amount * fromPrice / toPrice rounded to six decimal places,
// half away from zero. The second result is false when either price is zero or
// not finite, such a pair has no exchange rate.
func Convert(amount, fromPrice, toPrice float64) (float64, bool) {
	if !usablePrice(fromPrice) || !usablePrice(toPrice) {
		return 0, false
	}

	if !finite(amount) {
		return 0, false
	}

	rate := decimal.NewFromFloat(fromPrice).DivRound(decimal.NewFromFloat(toPrice), ratePrecision)
	value, _ := decimal.NewFromFloat(amount).Mul(rate).Round(conversionPlaces).Float64()

	// the product can leave float64 range even when both inputs are finite
	if !finite(value) {
		return 0, false
	}

	return value, true
}

// ConvertCurrency resolves both codes in prices before converting. A missing
// code behaves like a zero price.
func ConvertCurrency(prices PriceLookup, amount float64, from, to string) (float64, bool) {
	fromPrice, _ := prices.Lookup(from)
	toPrice, _ := prices.Lookup(to)

	return Convert(amount, fromPrice, toPrice)
}

// ExchangeRate renders fromPrice/toPrice with exactly six decimal places.
func ExchangeRate(fromPrice, toPrice float64) string {
	if !usablePrice(fromPrice) || !usablePrice(toPrice) {
		return RatePlaceholder
	}

	return decimal.NewFromFloat(fromPrice).
		DivRound(decimal.NewFromFloat(toPrice), ratePrecision).
		StringFixed(conversionPlaces)
}

// ParseAmount is the input boundary for user typed amounts. Blank input is the
// empty amount. Values outside float64 range are malformed.
func ParseAmount(input string) (Amount, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return EmptyAmount(), nil
	}

	d, err := decimal.NewFromString(input)

	if err != nil {
		return EmptyAmount(), ErrMalformedAmount
	}

	if d.IsNegative() {
		return EmptyAmount(), ErrNegativeAmount
	}

	value, _ := d.Float64()

	if !finite(value) {
		return EmptyAmount(), ErrMalformedAmount
	}

	return NewAmount(value), nil
}
