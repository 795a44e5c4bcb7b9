package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-swap"
)

func TestConvert(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	values := []struct {
		amount, fromPrice, toPrice float64
		expected                   float64
	}{
		{100, 2, 4, 50},
		{1, 3, 9, 0.333333},
		{2, 3, 9, 0.666667},
		{10, 1, 0.25, 40},
		{0, 1645.93, 1, 0},
		{0.0000005, 1, 1, 0.000001},
		{1.531454, 1.2564421, 1, 1.924183},
	}

	for _, value := range values {
		result, ok := Convert(value.amount, value.fromPrice, value.toPrice)
		asserts.Truef(ok, "convert(%v, %v, %v)", value.amount, value.fromPrice, value.toPrice)
		asserts.Equalf(value.expected, result, "convert(%v, %v, %v)", value.amount, value.fromPrice, value.toPrice)
	}
}

func TestConvert_Invalid(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	table := BuildPriceTable([]currency.Price{{Currency: "USD", Price: 1}})

	for _, x := range []float64{0, 1, 12.5, 1e9} {
		for _, p := range []float64{0.1, 1, 1645.93} {
			_, ok := Convert(x, p, 0)
			asserts.False(ok)
			_, ok = Convert(x, 0, p)
			asserts.False(ok)
			_, ok = Convert(x, math.NaN(), p)
			asserts.False(ok)
			_, ok = Convert(x, p, math.Inf(1))
			asserts.False(ok)
		}

		// an unknown code has no price at all
		_, ok := ConvertCurrency(table, x, "MISSING", "USD")
		asserts.False(ok)
		_, ok = ConvertCurrency(table, x, "USD", "MISSING")
		asserts.False(ok)
	}

	// finite inputs whose product overflows float64
	result, ok := Convert(1e308, 1e10, 1)
	asserts.False(ok)
	asserts.Equal(0.0, result)

	_, ok = Convert(math.Inf(1), 1, 1)
	asserts.False(ok)

	_, ok = Convert(math.NaN(), 1, 1)
	asserts.False(ok)
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	prices := [][2]float64{{1.5, 2.25}, {1, 0.25}, {7.1282679, 0.20811525423728813}, {3, 9}}
	amounts := []float64{123.456789, 1, 0.5, 10, 99999.999999}

	for _, p := range prices {
		for _, a := range amounts {
			forward, ok := Convert(a, p[0], p[1])
			asserts.True(ok)
			back, ok := Convert(forward, p[1], p[0])
			asserts.True(ok)
			asserts.InDeltaf(a, back, 1e-6*math.Max(1, p[1]/p[0]), "amount %v prices %v", a, p)
		}
	}
}

func TestExchangeRate(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	asserts.Equal("0.500000", ExchangeRate(2, 4))
	asserts.Equal("0.333333", ExchangeRate(3, 9))
	asserts.Equal("4.000000", ExchangeRate(1, 0.25))
	asserts.Equal(RatePlaceholder, ExchangeRate(0, 4))
	asserts.Equal(RatePlaceholder, ExchangeRate(4, 0))
	asserts.Equal(RatePlaceholder, ExchangeRate(math.NaN(), 1))
	asserts.Equal(RatePlaceholder, ExchangeRate(1, math.Inf(-1)))
}

func TestParseAmount(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)

	values := []struct {
		input    string
		expected Amount
		err      error
	}{
		{"", EmptyAmount(), nil},
		{"   ", EmptyAmount(), nil},
		{"10", NewAmount(10), nil},
		{" 0.00000001 ", NewAmount(0.00000001), nil},
		{"0", NewAmount(0), nil},
		{"abc", EmptyAmount(), ErrMalformedAmount},
		{"1,5", EmptyAmount(), ErrMalformedAmount},
		{"NaN", EmptyAmount(), ErrMalformedAmount},
		{"Inf", EmptyAmount(), ErrMalformedAmount},
		{"1e400", EmptyAmount(), ErrMalformedAmount},
		{"1e308", NewAmount(1e308), nil},
		{"-3", EmptyAmount(), ErrNegativeAmount},
	}

	for _, value := range values {
		amount, err := ParseAmount(value.input)
		asserts.Equalf(value.expected, amount, "input %q", value.input)
		if value.err == nil {
			asserts.NoError(err)
			continue
		}
		asserts.Truef(errors.Is(err, value.err), "input %q: %v", value.input, err)
	}
}
