package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	Side int

	// Amount is a non-negative number or empty, empty being what a cleared
	// input holds.
	Amount struct {
		value   float64
		present bool
	}

	CurrencyAmount struct {
		Currency string
		Amount   Amount
	}

	// LinkedPair holds the two sides of the form. LastEdited is the side the
	// user typed into most recently and is the source of every derivation.
	LinkedPair struct {
		Primary    CurrencyAmount
		Secondary  CurrencyAmount
		LastEdited Side
	}
)

const (
	Primary Side = iota
	Secondary
)

var ErrInvalidSide = errors.New("side must be primary or secondary")

func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "primary", "from":
		return Primary, nil
	case "secondary", "to":
		return Secondary, nil
	}

	return Primary, fmt.Errorf("%w: %q", ErrInvalidSide, str)
}

func (s Side) Other() Side {
	if s == Primary {
		return Secondary
	}

	return Primary
}

func (s Side) String() string {
	if s == Primary {
		return "primary"
	}

	return "secondary"
}

func NewAmount(value float64) Amount {
	return Amount{value: value, present: true}
}

func EmptyAmount() Amount {
	return Amount{}
}

func (a Amount) Value() (float64, bool) {
	return a.value, a.present
}

func (a Amount) IsEmpty() bool {
	return !a.present
}

func (a Amount) Positive() bool {
	return a.present && a.value > 0 && finite(a.value)
}

func (a Amount) String() string {
	if !a.present {
		return ""
	}

	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

func NewLinkedPair(primaryCurrency, secondaryCurrency string) LinkedPair {
	return LinkedPair{
		Primary:    CurrencyAmount{Currency: primaryCurrency, Amount: NewAmount(0)},
		Secondary:  CurrencyAmount{Currency: secondaryCurrency, Amount: NewAmount(0)},
		LastEdited: Primary,
	}
}

func (p LinkedPair) Get(side Side) CurrencyAmount {
	if side == Primary {
		return p.Primary
	}

	return p.Secondary
}

func (p *LinkedPair) set(side Side, value CurrencyAmount) {
	if side == Primary {
		p.Primary = value
		return
	}

	p.Secondary = value
}
