package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-swap/services"
)

var ErrNoExchangeRate = errors.New("no exchange rate")

func rate(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate FROM TO",
		Short: "Print the exchange rate between two currencies",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.feed.Refresh(cmd.Context()); err != nil {
				return errors.New(a.feed.ErrorMessage())
			}

			fromPrice, _ := a.feed.Lookup(args[0])
			toPrice, _ := a.feed.Lookup(args[1])

			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", args[0], services.ExchangeRate(fromPrice, toPrice), args[1])

			return nil
		},
	}
}

func convert(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount between two currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := services.ParseAmount(args[0])

			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}

			value, ok := amount.Value()

			if !ok {
				return fmt.Errorf("amount is required: %w", services.ErrMalformedAmount)
			}

			if _, err := a.feed.Refresh(cmd.Context()); err != nil {
				return errors.New(a.feed.ErrorMessage())
			}

			converted, ok := services.ConvertCurrency(a.feed, value, args[1], args[2])

			if !ok {
				return fmt.Errorf("%w for %s/%s", ErrNoExchangeRate, args[1], args[2])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", amount, args[1], services.NewAmount(converted), args[2])

			return nil
		},
	}
}
