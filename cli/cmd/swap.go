package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malusev998/currency-swap/services"
)

const swapHelp = `commands:
  amount <from|to> <value>   edit an amount, blank value clears it
  currency <from|to> <code>  select a currency
  swap                       exchange both sides
  refresh                    refetch prices
  show                       print the pair
  currencies                 list selectable currencies
  submit                     submit the swap
  quit                       leave`

var errQuit = errors.New("quit")

type swapShell struct {
	session *services.Session
	out     io.Writer
}

func (s swapShell) printPair() {
	pair := s.session.Pair()
	state := "disabled"

	if s.session.CanSubmit() {
		state = "enabled"
	}

	fmt.Fprintf(s.out, "from: %s %s | to: %s %s | 1 %s = %s %s | submit %s\n",
		pair.Primary.Amount, pair.Primary.Currency,
		pair.Secondary.Amount, pair.Secondary.Currency,
		pair.Primary.Currency, s.session.ExchangeRate(), pair.Secondary.Currency,
		state,
	)

	if msg := s.session.ErrorMessage(); msg != "" {
		fmt.Fprintln(s.out, msg)
	}
}

func (s swapShell) complete(_ context.Context, swap services.Swap) error {
	fmt.Fprintf(s.out, "Swap successful! You swapped %s %s to %s %s (%s)\n",
		swap.From.Amount, swap.From.Currency, swap.To.Amount, swap.To.Currency, swap.ID)

	return nil
}

// handle runs one line. Input errors are reported and do not end the session.
func (s swapShell) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)

	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "amount":
		if len(fields) < 2 || len(fields) > 3 {
			return errors.New("usage: amount <from|to> <value>")
		}

		side, err := services.ParseSide(fields[1])
		if err != nil {
			return err
		}

		value := ""
		if len(fields) == 3 {
			value = fields[2]
		}

		amount, err := services.ParseAmount(value)
		if err != nil {
			return fmt.Errorf("amount %q: %w", value, err)
		}

		s.session.OnAmountEdited(side, amount)
	case "currency":
		if len(fields) != 3 {
			return errors.New("usage: currency <from|to> <code>")
		}

		side, err := services.ParseSide(fields[1])
		if err != nil {
			return err
		}

		s.session.OnCurrencyChanged(side, fields[2])
	case "swap":
		s.session.OnSwap()
	case "refresh":
		// the error is part of the printed state
		_ = s.session.Refresh(ctx)
	case "show":
	case "currencies":
		fmt.Fprintln(s.out, strings.Join(s.session.Currencies(), " "))
		return nil
	case "submit":
		if _, err := s.session.Submit(ctx, services.CompletionHandlerFunc(s.complete)); err != nil {
			return err
		}
		return nil
	case "help":
		fmt.Fprintln(s.out, swapHelp)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type help", fields[0])
	}

	s.printPair()

	return nil
}

func swap(a *app) *cobra.Command {
	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Interactive linked currency pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			shell := swapShell{
				session: a.newSession(ctx, a.viper.GetString("defaults.from"), a.viper.GetString("defaults.to")),
				out:     cmd.OutOrStdout(),
			}

			shell.printPair()

			scanner := bufio.NewScanner(cmd.InOrStdin())

			for scanner.Scan() {
				err := shell.handle(ctx, scanner.Text())

				if errors.Is(err, errQuit) {
					return nil
				}

				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
			}

			return scanner.Err()
		},
	}

	swapCmd.Flags().String("from", "", "Initial source currency")
	swapCmd.Flags().String("to", "", "Initial target currency")
	_ = a.viper.BindPFlag("defaults.from", swapCmd.Flags().Lookup("from"))
	_ = a.viper.BindPFlag("defaults.to", swapCmd.Flags().Lookup("to"))

	return swapCmd
}
