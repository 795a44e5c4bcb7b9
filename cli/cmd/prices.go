package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func prices(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "List the deduplicated price table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.feed.Refresh(cmd.Context()); err != nil {
				return errors.New(a.feed.ErrorMessage())
			}

			table := a.feed.Table()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "CURRENCY\tPRICE\tDATE")

			for _, code := range table.Currencies() {
				record, _ := table.Record(code)
				fmt.Fprintf(w, "%s\t%s\t%s\n", code, strconv.FormatFloat(record.Price, 'f', -1, 64), record.Date.UTC().Format("2006-01-02 15:04:05"))
			}

			return w.Flush()
		},
	}
}
