package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func similarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "similar <name>",
		Short: "Check whether something like this was seen before",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match, found := a.controller.FindSimilar(args[0])
			out := struct {
				Match string `json:"match"`
				Found bool   `json:"found"`
			}{match, found}
			return a.print(cmd.OutOrStdout(), out, func(w io.Writer) {
				if !found {
					fmt.Fprintln(w, "Nothing like that yet.")
					return
				}
				fmt.Fprintf(w, "You already found %s.\n", match)
			})
		},
	}
}

func dictionaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dictionary",
		Aliases: []string{"dict"},
		Short:   "List discovered items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.controller.Dictionary()
			return a.print(cmd.OutOrStdout(), entries, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tPRICE\tCATEGORY\tTERM\tDISCOVERED")
				for _, e := range entries {
					term := ""
					if e.FinancialInfo != nil {
						term = e.FinancialInfo.Term
					}
					fmt.Fprintf(tw, "%s\t$%d\t%s\t%s\t%s\n", e.Name, e.Price, e.Category, term, e.DiscoveredAt.Format("2006-01-02"))
				}
				_ = tw.Flush()
			})
		},
	}
}

func ledgerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ledger",
		Aliases: []string{"transactions"},
		Short:   "List every decision in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs := a.controller.Transactions()
			return a.print(cmd.OutOrStdout(), txs, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "DAY\tACTION\tITEM\tAMOUNT\tBALANCE")
				for _, tx := range txs {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%+d\t$%d\n", tx.Day, tx.Action, tx.ItemName, tx.AmountDelta, tx.BalanceAfter)
				}
				_ = tw.Flush()
			})
		},
	}
}
