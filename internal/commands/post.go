package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/journal"
	"github.com/cleared-dev/bilanz/internal/report"
)

func newPostCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a single-sided entry to one account",
		Long: `Posts to one side of a single account. Most bookings should use
"bilanz txn", which keeps Soll and Haben equal; single-sided postings leave
the Bilanz unbalanced until they are offset.`,
	}
	cmd.AddCommand(
		newPostSideCommand(g, journal.OpDebit, "debit", "Book an amount on the Soll side"),
		newPostSideCommand(g, journal.OpCredit, "credit", "Book an amount on the Haben side"),
	)
	return cmd
}

func newPostSideCommand(g *globals, op journal.Op, use, short string) *cobra.Command {
	var description string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use + " <number> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			out, err := p.record(cmd.Context(), "post "+use, journal.Event{
				Op:          op,
				Account:     args[0],
				Amount:      amount,
				Description: description,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewPostingJSON(*out.Posting))
			}
			return p.out.WritePosting(cmd.OutOrStdout(), *out.Posting)
		},
	}
	cmd.Flags().StringVarP(&description, "message", "m", "", "description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTxnCommand(g *globals) *cobra.Command {
	var description string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "txn <soll-account> <haben-account> <amount>",
		Short: "Book a transfer: debit the first account, credit the second",
		Long: `Books "Soll an Haben": the first account is debited and the second is
credited with the same amount. Both postings succeed or neither does.

Example:
  bilanz txn 6300 1200 59,90 -m "Druckerpapier"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			out, err := p.record(cmd.Context(), "txn", journal.Event{
				Op:             journal.OpTransfer,
				Account:        args[0],
				CounterAccount: args[1],
				Amount:         amount,
				Description:    description,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewTransactionJSON(*out.Transaction))
			}
			return p.out.WriteTransaction(cmd.OutOrStdout(), *out.Transaction)
		},
	}
	cmd.Flags().StringVarP(&description, "message", "m", "", "description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
