package commands

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/journal"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
	"github.com/cleared-dev/bilanz/internal/report"
)

func newAccountCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Open, list and maintain ledger accounts",
	}
	cmd.AddCommand(
		newAccountCreateCommand(g),
		newAccountOpenStandardCommand(g),
		newAccountStarterCommand(g),
		newAccountListCommand(g),
		newAccountShowCommand(g),
		newAccountRenameCommand(g),
		newAccountDeactivateCommand(g),
	)
	return cmd
}

func newAccountCreateCommand(g *globals) *cobra.Command {
	var typ, balance, parent string

	cmd := &cobra.Command{
		Use:   "create <number> <name>",
		Short: "Open an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			accountType, err := model.ParseAccountType(typ)
			if err != nil {
				return err
			}
			initial := decimal.Zero
			if balance != "" {
				if initial, err = parseAmount(balance); err != nil {
					return err
				}
			}

			out, err := p.record(cmd.Context(), "account create", journal.Event{
				Op:          journal.OpOpen,
				Account:     args[0],
				AccountType: accountType,
				Name:        args[1],
				Parent:      parent,
				Amount:      initial,
			})
			if err != nil {
				return err
			}
			return printOpened(cmd, p, *out.Account)
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "account type: aktivkonto, passivkonto, aufwandskonto or ertragskonto (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&balance, "balance", "", "initial balance")
	cmd.Flags().StringVar(&parent, "parent", "", "parent account number")
	return cmd
}

func newAccountOpenStandardCommand(g *globals) *cobra.Command {
	var balance string

	cmd := &cobra.Command{
		Use:   "open-standard <number>",
		Short: "Open an account from the chart of accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			initial := decimal.Zero
			if balance != "" {
				if initial, err = parseAmount(balance); err != nil {
					return err
				}
			}
			acct, err := p.chart.CreateStandard(journaling{cmd.Context(), p, "account open-standard"}, args[0], initial)
			if err != nil {
				return err
			}
			return printOpened(cmd, p, acct)
		},
	}
	cmd.Flags().StringVar(&balance, "balance", "", "initial balance")
	return cmd
}

func newAccountStarterCommand(g *globals) *cobra.Command {
	var balances map[string]string

	cmd := &cobra.Command{
		Use:   "starter",
		Short: "Open the recommended starter accounts",
		Long: `Opens the starter accounts of the chart of accounts. Accounts that
already exist are reported and skipped.

Example:
  bilanz account starter --balance 1200=25000 --balance 3000=25000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			initial := make(map[string]decimal.Decimal, len(balances))
			for number, s := range balances {
				d, err := parseAmount(s)
				if err != nil {
					return fmt.Errorf("--balance %s: %w", number, err)
				}
				initial[number] = d
			}

			res := p.chart.CreateStarter(journaling{cmd.Context(), p, "account starter"}, initial)
			w := cmd.OutOrStdout()
			for _, a := range res.Created {
				fmt.Fprintf(w, "Opened %s %s (%s)\n", a.Number, a.Name, a.Type.Label())
			}
			for _, f := range res.Failed {
				fmt.Fprintf(w, "Skipped %s: %v\n", f.Number, f.Err)
			}
			fmt.Fprintf(w, "%d opened, %d skipped\n", len(res.Created), len(res.Failed))
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&balances, "balance", nil, "initial balance as number=amount (repeatable)")
	return cmd
}

func printOpened(cmd *cobra.Command, p *project, a model.Account) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Opened %s %s (%s)", a.Number, a.Name, a.Type.Label())
	if a.HasCategory() {
		fmt.Fprintf(w, " in %s", p.ledger().Categories().Name(a.Category))
	}
	_, err := fmt.Fprintf(w, ", balance %s\n", p.out.Money(a.Balance()))
	return err
}

func newAccountListCommand(g *globals) *cobra.Command {
	var typ string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			accts := p.ledger().ListActive()
			if typ != "" {
				t, err := model.ParseAccountType(typ)
				if err != nil {
					return err
				}
				filtered := accts[:0]
				for _, a := range accts {
					if a.Type == t {
						filtered = append(filtered, a)
					}
				}
				accts = filtered
			}
			sort.Slice(accts, func(i, j int) bool { return accts[i].Number < accts[j].Number })

			if asJSON {
				out := make([]report.AccountJSON, len(accts))
				for i, a := range accts {
					out[i] = report.NewAccountJSON(a)
				}
				return report.WriteJSON(cmd.OutOrStdout(), out)
			}
			return p.out.WriteAccounts(cmd.OutOrStdout(), accts)
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "only accounts of this type")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newAccountShowCommand(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show an account with all its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			a, ok := p.ledger().Get(args[0])
			if !ok {
				return &ledger.Error{Kind: ledger.ErrAccountNotFound, Account: args[0]}
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewAccountJSON(a))
			}
			return p.out.WriteAccount(cmd.OutOrStdout(), a, p.ledger().Categories())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newAccountRenameCommand(g *globals) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "rename <number> <name>",
		Short: "Rename an account and optionally move it under a parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			out, err := p.record(cmd.Context(), "account rename", journal.Event{
				Op:      journal.OpRename,
				Account: args[0],
				Name:    args[1],
				Parent:  parent,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", out.Account.Number, out.Account.Name)
			return err
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "new parent account number")
	return cmd
}

func newAccountDeactivateCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <number>",
		Short: "Deactivate an account, keeping its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			if _, err := p.record(cmd.Context(), "account deactivate", journal.Event{
				Op:      journal.OpDeactivate,
				Account: args[0],
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", args[0])
			return err
		},
	}
}
