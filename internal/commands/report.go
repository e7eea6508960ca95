package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/report"
)

var errUnbalanced = errors.New("bilanz is not balanced")

func newReportCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the Bilanz and related reports",
	}
	cmd.AddCommand(
		newReportBilanzCommand(g),
		newReportValidateCommand(g),
		newReportSummaryCommand(g),
		newReportResolveCommand(g),
	)
	return cmd
}

type reportFlags struct {
	periodEnd string
	asJSON    bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.periodEnd, "period-end", "", "Bilanz date as YYYY-MM-DD (default: fiscal period end or today)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON")
}

func newReportBilanzCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "bilanz",
		Short: "Print the balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			periodEnd, err := p.periodEnd(f.periodEnd)
			if err != nil {
				return err
			}
			b := p.engine().Generate(periodEnd)
			if f.asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewBilanzJSON(b))
			}
			return p.out.WriteBilanz(cmd.OutOrStdout(), b)
		},
	}
	f.register(cmd)
	return cmd
}

func newReportValidateCommand(g *globals) *cobra.Command {
	var f reportFlags
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that Aktiva and Passiva balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			periodEnd, err := p.periodEnd(f.periodEnd)
			if err != nil {
				return err
			}
			v := p.engine().Validate(periodEnd)
			if f.asJSON {
				err = report.WriteJSON(cmd.OutOrStdout(), report.NewValidationJSON(v))
			} else {
				err = p.out.WriteValidation(cmd.OutOrStdout(), v)
			}
			if err != nil {
				return err
			}
			if strict && !v.IsBalanced {
				return errUnbalanced
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when the Bilanz does not balance")
	return cmd
}

func newReportSummaryCommand(g *globals) *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print Bilanz totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			periodEnd, err := p.periodEnd(f.periodEnd)
			if err != nil {
				return err
			}
			s := p.engine().Summary(periodEnd)
			if f.asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewSummaryJSON(s))
			}
			return p.out.WriteSummary(cmd.OutOrStdout(), s)
		},
	}
	f.register(cmd)
	return cmd
}

func newReportResolveCommand(g *globals) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "resolve <number>",
		Short: "Show where an account lands in the Bilanz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject()
			if err != nil {
				return err
			}
			r, err := p.engine().Resolve(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.NewResolutionJSON(r))
			}
			return p.out.WriteResolution(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
