package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/accounts"
	"github.com/cleared-dev/bilanz/internal/config"
	"github.com/cleared-dev/bilanz/internal/ledger"
)

func newCatalogCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the standard chart of accounts",
		Long: `Browses the project's chart of accounts. Outside a project the
built-in HGB standard chart is used.`,
	}
	cmd.AddCommand(
		newCatalogSearchCommand(g),
		newCatalogShowCommand(g),
		newCatalogCategoriesCommand(g),
	)
	return cmd
}

// catalog returns the project's chart and ledger, or the built-in chart and
// an empty ledger when --repo is not a project.
func (g *globals) catalog() (*accounts.Service, accounts.Ledger, error) {
	root, err := filepath.Abs(g.repo)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving path: %w", err)
	}
	_, err = config.Load(filepath.Join(root, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return accounts.NewService(accounts.DefaultChart(accounts.HGBStandard)), ledger.New(), nil
	}
	p, err := g.openProject()
	if err != nil {
		return nil, nil, err
	}
	return p.chart, p.ledger(), nil
}

func newCatalogSearchCommand(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search accounts by number, name or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, l, err := g.catalog()
			if err != nil {
				return err
			}
			hits := chart.Suggestions(l, args[0], limit)
			if len(hits) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No accounts match %q.\n", args[0])
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Nr.\tName\tTyp\tKategorie\tStatus")
			for _, s := range hits {
				status := ""
				if s.AlreadyExists {
					status = "open, balance " + s.CurrentBalance.StringFixed(2)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Number, s.Name, s.Type.Label(), s.Category, status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results (0 for all)")
	return cmd
}

func newCatalogShowCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one account of the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := g.catalog()
			if err != nil {
				return err
			}
			a, ok := chart.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", accounts.ErrUnknownStandardAccount, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\nTyp:       %s\nKategorie: %s\n", a.Number, a.Name, a.Type.Label(), a.Category)
			return err
		},
	}
}

func newCatalogCategoriesCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := g.catalog()
			if err != nil {
				return err
			}
			for _, c := range chart.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", c, len(chart.ByCategory(c)))
			}
			return nil
		},
	}
}
