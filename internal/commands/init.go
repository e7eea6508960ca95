package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/accounts"
	"github.com/cleared-dev/bilanz/internal/config"
	"github.com/cleared-dev/bilanz/internal/gitops"
	"github.com/cleared-dev/bilanz/internal/importer"
	"github.com/cleared-dev/bilanz/internal/journal"
)

func newInitCommand(g *globals) *cobra.Command {
	var name, standard string
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bilanz project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default(name)
			cfg.Accounting.Standard = standard
			cfg.Git.AutoCommit = git
			if err := cfg.Validate(); err != nil {
				return err
			}

			hash, err := runInit(cmd, absDir, cfg, git)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized bilanz project at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized bilanz project at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&standard, "standard", accounts.HGBStandard, "accounting standard of the chart of accounts")
	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository and commit every change")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, cfg *config.Config, git bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	for _, d := range []string{"accounts", "logs", importer.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.NewService(accounts.DefaultChart(cfg.Accounting.Standard))
	if err := chart.Save(dir); err != nil {
		return "", fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := journal.NewService(dir, cfg.Accounting.Journal).Init(); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, importer.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nexports/\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	if !git {
		return "", nil
	}
	repo := gitops.Repo{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail, Out: cmd.ErrOrStderr()}
	if err := repo.Init(cmd.Context()); err != nil {
		return "", err
	}
	hash, err := repo.CommitAll(cmd.Context(), "init: Initialize "+cfg.Business.Name)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
