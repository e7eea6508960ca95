package commands

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bilanz/internal/buildinfo"
)

// globals carries the persistent flags and process-wide state shared by all
// subcommands.
type globals struct {
	repo  string
	debug bool

	level  *slog.LevelVar
	stderr io.Writer
	now    func() time.Time
	runID  string
}

// logger returns a logger writing to stderr in the given format ("text" or
// "json"). All loggers share the level of g.
func (g *globals) logger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: g.level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(g.stderr, opts))
	}
	return slog.New(slog.NewTextHandler(g.stderr, opts))
}

// baseLevel is the level outside journal replay.
func (g *globals) baseLevel() slog.Level {
	if g.debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{level: new(slog.LevelVar), now: time.Now}

	rootCmd := &cobra.Command{
		Use:   "bilanz",
		Short: "Double-entry bookkeeping and Bilanz reports under the HGB",
		Long: `bilanz keeps a double-entry ledger of SKR accounts in a project
directory. Every change is appended to an event journal, and reports are
computed by replaying it.

Example:
  bilanz init kiosk --name "Kiosk am Markt"
  bilanz account starter --repo kiosk
  bilanz txn 1200 3000 25000 -m "Stammeinlage" --repo kiosk
  bilanz report bilanz --repo kiosk`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			g.stderr = cmd.ErrOrStderr()
			g.runID = uuid.NewString()
			g.level.Set(g.baseLevel())
			slog.SetDefault(g.logger("text"))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(g),
		newAccountCommand(g),
		newPostCommand(g),
		newTxnCommand(g),
		newReportCommand(g),
		newCatalogCommand(g),
		newImportCommand(g),
	)

	return rootCmd
}
