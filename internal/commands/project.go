package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/accounts"
	"github.com/cleared-dev/bilanz/internal/activitylog"
	"github.com/cleared-dev/bilanz/internal/bilanz"
	"github.com/cleared-dev/bilanz/internal/config"
	"github.com/cleared-dev/bilanz/internal/gitops"
	"github.com/cleared-dev/bilanz/internal/journal"
	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
	"github.com/cleared-dev/bilanz/internal/report"
)

// project is an opened bilanz project: its configuration, chart of accounts
// and a ledger rebuilt from the journal.
type project struct {
	root    string
	cfg     *config.Config
	chart   *accounts.Service
	journal *journal.Service
	book    *journal.Book
	log     *slog.Logger
	out     *report.Formatter
	now     func() time.Time
	runID   string
}

// openProject loads the project at --repo and replays its journal. Replay is
// logged only with --debug so historic notices are not repeated.
func (g *globals) openProject() (*project, error) {
	root, err := filepath.Abs(g.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadProject(root)
	if err != nil {
		return nil, err
	}
	log := g.logger(cfg.Log.Format)
	slog.SetDefault(log)

	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}

	js := journal.NewService(root, cfg.Accounting.Journal)
	events, err := js.Load()
	if err != nil {
		return nil, err
	}

	if !g.debug {
		g.level.Set(slog.LevelError)
	}
	book, err := journal.Replay(events, ledger.WithLogger(log))
	g.level.Set(g.baseLevel())
	if err != nil {
		return nil, fmt.Errorf("loading journal %s: %w", js.Path(), err)
	}
	log.Debug("journal replayed", "events", len(events), "accounts", book.Ledger.Count())

	return &project{
		root:    root,
		cfg:     cfg,
		chart:   chart,
		journal: js,
		book:    book,
		log:     log,
		out:     report.NewFormatter(cfg.Accounting.Locale),
		now:     g.now,
		runID:   g.runID,
	}, nil
}

func (p *project) ledger() *ledger.Ledger {
	return p.book.Ledger
}

func (p *project) engine() *bilanz.Engine {
	return bilanz.NewEngine(p.ledger(), bilanz.WithLogger(p.log), bilanz.WithClock(p.now))
}

// record applies ev to the ledger, appends it to the journal, writes an
// activity log entry and optionally commits, so each commit holds its own
// journal and log rows. The ledger is only persisted when the event applied
// cleanly.
func (p *project) record(ctx context.Context, command string, ev journal.Event) (journal.Outcome, error) {
	ev.Timestamp = p.now().UTC()
	outcome, err := p.book.Apply(ev)
	if err != nil {
		return journal.Outcome{}, err
	}
	stored, err := p.journal.Append(ev)
	if err != nil {
		return journal.Outcome{}, err
	}

	notices := make([]string, 0, len(outcome.Notices()))
	for _, n := range outcome.Notices() {
		notices = append(notices, n.String())
	}

	entry := activitylog.Entry{
		Timestamp: stored.Timestamp,
		RunID:     p.runID,
		Command:   command,
		EventID:   stored.ID,
		Details:   describe(stored),
		Notices:   notices,
	}
	if err := activitylog.Append(p.root, entry); err != nil {
		return journal.Outcome{}, err
	}

	var hash string
	repo := p.repo()
	if p.cfg.Git.AutoCommit && repo.IsRepo() {
		msg := fmt.Sprintf("%s: %s\n\nEvent: %s", command, describe(stored), stored.ID)
		hash, err = repo.CommitAll(ctx, msg)
		if err != nil {
			return journal.Outcome{}, fmt.Errorf("committing %s: %w", stored.ID, err)
		}
	}
	p.log.Debug("event recorded", "id", stored.ID, "op", stored.Op, "commit", hash)
	return outcome, nil
}

func (p *project) repo() gitops.Repo {
	return gitops.Repo{Dir: p.root, AuthorName: p.cfg.Git.AuthorName, AuthorEmail: p.cfg.Git.AuthorEmail}
}

// describe renders an event as a one-line summary for commit messages and
// the activity log.
func describe(ev journal.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", ev.Op, ev.Account)
	switch ev.Op {
	case journal.OpOpen:
		fmt.Fprintf(&b, " %s (%s)", ev.Name, ev.AccountType)
		if !ev.Amount.IsZero() {
			fmt.Fprintf(&b, " opening %s", ev.Amount.StringFixed(2))
		}
	case journal.OpTransfer:
		fmt.Fprintf(&b, " an %s %s", ev.CounterAccount, ev.Amount.StringFixed(2))
	case journal.OpDebit, journal.OpCredit:
		fmt.Fprintf(&b, " %s", ev.Amount.StringFixed(2))
	case journal.OpRename:
		fmt.Fprintf(&b, " %s", ev.Name)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, " %q", ev.Description)
	}
	return b.String()
}

// journaling adapts a project to accounts.Ledger so catalog helpers open
// accounts through the journal.
type journaling struct {
	ctx     context.Context
	p       *project
	command string
}

func (j journaling) Create(params ledger.CreateParams) (model.Account, error) {
	out, err := j.p.record(j.ctx, j.command, journal.Event{
		Op:          journal.OpOpen,
		Account:     params.Number,
		AccountType: params.Type,
		Name:        params.Name,
		Parent:      params.ParentAccount,
		Amount:      params.InitialBalance,
	})
	if err != nil {
		return model.Account{}, err
	}
	return *out.Account, nil
}

func (j journaling) Get(number string) (model.Account, bool) {
	return j.p.ledger().Get(number)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// periodEnd parses --period-end or falls back to the configured default.
func (p *project) periodEnd(flag string) (time.Time, error) {
	if flag == "" {
		return p.cfg.Fiscal.DefaultPeriodEnd(p.now())
	}
	t, err := time.Parse(time.DateOnly, flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --period-end %q: want YYYY-MM-DD", flag)
	}
	return t, nil
}
