package journal

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bilanz/internal/ledger"
	"github.com/cleared-dev/bilanz/internal/model"
)

func quiet() ledger.Option {
	return ledger.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReplay(t *testing.T) {
	events := validJournal()
	events = append(events,
		Event{ID: "2025-01-004", Timestamp: ts(2025, 1, 20, 10), Op: OpRename, Account: "1000", Name: "Hauptkasse"},
		Event{ID: "2025-01-005", Timestamp: ts(2025, 1, 21, 10), Op: OpCredit, Account: "1000", Amount: dec("100"), Description: "Entnahme"},
		Event{ID: "2025-01-006", Timestamp: ts(2025, 1, 22, 10), Op: OpDebit, Account: "3000", Amount: dec("100")},
	)

	b, err := Replay(events, quiet())
	require.NoError(t, err)

	kasse, ok := b.Ledger.Get("1000")
	require.True(t, ok)
	assert.Equal(t, "Hauptkasse", kasse.Name)
	assert.Equal(t, ts(2025, 1, 10, 8), kasse.CreatedAt)
	assert.True(t, kasse.Balance().Equal(dec("900")))
	require.Len(t, kasse.SollEntries, 1)
	assert.Equal(t, ts(2025, 1, 15, 12), kasse.SollEntries[0].Timestamp, "entry keeps the event timestamp")
	assert.Equal(t, "Transfer from 1000 to 3000", kasse.SollEntries[0].Description)
	require.Len(t, kasse.HabenEntries, 1)
	assert.Equal(t, "Entnahme", kasse.HabenEntries[0].Description)

	kapital, _ := b.Ledger.Get("3000")
	assert.True(t, kapital.Balance().Equal(dec("900")))
	assert.Equal(t, "Debit transaction", kapital.SollEntries[0].Description)
}

func TestReplay_RoundTripThroughFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "")

	live := NewBook(quiet())
	for _, ev := range []Event{
		{Timestamp: ts(2025, 3, 1, 9), Op: OpOpen, Account: "1200", AccountType: model.Aktivkonto, Name: "Bank", Amount: dec("5000")},
		{Timestamp: ts(2025, 3, 1, 9), Op: OpOpen, Account: "3000", AccountType: model.Passivkonto, Name: "Kapital", Amount: dec("5000")},
		{Timestamp: ts(2025, 3, 2, 9), Op: OpOpen, Account: "6300", AccountType: model.Aufwandskonto, Name: "Bürokosten"},
		{Timestamp: ts(2025, 3, 3, 9), Op: OpTransfer, Account: "6300", CounterAccount: "1200", Amount: dec("12.34"), Description: "Toner"},
		{Timestamp: ts(2025, 3, 4, 9), Op: OpDeactivate, Account: "6300"},
	} {
		_, err := live.Apply(ev)
		require.NoError(t, err)
		_, err = svc.Append(ev)
		require.NoError(t, err)
	}

	events, err := svc.Load()
	require.NoError(t, err)
	replayed, err := Replay(events, quiet())
	require.NoError(t, err)

	assert.Equal(t, live.Ledger.ListActive(), replayed.Ledger.ListActive())
	assert.Equal(t, 2, replayed.Ledger.Count())
	_, ok := replayed.Ledger.Get("6300")
	assert.False(t, ok)
}

func TestReplay_InvalidJournal(t *testing.T) {
	events := validJournal()
	events[2].Amount = dec("-1")
	_, err := Replay(events, quiet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid journal")
}

func TestReplay_LedgerRejection(t *testing.T) {
	events := validJournal()
	events[2].CounterAccount = "3100"

	_, err := Replay(events, quiet())
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.Contains(t, err.Error(), "2025-01-003")
}

func TestApply_Outcome(t *testing.T) {
	b := NewBook(quiet())

	out, err := b.Apply(openEvent(1, "1000", model.Aktivkonto, "Kasse"))
	require.NoError(t, err)
	require.NotNil(t, out.Account)
	assert.Nil(t, out.Notices())

	out, err = b.Apply(Event{Timestamp: ts(2025, 1, 11, 0), Op: OpCredit, Account: "1000", Amount: dec("5")})
	require.NoError(t, err)
	require.NotNil(t, out.Posting)
	assert.Len(t, out.Notices(), 1, "crediting an Aktivkonto is reported")

	_, err = b.Apply(openEvent(2, "3000", model.Passivkonto, "Kapital"))
	require.NoError(t, err)
	out, err = b.Apply(transferEvent(3, "1000", "3000", "10"))
	require.NoError(t, err)
	require.NotNil(t, out.Transaction)
	assert.Equal(t, ledger.Bilanzverlaengerung, out.Transaction.Classification)
	assert.Equal(t, ts(2025, 1, 15, 12), out.Transaction.Timestamp)

	out, err = b.Apply(Event{Op: OpDeactivate, Account: "3000"})
	require.NoError(t, err)
	assert.Equal(t, Outcome{}, out)

	_, err = b.Apply(Event{Op: "storno", Account: "1000"})
	assert.ErrorContains(t, err, "unknown op")
}

func TestNewBook_IgnoresCallerClock(t *testing.T) {
	b := NewBook(quiet(), ledger.WithClock(func() time.Time { return time.Time{} }))
	acct, err := b.Apply(openEvent(1, "1000", model.Aktivkonto, "Kasse"))
	require.NoError(t, err)
	assert.Equal(t, ts(2025, 1, 10, 8), acct.Account.CreatedAt)
}
