package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bilanz/internal/model"
)

func TestNewService_DefaultPath(t *testing.T) {
	svc := NewService("/repo", "")
	assert.Equal(t, filepath.Join("/repo", "journal", "events.csv"), svc.Path())

	svc = NewService("/repo", "books/2025.csv")
	assert.Equal(t, filepath.Join("/repo", "books", "2025.csv"), svc.Path())
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "")
	require.NoError(t, svc.Init())

	data, err := os.ReadFile(svc.Path())
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))

	_, err = svc.Append(Event{Timestamp: ts(2025, 1, 5, 9), Op: OpOpen, Account: "1000", AccountType: model.Aktivkonto, Name: "Kasse"})
	require.NoError(t, err)
	require.NoError(t, svc.Init(), "Init keeps an existing journal")

	events, err := svc.Load()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLoad_Missing(t *testing.T) {
	events, err := NewService(t.TempDir(), "").Load()
	require.NoError(t, err)
	assert.Nil(t, events)
}

func TestAppend_AssignsIDs(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "")

	ev, err := svc.Append(Event{Timestamp: ts(2025, 1, 5, 9), Op: OpOpen, Account: "1000", AccountType: model.Aktivkonto, Name: "Kasse"})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", ev.ID)

	ev, err = svc.Append(Event{Timestamp: ts(2025, 1, 6, 9), Op: OpDebit, Account: "1000", Amount: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", ev.ID)

	ev, err = svc.Append(Event{Timestamp: ts(2025, 2, 1, 9), Op: OpCredit, Account: "1000", Amount: dec("20")})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-001", ev.ID, "sequence restarts in a new month")

	events, err := svc.Load()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, OpCredit, events[2].Op)
	assert.True(t, events[1].Amount.Equal(dec("50")))
}

func TestAppend_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "")

	_, err := svc.Append(Event{Timestamp: ts(2025, 1, 5, 9), Op: OpDebit, Account: "1000", Amount: dec("0.001")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, statErr := os.Stat(svc.Path())
	assert.True(t, os.IsNotExist(statErr), "nothing written on failure")
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "")
	require.NoError(t, os.MkdirAll(filepath.Dir(svc.Path()), 0o755))
	require.NoError(t, os.WriteFile(svc.Path(), []byte(Header+"\n2025-01-001,gestern,open,1000,,,,,,\n"), 0o644))

	_, err := svc.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
