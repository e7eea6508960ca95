package ledger

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bilanz/internal/model"
)

func TestDebitCredit(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "")

	res, err := l.Debit("1000", dec("250.00"), "Bareinzahlung")
	require.NoError(t, err)
	assert.Equal(t, model.Soll, res.Operation)
	assertDec(t, "250", res.NewBalance)
	assert.Empty(t, res.Notices)

	res, err = l.Credit("1000", dec("50.00"), "")
	require.NoError(t, err)
	assertDec(t, "200", res.NewBalance)
	assert.Equal(t, "Credit transaction", res.Description)
	require.Len(t, res.Notices, 1, "crediting an Aktivkonto decreases it")
	assert.Equal(t, LevelWarning, res.Notices[0].Level)
	assert.Equal(t, "WARNING: Crediting aktivkonto account 1000 will decrease its balance", res.Notices[0].String())

	acct, _ := l.Get("1000")
	assertDec(t, "250", acct.SollBalance)
	assertDec(t, "50", acct.HabenBalance)
	require.Len(t, acct.SollEntries, 1)
	assert.Equal(t, "Bareinzahlung", acct.SollEntries[0].Description)
	assert.Equal(t, fixedNow, acct.SollEntries[0].Timestamp)
}

func TestWrongSideNotices(t *testing.T) {
	tests := []struct {
		number string
		typ    model.AccountType
		side   model.Side
		notice bool
	}{
		{"1000", model.Aktivkonto, model.Soll, false},
		{"1000", model.Aktivkonto, model.Haben, true},
		{"3000", model.Passivkonto, model.Soll, true},
		{"3000", model.Passivkonto, model.Haben, false},
		{"4000", model.Aufwandskonto, model.Soll, false},
		{"4000", model.Aufwandskonto, model.Haben, true},
		{"8000", model.Ertragskonto, model.Soll, true},
		{"8000", model.Ertragskonto, model.Haben, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.typ, tt.side), func(t *testing.T) {
			l := newTestLedger()
			mustCreate(t, l, tt.number, "Konto", tt.typ, "")
			var res PostingResult
			var err error
			if tt.side == model.Soll {
				res, err = l.Debit(tt.number, dec("1"), "")
			} else {
				res, err = l.Credit(tt.number, dec("1"), "")
			}
			require.NoError(t, err, "wrong-side postings are allowed")
			if tt.notice {
				require.Len(t, res.Notices, 1)
				assert.Contains(t, res.Notices[0].Message, "will decrease its balance")
				assertDec(t, "-1", res.NewBalance)
			} else {
				assert.Empty(t, res.Notices)
				assertDec(t, "1", res.NewBalance)
			}
		})
	}
}

func TestPost_InvalidAmount(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "")

	for _, amount := range []string{"0", "-1", "-0.01", "0.001", "10.999"} {
		_, err := l.Debit("1000", dec(amount), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, "debit %s", amount)
		_, err = l.Credit("1000", dec(amount), "")
		assert.ErrorIs(t, err, ErrInvalidAmount, "credit %s", amount)
	}

	acct, _ := l.Get("1000")
	assert.Empty(t, acct.SollEntries)
	assert.Empty(t, acct.HabenEntries)
}

func TestPost_NotFound(t *testing.T) {
	l := newTestLedger()
	_, err := l.Debit("1000", dec("1"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = l.Credit("1000", dec("1"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = l.Balance("1000")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestClassify(t *testing.T) {
	A, P, E, R := model.Aktivkonto, model.Passivkonto, model.Aufwandskonto, model.Ertragskonto
	tests := []struct {
		from, to model.AccountType
		want     Classification
		level    Level
	}{
		{A, A, Aktivtausch, LevelInfo},
		{P, P, Passivtausch, LevelInfo},
		{A, P, Bilanzverlaengerung, LevelInfo},
		{P, A, Bilanzverkuerzung, LevelInfo},
		{E, A, ExpensePayment, LevelInfo},
		{A, R, RevenueReceipt, LevelInfo},
		{E, P, AccruedExpense, LevelInfo},
		{P, R, DeferredRevenue, LevelInfo},
		{E, R, ExpenseToRevenue, LevelWarning},
		{R, E, RevenueToExpense, LevelWarning},
		{A, E, OtherTransfer, LevelInfo},
		{R, A, OtherTransfer, LevelInfo},
		{P, E, OtherTransfer, LevelInfo},
		{R, P, OtherTransfer, LevelInfo},
		{E, E, OtherTransfer, LevelInfo},
		{R, R, OtherTransfer, LevelInfo},
	}
	require.Len(t, tests, 16, "every ordered pair of the four types")
	for _, tt := range tests {
		got := Classify(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "Classify(%s, %s)", tt.from, tt.to)
		n := classificationNotice(got, tt.from, tt.to)
		assert.Equal(t, tt.level, n.Level, "level for %s", got)
		assert.NotEmpty(t, n.Message)
	}
	assert.Equal(t, "Transaction between aktivkonto and aufwandskonto", classificationNotice(OtherTransfer, A, E).Message)
	assert.True(t, Aktivtausch.BilanzNeutral())
	assert.False(t, Bilanzverlaengerung.BilanzNeutral())
	assert.True(t, RevenueToExpense.Unusual())
}

func TestProcess_CapitalInjection(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "0")
	mustCreate(t, l, "3000", "Gezeichnetes Kapital", model.Passivkonto, "0")

	res, err := l.Process("1000", "3000", dec("1000"), "owner injects cash")
	require.NoError(t, err)

	assert.Equal(t, Bilanzverlaengerung, res.Classification)
	assertDec(t, "1000", res.DebitBalance)
	assertDec(t, "1000", res.CreditBalance)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, "INFO: Bilanzverlängerung - Increasing both assets and liabilities", res.Notices[0].String())
	assert.Equal(t, fixedNow, res.Timestamp)

	kasse, _ := l.Get("1000")
	kapital, _ := l.Get("3000")
	assert.Equal(t, "owner injects cash", kasse.SollEntries[0].Description)
	assert.Equal(t, "owner injects cash", kapital.HabenEntries[0].Description)
}

func TestProcess_DefaultDescription(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "100")
	mustCreate(t, l, "1200", "Bank", model.Aktivkonto, "")

	res, err := l.Process("1200", "1000", dec("40"), "")
	require.NoError(t, err)
	assert.Equal(t, "Transfer from 1200 to 1000", res.Description)
	assert.Equal(t, Aktivtausch, res.Classification)
	assertDec(t, "40", res.DebitBalance)
	assertDec(t, "60", res.CreditBalance)
}

func TestProcess_SameAccount(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "100")

	_, err := l.Process("1000", "1000", dec("50"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSameAccountTransfer)

	acct, _ := l.Get("1000")
	assertDec(t, "100", acct.Balance())
	assert.Len(t, acct.SollEntries, 1)
	assert.Empty(t, acct.HabenEntries)
}

func TestProcess_AllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		amount string
		kind   error
	}{
		{"missing debit account", "1100", "3000", "10", ErrAccountNotFound},
		{"missing credit account", "1000", "3100", "10", ErrAccountNotFound},
		{"zero amount", "1000", "3000", "0", ErrInvalidAmount},
		{"negative amount", "1000", "3000", "-5", ErrInvalidAmount},
		{"sub-cent amount", "1000", "3000", "0.005", ErrInvalidAmount},
		{"same account", "3000", "3000", "10", ErrSameAccountTransfer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "")
			mustCreate(t, l, "3000", "Kapital", model.Passivkonto, "")
			before := l.ListActive()

			_, err := l.Process(tt.from, tt.to, dec(tt.amount), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			assert.Equal(t, before, l.ListActive(), "no posting on either side")
		})
	}
}

func TestCheckTransfer_MatchesProcess(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		amount string
		kind   error
	}{
		{"valid", "1000", "3000", "10", nil},
		{"missing debit account", "1100", "3000", "10", ErrAccountNotFound},
		{"missing credit account", "1000", "3100", "10", ErrAccountNotFound},
		{"zero amount", "1000", "3000", "0", ErrInvalidAmount},
		{"sub-cent amount", "1000", "3000", "17.005", ErrInvalidAmount},
		{"same account", "3000", "3000", "10", ErrSameAccountTransfer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "")
			mustCreate(t, l, "3000", "Kapital", model.Passivkonto, "")
			before := l.ListActive()

			err := l.CheckTransfer(tt.from, tt.to, dec(tt.amount))
			assert.Equal(t, before, l.ListActive(), "checking never posts")
			if tt.kind == nil {
				require.NoError(t, err)
				_, err = l.Process(tt.from, tt.to, dec(tt.amount), "")
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.kind)
			_, perr := l.Process(tt.from, tt.to, dec(tt.amount), "")
			assert.Equal(t, err, perr)
		})
	}
}

func TestProcess_LogsDecreasingLeg(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	mustCreate(t, l, "1200", "Bank", model.Aktivkonto, "100")
	mustCreate(t, l, "6300", "Bürokosten", model.Aufwandskonto, "")

	res, err := l.Process("6300", "1200", dec("20"), "")
	require.NoError(t, err)
	require.Len(t, res.Notices, 1, "side notices are logged, not returned")
	assert.Contains(t, buf.String(), "Crediting aktivkonto account 1200 will decrease its balance")
	assert.NotContains(t, buf.String(), "account 6300 will decrease")
}

func TestProcess_OnlyTouchesTwoAccounts(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "300")
	mustCreate(t, l, "1200", "Bank", model.Aktivkonto, "700")
	mustCreate(t, l, "3000", "Kapital", model.Passivkonto, "1000")
	mustCreate(t, l, "6300", "Bürokosten", model.Aufwandskonto, "")

	before := map[string]model.Account{}
	for _, a := range l.ListActive() {
		before[a.Number] = a
	}

	res, err := l.Process("6300", "1200", dec("45.90"), "Büromaterial")
	require.NoError(t, err)
	assert.Equal(t, ExpensePayment, res.Classification)

	for _, a := range l.ListActive() {
		b := before[a.Number]
		switch a.Number {
		case "6300":
			assertDec(t, "45.90", a.SollBalance.Sub(b.SollBalance))
			assert.True(t, a.HabenBalance.Equal(b.HabenBalance))
		case "1200":
			assertDec(t, "45.90", a.HabenBalance.Sub(b.HabenBalance))
			assert.True(t, a.SollBalance.Equal(b.SollBalance))
		default:
			assert.Equal(t, b, a, "account %s must not change", a.Number)
		}
	}
}

func TestProcess_ConcurrentReadersSeeWholeTransfers(t *testing.T) {
	l := newTestLedger()
	mustCreate(t, l, "1000", "Kasse", model.Aktivkonto, "10000")
	mustCreate(t, l, "1200", "Bank", model.Aktivkonto, "")

	const transfers = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < transfers; i++ {
			from, to := "1200", "1000"
			if i%2 == 1 {
				from, to = "1000", "1200"
			}
			_, err := l.Process(from, to, dec("3.33"), "")
			assert.NoError(t, err)
		}
	}()

	total := dec("10000")
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < transfers; j++ {
				sum := decimal.Zero
				for _, a := range l.ListActive() {
					sum = sum.Add(a.Balance())
				}
				assert.True(t, total.Equal(sum), "reader saw half a transfer: %s", sum)
			}
		}()
	}
	wg.Wait()

	kasse, _ := l.Get("1000")
	assert.Len(t, kasse.SollEntries, 1+transfers/2)
	assert.Len(t, kasse.HabenEntries, transfers/2)
}
