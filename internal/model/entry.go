package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountEntry is one immutable posting on a single side of an account.
type AccountEntry struct {
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}
