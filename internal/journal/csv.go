package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bilanz/internal/model"
)

// Header is the CSV header for events.csv.
const Header = "event_id,timestamp,op,account,counter_account,account_type,name,parent,amount,description"

const (
	numFields      = 10
	colEventID     = 0
	colTimestamp   = 1
	colOp          = 2
	colAccount     = 3
	colCounter     = 4
	colAccountType = 5
	colName        = 6
	colParent      = 7
	colAmount      = 8
	colDesc        = 9
)

// ReadEvents reads all events from an events.csv reader.
func ReadEvents(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var events []Event
	for i, rec := range records[1:] {
		ev, err := UnmarshalEvent(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// WriteEvents writes events to an events.csv writer (including header).
func WriteEvents(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, ev := range events {
		if err := cw.Write(MarshalEvent(ev)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendEvents appends events to an existing events.csv writer (no header).
func AppendEvents(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, ev := range events {
		if err := cw.Write(MarshalEvent(ev)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEvent converts an Event to a CSV row.
func MarshalEvent(ev Event) []string {
	row := make([]string, numFields)
	row[colEventID] = ev.ID
	row[colTimestamp] = ev.Timestamp.Format(time.RFC3339Nano)
	row[colOp] = string(ev.Op)
	row[colAccount] = ev.Account
	row[colCounter] = ev.CounterAccount
	row[colAccountType] = string(ev.AccountType)
	row[colName] = ev.Name
	row[colParent] = ev.Parent
	if !ev.Amount.IsZero() {
		row[colAmount] = ev.Amount.String()
	}
	row[colDesc] = ev.Description
	return row
}

// UnmarshalEvent converts a CSV row to an Event. It checks the row's syntax
// only; see ValidateEvents for the journal rules.
func UnmarshalEvent(record []string) (Event, error) {
	if len(record) != numFields {
		return Event{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339Nano, record[colTimestamp])
	if err != nil {
		return Event{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var amount decimal.Decimal
	if record[colAmount] != "" {
		amount, err = decimal.NewFromString(record[colAmount])
		if err != nil {
			return Event{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
	}

	return Event{
		ID:             record[colEventID],
		Timestamp:      ts,
		Op:             Op(record[colOp]),
		Account:        record[colAccount],
		CounterAccount: record[colCounter],
		AccountType:    model.AccountType(record[colAccountType]),
		Name:           record[colName],
		Parent:         record[colParent],
		Amount:         amount,
		Description:    record[colDesc],
	}, nil
}
