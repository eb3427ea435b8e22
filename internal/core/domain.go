package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

// TimestampLayout is the exact format used for the ledger's timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Placeholder used when the model omits description or category.
const placeholder = "N/A"

type (
	// Kind discriminates expense rows from income rows.
	Kind string

	Money struct {
		Cents int64
	}

	// Candidate is the record shape the Gemini extractor returns.
	// JSON tags match its response schema; the kind field is named
	// "type" on the wire.
	Candidate struct {
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Amount      float64 `json:"amount"`
		Kind        string  `json:"type"`
	}

	// Transaction is one validated ledger row, stamped at write time.
	Transaction struct {
		Timestamp   time.Time
		Description string
		Category    string
		Amount      Money
		Kind        Kind
	}

	// Row is one raw ledger row as read back from the store. Fields are
	// kept as strings; aggregation parses them per row and skips what it
	// cannot read.
	Row struct {
		Timestamp   string
		Description string
		Category    string
		Amount      string
		Kind        string
	}
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseKind matches s against the known kinds, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindExpense):
		return KindExpense, true
	case string(KindIncome):
		return KindIncome, true
	}
	return "", false
}

// NewTransaction validates an extracted candidate and stamps it with now.
// The amount must be a finite number strictly greater than zero. Missing or
// unrecognized fields other than the amount never reject the record: kind
// falls back to expense, description and category to a placeholder.
func NewTransaction(c Candidate, now time.Time) (Transaction, error) {
	if math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) || c.Amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	kind, ok := ParseKind(c.Kind)
	if !ok {
		kind = KindExpense
	}
	description := strings.TrimSpace(c.Description)
	if description == "" {
		description = placeholder
	}
	category := strings.TrimSpace(c.Category)
	if category == "" {
		category = placeholder
	}
	return Transaction{
		Timestamp:   now,
		Description: description,
		Category:    category,
		Amount:      MoneyFromFloat(c.Amount),
		Kind:        kind,
	}, nil
}
