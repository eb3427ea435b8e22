package memory

import (
	"context"
	"testing"
	"time"

	"finbot/internal/core"
)

func TestAppendThenRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	tx, err := core.NewTransaction(core.Candidate{
		Description: "groceries",
		Category:    "Groceries & Home Needs",
		Amount:      250.5,
		Kind:        "expense",
	}, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new transaction: %v", err)
	}
	if err := s.Append(ctx, tx); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, err := s.Records(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Timestamp != "2024-05-01 10:00:00" || r.Amount != "250.50" || r.Kind != "expense" {
		t.Fatalf("unexpected row: %+v", r)
	}

	// The appended row must be visible to the next aggregation pass.
	totals := core.Summarize(rows)
	if totals.Expense.Cents != 25050 {
		t.Fatalf("expense cents: got %d", totals.Expense.Cents)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := New()
	s.Seed(core.Row{Timestamp: "2024-05-01 10:00:00", Amount: "10", Kind: "expense"})

	rows, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	rows[0].Amount = "999"

	again, _ := s.Records(context.Background())
	if again[0].Amount != "10" {
		t.Fatalf("store mutated through returned slice: %+v", again[0])
	}
}
