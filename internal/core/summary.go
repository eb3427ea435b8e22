package core

import (
	"log/slog"
	"sort"
	"strings"
	"time"
)

const monthKeyLayout = "2006-01"
const monthLabelLayout = "January 2006"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Totals is the global income/expense summary over the whole ledger.
type Totals struct {
	Income  Money
	Expense Money
}

func (t Totals) Balance() Money {
	return Money{Cents: t.Income.Cents - t.Expense.Cents}
}

// MonthBucket is the derived per-month aggregation. It is rebuilt from a
// full ledger scan on every breakdown request and never persisted.
type MonthBucket struct {
	Key          string // YYYY-MM
	Label        string // full month name + year
	Expenses     []CategoryAmount
	Income       Money
	TotalExpense Money
}

func (b MonthBucket) Balance() Money {
	return Money{Cents: b.Income.Cents - b.TotalExpense.Cents}
}

// Summarize scans every ledger row and accumulates the global totals.
// Rows whose amount does not parse to a positive number are skipped.
// Rows with an unknown kind count toward neither bucket. Timestamps are
// never inspected here; a row with a broken timestamp still contributes.
func Summarize(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		cents, err := ParseAmountToCents(r.Amount)
		if err != nil {
			slog.Warn("Skipping row with unusable amount", "amount", r.Amount, "description", r.Description)
			continue
		}
		kind, ok := ParseKind(r.Kind)
		if !ok {
			continue
		}
		switch kind {
		case KindExpense:
			t.Expense.Cents += cents
		case KindIncome:
			t.Income.Cents += cents
		}
	}
	return t
}

// Breakdown scans every ledger row and groups it into month buckets.
// A row survives only if its timestamp is non-empty and parses with
// TimestampLayout and its amount parses to a positive number; anything
// else is skipped. A surviving row claims its month bucket even when its
// kind is unknown, so such rows still show up as an (empty) month.
// Buckets come back in chronological order with categories sorted by name.
func Breakdown(rows []Row) []MonthBucket {
	type bucket struct {
		label   string
		byCat   map[string]int64
		income  int64
		expense int64
	}
	months := map[string]*bucket{}

	for _, r := range rows {
		if strings.TrimSpace(r.Timestamp) == "" {
			slog.Warn("Skipping row without timestamp", "description", r.Description)
			continue
		}
		cents, err := ParseAmountToCents(r.Amount)
		if err != nil {
			slog.Warn("Skipping row with unusable amount", "amount", r.Amount, "description", r.Description)
			continue
		}
		ts, err := time.Parse(TimestampLayout, strings.TrimSpace(r.Timestamp))
		if err != nil {
			slog.Warn("Skipping row with unparsable timestamp", "timestamp", r.Timestamp, "description", r.Description)
			continue
		}

		key := ts.Format(monthKeyLayout)
		b := months[key]
		if b == nil {
			b = &bucket{label: ts.Format(monthLabelLayout), byCat: map[string]int64{}}
			months[key] = b
		}

		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = "Uncategorized"
		}
		kind, ok := ParseKind(r.Kind)
		if !ok {
			continue
		}
		switch kind {
		case KindExpense:
			b.byCat[category] += cents
			b.expense += cents
		case KindIncome:
			b.income += cents
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	// Lexicographic order on YYYY-MM keys is chronological order.
	sort.Strings(keys)

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		b := months[k]
		cats := make([]CategoryAmount, 0, len(b.byCat))
		for name, cents := range b.byCat {
			cats = append(cats, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
		out = append(out, MonthBucket{
			Key:          k,
			Label:        b.label,
			Expenses:     cats,
			Income:       Money{Cents: b.income},
			TotalExpense: Money{Cents: b.expense},
		})
	}
	return out
}
