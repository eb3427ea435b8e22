package memory

import (
	"context"
	"strconv"
	"sync"

	"finbot/internal/core"
)

// Store is an in-memory ledger for tests and local runs. Rows are kept in
// the same raw form a spreadsheet read-back would produce.
type Store struct {
	mu   sync.Mutex
	rows []core.Row
}

func New() *Store {
	return &Store{}
}

// Append stores the transaction as a raw row.
func (s *Store) Append(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, core.Row{
		Timestamp:   tx.Timestamp.Format(core.TimestampLayout),
		Description: tx.Description,
		Category:    tx.Category,
		Amount:      strconv.FormatFloat(tx.Amount.Rupees(), 'f', 2, 64),
		Kind:        string(tx.Kind),
	})
	return nil
}

// Records returns a copy of all rows in append order.
func (s *Store) Records(_ context.Context) ([]core.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Row(nil), s.rows...), nil
}

// Seed injects raw rows directly, bypassing validation. Tests use it to
// model rows written by other tools or by hand.
func (s *Store) Seed(rows ...core.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}
