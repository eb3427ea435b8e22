package ledger

import (
	"context"

	"finbot/internal/core"
)

// Ports for outbound adapters. The ledger is append-only: rows are never
// mutated or deleted, and every summary is recomputed from a full read.
type (
	Appender interface {
		Append(ctx context.Context, tx core.Transaction) error
	}

	Reader interface {
		// Records returns every ledger row, raw, in sheet order.
		Records(ctx context.Context) ([]core.Row, error)
	}
)
