package extract

import (
	"context"

	"finbot/internal/core"
)

// Extractor turns a free-text chat message into a candidate transaction.
//
// Implementations make at most one attempt; any failure (transport, bad
// status, unexpected payload) comes back as an error and callers treat
// every error the same way: no record was extracted.
type Extractor interface {
	Extract(ctx context.Context, text string) (core.Candidate, error)
}
