// Package external contains the clients for every upstream service the
// aggregator talks to: the six bibliographic sources, the translation
// endpoint, the MeSH lookup, and the generative-model proxy.
package external

import (
	"context"

	"github.com/evidence-navigator-server/internal/domain"
)

// Searcher is the shared adapter contract: execute a search for a query
// string and return normalized records. Adapters return the empty list on
// non-fatal empty responses and a typed error only on HTTP failures.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]domain.Record, error)
}

// Translator converts a short string between two-letter language codes.
// Failure degrades to the empty string, never an error.
type Translator interface {
	Translate(ctx context.Context, text, src, tgt string) string
}
