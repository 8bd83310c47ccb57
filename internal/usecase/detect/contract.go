package detect

import (
	"context"

	"github.com/kailas-cloud/claimlens/internal/domain"
)

// LLM issues a single completion request against the language model provider.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Searcher retrieves candidate articles for a search query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Article, error)
}
