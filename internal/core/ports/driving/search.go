package driving

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// SearchService answers free-text queries over the stored corpus.
type SearchService interface {
	// Search returns documents matching the query, in corpus order.
	Search(ctx context.Context, query string) (*domain.SearchResult, error)

	// Ask answers a query as a chat response with reference snippets.
	Ask(ctx context.Context, query string) (*domain.ChatAnswer, error)
}
