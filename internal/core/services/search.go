package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
	"github.com/santhosh-patel/snapkeep-core/internal/query"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService answers free-text queries over a corpus snapshot.
type searchService struct {
	documentStore driven.DocumentStore
	engine        *query.Engine
	logger        *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(documentStore driven.DocumentStore, logger *slog.Logger) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		documentStore: documentStore,
		engine:        query.New(),
		logger:        logger,
	}
}

// Search returns documents matching the query, in corpus order.
func (s *searchService) Search(ctx context.Context, q string) (*domain.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.ErrInvalidInput
	}

	start := time.Now()
	corpus, err := s.documentStore.All(ctx)
	if err != nil {
		return nil, err
	}

	docs := s.engine.Search(q, corpus)
	took := time.Since(start)

	s.logger.Info("search completed", "query", q, "corpus", len(corpus), "hits", len(docs), "took", took)

	return &domain.SearchResult{
		Query:     q,
		Documents: docs,
		Took:      took,
	}, nil
}

// Ask answers a query as a chat response with reference snippets.
func (s *searchService) Ask(ctx context.Context, q string) (*domain.ChatAnswer, error) {
	result, err := s.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	return &domain.ChatAnswer{
		Query:      result.Query,
		Documents:  result.Documents,
		References: s.engine.References(result.Query, result.Documents),
	}, nil
}
