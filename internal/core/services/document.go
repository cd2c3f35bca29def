package services

import (
	"context"
	"strings"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore driven.DocumentStore
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentStore driven.DocumentStore) driving.DocumentService {
	return &documentService{documentStore: documentStore}
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.documentStore.Get(ctx, id)
}

// List retrieves documents in insertion order with pagination
func (s *documentService) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.documentStore.List(ctx, limit, offset)
}

// Count returns the total number of documents
func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.documentStore.Count(ctx)
}

// Rename updates a document's display name
func (s *documentService) Rename(ctx context.Context, id, name string) (*domain.Document, error) {
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Name = name
	doc.UpdatedAt = time.Now().UTC()

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetTags replaces a document's tag set with user-chosen tags. Manual
// tagging overrides the classifier; the choice sticks until the next
// re-extraction.
func (s *documentService) SetTags(ctx context.Context, id string, tags []domain.Tag) (*domain.Document, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, tag := range tags {
		if !domain.IsValidTag(tag) {
			return nil, domain.ErrInvalidInput
		}
	}

	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Tags = tags
	doc.UpdatedAt = time.Now().UTC()

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes a document
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.documentStore.Delete(ctx, id)
}
