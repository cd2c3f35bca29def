package driving

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// DocumentService provides access to stored documents.
type DocumentService interface {
	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves documents in insertion order with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// Count returns the total number of documents
	Count(ctx context.Context) (int, error)

	// Rename updates a document's display name
	Rename(ctx context.Context, id, name string) (*domain.Document, error)

	// SetTags replaces a document's tag set with user-chosen tags
	SetTags(ctx context.Context, id string, tags []domain.Tag) (*domain.Document, error)

	// Delete removes a document
	Delete(ctx context.Context, id string) error
}
