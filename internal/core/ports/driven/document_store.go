package driven

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// DocumentStore handles document persistence. The intelligence core only
// reads corpus snapshots; writes happen on behalf of explicit caller
// decisions (ingest, rename, retag, delete).
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves documents in insertion order with pagination
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// All returns the full corpus snapshot in insertion order
	All(ctx context.Context) ([]*domain.Document, error)

	// Delete deletes a document
	Delete(ctx context.Context, id string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)
}
