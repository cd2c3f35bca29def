package driving

import (
	"context"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// IngestionService runs the document intelligence pipeline over uploaded
// files: extract structured fields, classify tags, check for duplicates.
type IngestionService interface {
	// Preview runs the full pipeline without persisting anything.
	Preview(ctx context.Context, input domain.IngestInput) (*domain.IngestPreview, error)

	// Ingest runs the pipeline and persists the document, applying the
	// duplicate resolution when duplicate candidates exist.
	Ingest(ctx context.Context, input domain.IngestInput, resolution domain.DuplicateResolution) (*domain.Document, error)

	// Reextract re-runs extraction and classification on a stored
	// document and persists the refreshed fields and tags.
	Reextract(ctx context.Context, id string) (*domain.Document, error)
}
