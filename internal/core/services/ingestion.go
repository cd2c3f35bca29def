package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/classify"
	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driving"
	"github.com/santhosh-patel/snapkeep-core/internal/extract"
	"github.com/santhosh-patel/snapkeep-core/internal/normalise"
	"github.com/santhosh-patel/snapkeep-core/internal/similarity"
)

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// ingestionService runs the intelligence pipeline over uploads:
// normalise -> extract -> classify -> duplicate check.
type ingestionService struct {
	documentStore driven.DocumentStore
	extractor     *extract.Extractor
	classifier    *classify.Classifier
	similarity    *similarity.Engine
	logger        *slog.Logger
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(documentStore driven.DocumentStore, logger *slog.Logger) driving.IngestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestionService{
		documentStore: documentStore,
		extractor:     extract.New(),
		classifier:    classify.New(),
		similarity:    similarity.New(),
		logger:        logger,
	}
}

// Preview runs the full pipeline without persisting anything.
func (s *ingestionService) Preview(ctx context.Context, input domain.IngestInput) (*domain.IngestPreview, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	text := normalise.Text(input.RawText)
	extraction := s.extractor.Extract(text)
	tags := s.classifier.Classify(text, input.Name, input.MimeType)

	corpus, err := s.documentStore.All(ctx)
	if err != nil {
		return nil, err
	}
	duplicates := s.similarity.FindDuplicates(text, input.Name, corpus)

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:              domain.NewID(),
		Name:            normalise.Name(input.Name),
		MimeType:        input.MimeType,
		Type:            domain.DeriveDocumentType(input.MimeType, input.Name),
		RawText:         text,
		Tags:            tags,
		ExtractedFields: extraction.FieldList(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return &domain.IngestPreview{
		Document:   doc,
		Extraction: extraction,
		Duplicates: duplicates,
	}, nil
}

// Ingest runs the pipeline and persists the document, applying the
// duplicate resolution when duplicate candidates exist.
func (s *ingestionService) Ingest(ctx context.Context, input domain.IngestInput, resolution domain.DuplicateResolution) (*domain.Document, error) {
	preview, err := s.Preview(ctx, input)
	if err != nil {
		return nil, err
	}

	doc := preview.Document

	if len(preview.Duplicates) > 0 {
		switch resolution {
		case domain.ResolutionSkip:
			s.logger.Info("skipping duplicate upload",
				"name", doc.Name,
				"matched", preview.Duplicates[0].MatchedDocumentID,
				"score", preview.Duplicates[0].Score)
			return nil, domain.ErrDuplicateSkipped
		case domain.ResolutionReplace:
			// Take over the top candidate's identity so references to it
			// keep resolving.
			existing, err := s.documentStore.Get(ctx, preview.Duplicates[0].MatchedDocumentID)
			if err != nil {
				return nil, err
			}
			doc.ID = existing.ID
			doc.CreatedAt = existing.CreatedAt
		case domain.ResolutionKeepBoth, "":
			// Store alongside the existing documents.
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document ingested",
		"id", doc.ID,
		"name", doc.Name,
		"type", doc.Type,
		"tags", doc.Tags,
		"fields", len(doc.ExtractedFields),
		"duplicates", len(preview.Duplicates))

	return doc, nil
}

// Reextract re-runs extraction and classification on a stored document
// and persists the refreshed fields and tags.
func (s *ingestionService) Reextract(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	text := normalise.Text(doc.RawText)
	extraction := s.extractor.Extract(text)

	doc.RawText = text
	doc.ExtractedFields = extraction.FieldList()
	doc.Tags = s.classifier.Classify(text, doc.Name, doc.MimeType)
	doc.UpdatedAt = time.Now().UTC()

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document re-extracted", "id", doc.ID, "fields", len(doc.ExtractedFields))
	return doc, nil
}
