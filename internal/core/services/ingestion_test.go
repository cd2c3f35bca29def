package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven/mocks"
)

const invoiceText = `Invoice #INV-2024-001
Due Date: 12/15/2024
Subtotal: $1,500.00
Total: $1,650.00`

func newTestIngestionService() (*mocks.MockDocumentStore, *ingestionService) {
	store := mocks.NewMockDocumentStore()
	svc := NewIngestionService(store, nil).(*ingestionService)
	return store, svc
}

func seedDocument(t *testing.T, store *mocks.MockDocumentStore, name, text string, tags ...domain.Tag) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		ID:        domain.NewID(),
		Name:      name,
		MimeType:  "application/pdf",
		Type:      domain.DocumentTypePDF,
		RawText:   text,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.Save(context.Background(), doc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return doc
}

func TestIngestionService_Preview(t *testing.T) {
	store, svc := newTestIngestionService()

	preview, err := svc.Preview(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  invoiceText,
	})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	if preview.Document.Type != domain.DocumentTypePDF {
		t.Errorf("Type = %q, want pdf", preview.Document.Type)
	}
	if preview.Document.PrimaryTag() != domain.TagInvoice {
		t.Errorf("PrimaryTag = %q, want invoice", preview.Document.PrimaryTag())
	}
	if got := preview.Extraction.Fields["invoiceNumber"]; got != "INV-2024-001" {
		t.Errorf("invoiceNumber = %q", got)
	}
	if len(preview.Extraction.Dates) != 1 || preview.Extraction.Dates[0].Type != domain.DateTypeDue {
		t.Errorf("Dates = %+v, want one due_date", preview.Extraction.Dates)
	}

	// Preview must not persist anything.
	count, _ := store.Count(context.Background())
	if count != 0 {
		t.Errorf("Count = %d after preview, want 0", count)
	}
}

func TestIngestionService_Preview_EmptyName(t *testing.T) {
	_, svc := newTestIngestionService()

	if _, err := svc.Preview(context.Background(), domain.IngestInput{Name: "  "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Preview() error = %v, want ErrInvalidInput", err)
	}
}

func TestIngestionService_Ingest_KeepBoth(t *testing.T) {
	store, svc := newTestIngestionService()
	existing := seedDocument(t, store, "invoice_jan.pdf", invoiceText, domain.TagInvoice)

	doc, err := svc.Ingest(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  invoiceText,
	}, domain.ResolutionKeepBoth)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if doc.ID == existing.ID {
		t.Error("keep_both reused the existing document ID")
	}

	count, _ := store.Count(context.Background())
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestIngestionService_Ingest_Skip(t *testing.T) {
	store, svc := newTestIngestionService()
	seedDocument(t, store, "invoice_jan.pdf", invoiceText, domain.TagInvoice)

	_, err := svc.Ingest(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  invoiceText,
	}, domain.ResolutionSkip)
	if !errors.Is(err, domain.ErrDuplicateSkipped) {
		t.Fatalf("Ingest() error = %v, want ErrDuplicateSkipped", err)
	}

	count, _ := store.Count(context.Background())
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestIngestionService_Ingest_SkipWithoutDuplicates(t *testing.T) {
	store, svc := newTestIngestionService()

	// Skip only applies when duplicate candidates exist.
	doc, err := svc.Ingest(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  invoiceText,
	}, domain.ResolutionSkip)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if _, err := store.Get(context.Background(), doc.ID); err != nil {
		t.Errorf("document not stored: %v", err)
	}
}

func TestIngestionService_Ingest_Replace(t *testing.T) {
	store, svc := newTestIngestionService()
	existing := seedDocument(t, store, "invoice_jan.pdf", invoiceText, domain.TagInvoice)

	updated := invoiceText + "\nPaid: $1,650.00"
	doc, err := svc.Ingest(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  updated,
	}, domain.ResolutionReplace)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if doc.ID != existing.ID {
		t.Errorf("replace created new ID %q, want %q", doc.ID, existing.ID)
	}
	if !doc.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("replace did not keep the original CreatedAt")
	}

	count, _ := store.Count(context.Background())
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
	stored, _ := store.Get(context.Background(), existing.ID)
	if stored.RawText == invoiceText {
		t.Error("replace did not overwrite stored text")
	}
}

func TestIngestionService_Ingest_InvalidResolution(t *testing.T) {
	store, svc := newTestIngestionService()
	seedDocument(t, store, "invoice_jan.pdf", invoiceText, domain.TagInvoice)

	_, err := svc.Ingest(context.Background(), domain.IngestInput{
		Name:     "invoice_jan.pdf",
		MimeType: "application/pdf",
		RawText:  invoiceText,
	}, domain.DuplicateResolution("merge"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Ingest() error = %v, want ErrInvalidInput", err)
	}
}

func TestIngestionService_Reextract(t *testing.T) {
	store, svc := newTestIngestionService()
	existing := seedDocument(t, store, "note.txt", "just a note", domain.TagNote)
	existing.RawText = invoiceText
	if err := store.Save(context.Background(), existing); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc, err := svc.Reextract(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("Reextract() error = %v", err)
	}
	if len(doc.ExtractedFields) == 0 {
		t.Error("Reextract produced no fields")
	}
	if doc.PrimaryTag() != domain.TagInvoice {
		t.Errorf("PrimaryTag = %q, want invoice after reextract", doc.PrimaryTag())
	}
}

func TestIngestionService_Reextract_NotFound(t *testing.T) {
	_, svc := newTestIngestionService()

	if _, err := svc.Reextract(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Reextract() error = %v, want ErrNotFound", err)
	}
}
