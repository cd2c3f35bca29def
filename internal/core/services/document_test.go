package services

import (
	"context"
	"errors"
	"testing"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven/mocks"
)

func newTestDocumentService() (*mocks.MockDocumentStore, *documentService) {
	store := mocks.NewMockDocumentStore()
	svc := NewDocumentService(store).(*documentService)
	return store, svc
}

func TestDocumentService_Get(t *testing.T) {
	store, svc := newTestDocumentService()
	doc := seedDocument(t, store, "receipt.pdf", "Receipt", domain.TagReceipt)

	got, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("ID = %q, want %q", got.ID, doc.ID)
	}

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Get(\"\") error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDocumentService_List(t *testing.T) {
	store, svc := newTestDocumentService()
	first := seedDocument(t, store, "a.pdf", "first", domain.TagNote)
	seedDocument(t, store, "b.pdf", "second", domain.TagNote)
	seedDocument(t, store, "c.pdf", "third", domain.TagNote)

	docs, err := svc.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 || docs[0].ID != first.ID {
		t.Errorf("List(2, 0) = %d docs, first %q", len(docs), docs[0].ID)
	}

	docs, err = svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "c.pdf" {
		t.Errorf("List(2, 2) = %+v", docs)
	}

	count, err := svc.Count(context.Background())
	if err != nil || count != 3 {
		t.Errorf("Count() = %d, %v, want 3", count, err)
	}
}

func TestDocumentService_Rename(t *testing.T) {
	store, svc := newTestDocumentService()
	doc := seedDocument(t, store, "Screenshot 2024-01-05.png", "meeting notes", domain.TagScreenshot)

	renamed, err := svc.Rename(context.Background(), doc.ID, "standup_notes.png")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if renamed.Name != "standup_notes.png" {
		t.Errorf("Name = %q", renamed.Name)
	}

	stored, _ := store.Get(context.Background(), doc.ID)
	if stored.Name != "standup_notes.png" {
		t.Errorf("stored Name = %q", stored.Name)
	}

	if _, err := svc.Rename(context.Background(), doc.ID, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Rename blank error = %v, want ErrInvalidInput", err)
	}
}

func TestDocumentService_SetTags(t *testing.T) {
	store, svc := newTestDocumentService()
	doc := seedDocument(t, store, "receipt.pdf", "Receipt", domain.TagReceipt)

	updated, err := svc.SetTags(context.Background(), doc.ID, []domain.Tag{domain.TagWarranty, domain.TagReceipt})
	if err != nil {
		t.Fatalf("SetTags() error = %v", err)
	}
	if updated.PrimaryTag() != domain.TagWarranty {
		t.Errorf("PrimaryTag = %q, want warranty", updated.PrimaryTag())
	}

	if _, err := svc.SetTags(context.Background(), doc.ID, []domain.Tag{"banana"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("SetTags(banana) error = %v, want ErrInvalidInput", err)
	}
}

func TestDocumentService_Delete(t *testing.T) {
	store, svc := newTestDocumentService()
	doc := seedDocument(t, store, "receipt.pdf", "Receipt", domain.TagReceipt)

	if err := svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(context.Background(), doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("document still present: %v", err)
	}
	if err := svc.Delete(context.Background(), doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}
