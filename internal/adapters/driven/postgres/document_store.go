package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
	"github.com/santhosh-patel/snapkeep-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL.
// Tags and extracted fields are stored as JSONB; insertion order is
// tracked with a sequence column so List and All stay stable.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	fieldsJSON, err := json.Marshal(doc.ExtractedFields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	query := `
		INSERT INTO documents (id, name, mime_type, doc_type, raw_text, tags, extracted_fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			mime_type = EXCLUDED.mime_type,
			doc_type = EXCLUDED.doc_type,
			raw_text = EXCLUDED.raw_text,
			tags = EXCLUDED.tags,
			extracted_fields = EXCLUDED.extracted_fields,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Name,
		doc.MimeType,
		doc.Type,
		doc.RawText,
		tagsJSON,
		fieldsJSON,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, name, mime_type, doc_type, raw_text, tags, extracted_fields, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	return scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// List retrieves documents in insertion order with pagination
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT id, name, mime_type, doc_type, raw_text, tags, extracted_fields, created_at, updated_at
		FROM documents
		ORDER BY seq
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// All returns the full corpus snapshot in insertion order
func (s *DocumentStore) All(ctx context.Context) ([]*domain.Document, error) {
	query := `
		SELECT id, name, mime_type, doc_type, raw_text, tags, extracted_fields, created_at, updated_at
		FROM documents
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// Delete deletes a document
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var tagsJSON, fieldsJSON []byte

	err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.MimeType,
		&doc.Type,
		&doc.RawText,
		&tagsJSON,
		&fieldsJSON,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &doc.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(fieldsJSON, &doc.ExtractedFields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return &doc, nil
}

func collectDocuments(rows *sql.Rows) ([]*domain.Document, error) {
	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
