package domain

import (
	"strings"
	"time"
)

// DocumentType is the coarse category of a stored file, derived at
// ingestion from the MIME type and filename. Used for result grouping.
type DocumentType string

const (
	DocumentTypeImage      DocumentType = "image"
	DocumentTypeScreenshot DocumentType = "screenshot"
	DocumentTypePDF        DocumentType = "pdf"
	DocumentTypeDocument   DocumentType = "document"
	DocumentTypeOther      DocumentType = "other"
)

// FieldKind classifies an extracted field value.
type FieldKind string

const (
	FieldKindDate   FieldKind = "date"
	FieldKindAmount FieldKind = "amount"
	FieldKindNumber FieldKind = "number"
	FieldKindText   FieldKind = "text"
)

// ExtractedField is a single structured field pulled out of a document's
// raw text. For kind=amount the value is a canonical numeric string; for
// kind=date it is the literal substring as found in the source text.
type ExtractedField struct {
	Key   string    `json:"key"`
	Value string    `json:"value"`
	Kind  FieldKind `json:"kind"`
}

// Document represents a stored user document. The intelligence core
// treats documents as a read-mostly view; persistence belongs to the
// storage adapters.
type Document struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	MimeType        string           `json:"mime_type"`
	Type            DocumentType     `json:"type"`
	RawText         string           `json:"raw_text"`
	Tags            []Tag            `json:"tags"`
	ExtractedFields []ExtractedField `json:"extracted_fields"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// HasTag reports whether the document carries the given tag.
func (d *Document) HasTag(tag Tag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PrimaryTag returns the highest-priority tag assigned to the document,
// or TagOther when no tags are assigned.
func (d *Document) PrimaryTag() Tag {
	return PrimaryTag(d.Tags)
}

// DeriveDocumentType maps a MIME type and filename to a coarse category.
func DeriveDocumentType(mimeType, fileName string) DocumentType {
	lower := strings.ToLower(fileName)
	switch {
	case IsScreenshotName(fileName):
		return DocumentTypeScreenshot
	case strings.HasPrefix(mimeType, "image/"):
		return DocumentTypeImage
	case mimeType == "application/pdf" || strings.HasSuffix(lower, ".pdf"):
		return DocumentTypePDF
	case strings.HasPrefix(mimeType, "text/") ||
		strings.Contains(mimeType, "word") ||
		strings.Contains(mimeType, "document"):
		return DocumentTypeDocument
	default:
		return DocumentTypeOther
	}
}

// IsScreenshotName reports whether a filename indicates a screen capture.
// Allows the "screen shot" space variant.
func IsScreenshotName(fileName string) bool {
	lower := strings.ToLower(fileName)
	return strings.Contains(lower, "screenshot") || strings.Contains(lower, "screen shot")
}
