package domain

import "time"

// MaxChatReferences bounds the number of reference snippets returned for
// a chat answer.
const MaxChatReferences = 5

// Reference points a chat answer back at a matched document with a short
// relevance snippet from its raw text.
type Reference struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Snippet      string `json:"snippet"`
}

// SearchResult is the outcome of a query over the corpus. Documents keep
// their corpus-relative order; there is no cross-result scoring.
type SearchResult struct {
	Query     string      `json:"query"`
	Documents []*Document `json:"documents"`
	Took      time.Duration `json:"took" swaggertype:"integer" example:"1500000"`
}

// ChatAnswer is a search result presented as a chat response, with up to
// MaxChatReferences reference snippets in corpus order.
type ChatAnswer struct {
	Query      string      `json:"query"`
	Documents  []*Document `json:"documents"`
	References []Reference `json:"references"`
}

// IngestInput is the extraction/classification input supplied by the
// ingestion collaborator: text already OCR'd or user-provided, plus the
// original filename and MIME type.
type IngestInput struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	RawText  string `json:"raw_text"`
}

// IngestPreview is the result of running the intelligence pipeline over
// an input without persisting anything.
type IngestPreview struct {
	Document   *Document          `json:"document"`
	Extraction *Extraction        `json:"extraction"`
	Duplicates []SimilarityResult `json:"duplicates"`
}
