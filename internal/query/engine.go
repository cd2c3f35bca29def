// Package query answers free-text queries against the document corpus.
// It combines a plain substring search with a natural-language tier that
// parses temporal, tag-intent and literal-keyword expressions into a
// cumulative filter chain, and extracts relevance snippets for chat
// references.
package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// Snippet window sizes around the first matched query token.
const (
	snippetBefore   = 40
	snippetAfter    = 60
	snippetFallback = 80
)

// tagIntent maps query phrases to a canonical tag. Phrases are matched
// as substrings of the lowercased query, so singular forms also cover
// their plurals.
type tagIntent struct {
	phrases []string
	tag     domain.Tag
}

// The fixed ordered set of tag-intent patterns.
var tagIntents = []tagIntent{
	{[]string{"receipt"}, domain.TagReceipt},
	{[]string{"invoice"}, domain.TagInvoice},
	{[]string{"bill"}, domain.TagBill},
	{[]string{"warrant"}, domain.TagWarranty}, // warranty, warranties
	{[]string{"contract", "agreement"}, domain.TagContract},
	{[]string{"certificate"}, domain.TagCertificate},
	{[]string{"id card", "identification"}, domain.TagIDCard},
	{[]string{"bank statement"}, domain.TagBankStatement},
}

var (
	yearPattern        = regexp.MustCompile(`\bin\s+(\d{4})\b`)
	literalWordPattern = regexp.MustCompile(`(?:word|containing|with)\s+(?:the\s+)?(?:word\s+)?"?([a-z0-9]+)"?`)
)

// Engine runs stateless queries over corpus snapshots. The clock is
// injectable so temporal phrases are testable.
type Engine struct {
	now func() time.Time
}

// New creates a query engine using the wall clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates a query engine with an explicit clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Search answers a free-text query. Natural-language patterns are
// applied as a left-to-right filter chain over the corpus; when nothing
// narrowed anything the result is discarded in favour of the plain
// substring search, so a parse that matched no pattern never silently
// returns the whole corpus. Corpus-relative order is preserved.
func (e *Engine) Search(q string, corpus []*domain.Document) []*domain.Document {
	lower := strings.ToLower(q)

	results := corpus
	results = e.applyTemporalFilters(lower, results)
	results = applyTagFilters(lower, results)
	results = applyLiteralWordFilter(lower, results)

	if len(results) == len(corpus) {
		return e.SearchFiles(q, corpus)
	}
	return results
}

// SearchFiles is the plain substring search: a document matches when the
// lowercased query occurs in its name, raw text, any tag, or any
// extracted-field key or value.
func (e *Engine) SearchFiles(q string, corpus []*domain.Document) []*domain.Document {
	lower := strings.ToLower(q)

	matched := make([]*domain.Document, 0)
	for _, doc := range corpus {
		if documentMatches(doc, lower) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func documentMatches(doc *domain.Document, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(doc.Name), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.RawText), lowerQuery) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(string(tag), lowerQuery) {
			return true
		}
	}
	for _, f := range doc.ExtractedFields {
		if strings.Contains(strings.ToLower(f.Key), lowerQuery) ||
			strings.Contains(strings.ToLower(f.Value), lowerQuery) {
			return true
		}
	}
	return false
}

// applyTemporalFilters applies every matching temporal phrase pattern in
// order. Patterns are tested independently; each match narrows further.
func (e *Engine) applyTemporalFilters(lowerQuery string, docs []*domain.Document) []*domain.Document {
	now := e.now()

	if strings.Contains(lowerQuery, "last month") {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		end := start.AddDate(0, 1, 0)
		docs = filterDocs(docs, func(d *domain.Document) bool {
			return !d.CreatedAt.Before(start) && d.CreatedAt.Before(end)
		})
	}

	currentYear := strconv.Itoa(now.Year())
	if strings.Contains(lowerQuery, "this year") || strings.Contains(lowerQuery, "in "+currentYear) {
		docs = filterDocs(docs, func(d *domain.Document) bool {
			return d.CreatedAt.Year() == now.Year()
		})
	}

	if m := yearPattern.FindStringSubmatch(lowerQuery); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			docs = filterDocs(docs, func(d *domain.Document) bool {
				return d.CreatedAt.Year() == year
			})
		}
	}

	return docs
}

// applyTagFilters keeps documents carrying the mapped tag for every
// intent phrase present in the query.
func applyTagFilters(lowerQuery string, docs []*domain.Document) []*domain.Document {
	for _, intent := range tagIntents {
		for _, phrase := range intent.phrases {
			if strings.Contains(lowerQuery, phrase) {
				tag := intent.tag
				docs = filterDocs(docs, func(d *domain.Document) bool {
					return d.HasTag(tag)
				})
				break
			}
		}
	}
	return docs
}

// applyLiteralWordFilter keeps documents whose raw text contains the
// token of a "word/containing/with <token>" phrase, when present.
func applyLiteralWordFilter(lowerQuery string, docs []*domain.Document) []*domain.Document {
	m := literalWordPattern.FindStringSubmatch(lowerQuery)
	if m == nil {
		return docs
	}
	token := m[1]
	return filterDocs(docs, func(d *domain.Document) bool {
		return strings.Contains(strings.ToLower(d.RawText), token)
	})
}

func filterDocs(docs []*domain.Document, keep func(*domain.Document) bool) []*domain.Document {
	out := make([]*domain.Document, 0, len(docs))
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// References builds chat reference entries for matched documents: at
// most domain.MaxChatReferences, in corpus-relative order, each with a
// relevance snippet around the first query token found in the raw text.
func (e *Engine) References(q string, docs []*domain.Document) []domain.Reference {
	refs := make([]domain.Reference, 0, domain.MaxChatReferences)
	for _, doc := range docs {
		if len(refs) == domain.MaxChatReferences {
			break
		}
		refs = append(refs, domain.Reference{
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
			Snippet:      snippet(q, doc.RawText),
		})
	}
	return refs
}

// snippet extracts a window around the first occurrence of the first
// query token (words longer than 2 characters) found in the text, with
// ellipsis markers at clipped edges. Falls back to the head of the text
// when no token occurs.
func snippet(q, text string) string {
	lowerText := strings.ToLower(text)

	for _, token := range strings.Fields(strings.ToLower(q)) {
		if len(token) <= 2 {
			continue
		}
		idx := strings.Index(lowerText, token)
		if idx < 0 {
			continue
		}

		start := idx - snippetBefore
		if start < 0 {
			start = 0
		}
		end := idx + len(token) + snippetAfter
		if end > len(text) {
			end = len(text)
		}

		out := text[start:end]
		if start > 0 {
			out = "..." + out
		}
		if end < len(text) {
			out += "..."
		}
		return out
	}

	if len(text) > snippetFallback {
		return text[:snippetFallback] + "..."
	}
	return text
}
