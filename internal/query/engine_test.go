package query

import (
	"strings"
	"testing"
	"time"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// fixedNow keeps temporal phrases deterministic: mid-July 2024.
var fixedNow = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewWithClock(func() time.Time { return fixedNow })
}

func testCorpus() []*domain.Document {
	return []*domain.Document{
		{
			ID: "r1", Name: "grocery_receipt.pdf", RawText: "Grocery store receipt total paid",
			Tags:      []domain.Tag{domain.TagReceipt},
			CreatedAt: time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "r2", Name: "cafe_receipt.jpg", RawText: "Cafe receipt espresso and cake",
			Tags:      []domain.Tag{domain.TagReceipt},
			CreatedAt: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "r3", Name: "hardware_receipt.pdf", RawText: "Hardware store receipt for paint and brushes",
			Tags:      []domain.Tag{domain.TagReceipt},
			CreatedAt: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "i1", Name: "plumber_invoice.pdf", RawText: "Invoice for plumbing services rendered",
			Tags: []domain.Tag{domain.TagInvoice},
			ExtractedFields: []domain.ExtractedField{
				{Key: "invoiceNumber", Value: "INV-2024-001", Kind: domain.FieldKindNumber},
			},
			CreatedAt: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "b1", Name: "electricity_march.pdf", RawText: "Electricity statement of charges, amount due",
			Tags:      []domain.Tag{domain.TagBill},
			CreatedAt: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func ids(docs []*domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchReceiptsFromLastMonth(t *testing.T) {
	e := testEngine()
	got := e.Search("receipts from last month", testCorpus())

	if !equalIDs(ids(got), "r2", "r3") {
		t.Errorf("expected [r2 r3], got %v", ids(got))
	}
}

func TestSearchThisYear(t *testing.T) {
	e := testEngine()
	got := e.Search("show documents from this year", testCorpus())

	if !equalIDs(ids(got), "r1", "r2", "r3", "i1") {
		t.Errorf("expected 2024 documents, got %v", ids(got))
	}
}

func TestSearchExplicitYear(t *testing.T) {
	e := testEngine()
	got := e.Search("bills in 2023", testCorpus())

	if !equalIDs(ids(got), "b1") {
		t.Errorf("expected [b1], got %v", ids(got))
	}
}

func TestSearchTagIntentAliases(t *testing.T) {
	e := testEngine()
	corpus := testCorpus()
	corpus = append(corpus, &domain.Document{
		ID: "c1", Name: "lease.pdf", RawText: "Rental agreement terms",
		Tags:      []domain.Tag{domain.TagContract},
		CreatedAt: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	})

	got := e.Search("find my agreements", corpus)
	if !equalIDs(ids(got), "c1") {
		t.Errorf("expected [c1] via agreement alias, got %v", ids(got))
	}
}

func TestSearchLiteralWordFilter(t *testing.T) {
	e := testEngine()
	got := e.Search("receipts with the word paint", testCorpus())

	if !equalIDs(ids(got), "r3") {
		t.Errorf("expected [r3], got %v", ids(got))
	}
}

func TestSearchFallbackToSubstring(t *testing.T) {
	e := testEngine()
	// No natural-language pattern: must behave exactly like SearchFiles.
	corpus := testCorpus()

	got := e.Search("plumbing", corpus)
	want := e.SearchFiles("plumbing", corpus)

	if !equalIDs(ids(got), ids(want)...) {
		t.Errorf("expected fallback result %v, got %v", ids(want), ids(got))
	}
	if !equalIDs(ids(got), "i1") {
		t.Errorf("expected [i1], got %v", ids(got))
	}
}

func TestSearchFallbackWhenFiltersDoNotNarrow(t *testing.T) {
	e := testEngine()
	// Every document was created last month, so the temporal filter keeps
	// the full corpus. The size check cannot tell this apart from "no
	// pattern matched" and falls back to substring search.
	corpus := []*domain.Document{
		{ID: "a", Name: "a.txt", RawText: "alpha", CreatedAt: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Name: "b.txt", RawText: "beta", CreatedAt: time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)},
	}

	got := e.Search("last month", corpus)
	want := e.SearchFiles("last month", corpus)
	if !equalIDs(ids(got), ids(want)...) {
		t.Errorf("expected substring fallback %v, got %v", ids(want), ids(got))
	}
}

func TestSearchPreservesCorpusOrder(t *testing.T) {
	e := testEngine()
	got := e.Search("receipts", testCorpus())

	if !equalIDs(ids(got), "r1", "r2", "r3") {
		t.Errorf("expected corpus-relative order [r1 r2 r3], got %v", ids(got))
	}
}

func TestSearchDeterministic(t *testing.T) {
	e := testEngine()
	corpus := testCorpus()

	first := ids(e.Search("receipts from last month", corpus))
	second := ids(e.Search("receipts from last month", corpus))
	if !equalIDs(first, second...) {
		t.Errorf("identical inputs produced %v then %v", first, second)
	}
}

func TestSearchFiles(t *testing.T) {
	e := testEngine()
	corpus := testCorpus()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches name", "plumber_invoice", []string{"i1"}},
		{"matches raw text", "espresso", []string{"r2"}},
		{"matches tag", "bill", []string{"b1"}},
		{"matches field key", "invoicenumber", []string{"i1"}},
		{"matches field value", "inv-2024-001", []string{"i1"}},
		{"no match", "zzzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(e.SearchFiles(tt.query, corpus))
			if !equalIDs(got, tt.want...) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	e := testEngine()
	if got := e.Search("receipts from last month", nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestReferencesBounded(t *testing.T) {
	e := testEngine()
	docs := make([]*domain.Document, 8)
	for i := range docs {
		docs[i] = &domain.Document{ID: string(rune('a' + i)), Name: "doc", RawText: "some text"}
	}

	refs := e.References("text", docs)
	if len(refs) != domain.MaxChatReferences {
		t.Fatalf("expected %d references, got %d", domain.MaxChatReferences, len(refs))
	}
	// Corpus-relative order, truncated
	if refs[0].DocumentID != "a" || refs[4].DocumentID != "e" {
		t.Errorf("references not in corpus order: %+v", refs)
	}
}

func TestSnippetWindow(t *testing.T) {
	text := strings.Repeat("x", 100) + " plumbing " + strings.Repeat("y", 100)

	s := snippet("the plumbing quote", text)
	if !strings.Contains(s, "plumbing") {
		t.Fatalf("snippet must contain the matched token, got %q", s)
	}
	if !strings.HasPrefix(s, "...") || !strings.HasSuffix(s, "...") {
		t.Errorf("expected ellipsis markers on both clipped edges, got %q", s)
	}
	if len(s) > snippetBefore+snippetAfter+len("plumbing")+6 {
		t.Errorf("snippet too long: %d chars", len(s))
	}
}

func TestSnippetSkipsShortTokens(t *testing.T) {
	// "of" is too short to be a search token; "warranty" is used instead.
	s := snippet("of warranty", "details of the warranty coverage for the appliance")
	if !strings.Contains(s, "warranty") {
		t.Errorf("expected snippet around 'warranty', got %q", s)
	}
}

func TestSnippetFallbackHead(t *testing.T) {
	long := strings.Repeat("abcde ", 30)
	s := snippet("nomatch", long)
	if s != long[:snippetFallback]+"..." {
		t.Errorf("expected first 80 chars with ellipsis, got %q", s)
	}

	short := "tiny text"
	if got := snippet("nomatch", short); got != short {
		t.Errorf("expected whole short text, got %q", got)
	}
}
