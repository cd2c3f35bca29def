package similarity

import (
	"math"
	"reflect"
	"testing"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

func doc(id, name, text string) *domain.Document {
	return &domain.Document{ID: id, Name: name, RawText: text}
}

func TestFindDuplicatesIdenticalDocument(t *testing.T) {
	e := New()
	existing := doc("doc-1", "receipt_march.pdf", "Grocery receipt total amount paid in cash")

	results := e.FindDuplicates(existing.RawText, existing.Name, []*domain.Document{existing})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 1.0 {
		t.Errorf("identical text+name must score exactly 1.0, got %f", results[0].Score)
	}
	if results[0].MatchType != domain.MatchTypeExact {
		t.Errorf("expected exact match, got %s", results[0].MatchType)
	}
	if results[0].MatchedDocumentID != "doc-1" {
		t.Errorf("expected doc-1, got %s", results[0].MatchedDocumentID)
	}
}

func TestFindDuplicatesSameTextDifferentName(t *testing.T) {
	e := New()
	existing := doc("doc-1", "receipt_march.pdf", "Grocery receipt total amount paid in cash")

	// Identical text, unrelated filename: text similarity alone
	// contributes 0.7, landing in the high band.
	results := e.FindDuplicates(existing.RawText, "zzqq.bin", []*domain.Document{existing})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score < domain.SimilarityHighThreshold {
		t.Errorf("expected score >= 0.7, got %f", results[0].Score)
	}
	if results[0].MatchType != domain.MatchTypeHigh && results[0].MatchType != domain.MatchTypeExact {
		t.Errorf("expected high or exact, got %s", results[0].MatchType)
	}
}

func TestFindDuplicatesBelowThresholdExcluded(t *testing.T) {
	e := New()
	corpus := []*domain.Document{
		doc("doc-1", "vacation_photos.zip", "completely unrelated words about holidays and beaches"),
	}

	results := e.FindDuplicates("invoice for plumbing services rendered", "invoice_jan.pdf", corpus)
	if len(results) != 0 {
		t.Errorf("expected no results below threshold, got %+v", results)
	}
}

func TestFindDuplicatesSortedDescending(t *testing.T) {
	e := New()
	text := "annual home insurance policy renewal documents"
	corpus := []*domain.Document{
		doc("weak", "insurance_policy.pdf", "annual home insurance policy renewal documents with extra words appended here"),
		doc("strong", "insurance_policy.pdf", text),
	}

	results := e.FindDuplicates(text, "insurance_policy.pdf", corpus)
	if len(results) < 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].MatchedDocumentID != "strong" {
		t.Errorf("expected strongest match first, got %s", results[0].MatchedDocumentID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestFindDuplicatesScoresInRange(t *testing.T) {
	e := New()
	corpus := []*domain.Document{
		doc("a", "a.txt", "alpha beta gamma delta"),
		doc("b", "b.txt", ""),
		doc("c", "", "alpha beta"),
	}

	for _, candidate := range []struct{ text, name string }{
		{"alpha beta gamma delta", "a.txt"},
		{"", ""},
		{"alpha", "x"},
	} {
		for _, r := range e.FindDuplicates(candidate.text, candidate.name, corpus) {
			if r.Score < 0 || r.Score > 1 || math.IsNaN(r.Score) {
				t.Errorf("score out of range: %f", r.Score)
			}
		}
	}
}

func TestFindDuplicatesDoesNotMutateCorpus(t *testing.T) {
	e := New()
	existing := doc("doc-1", "notes.txt", "meeting notes from tuesday")
	before := *existing

	e.FindDuplicates("meeting notes from tuesday", "notes.txt", []*domain.Document{existing})

	if !reflect.DeepEqual(*existing, before) {
		t.Error("similarity computation must not mutate corpus documents")
	}
}

func TestJaccardEmptySets(t *testing.T) {
	if got := jaccard(tokenSet(""), tokenSet("")); got != 0 {
		t.Errorf("two empty token sets must score 0, got %f", got)
	}
}

func TestTokenSetDropsShortWords(t *testing.T) {
	set := tokenSet("An ox is at my big barn")
	if _, ok := set["ox"]; ok {
		t.Error("tokens of length <= 2 must be excluded")
	}
	if _, ok := set["barn"]; !ok {
		t.Error("expected 'barn' in token set")
	}
}

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact after normalisation", "Receipt March.PDF", "receipt_march.pdf", 1.0},
		{"containment", "receipt_march.pdf", "receipt_march_v2.pdf", nameContainsScore},
		{"disjoint", "aaaa", "bbbb", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nameSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestNameSimilarityPositionalRatio(t *testing.T) {
	// "abcd" vs "abcf": 3 aligned matches over max length 4.
	if got := nameSimilarity("abcd", "abcf"); got != 0.75 {
		t.Errorf("expected 0.75, got %f", got)
	}
	// Shifted characters undercount: "abcdef" vs "xabcdef" shares no
	// aligned positions despite being one insertion apart.
	if got := nameSimilarity("abcdef", "xabcdef"); got != 0 {
		t.Errorf("expected 0 for shifted name, got %f", got)
	}
}
