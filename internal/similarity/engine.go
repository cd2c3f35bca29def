// Package similarity computes duplicate-likelihood scores between a
// candidate document and the existing corpus, combining word-overlap and
// filename-overlap metrics.
package similarity

import (
	"sort"
	"strings"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// Composite weighting. Text content dominates because filenames are
// often auto-generated and uninformative.
const (
	textWeight = 0.7
	nameWeight = 0.3
)

// minTokenLength excludes short connector words from the text-overlap
// token sets.
const minTokenLength = 2

// nameContainsScore is the fixed score when one normalised filename is a
// substring of the other.
const nameContainsScore = 0.8

// Engine scores candidate documents against a corpus. Pure and
// stateless; it never mutates either side of a comparison.
type Engine struct{}

// New creates a similarity engine.
func New() *Engine {
	return &Engine{}
}

// FindDuplicates scores the candidate text and name against every corpus
// document and returns candidates at or above the reporting threshold,
// sorted by descending score. Lower-scoring documents are excluded
// entirely, not down-ranked.
func (e *Engine) FindDuplicates(candidateText, candidateName string, corpus []*domain.Document) []domain.SimilarityResult {
	candidateTokens := tokenSet(candidateText)

	results := make([]domain.SimilarityResult, 0)
	for _, doc := range corpus {
		text := jaccard(candidateTokens, tokenSet(doc.RawText))
		name := nameSimilarity(candidateName, doc.Name)
		score := textWeight*text + nameWeight*name

		matchType, ok := domain.MatchTypeForScore(score)
		if !ok {
			continue
		}
		results = append(results, domain.SimilarityResult{
			Score:             score,
			MatchedDocumentID: doc.ID,
			MatchType:         matchType,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// tokenSet lowercases and whitespace-tokenises text, keeping only words
// longer than minTokenLength.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) > minTokenLength {
			set[word] = struct{}{}
		}
	}
	return set
}

// jaccard computes the Jaccard index of two token sets. Two empty sets
// score 0, not NaN.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// nameSimilarity compares two filenames after normalisation. Exact match
// scores 1.0; containment scores a fixed 0.8; otherwise a positional
// character-match ratio is used. The positional ratio is a deliberately
// weak approximation rather than true edit distance: it undercounts
// similarity for shifted or inserted characters, and the duplicate
// thresholds were tuned against this metric's output distribution.
func nameSimilarity(a, b string) float64 {
	na := normaliseName(a)
	nb := normaliseName(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return nameContainsScore
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	matches := 0
	for i := 0; i < len(shorter); i++ {
		if shorter[i] == longer[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(longer))
}

// normaliseName lowercases a filename and strips every non-alphanumeric
// character.
func normaliseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
