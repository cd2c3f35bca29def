package domain

// MatchType labels a duplicate-likelihood score band.
type MatchType string

const (
	MatchTypeExact  MatchType = "exact"
	MatchTypeHigh   MatchType = "high"
	MatchTypeMedium MatchType = "medium"
)

// Score thresholds for duplicate match bands. Results scoring below
// SimilarityReportThreshold are excluded from duplicate reports entirely.
const (
	SimilarityExactThreshold  = 0.9
	SimilarityHighThreshold   = 0.7
	SimilarityReportThreshold = 0.5
)

// SimilarityResult is a duplicate candidate for a document being ingested.
// Computed transiently against the full corpus; never persisted.
type SimilarityResult struct {
	Score             float64   `json:"score"`
	MatchedDocumentID string    `json:"matched_document_id"`
	MatchType         MatchType `json:"match_type"`
}

// MatchTypeForScore maps a composite similarity score to its band label.
// The second return is false for scores below the reporting threshold.
func MatchTypeForScore(score float64) (MatchType, bool) {
	switch {
	case score >= SimilarityExactThreshold:
		return MatchTypeExact, true
	case score >= SimilarityHighThreshold:
		return MatchTypeHigh, true
	case score >= SimilarityReportThreshold:
		return MatchTypeMedium, true
	default:
		return "", false
	}
}

// DuplicateResolution tells ingestion what to do when duplicate
// candidates are found for an incoming document.
type DuplicateResolution string

const (
	// ResolutionKeepBoth stores the new document alongside existing ones.
	ResolutionKeepBoth DuplicateResolution = "keep_both"
	// ResolutionReplace overwrites the top duplicate candidate.
	ResolutionReplace DuplicateResolution = "replace"
	// ResolutionSkip drops the new document when any duplicate exists.
	ResolutionSkip DuplicateResolution = "skip"
)
