// Package classify implements rule-based document tagging over a fixed
// closed vocabulary with a total priority order.
package classify

import (
	"strings"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// photoTextThreshold is the text length below which an image with no
// keyword matches is treated as a plain photo.
const photoTextThreshold = 50

// Classifier assigns semantic tags from text, filename and MIME type.
// Pure and stateless; it always returns between 1 and domain.MaxAutoTags
// tags drawn from the vocabulary, never an error.
type Classifier struct{}

// New creates a tag classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify runs the tagging rules:
//
//  1. A screen-capture filename assigns the screenshot tag up front.
//  2. An image with no keyword matches and near-empty text is a photo.
//  3. The content tags are walked in their fixed priority order; each tag
//     whose keyword set matches the text or filename is appended.
//  4. An empty result falls back to the other tag.
//  5. The list is truncated to MaxAutoTags; since it is in priority
//     order, truncation drops the lowest-priority matches.
func (c *Classifier) Classify(text, fileName, mimeType string) []domain.Tag {
	lowerText := strings.ToLower(text)
	lowerName := strings.ToLower(fileName)

	var tags []domain.Tag

	if domain.IsScreenshotName(fileName) {
		tags = append(tags, domain.TagScreenshot)
	}

	if strings.HasPrefix(mimeType, "image/") && len(tags) == 0 {
		if !anyTagMatches(lowerText) && len(text) < photoTextThreshold {
			tags = append(tags, domain.TagPhoto)
		}
	}

	for _, tag := range domain.ContentTagPriority {
		if containsTag(tags, tag) {
			continue
		}
		if tagMatches(tag, lowerText, lowerName) {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		tags = append(tags, domain.TagOther)
	}

	if len(tags) > domain.MaxAutoTags {
		tags = tags[:domain.MaxAutoTags]
	}
	return tags
}

// tagMatches reports whether any of the tag's keyword triggers occur in
// the lowercased text or filename.
func tagMatches(tag domain.Tag, lowerText, lowerName string) bool {
	for _, kw := range domain.TagKeywords[tag] {
		if strings.Contains(lowerText, kw) || strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

// anyTagMatches reports whether any content tag's keywords occur in the
// lowercased text. Used only for the photo heuristic, which looks at the
// text alone.
func anyTagMatches(lowerText string) bool {
	for _, tag := range domain.ContentTagPriority {
		for _, kw := range domain.TagKeywords[tag] {
			if strings.Contains(lowerText, kw) {
				return true
			}
		}
	}
	return false
}

func containsTag(tags []domain.Tag, tag domain.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
