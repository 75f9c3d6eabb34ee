package normalize

import (
	"strings"

	"data_agent/internal/domain"
)

// Classify maps a raw source tag to its variant. Matching is case-insensitive
// substring containment, tested in a fixed order; a tag naming more than one
// platform classifies as the earliest match.
func Classify(source string) domain.Variant {
	s := strings.ToLower(source)
	switch {
	case strings.Contains(s, "amazon"):
		return domain.VariantProductReview
	case strings.Contains(s, "reddit"):
		return domain.VariantDiscussionThread
	case strings.Contains(s, "youtube"):
		return domain.VariantVideoPlatform
	default:
		return domain.VariantUnrecognized
	}
}
