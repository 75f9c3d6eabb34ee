package domain

// Variant is the closed set of recognized source shapes.
type Variant string

const (
	VariantProductReview    Variant = "product-review"
	VariantDiscussionThread Variant = "discussion-thread"
	VariantVideoPlatform    Variant = "video-platform"
	VariantUnrecognized     Variant = "unrecognized"
)
