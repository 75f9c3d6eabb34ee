// Package normalize maps heterogeneous social-media export records onto the
// canonical posts/comments schema. All mapping is pure and total: malformed
// values degrade to nil columns, never to errors.
package normalize

import (
	"encoding/json"
	"fmt"

	"data_agent/internal/domain"
)

// Record maps one raw export record to a Post plus its nested Comments, in
// input order. The third result counts nested entries that matched no known
// comment shape and were dropped. Any well-formed JSON value yields a Post;
// worst case only the source tag and raw payload are populated.
func Record(rec any) (*domain.Post, []domain.Comment, int) {
	raw, err := json.Marshal(rec)
	if err != nil {
		raw = []byte("null")
	}

	obj, _ := rec.(map[string]any)

	post := &domain.Post{
		Source:  sourceTag(obj),
		RawJSON: string(raw),
	}

	switch Classify(post.Source) {
	case domain.VariantProductReview:
		post.Asin = optString(obj["asin"])
		details, _ := obj["product_details"].(map[string]any)
		post.Title = optString(details["title"])
		post.CountryOfOrigin = optString(details["Country of Origin"])
		post.Price = Number(details["price"])
		post.Currency = optString(details["currency"])
		post.StarRatings = optString(details["star_ratings"])
		post.TotalRating = Integer(details["total_rating"])
	case domain.VariantDiscussionThread:
		post.Subreddit = optString(obj["subreddit"])
		post.CreatedAt = Date(obj["created_at"])
		// the thread body doubles as the canonical title
		post.Title = optString(obj["content"])
	case domain.VariantVideoPlatform:
		post.Title = optString(obj["title"])
		post.URL = optString(obj["url"])
		post.ChannelName = optString(obj["channel_name"])
		post.CreatedAt = Date(obj["published_at"])
		post.Description = optString(obj["description"])
	}

	comments, dropped := nestedComments(obj)
	return post, comments, dropped
}

func sourceTag(obj map[string]any) string {
	if s, ok := obj["source"].(string); ok && s != "" {
		return s
	}
	return "unknown"
}

func nestedComments(obj map[string]any) ([]domain.Comment, int) {
	var entries []any
	if v, ok := obj["reviews"]; ok {
		entries, _ = v.([]any)
	} else if v, ok := obj["comments"]; ok {
		entries, _ = v.([]any)
	}

	var out []domain.Comment
	dropped := 0
	for _, e := range entries {
		c, ok := comment(e)
		if !ok {
			dropped++
			continue
		}
		out = append(out, c)
	}
	return out, dropped
}

// comment classifies a nested entry by the presence of its distinguishing
// field: review_author (product review), body (discussion reply) or text
// (video comment), in that order. Entries matching none report false.
func comment(e any) (domain.Comment, bool) {
	m, ok := e.(map[string]any)
	if !ok {
		return domain.Comment{}, false
	}

	var c domain.Comment

	// demographics ride along on any shape
	userInfo, _ := m["user_info"].(map[string]any)
	c.AgeGroup = optString(userInfo["age_group"])
	c.Gender = optString(userInfo["gender"])
	c.IncomeBand = optString(userInfo["income_band"])

	switch {
	case hasKey(m, "review_author"):
		c.AuthorName = optString(m["review_author"])
		c.Content = optString(m["content"])
		c.Rating = Number(m["review_star_rating"])
		c.HelpfulVotes = optString(m["helpful_vote_statement"])
		c.CreatedAt = Date(m["review_date"])
	case hasKey(m, "body"):
		c.Content = optString(m["body"])
		c.AuthorName = optString(m["author"])
		c.Karma = Integer(m["karma"])
		c.CreatedAt = Date(m["created_at"])
	case hasKey(m, "text"):
		c.Content = optString(m["text"])
		c.AuthorName = optString(m["author_name"])
		// upstream stores this timestamp verbatim, not date-coerced
		c.CreatedAt = optString(m["time"])
	default:
		return domain.Comment{}, false
	}

	return c, true
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func optString(v any) *string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return &s
	default:
		out := fmt.Sprint(v)
		return &out
	}
}
