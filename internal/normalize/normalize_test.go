package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ProductReview(t *testing.T) {
	rec := map[string]any{
		"source": "amazon_reviews_1",
		"asin":   "B01ABCD",
		"product_details": map[string]any{
			"title":             "Wireless Mouse",
			"Country of Origin": "China",
			"price":             "1,299.00",
			"currency":          "INR",
			"star_ratings":      "4.3 out of 5",
			"total_rating":      2841.0,
		},
	}

	post, comments, dropped := Record(rec)

	assert.Equal(t, "amazon_reviews_1", post.Source)
	require.NotNil(t, post.Asin)
	assert.Equal(t, "B01ABCD", *post.Asin)
	require.NotNil(t, post.Title)
	assert.Equal(t, "Wireless Mouse", *post.Title)
	require.NotNil(t, post.CountryOfOrigin)
	assert.Equal(t, "China", *post.CountryOfOrigin)
	require.NotNil(t, post.Price)
	assert.InDelta(t, 1299.0, *post.Price, 1e-9)
	require.NotNil(t, post.Currency)
	assert.Equal(t, "INR", *post.Currency)
	require.NotNil(t, post.TotalRating)
	assert.Equal(t, int64(2841), *post.TotalRating)
	assert.Nil(t, post.Subreddit)
	assert.Nil(t, post.URL)
	assert.Empty(t, comments)
	assert.Zero(t, dropped)
}

func TestRecord_ProductReview_MissingDetails(t *testing.T) {
	post, comments, dropped := Record(map[string]any{
		"source": "amazon_reviews_2",
		"asin":   "B0XYZ",
	})

	require.NotNil(t, post.Asin)
	assert.Nil(t, post.Title)
	assert.Nil(t, post.Price)
	assert.Nil(t, post.TotalRating)
	assert.Empty(t, comments)
	assert.Zero(t, dropped)
}

func TestRecord_DiscussionThread_BodyBecomesTitle(t *testing.T) {
	rec := map[string]any{
		"source":     "reddit_1",
		"subreddit":  "r/gadgets",
		"created_at": "2023-01-15",
		"content":    "Has anyone tried the new firmware?",
		"title":      "should be ignored",
	}

	post, _, _ := Record(rec)

	require.NotNil(t, post.Subreddit)
	assert.Equal(t, "r/gadgets", *post.Subreddit)
	require.NotNil(t, post.CreatedAt)
	assert.Equal(t, "2023-01-15", *post.CreatedAt)
	// the thread's content field maps to title, not its own title field
	require.NotNil(t, post.Title)
	assert.Equal(t, "Has anyone tried the new firmware?", *post.Title)
}

func TestRecord_VideoPlatform(t *testing.T) {
	rec := map[string]any{
		"source":       "youtube_1",
		"title":        "Unboxing",
		"url":          "https://youtu.be/xyz",
		"channel_name": "TechChannel",
		"published_at": "March 3, 2023",
		"description":  "A short unboxing video.",
	}

	post, _, _ := Record(rec)

	require.NotNil(t, post.Title)
	assert.Equal(t, "Unboxing", *post.Title)
	require.NotNil(t, post.URL)
	assert.Equal(t, "https://youtu.be/xyz", *post.URL)
	require.NotNil(t, post.ChannelName)
	assert.Equal(t, "TechChannel", *post.ChannelName)
	require.NotNil(t, post.CreatedAt)
	assert.Equal(t, "2023-03-03", *post.CreatedAt)
	require.NotNil(t, post.Description)
	assert.Equal(t, "A short unboxing video.", *post.Description)
}

func TestRecord_UnrecognizedSource(t *testing.T) {
	rec := map[string]any{
		"source": "tiktok_1",
		"title":  "ignored for unrecognized sources",
	}

	post, comments, _ := Record(rec)

	assert.Equal(t, "tiktok_1", post.Source)
	assert.Nil(t, post.Title)
	assert.NotEmpty(t, post.RawJSON)
	assert.Empty(t, comments)
}

func TestRecord_SourceDefaults(t *testing.T) {
	post, _, _ := Record(map[string]any{"title": "no source"})
	assert.Equal(t, "unknown", post.Source)

	post, _, _ = Record(map[string]any{"source": ""})
	assert.Equal(t, "unknown", post.Source)
}

func TestRecord_NonObjectRecord(t *testing.T) {
	post, comments, dropped := Record("just a string")

	assert.Equal(t, "unknown", post.Source)
	assert.Equal(t, `"just a string"`, post.RawJSON)
	assert.Empty(t, comments)
	assert.Zero(t, dropped)
}

func TestRecord_RawPayloadRoundTrips(t *testing.T) {
	rec := map[string]any{
		"source": "reddit_2",
		"extra":  map[string]any{"kept": true},
	}

	post, _, _ := Record(rec)

	var back map[string]any
	require.NoError(t, json.Unmarshal([]byte(post.RawJSON), &back))
	assert.Equal(t, "reddit_2", back["source"])
	assert.Equal(t, map[string]any{"kept": true}, back["extra"])
}

func TestRecord_ReviewComments(t *testing.T) {
	rec := map[string]any{
		"source": "amazon_reviews_1",
		"reviews": []any{
			map[string]any{
				"review_author":          "A",
				"content":                "x",
				"review_star_rating":     "4.5",
				"helpful_vote_statement": "12 people found this helpful",
				"review_date":            "Reviewed in India on March 3, 2023",
			},
		},
	}

	_, comments, dropped := Record(rec)

	require.Len(t, comments, 1)
	c := comments[0]
	require.NotNil(t, c.AuthorName)
	assert.Equal(t, "A", *c.AuthorName)
	require.NotNil(t, c.Content)
	assert.Equal(t, "x", *c.Content)
	require.NotNil(t, c.Rating)
	assert.InDelta(t, 4.5, *c.Rating, 1e-9)
	require.NotNil(t, c.HelpfulVotes)
	assert.Equal(t, "12 people found this helpful", *c.HelpfulVotes)
	require.NotNil(t, c.CreatedAt)
	assert.Equal(t, "2023-03-03", *c.CreatedAt)
	assert.Nil(t, c.Karma)
	assert.Zero(t, dropped)
}

func TestRecord_ReviewRatingStripsSeparators(t *testing.T) {
	rec := map[string]any{
		"source": "amazon_reviews_1",
		"reviews": []any{
			map[string]any{
				"review_author":      "B",
				"review_star_rating": "1,234",
			},
		},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Rating)
	assert.InDelta(t, 1234.0, *comments[0].Rating, 1e-9)
}

func TestRecord_DiscussionComments(t *testing.T) {
	rec := map[string]any{
		"source": "reddit_1",
		"comments": []any{
			map[string]any{
				"body":       "nice thread",
				"author":     "u/someone",
				"karma":      88.0,
				"created_at": "2022-11-30",
			},
		},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 1)
	c := comments[0]
	require.NotNil(t, c.Content)
	assert.Equal(t, "nice thread", *c.Content)
	require.NotNil(t, c.AuthorName)
	assert.Equal(t, "u/someone", *c.AuthorName)
	require.NotNil(t, c.Karma)
	assert.Equal(t, int64(88), *c.Karma)
	require.NotNil(t, c.CreatedAt)
	assert.Equal(t, "2022-11-30", *c.CreatedAt)
	assert.Nil(t, c.Rating)
}

func TestRecord_VideoCommentTimeNotCoerced(t *testing.T) {
	rec := map[string]any{
		"source": "youtube_1",
		"comments": []any{
			map[string]any{
				"text":        "great video",
				"author_name": "viewer42",
				"time":        "2 years ago",
			},
		},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 1)
	// the video timestamp is a verbatim passthrough, never date-coerced
	require.NotNil(t, comments[0].CreatedAt)
	assert.Equal(t, "2 years ago", *comments[0].CreatedAt)
}

func TestRecord_CommentShapePriority(t *testing.T) {
	rec := map[string]any{
		"source": "amazon_reviews_1",
		"reviews": []any{
			map[string]any{
				"review_author": "A",
				"content":       "review content",
				"body":          "discussion body",
				"author":        "other author",
			},
		},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 1)
	// review_author wins over body
	require.NotNil(t, comments[0].Content)
	assert.Equal(t, "review content", *comments[0].Content)
	require.NotNil(t, comments[0].AuthorName)
	assert.Equal(t, "A", *comments[0].AuthorName)
}

func TestRecord_ShapelessEntriesDropped(t *testing.T) {
	rec := map[string]any{
		"source": "reddit_1",
		"comments": []any{
			map[string]any{"body": "first", "author": "u/a"},
			map[string]any{"upvotes": 3.0}, // none of the three shapes
			"not even an object",
			map[string]any{"body": "second", "author": "u/b"},
		},
	}

	_, comments, dropped := Record(rec)

	require.Len(t, comments, 2)
	assert.Equal(t, "first", *comments[0].Content)
	assert.Equal(t, "second", *comments[1].Content)
	assert.Equal(t, 2, dropped)
}

func TestRecord_ReviewsKeyWinsOverComments(t *testing.T) {
	rec := map[string]any{
		"source":   "amazon_reviews_1",
		"reviews":  []any{map[string]any{"review_author": "A"}},
		"comments": []any{map[string]any{"body": "ignored"}},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 1)
	assert.Equal(t, "A", *comments[0].AuthorName)
}

func TestRecord_Demographics(t *testing.T) {
	rec := map[string]any{
		"source": "youtube_1",
		"comments": []any{
			map[string]any{
				"text": "hello",
				"user_info": map[string]any{
					"age_group":   "25-34",
					"gender":      "female",
					"income_band": "50k-75k",
				},
			},
			map[string]any{"text": "no user info"},
		},
	}

	_, comments, _ := Record(rec)

	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].AgeGroup)
	assert.Equal(t, "25-34", *comments[0].AgeGroup)
	require.NotNil(t, comments[0].Gender)
	assert.Equal(t, "female", *comments[0].Gender)
	require.NotNil(t, comments[0].IncomeBand)
	assert.Equal(t, "50k-75k", *comments[0].IncomeBand)

	assert.Nil(t, comments[1].AgeGroup)
	assert.Nil(t, comments[1].Gender)
	assert.Nil(t, comments[1].IncomeBand)
}
