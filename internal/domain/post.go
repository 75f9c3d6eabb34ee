package domain

// Post is one ingested top-level record (product listing, thread or video).
// Columns that do not apply to the record's variant stay nil; the schema is
// a source-agnostic union so every variant can be queried from one table.
type Post struct {
	ID              int64    `db:"id"`
	Source          string   `db:"source"`
	Title           *string  `db:"title"`
	CreatedAt       *string  `db:"created_at"` // usually YYYY-MM-DD, may hold freeform text
	Asin            *string  `db:"asin"`
	Subreddit       *string  `db:"subreddit"`
	URL             *string  `db:"url"`
	Description     *string  `db:"description"`
	ChannelName     *string  `db:"channel_name"`
	CountryOfOrigin *string  `db:"country_of_origin"`
	Price           *float64 `db:"price"`
	Currency        *string  `db:"currency"`
	StarRatings     *string  `db:"star_ratings"`
	TotalRating     *int64   `db:"total_rating"`
	RawJSON         string   `db:"raw_json"` // verbatim input record, kept for audit
}

// Comment is one nested review/reply/comment owned by exactly one Post.
type Comment struct {
	ID           int64    `db:"id"`
	PostID       int64    `db:"post_id"`
	AuthorName   *string  `db:"author_name"`
	Content      *string  `db:"content"`
	Rating       *float64 `db:"rating"`
	HelpfulVotes *string  `db:"helpful_votes"` // free-text, platform-specific phrasing
	Karma        *int64   `db:"karma"`
	CreatedAt    *string  `db:"created_at"`
	AgeGroup     *string  `db:"age_group"`
	Gender       *string  `db:"gender"`
	IncomeBand   *string  `db:"income_band"`
}
