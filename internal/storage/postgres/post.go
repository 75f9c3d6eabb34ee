package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"data_agent/internal/domain"
)

type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

// Insert stores a post and returns its generated surrogate id.
func (s *PostStore) Insert(ctx context.Context, post *domain.Post) (int64, error) {
	query := `
		INSERT INTO posts (
			source, title, created_at, asin, subreddit, url, description,
			channel_name, country_of_origin, price, currency, star_ratings,
			total_rating, raw_json
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		post.Source,
		post.Title,
		post.CreatedAt,
		post.Asin,
		post.Subreddit,
		post.URL,
		post.Description,
		post.ChannelName,
		post.CountryOfOrigin,
		post.Price,
		post.Currency,
		post.StarRatings,
		post.TotalRating,
		post.RawJSON,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
