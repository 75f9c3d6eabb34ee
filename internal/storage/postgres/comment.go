package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"data_agent/internal/domain"
)

type CommentStore struct {
	db *sqlx.DB
}

func NewCommentStore(db *sqlx.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Insert stores one comment under its owning post.
func (s *CommentStore) Insert(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (
			post_id, author_name, content, rating, helpful_votes,
			karma, created_at, age_group, gender, income_band
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		comment.PostID,
		comment.AuthorName,
		comment.Content,
		comment.Rating,
		comment.HelpfulVotes,
		comment.Karma,
		comment.CreatedAt,
		comment.AgeGroup,
		comment.Gender,
		comment.IncomeBand,
	)
	return err
}

// GetByPostID returns a post's comments in insertion order.
func (s *CommentStore) GetByPostID(ctx context.Context, postID int64) ([]domain.Comment, error) {
	query := `
		SELECT id, post_id, author_name, content, rating, helpful_votes,
		       karma, created_at, age_group, gender, income_band
		FROM comments
		WHERE post_id = $1
		ORDER BY id`

	var comments []domain.Comment
	err := s.db.SelectContext(ctx, &comments, query, postID)
	return comments, err
}
