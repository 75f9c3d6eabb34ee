package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"data_agent/internal/domain"
)

type PostStore interface {
	Insert(ctx context.Context, post *domain.Post) (int64, error)
}

type CommentStore interface {
	Insert(ctx context.Context, comment *domain.Comment) error
}

type QueryRunner interface {
	Run(ctx context.Context, query string) ([]domain.Row, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, post *domain.Post, commentCount int) error
	Close() error
}

type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}
