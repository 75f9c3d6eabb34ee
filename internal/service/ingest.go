package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"data_agent/internal/domain"
	"data_agent/internal/normalize"
)

// IngestService drives a batch of raw export records through normalization
// and persistence. Records are independent: one record failing to persist
// rolls back that record alone and the batch continues.
type IngestService struct {
	posts     PostStore
	comments  CommentStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewIngestService(
	posts PostStore,
	comments CommentStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		posts:     posts,
		comments:  comments,
		txManager: txManager,
		publisher: publisher,
		logger:    logger,
	}
}

// DecodeRecords reads a JSON document holding the batch. Anything other
// than a top-level array is rejected with domain.ErrMalformedInput.
func DecodeRecords(r io.Reader) ([]any, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records, ok := doc.([]any)
	if !ok {
		return nil, domain.ErrMalformedInput
	}
	return records, nil
}

// IngestReader decodes a JSON array from r and ingests it.
func (s *IngestService) IngestReader(ctx context.Context, r io.Reader) (*domain.IngestStats, error) {
	records, err := DecodeRecords(r)
	if err != nil {
		return nil, err
	}
	return s.IngestAll(ctx, records)
}

// IngestAll normalizes and persists each record in order. Each record's
// post and comments are written inside one transaction. The returned stats
// always describe the whole run; the error joins any per-record failures.
func (s *IngestService) IngestAll(ctx context.Context, records []any) (*domain.IngestStats, error) {
	start := time.Now()
	s.logger.Info("starting ingest", "records", len(records))

	stats := &domain.IngestStats{Records: len(records)}
	var errs []error

	for i, rec := range records {
		post, comments, dropped := normalize.Record(rec)
		stats.Dropped += dropped

		if err := s.saveRecord(ctx, post, comments); err != nil {
			stats.Errors++
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			s.logger.Error("record ingest failed", "index", i, "source", post.Source, "error", err)
			continue
		}

		stats.Posts++
		stats.Comments += len(comments)

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, post, len(comments)); err != nil {
				stats.Errors++
				errs = append(errs, fmt.Errorf("record %d: publish: %w", i, err))
				s.logger.Error("publish failed", "index", i, "post_id", post.ID, "error", err)
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(start)

	s.logger.Info("ingest completed",
		"records", stats.Records,
		"posts", stats.Posts,
		"comments", stats.Comments,
		"dropped", stats.Dropped,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, errors.Join(errs...)
}

func (s *IngestService) saveRecord(ctx context.Context, post *domain.Post, comments []domain.Comment) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		postID, err := s.posts.Insert(txCtx, post)
		if err != nil {
			return fmt.Errorf("insert post: %w", err)
		}
		post.ID = postID

		for i := range comments {
			comments[i].PostID = postID
			if err := s.comments.Insert(txCtx, &comments[i]); err != nil {
				return fmt.Errorf("insert comment %d: %w", i, err)
			}
		}
		return nil
	})
}
