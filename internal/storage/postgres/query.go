package postgres

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"

	"data_agent/internal/domain"
)

type QueryStore struct {
	db *sqlx.DB
}

func NewQueryStore(db *sqlx.DB) *QueryStore {
	return &QueryStore{db: db}
}

// Run executes an arbitrary SELECT and returns its rows keyed by column
// name, in the order the database produced them.
func (s *QueryStore) Run(ctx context.Context, query string) ([]domain.Row, error) {
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Row
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		result = append(result, normalizeRow(row))
	}

	return result, rows.Err()
}

// normalizeRow rewrites driver byte slices into JSON-friendly values.
// NUMERIC/DECIMAL columns arrive as []byte; they must become float64 before
// any serialization for the explanation prompt, everything else text.
func normalizeRow(row map[string]any) domain.Row {
	out := make(domain.Row, len(row))
	for col, val := range row {
		b, ok := val.([]byte)
		if !ok {
			out[col] = val
			continue
		}
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			out[col] = f
		} else {
			out[col] = string(b)
		}
	}
	return out
}
