package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"data_agent/internal/domain"
)

const (
	translateTemperature = 0
	explainTemperature   = 0.7
	completionMaxTokens  = 300
)

// schemaDescription is the static schema fed to the completion service.
// created_at is deliberately described as text so generated SQL casts it.
const schemaDescription = `TABLE posts:
  id (SERIAL, primary key)
  source (TEXT) -- Example: 'amazon_reviews_1', 'reddit_1', 'youtube_1'
  title (TEXT)
  created_at (TEXT) -- Stored as a string in the format 'YYYY-MM-DD'
  asin (TEXT)
  subreddit (TEXT)
  url (TEXT)
  description (TEXT)
  channel_name (TEXT)
  country_of_origin (TEXT)
  price (REAL)
  currency (TEXT)
  star_ratings (TEXT)
  total_rating (INTEGER)
  raw_json (TEXT)

TABLE comments:
  id (SERIAL, primary key)
  post_id (INTEGER, foreign key referencing posts(id))
  author_name (TEXT)
  content (TEXT)
  rating (REAL)
  helpful_votes (TEXT)
  karma (INTEGER)
  created_at (TEXT)
  age_group (TEXT)
  gender (TEXT)
  income_band (TEXT)`

const translatePromptFormat = `You are an SQL expert. Given the following database schema:

%s

Additional Instructions:
- When generating queries referring to source, use pattern matching (e.g., "WHERE source LIKE '%%amazon%%'") rather than exact equality.
- Note: The 'created_at' field is stored as a string in the format 'YYYY-MM-DD'. Please cast it using posts.created_at::date.

Now, generate a SQL query that answers the following question:
"%s"

Only output the SQL query.`

const explainPromptFormat = `The following are the results from a database query:

%s

Based on the user question:
"%s"

Provide a clear and concise explanation of these results. Be as specific as possible.`

// AskService answers natural-language questions about ingested data:
// question to SQL, SQL to rows, rows to prose. The generated SQL is taken
// from the completion service as-is apart from markdown fence stripping.
type AskService struct {
	completer Completer
	queries   QueryRunner
	logger    *slog.Logger
}

func NewAskService(completer Completer, queries QueryRunner, logger *slog.Logger) *AskService {
	return &AskService{
		completer: completer,
		queries:   queries,
		logger:    logger,
	}
}

// TranslateSQL asks the completion service to turn a question into SQL
// against the fixed schema.
func (s *AskService) TranslateSQL(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(translatePromptFormat, schemaDescription, question)

	raw, err := s.completer.Complete(ctx, prompt, translateTemperature, completionMaxTokens)
	if err != nil {
		return "", fmt.Errorf("translate question: %w", err)
	}

	return stripFences(raw), nil
}

// RunQuery executes generated SQL against the store.
func (s *AskService) RunQuery(ctx context.Context, query string) ([]domain.Row, error) {
	return s.queries.Run(ctx, query)
}

// Explain renders the result rows into a natural-language answer.
func (s *AskService) Explain(ctx context.Context, rows []domain.Row, question string) (string, error) {
	serialized, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize rows: %w", err)
	}

	prompt := fmt.Sprintf(explainPromptFormat, serialized, question)

	explanation, err := s.completer.Complete(ctx, prompt, explainTemperature, completionMaxTokens)
	if err != nil {
		return "", fmt.Errorf("explain results: %w", err)
	}

	return strings.TrimSpace(explanation), nil
}

// Ask runs the full question path and bundles the intermediate artifacts.
func (s *AskService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	query, err := s.TranslateSQL(ctx, question)
	if err != nil {
		return nil, err
	}
	s.logger.Info("generated sql", "query", query)

	rows, err := s.RunQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	s.logger.Info("query executed", "rows", len(rows))

	explanation, err := s.Explain(ctx, rows, question)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		SQL:         query,
		Rows:        rows,
		Explanation: explanation,
	}, nil
}

// stripFences removes a markdown code fence around a completion response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```sql")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
