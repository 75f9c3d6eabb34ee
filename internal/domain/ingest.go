package domain

import (
	"errors"
	"time"
)

// ErrMalformedInput means the top-level input was not a JSON array of records.
var ErrMalformedInput = errors.New("malformed input: top-level JSON structure must be an array of records")

// IngestStats holds statistics about one ingestion run.
type IngestStats struct {
	Records   int
	Posts     int
	Comments  int
	Dropped   int // nested entries matching no known comment shape
	Errors    int
	Published int
	Duration  time.Duration
}

// Row is one result row keyed by column name.
type Row map[string]any

// Answer bundles the outcome of one natural-language question.
type Answer struct {
	SQL         string
	Rows        []Row
	Explanation string
}
