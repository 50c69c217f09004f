// Package models defines data structures for configuration, fetched content and summaries.
package models

import (
	"database/sql"
	"time"
)

// UntitledTitle is stored when a summary is saved without a title.
const UntitledTitle = "Untitled"

// SummaryRecord is one persisted summary. Records are immutable once stored.
type SummaryRecord struct {
	ID            int64
	URL           string
	Title         string
	SummaryText   string
	SummaryLength string
	SummaryTone   string
	ModelUsed     string
	CreatedAt     time.Time
	WordCount     int
	VideoDuration sql.NullString
	VideoChannel  sql.NullString
}

// SaveParams holds the caller-supplied fields of a new summary.
// ID, CreatedAt and WordCount are assigned by the store.
type SaveParams struct {
	URL           string
	Title         string
	SummaryText   string
	SummaryLength string
	SummaryTone   string
	ModelUsed     string
	VideoDuration sql.NullString
	VideoChannel  sql.NullString
}

// Content is the text and metadata fetched for a URL before summarization.
type Content struct {
	URL   string
	Title string
	Text  string

	// Only populated for video sources.
	IsVideo       bool
	VideoDuration string
	VideoChannel  string
}
