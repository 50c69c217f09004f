package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/url-summarizer/models"
)

// timestampLayout is fixed width so created_at sorts correctly as text.
const timestampLayout = "2006-01-02 15:04:05.000000000"

const summaryColumns = `id, url, title, summary_text, summary_length, summary_tone,
	model_used, created_at, word_count, video_duration, video_channel`

// Newest first; rows sharing a timestamp keep insertion order.
const newestFirst = ` ORDER BY created_at DESC, id ASC`

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// InsertSummary stores a new summary and returns its id. word_count is derived
// from the summary text and created_at is set to createdAt.
func (db *DB) InsertSummary(p models.SaveParams, createdAt time.Time) (int64, error) {
	title := p.Title
	if strings.TrimSpace(title) == "" {
		title = models.UntitledTitle
	}

	result, err := db.Exec(`
		INSERT INTO summaries (url, title, summary_text, summary_length, summary_tone,
			model_used, created_at, word_count, video_duration, video_channel)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.URL, title, p.SummaryText, p.SummaryLength, p.SummaryTone, p.ModelUsed,
		createdAt.UTC().Format(timestampLayout), CountWords(p.SummaryText),
		p.VideoDuration, p.VideoChannel)
	if err != nil {
		return 0, fmt.Errorf("failed to insert summary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get summary ID: %w", err)
	}
	return id, nil
}

// ListSummaries returns summaries newest first. A limit <= 0 returns all rows.
func (db *DB) ListSummaries(limit int) ([]models.SummaryRecord, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries` + newestFirst
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return scanSummaries(rows)
}

// GetSummaryByID returns the summary with the given id, or nil if there is none.
func (db *DB) GetSummaryByID(id int64) (*models.SummaryRecord, error) {
	row := db.QueryRow(`SELECT `+summaryColumns+` FROM summaries WHERE id = ?`, id)
	record, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return record, nil
}

// SearchSummaries returns summaries whose url, title or summary text contains
// query, ignoring case. An empty query matches every summary.
func (db *DB) SearchSummaries(query string) ([]models.SummaryRecord, error) {
	needle := strings.ToLower(query)
	rows, err := db.Query(`
		SELECT `+summaryColumns+` FROM summaries
		WHERE instr(casefold(url), ?) > 0
			OR instr(casefold(title), ?) > 0
			OR instr(casefold(summary_text), ?) > 0
	`+newestFirst, needle, needle, needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search summaries: %w", err)
	}
	return scanSummaries(rows)
}

// DeleteSummary removes the summary with the given id. Deleting an id that
// does not exist is not an error.
func (db *DB) DeleteSummary(id int64) error {
	if _, err := db.Exec(`DELETE FROM summaries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}

// ClearSummaries removes every summary. The AUTOINCREMENT counter is kept, so
// ids are not reused afterwards.
func (db *DB) ClearSummaries() error {
	if _, err := db.Exec(`DELETE FROM summaries`); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}
	return nil
}

// CountSummaries returns the number of stored summaries.
func (db *DB) CountSummaries() (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM summaries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(row rowScanner) (*models.SummaryRecord, error) {
	var (
		record                   models.SummaryRecord
		title, length, tone, mdl sql.NullString
		wordCount                sql.NullInt64
		createdAt                sql.NullTime
	)
	err := row.Scan(&record.ID, &record.URL, &title, &record.SummaryText, &length, &tone,
		&mdl, &createdAt, &wordCount, &record.VideoDuration, &record.VideoChannel)
	if err != nil {
		return nil, err
	}

	record.Title = title.String
	record.SummaryLength = length.String
	record.SummaryTone = tone.String
	record.ModelUsed = mdl.String
	record.CreatedAt = createdAt.Time
	record.WordCount = int(wordCount.Int64)
	return &record, nil
}

func scanSummaries(rows *sql.Rows) ([]models.SummaryRecord, error) {
	defer rows.Close()

	var records []models.SummaryRecord
	for rows.Next() {
		record, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summaries: %w", err)
	}
	return records, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
