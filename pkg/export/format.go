// Package export renders summary records as Markdown, JSON, CSV or HTML and
// writes rendered content to timestamped files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtnitsch/url-summarizer/models"
)

const (
	// EmptyMarkdown is returned by ToMarkdown for an empty record list.
	EmptyMarkdown = "# No Summaries Found\n\nNo summaries available for export."

	// EmptyCSV is returned by ToCSV for an empty record list. It is plain text,
	// not a header-only CSV document.
	EmptyCSV = "No summaries available for export."

	csvHeader = "ID,URL,Title,Summary,Length,Tone,Model,Created At,Word Count,Duration,Channel\n"

	displayTimeLayout = "2006-01-02 15:04:05"
)

// ToMarkdown renders records in the given order as a Markdown document.
func ToMarkdown(records []models.SummaryRecord) string {
	return renderMarkdown(records, time.Now())
}

func renderMarkdown(records []models.SummaryRecord, generatedAt time.Time) string {
	if len(records) == 0 {
		return EmptyMarkdown
	}

	var sb strings.Builder
	sb.WriteString("# URL Summaries\n\n")
	fmt.Fprintf(&sb, "*Generated on: %s*\n\n", generatedAt.Format(displayTimeLayout))
	fmt.Fprintf(&sb, "*Total summaries: %d*\n\n---\n\n", len(records))

	for _, r := range records {
		fmt.Fprintf(&sb, "## %s\n\n", displayTitle(r.Title))
		fmt.Fprintf(&sb, "**URL:** [%s](%s)\n\n", r.URL, r.URL)
		fmt.Fprintf(&sb, "**Date:** %s\n\n", r.CreatedAt.Format(displayTimeLayout))
		fmt.Fprintf(&sb, "**Length:** %s\n\n", r.SummaryLength)
		fmt.Fprintf(&sb, "**Tone:** %s\n\n", r.SummaryTone)
		fmt.Fprintf(&sb, "**Word Count:** %d\n\n", r.WordCount)
		if r.VideoDuration.Valid && r.VideoDuration.String != "" {
			fmt.Fprintf(&sb, "**Duration:** %s\n\n", r.VideoDuration.String)
		}
		if r.VideoChannel.Valid && r.VideoChannel.String != "" {
			fmt.Fprintf(&sb, "**Channel:** %s\n\n", r.VideoChannel.String)
		}
		fmt.Fprintf(&sb, "**Model:** %s\n\n", r.ModelUsed)
		fmt.Fprintf(&sb, "### Summary\n\n%s\n\n---\n\n", r.SummaryText)
	}

	return sb.String()
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return models.UntitledTitle
	}
	return title
}

// jsonRecord fixes the key order of an exported record.
type jsonRecord struct {
	ID            int64   `json:"id"`
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	SummaryText   string  `json:"summary_text"`
	SummaryLength string  `json:"summary_length"`
	SummaryTone   string  `json:"summary_tone"`
	ModelUsed     string  `json:"model_used"`
	CreatedAt     string  `json:"created_at"`
	WordCount     int     `json:"word_count"`
	VideoDuration *string `json:"video_duration"`
	VideoChannel  *string `json:"video_channel"`
}

type jsonDocument struct {
	ExportDate     string       `json:"export_date"`
	TotalSummaries int          `json:"total_summaries"`
	Summaries      []jsonRecord `json:"summaries"`
}

type emptyJSONDocument struct {
	Summaries  []jsonRecord `json:"summaries"`
	ExportDate string       `json:"export_date"`
}

// ToJSON renders records as an indented JSON document. Absent optional
// fields are written as null.
func ToJSON(records []models.SummaryRecord) (string, error) {
	return renderJSON(records, time.Now())
}

func renderJSON(records []models.SummaryRecord, exportedAt time.Time) (string, error) {
	exportDate := exportedAt.Format(time.RFC3339)

	var doc interface{}
	if len(records) == 0 {
		doc = emptyJSONDocument{Summaries: []jsonRecord{}, ExportDate: exportDate}
	} else {
		summaries := make([]jsonRecord, 0, len(records))
		for _, r := range records {
			summaries = append(summaries, toJSONRecord(r))
		}
		doc = jsonDocument{
			ExportDate:     exportDate,
			TotalSummaries: len(records),
			Summaries:      summaries,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func toJSONRecord(r models.SummaryRecord) jsonRecord {
	rec := jsonRecord{
		ID:            r.ID,
		URL:           r.URL,
		Title:         r.Title,
		SummaryText:   r.SummaryText,
		SummaryLength: r.SummaryLength,
		SummaryTone:   r.SummaryTone,
		ModelUsed:     r.ModelUsed,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339Nano),
		WordCount:     r.WordCount,
	}
	if r.VideoDuration.Valid {
		d := r.VideoDuration.String
		rec.VideoDuration = &d
	}
	if r.VideoChannel.Valid {
		c := r.VideoChannel.String
		rec.VideoChannel = &c
	}
	return rec
}

// ToCSV renders records as CSV with a fixed header row.
func ToCSV(records []models.SummaryRecord) string {
	if len(records) == 0 {
		return EmptyCSV
	}

	var sb strings.Builder
	sb.WriteString(csvHeader)
	for _, r := range records {
		fields := []string{
			strconv.FormatInt(r.ID, 10),
			escapeCSV(r.URL),
			escapeCSV(r.Title),
			escapeCSV(r.SummaryText),
			escapeCSV(r.SummaryLength),
			escapeCSV(r.SummaryTone),
			escapeCSV(r.ModelUsed),
			escapeCSV(r.CreatedAt.Format(displayTimeLayout)),
			strconv.Itoa(r.WordCount),
			escapeCSV(r.VideoDuration.String),
			escapeCSV(r.VideoChannel.String),
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// escapeCSV quotes a value containing a comma, double quote or newline and
// doubles any embedded quotes. Other values pass through unchanged.
func escapeCSV(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
