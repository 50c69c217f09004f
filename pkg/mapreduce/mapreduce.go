package mapreduce

import (
	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/analytics"
)

// Map generates a word frequency map for each record's summary text.
func Map(records []models.SummaryRecord) []map[string]int {
	intermediate := make([]map[string]int, 0, len(records))
	for _, r := range records {
		intermediate = append(intermediate, analytics.WordFrequency(r.SummaryText))
	}
	return intermediate
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
