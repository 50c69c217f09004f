package mapreduce

import (
	"sort"
	"strings"
)

// Keyword is a word and how often it occurs.
type Keyword struct {
	Word  string
	Count int
}

// isValidKeyword filters malformed tokens: trailing separators, unmatched
// delimiters and unbalanced quotes.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}} {
		if strings.Contains(word, pair[0]) != strings.Contains(word, pair[1]) {
			return false
		}
	}

	return strings.Count(word, "\"")%2 == 0
}

// TopKeywords returns the n most frequent keywords, ties broken alphabetically.
func TopKeywords(wordCounts map[string]int, n int) []Keyword {
	keywords := make([]Keyword, 0, len(wordCounts))
	for word, count := range wordCounts {
		if isValidKeyword(word) {
			keywords = append(keywords, Keyword{Word: word, Count: count})
		}
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if n >= 0 && len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

// Words returns just the words of keywords, in order.
func Words(keywords []Keyword) []string {
	words := make([]string, len(keywords))
	for i, k := range keywords {
		words[i] = k.Word
	}
	return words
}
