package analytics

import (
	"strings"
	"unicode"
)

// stopwords are ignored in frequency analysis. Summaries are short, so the
// list favors function words over web/UI noise.
var stopwords = make(map[string]struct{})

func init() {
	const list = `
a about above after again against all also although always am among an and another any are around as at
be because been before being below between both but by
can cannot could did do does doing done down during
each either else even ever every few for from further
had has have having he her here hers him his how however
i if in into is it its itself just
least less like made make many may me might more most much must my
neither never no nor not now
of off often on once one only onto or other our ours out over own
per perhaps rather same several she should since so some still such
than that the their them then there these they this those through thus to too toward
under until up upon us use very via
was we well were what when where whether which while who whom whose why will with within without would
yet you your yours
summary article video content`
	for _, w := range strings.Fields(list) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether word is ignored by WordFrequency.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts lowercase words in text, trimming surrounding
// punctuation and skipping stopwords and one-letter tokens.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		// Possessives count toward the base word.
		word = strings.TrimSuffix(strings.TrimSuffix(word, "'s"), "’s")

		if len([]rune(word)) < 2 || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}
