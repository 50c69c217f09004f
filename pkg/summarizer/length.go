package summarizer

import (
	"fmt"
	"strings"
)

// Length labels stored with each summary.
const (
	LengthShort  = "Short"
	LengthMedium = "Medium"
	LengthLong   = "Long (400-500 words)"
)

const (
	shortWords  = 150
	mediumWords = 300
	longWords   = 500

	MinCustomWords = 50
	MaxCustomWords = 2000
)

// CustomLength is the label for a caller-chosen word count.
func CustomLength(words int) string {
	return fmt.Sprintf("Custom (%d words)", words)
}

// ResolveLength maps a length name to its stored label and target word count.
// customWords > 0 takes precedence over name.
func ResolveLength(name string, customWords int) (string, int, error) {
	if customWords != 0 {
		if customWords < MinCustomWords || customWords > MaxCustomWords {
			return "", 0, fmt.Errorf("custom length must be between %d and %d words, got %d", MinCustomWords, MaxCustomWords, customWords)
		}
		return CustomLength(customWords), customWords, nil
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "short", "s":
		return LengthShort, shortWords, nil
	case "", "medium", "m":
		return LengthMedium, mediumWords, nil
	case "long", "l", strings.ToLower(LengthLong):
		return LengthLong, longWords, nil
	default:
		return "", 0, fmt.Errorf("unknown summary length: %s (use: short, medium, long, or --words N)", name)
	}
}
