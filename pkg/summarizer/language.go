package summarizer

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

const defaultLanguage = "English"

var supportedLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Russian,
	lingua.Chinese,
	lingua.Japanese,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the English name of the language text is written in,
// falling back to English when detection is not confident.
func DetectLanguage(text string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(supportedLanguages...).
			Build()
	})

	sample := truncateText(text, 2000)
	if lang, ok := detector.DetectLanguageOf(sample); ok {
		return lang.String()
	}
	return defaultLanguage
}
