package common

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrEmptyURL        = errors.New("Please enter a URL")
	ErrMissingProtocol = errors.New("Please include the protocol (http:// or https://) in your URL")
	ErrInvalidURL      = errors.New("Please enter a valid URL format")
)

// MissingSchemeError is returned when a URL without a scheme becomes valid
// once https:// is prepended.
type MissingSchemeError struct {
	Suggestion string
}

func (e *MissingSchemeError) Error() string {
	return fmt.Sprintf("Missing protocol. Did you mean: %s?", e.Suggestion)
}

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

	// Host is a dotted domain with a TLD, localhost, or an IPv4 address,
	// followed by an optional port and path/query/fragment.
	urlPattern = regexp.MustCompile(`^https?://(localhost|[a-zA-Z0-9][-a-zA-Z0-9.]*\.[a-zA-Z]{2,}|\d{1,3}(\.\d{1,3}){3})(:\d{1,5})?([/?#][^\s]*)?$`)
)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [click here](https://example.com) -> https://example.com
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ValidateAndFixURL sanitizes rawURL and checks that it is an absolute
// http(s) URL. A URL that only lacks its scheme is rejected with a
// *MissingSchemeError carrying the https:// suggestion.
func ValidateAndFixURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", ErrEmptyURL
	}

	parsed, err := url.Parse(cleaned)
	if err == nil && parsed.Scheme == "" {
		fixed := "https://" + cleaned
		if isValidURL(fixed) {
			return "", &MissingSchemeError{Suggestion: fixed}
		}
		return "", ErrMissingProtocol
	}

	if !isValidURL(cleaned) {
		return "", ErrInvalidURL
	}
	return cleaned, nil
}

func isValidURL(candidate string) bool {
	// Literal spaces must be pre-encoded as %20.
	if strings.Contains(candidate, " ") || !urlPattern.MatchString(candidate) {
		return false
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return false
	}
	return true
}
