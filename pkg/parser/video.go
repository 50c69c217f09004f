package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtu\.be/`),
	}

	isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

	// Values embedded in the player JSON of a watch page.
	shortDescriptionPattern = regexp.MustCompile(`"shortDescription":"((?:[^"\\]|\\.)*)"`)
	lengthSecondsPattern    = regexp.MustCompile(`"lengthSeconds":"(\d+)"`)
	ownerChannelPattern     = regexp.MustCompile(`"ownerChannelName":"((?:[^"\\]|\\.)*)"`)
)

// Video is the metadata scraped from a video watch page.
type Video struct {
	Title       string
	Description string
	Duration    string // H:MM:SS or M:SS, empty when unknown
	Channel     string
}

// IsYouTubeURL reports whether rawURL points at youtube.com or youtu.be.
func IsYouTubeURL(rawURL string) bool {
	for _, p := range youtubePatterns {
		if p.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// ParseVideo extracts title, description, duration and channel from a
// YouTube watch page. Microdata is preferred and the embedded player JSON is
// the fallback.
func (p *Parser) ParseVideo(html string) (*Video, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse video page: %w", err)
	}

	v := &Video{
		Title: firstNonEmpty(
			metaContent(doc, `meta[name="title"]`),
			metaContent(doc, `meta[property="og:title"]`),
			strings.TrimSuffix(normalizeText(doc.Find("title").First().Text()), " - YouTube"),
		),
		Channel: firstNonEmpty(
			metaContent(doc, `span[itemprop="author"] link[itemprop="name"]`),
			jsonStringMatch(ownerChannelPattern, html),
		),
	}

	v.Description = jsonStringMatch(shortDescriptionPattern, html)
	if v.Description == "" {
		v.Description = firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		)
	}

	if iso := metaContent(doc, `meta[itemprop="duration"]`); iso != "" {
		if secs, ok := parseISODuration(iso); ok {
			v.Duration = FormatDuration(secs)
		}
	}
	if v.Duration == "" {
		if m := lengthSecondsPattern.FindStringSubmatch(html); m != nil {
			if secs, err := strconv.Atoi(m[1]); err == nil {
				v.Duration = FormatDuration(secs)
			}
		}
	}

	if v.Title == "" && v.Description == "" {
		return nil, fmt.Errorf("no video metadata found")
	}
	return v, nil
}

// Text returns the content sent to the summarizer for a video.
func (v *Video) Text() string {
	return strings.TrimSpace(v.Title + "\n\n" + v.Description)
}

// FormatDuration renders seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int) string {
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// parseISODuration parses the ISO-8601 durations used in video microdata,
// e.g. PT1H2M3S or P0DT4M13S.
func parseISODuration(iso string) (int, bool) {
	m := isoDurationPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(iso)))
	if m == nil {
		return 0, false
	}

	multipliers := []int{86400, 3600, 60, 1}
	total, parts := 0, 0
	for i, mult := range multipliers {
		if m[i+1] == "" {
			continue
		}
		parts++
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		total += n * mult
	}
	return total, parts > 0
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// jsonStringMatch returns the decoded JSON string captured by pattern.
func jsonStringMatch(pattern *regexp.Regexp, html string) string {
	m := pattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
