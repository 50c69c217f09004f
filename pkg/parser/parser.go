package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/url-summarizer/models"
)

type Parser struct{}

// ParseArticle uses go-readability to isolate the main content of a page and
// then walks that content with goquery to collect readable blocks.
func (p *Parser) ParseArticle(rawURL, html string) (*models.Page, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	var content []models.ContentBlock
	doc.Find("h1,h2,h3,h4,p,li,pre,blockquote,td").Each(func(i int, s *goquery.Selection) {
		// Nested matches (p inside li, p inside blockquote) are covered by the parent.
		if s.ParentsFiltered("li,blockquote,td").Length() > 0 {
			return
		}

		tag := goquery.NodeName(s)
		if tag == "pre" {
			if code := strings.TrimSpace(s.Text()); code != "" {
				content = append(content, models.ContentBlock{Type: "code", Text: code})
			}
			return
		}

		if text := normalizeText(s.Text()); text != "" {
			content = append(content, models.ContentBlock{Type: tag, Text: text})
		}
	})

	// Some pages have no block-level markup inside the readable region.
	if len(content) == 0 {
		if text := normalizeText(article.TextContent); text != "" {
			content = append(content, models.ContentBlock{Type: "p", Text: text})
		}
	}

	return &models.Page{
		URL:     rawURL,
		Title:   normalizeText(article.Title),
		Content: content,
	}, nil
}

// normalizeText collapses runs of whitespace, including newlines, to single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
