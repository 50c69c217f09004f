package models

import "strings"

// Page is the readable content extracted from an article-style web page.
type Page struct {
	URL     string         `json:"url"`
	Title   string         `json:"title"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one heading, paragraph, list item or code block.
type ContentBlock struct {
	Type string `json:"type"` // e.g., "h1", "h2", "p", "li", "code"
	Text string `json:"text"`
}

// ToPlainText joins the text of all blocks, one block per line.
func (p *Page) ToPlainText() string {
	var sb strings.Builder
	for _, block := range p.Content {
		if block.Text == "" {
			continue
		}
		sb.WriteString(block.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
