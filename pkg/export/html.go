package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/dtnitsch/url-summarizer/models"
)

// Raw HTML inside summaries is not rendered (goldmark's default), so model
// output cannot inject markup into the page.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>URL Summaries</title>
<style>body{max-width:48rem;margin:2rem auto;padding:0 1rem;font-family:sans-serif;line-height:1.5}</style>
</head>
<body>
%s</body>
</html>
`

// ToHTML renders the Markdown export of records as a standalone HTML page.
func ToHTML(records []models.SummaryRecord) (string, error) {
	return renderHTML(records, time.Now())
}

func renderHTML(records []models.SummaryRecord, generatedAt time.Time) (string, error) {
	var body bytes.Buffer
	if err := markdownEngine.Convert([]byte(renderMarkdown(records, generatedAt)), &body); err != nil {
		return "", fmt.Errorf("failed to render HTML export: %w", err)
	}
	return fmt.Sprintf(htmlPage, body.String()), nil
}
