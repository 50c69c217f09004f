package parser

import (
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Understanding Goroutines</title></head>
<body>
  <nav><a href="/">Home</a> | <a href="/about">About</a></nav>
  <article>
    <h1>Understanding Goroutines</h1>
    <p>Goroutines are functions that run concurrently with other functions. They are cheap to create and the runtime multiplexes them onto a small number of operating system threads.</p>
    <p>Channels connect goroutines. A send on an unbuffered channel blocks until a receiver is ready, which makes channels a synchronization primitive as well as a conduit for values.</p>
    <ul>
      <li>Start a goroutine with the go keyword in front of a function call.</li>
      <li><p>Use a sync.WaitGroup to wait for a collection of goroutines to finish.</p></li>
    </ul>
    <pre>go func() {
    fmt.Println("hello")
}()</pre>
    <p>The select statement lets a goroutine wait on multiple communication operations at the same time, proceeding with whichever is ready first.</p>
  </article>
  <footer>Copyright 2024</footer>
</body>
</html>`

func TestParseArticle(t *testing.T) {
	p := &Parser{}
	page, err := p.ParseArticle("https://blog.example.com/goroutines", articleHTML)
	if err != nil {
		t.Fatalf("ParseArticle() error = %v", err)
	}

	if page.URL != "https://blog.example.com/goroutines" {
		t.Errorf("URL = %q", page.URL)
	}
	if page.Title != "Understanding Goroutines" {
		t.Errorf("Title = %q, want %q", page.Title, "Understanding Goroutines")
	}
	if len(page.Content) == 0 {
		t.Fatal("expected content blocks")
	}

	text := page.ToPlainText()
	for _, want := range []string{
		"Goroutines are functions that run concurrently",
		"Channels connect goroutines.",
		"select statement",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plain text missing %q", want)
		}
	}

	var codeBlocks int
	for _, block := range page.Content {
		if block.Type == "code" {
			codeBlocks++
		}
		if block.Text == "" {
			t.Errorf("empty %s block", block.Type)
		}
	}
	if codeBlocks > 1 {
		t.Errorf("got %d code blocks, want at most 1", codeBlocks)
	}

	if strings.Count(text, "Use a sync.WaitGroup") > 1 {
		t.Errorf("nested list paragraph should appear once, text:\n%s", text)
	}
}

func TestParseArticle_InvalidURL(t *testing.T) {
	p := &Parser{}
	if _, err := p.ParseArticle("://bad", articleHTML); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"one", "one"},
		{"  leading and trailing  ", "leading and trailing"},
		{"line\none\n\n\tline two", "line one line two"},
	}

	for _, tt := range tests {
		if got := normalizeText(tt.in); got != tt.want {
			t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
