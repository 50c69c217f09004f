package summaries

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/export"
	"github.com/dtnitsch/url-summarizer/pkg/help"
	"github.com/dtnitsch/url-summarizer/pkg/mapreduce"
	"github.com/dtnitsch/url-summarizer/pkg/storage"
)

const displayTimeLayout = "2006-01-02 15:04:05"

func ListAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	printRecords(env.out, env.store.GetAll())
	return nil
}

func RecentAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	printRecords(env.out, env.store.GetRecent(c.Int("limit")))
	return nil
}

func SearchAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	records := env.store.Search(query)
	if len(records) == 0 && query != "" {
		fmt.Fprintf(env.out, "No summaries match %q\n", query)
		return nil
	}
	printRecords(env.out, records)
	return nil
}

// ShowAction prints one summary in full.
func ShowAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	record, ok := env.store.GetByID(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Summary %d not found", id), 1)
	}

	fmt.Fprintf(env.out, "Summary %d\n", record.ID)
	fmt.Fprintln(env.out, strings.Repeat("=", 60))
	fmt.Fprintf(env.out, "Title:       %s\n", record.Title)
	fmt.Fprintf(env.out, "URL:         %s\n", record.URL)
	fmt.Fprintf(env.out, "Created:     %s\n", record.CreatedAt.Local().Format(displayTimeLayout))
	fmt.Fprintf(env.out, "Length:      %s\n", record.SummaryLength)
	fmt.Fprintf(env.out, "Tone:        %s\n", record.SummaryTone)
	fmt.Fprintf(env.out, "Model:       %s\n", record.ModelUsed)
	fmt.Fprintf(env.out, "Word Count:  %d\n", record.WordCount)
	if top := mapreduce.TopKeywords(mapreduce.Reduce(mapreduce.Map([]models.SummaryRecord{record})), 5); len(top) > 0 {
		fmt.Fprintf(env.out, "Keywords:    %s\n", strings.Join(mapreduce.Words(top), ", "))
	}
	if record.VideoDuration.Valid {
		fmt.Fprintf(env.out, "Duration:    %s\n", record.VideoDuration.String)
	}
	if record.VideoChannel.Valid {
		fmt.Fprintf(env.out, "Channel:     %s\n", record.VideoChannel.String)
	}
	fmt.Fprintln(env.out, strings.Repeat("-", 60))
	fmt.Fprintln(env.out, record.SummaryText)
	return nil
}

func DeleteAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if !env.store.Delete(id) {
		return cli.Exit("Failed to delete summary.", 1)
	}
	fmt.Fprintf(env.out, "Deleted summary %d\n", id)
	return nil
}

// ClearAction deletes every summary. Without --yes it only reports what would
// be removed.
func ClearAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	if !c.Bool("yes") {
		fmt.Fprintf(env.out, "This will delete all %d saved summaries. Re-run with --yes to confirm.\n", env.store.Count())
		return nil
	}

	if !env.store.ClearAll() {
		return cli.Exit("Failed to clear history.", 1)
	}
	fmt.Fprintln(env.out, "History cleared.")
	return nil
}

func CountAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.out, env.store.Count())
	return nil
}

// ExportAction renders all (or matching) summaries and writes them to the
// export directory, or to stdout with --stdout.
func ExportAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	records := env.store.GetAll()
	if c.IsSet("query") {
		records = env.store.Search(c.String("query"))
	}

	content, err := export.Render(format, records)
	if err != nil {
		env.logger.Error("failed to render export", "format", format, "error", err)
		return cli.Exit("Export failed.", 1)
	}

	if c.Bool("stdout") {
		fmt.Fprintln(env.out, content)
		return nil
	}

	exporter := export.NewExporter(env.cfg.ExportDir, env.logger)
	path, ok := exporter.SaveExport(content, c.String("name"), string(format))
	if !ok {
		return cli.Exit("Export failed.", 1)
	}

	s := &storage.Storage{}
	if stats, err := s.GetFileStats(path); err == nil {
		fmt.Fprintf(env.out, "Exported %d summaries to %s (%d bytes)\n", len(records), path, stats.SizeBytes)
	} else {
		fmt.Fprintf(env.out, "Exported %d summaries to %s\n", len(records), path)
	}
	return nil
}

// KeywordsAction prints the most frequent words across saved summaries.
func KeywordsAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}

	records := env.store.GetAll()
	if c.IsSet("query") {
		records = env.store.Search(c.String("query"))
	}
	if len(records) == 0 {
		fmt.Fprintln(env.out, "No summaries found")
		return nil
	}

	keywords := mapreduce.TopKeywords(mapreduce.Reduce(mapreduce.Map(records)), c.Int("limit"))
	fmt.Fprintf(env.out, "%-4s %-30s %s\n", "#", "Keyword", "Count")
	fmt.Fprintln(env.out, strings.Repeat("-", 44))
	for i, k := range keywords {
		fmt.Fprintf(env.out, "%-4d %-30s %d\n", i+1, k.Word, k.Count)
	}
	fmt.Fprintf(env.out, "\nFrom %d summaries\n", len(records))
	return nil
}

func QuickstartAction(c *cli.Context) error {
	fmt.Fprint(c.App.Writer, help.QuickstartYAML)
	return nil
}

func parseID(c *cli.Context) (int64, error) {
	if c.Args().Len() == 0 {
		return 0, cli.Exit("Missing summary ID", 1)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("Invalid summary ID: %s", c.Args().First()), 1)
	}
	return id, nil
}

func printRecords(w io.Writer, records []models.SummaryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No summaries found")
		return
	}

	fmt.Fprintf(w, "%-6s %-19s %-8s %-40s %s\n", "ID", "Created", "Words", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, r := range records {
		fmt.Fprintf(w, "%-6d %-19s %-8d %-40s %s\n",
			r.ID,
			r.CreatedAt.Local().Format(displayTimeLayout),
			r.WordCount,
			truncate(r.Title, 40),
			r.URL,
		)
	}
	fmt.Fprintf(w, "\nTotal: %d summaries\n", len(records))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
