package summaries

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/export"
	"github.com/dtnitsch/url-summarizer/pkg/store"
)

// NewApp builds the summarizer command-line application.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "summarizer",
		Usage: "Summarize web pages and videos, and keep a searchable history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   models.DefaultConfigPath,
				Usage:   "Path to a YAML or TOML config file",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database path (overrides db_path)",
			},
			&cli.StringFlag{
				Name:  "export-dir",
				Usage: "Directory for export files (overrides export_dir)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "summarize",
				Aliases:   []string{"s"},
				Usage:     "Summarize one or more URLs",
				ArgsUsage: "<url> [url...]",
				Action:    SummarizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Value:   models.DefaultSummaryLength,
						Usage:   "Summary length: short, medium, long",
					},
					&cli.IntFlag{
						Name:    "words",
						Aliases: []string{"w"},
						Usage:   "Custom target word count (overrides --length)",
					},
					&cli.StringFlag{
						Name:    "tone",
						Aliases: []string{"t"},
						Usage:   "Tone of the summary, e.g. Professional, Casual, Academic",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Output language (default: detected from the content)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read URLs from a file, one per line",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 3,
						Usage: "Number of URLs processed concurrently",
					},
					&cli.BoolFlag{
						Name:  "no-save",
						Usage: "Print the summary without saving it to history",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all saved summaries, newest first",
				Action: ListAction,
			},
			{
				Name:   "recent",
				Usage:  "List the most recent summaries",
				Action: RecentAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   store.DefaultRecentLimit,
						Usage:   "Number of summaries to show",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search URLs, titles and summaries (case-insensitive)",
				ArgsUsage: "<query>",
				Action:    SearchAction,
			},
			{
				Name:      "show",
				Usage:     "Show a saved summary",
				ArgsUsage: "<id>",
				Action:    ShowAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved summary",
				ArgsUsage: "<id>",
				Action:    DeleteAction,
			},
			{
				Name:   "clear",
				Usage:  "Delete all saved summaries",
				Action: ClearAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm deleting every summary",
					},
				},
			},
			{
				Name:   "count",
				Usage:  "Print the number of saved summaries",
				Action: CountAction,
			},
			{
				Name:   "export",
				Usage:  "Export summaries as Markdown, JSON, CSV or HTML",
				Action: ExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"F"},
						Value:   string(export.FormatMarkdown),
						Usage:   "Export format: md, json, csv, html",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Only export summaries matching this search",
					},
					&cli.StringFlag{
						Name:  "name",
						Value: export.DefaultBaseFilename,
						Usage: "Base file name; a timestamp and extension are appended",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Write the export to stdout instead of a file",
					},
				},
			},
			{
				Name:   "keywords",
				Usage:  "Show the most frequent words across saved summaries",
				Action: KeywordsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   10,
						Usage:   "Number of keywords to show",
					},
					&cli.StringFlag{
						Name:  "query",
						Usage: "Only count summaries matching this search",
					},
				},
			},
			{
				Name:   "quickstart",
				Usage:  "Show a quick start guide",
				Action: QuickstartAction,
			},
		},
	}
}
