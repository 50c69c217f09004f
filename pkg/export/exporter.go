package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/storage"
)

// Format is an export file format, named by its file extension.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

// filenameTimeLayout gives second precision; two exports with the same base in
// the same second share a name and the later one wins.
const filenameTimeLayout = "20060102_150405"

// DefaultBaseFilename is used when SaveExport gets an empty base name.
const DefaultBaseFilename = "summaries"

// ParseFormat resolves a user-supplied format name or extension.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format: %s (use: md, json, csv, or html)", name)
	}
}

// Render renders records in the given format.
func Render(format Format, records []models.SummaryRecord) (string, error) {
	switch format {
	case FormatMarkdown:
		return ToMarkdown(records), nil
	case FormatJSON:
		return ToJSON(records)
	case FormatCSV:
		return ToCSV(records), nil
	case FormatHTML:
		return ToHTML(records)
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
}

// Exporter writes rendered exports into a directory.
type Exporter struct {
	dir     string
	storage *storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewExporter returns an Exporter writing into dir (models.DefaultExportDir if
// empty). A nil logger uses slog.Default().
func NewExporter(dir string, logger *slog.Logger) *Exporter {
	if dir == "" {
		dir = models.DefaultExportDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		dir:     dir,
		storage: &storage.Storage{},
		logger:  logger,
		now:     time.Now,
	}
}

// SaveExport writes content to {dir}/{baseFilename}_{YYYYMMDD_HHMMSS}.{ext}
// and returns the file path. The directory is created if needed. On failure
// it logs the cause and returns ("", false); no partial file is left behind.
func (e *Exporter) SaveExport(content, baseFilename, formatExtension string) (string, bool) {
	if err := e.storage.EnsureDir(e.dir); err != nil {
		e.logger.Error("failed to create export directory", "dir", e.dir, "error", err)
		return "", false
	}

	base := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(baseFilename))
	if base == "" || base == "." || base == ".." {
		base = DefaultBaseFilename
	}
	ext := strings.ToLower(strings.TrimPrefix(formatExtension, "."))
	name := fmt.Sprintf("%s_%s.%s", base, e.now().Format(filenameTimeLayout), ext)
	path := filepath.Join(e.dir, name)

	if err := e.storage.SaveFile(path, []byte(content)); err != nil {
		e.logger.Error("failed to save export file", "path", path, "error", err)
		return "", false
	}

	e.logger.Info("export saved", "path", path, "bytes", len(content))
	return path, true
}
