package summaries

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/url-summarizer/models"
	"github.com/dtnitsch/url-summarizer/pkg/store"
)

// appEnv is the per-invocation state every action works from.
type appEnv struct {
	cfg    *models.Config
	logger *slog.Logger
	store  *store.Store
	out    io.Writer
	errOut io.Writer
}

func newEnv(c *cli.Context) (*appEnv, error) {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("export-dir") {
		cfg.ExportDir = c.String("export-dir")
	}

	return &appEnv{
		cfg:    cfg,
		logger: logger,
		store:  store.New(cfg.DBPath, store.WithLogger(logger)),
		out:    c.App.Writer,
		errOut: c.App.ErrWriter,
	}, nil
}
