package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/faultline/cli/reader"
	"github.com/justapithecus/faultline/cli/render"
	"github.com/justapithecus/faultline/store"
)

// StatsCommand returns the stats command with subcommands.
// Stats returns aggregated, derived facts.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregated crash statistics",
		Subcommands: []*cli.Command{
			statsCrashesCommand(),
			statsArchiveCommand(),
		},
	}
}

func statsCrashesCommand() *cli.Command {
	return &cli.Command{
		Name:   "crashes",
		Usage:  "Show statistics for local crash bundles",
		Flags:  append(TUIReadOnlyFlags(), DirFlag),
		Action: statsCrashesAction,
	}
}

func statsCrashesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	stats, err := reader.NewDirReader(c.String("dir")).Stats()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI("stats_crashes", stats)
	}

	return r.Render(stats)
}

func statsArchiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Show statistics for the crash archive",
		Flags: append(TUIReadOnlyFlags(),
			&cli.StringFlag{Name: "storage-dataset", Usage: "Lode dataset ID (default: \"faultline\")", Value: store.DefaultDataset},
			&cli.StringFlag{Name: "storage-backend", Usage: "Storage backend: fs or s3", Value: "fs"},
			&cli.StringFlag{Name: "storage-path", Usage: "Storage path (fs: directory, s3: bucket/prefix)", Required: true},
			&cli.StringFlag{Name: "storage-region", Usage: "AWS region for S3 backend"},
			&cli.StringFlag{Name: "binary", Usage: "Filter by crashed executable name"},
			&cli.StringFlag{Name: "day", Usage: "Filter by capture day (YYYY-MM-DD)"},
		),
		Action: statsArchiveAction,
	}
}

func statsArchiveAction(c *cli.Context) error {
	archive, err := buildArchive(c)
	if err != nil {
		return fmt.Errorf("failed to initialize archive reader: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := archive.QueryStats(ctx, store.Filter{
		Binary: c.String("binary"),
		Day:    c.String("day"),
	})
	if err != nil {
		return fmt.Errorf("failed to read archive stats: %w", err)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	if c.Bool("tui") {
		return r.RenderTUI("stats_archive", stats)
	}

	return r.Render(stats)
}

// buildArchive creates an archive handle based on CLI storage flags.
func buildArchive(c *cli.Context) (*store.Archive, error) {
	cfg := store.Config{Dataset: c.String("storage-dataset")}
	path := c.String("storage-path")

	switch backend := c.String("storage-backend"); backend {
	case "fs":
		return store.NewArchive(cfg, path)
	case "s3":
		bucket, prefix := store.ParseS3Path(path)
		return store.NewArchiveS3(cfg, store.S3Config{
			Bucket: bucket,
			Prefix: prefix,
			Region: c.String("storage-region"),
		})
	default:
		return nil, fmt.Errorf("unsupported storage-backend: %s (must be fs or s3)", backend)
	}
}
