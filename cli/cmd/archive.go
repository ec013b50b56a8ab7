package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/faultline/adapter"
	"github.com/justapithecus/faultline/adapter/redis"
	"github.com/justapithecus/faultline/adapter/webhook"
	"github.com/justapithecus/faultline/artifact"
	"github.com/justapithecus/faultline/cli/config"
	"github.com/justapithecus/faultline/cli/reader"
	"github.com/justapithecus/faultline/cli/render"
	"github.com/justapithecus/faultline/iox"
	"github.com/justapithecus/faultline/store"
	"github.com/justapithecus/faultline/types"
	"github.com/justapithecus/faultline/wire"
)

// ArchiveResponse summarizes one archive run.
type ArchiveResponse struct {
	Archived  int      `json:"archived"`
	Published int      `json:"published"`
	Pruned    int      `json:"pruned"`
	Failures  []string `json:"failures,omitempty"`
}

// ArchiveCommand returns the archive command.
// This is the only command that writes to the archive.
func ArchiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Archive local crash bundles into durable storage",
		Flags: []cli.Flag{
			FormatFlag,
			NoColorFlag,
			DirFlag,
			&cli.StringFlag{Name: "bundle", Usage: "Archive a single bundle by ID (default: all)"},
			&cli.StringFlag{Name: "binary", Usage: "Archive only bundles of the named executable"},
			&cli.StringFlag{Name: "storage-dataset", Usage: "Lode dataset ID (default: \"faultline\")", Value: store.DefaultDataset},
			&cli.StringFlag{Name: "storage-backend", Usage: "Storage backend: fs or s3", Value: "fs"},
			&cli.StringFlag{Name: "storage-path", Usage: "Storage path (fs: directory, s3: bucket/prefix)", Required: true},
			&cli.StringFlag{Name: "storage-region", Usage: "AWS region for S3 backend"},
			&cli.StringFlag{Name: "config", Usage: "Config file with adapter settings (enables event publishing)"},
			&cli.BoolFlag{Name: "prune", Usage: "Delete local bundles after successful archiving"},
		},
		Action: archiveAction,
	}
}

func archiveAction(c *cli.Context) error {
	archive, err := buildArchive(c)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}

	var pub adapter.Adapter
	if cfgPath := c.String("config"); cfgPath != "" {
		pub, err = buildAdapter(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to initialize adapter: %w", err)
		}
		if pub != nil {
			defer iox.DiscardClose(pub)
		}
	}

	dir := c.String("dir")
	bundles, err := selectBundles(c, dir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(bundles) == 0 {
		return cli.Exit("no crash bundles to archive", 1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resp := &ArchiveResponse{}
	for _, bundleID := range bundles {
		if err := archiveOne(ctx, archive, pub, dir, bundleID, c.Bool("prune"), resp); err != nil {
			resp.Failures = append(resp.Failures, fmt.Sprintf("%s: %v", bundleID, err))
		}
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	if err := r.Render(resp); err != nil {
		return err
	}

	if len(resp.Failures) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// selectBundles resolves the bundle set from --bundle or the listing.
func selectBundles(c *cli.Context, dir string) ([]string, error) {
	if bundleID := c.String("bundle"); bundleID != "" {
		return []string{bundleID}, nil
	}

	items, err := reader.NewDirReader(dir).ListCrashes(reader.ListCrashesOptions{
		Binary: c.String("binary"),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BundleID)
	}
	return ids, nil
}

// archiveOne ships one bundle: the sidecar record plus every surviving
// artifact file. Publishing failure is recorded, never fatal to the run.
func archiveOne(ctx context.Context, archive *store.Archive, pub adapter.Adapter, dir, bundleID string, prune bool, resp *ArchiveResponse) error {
	bundleDir := filepath.Join(dir, bundleID)
	meta, err := wire.ReadMetaFile(filepath.Join(bundleDir, artifact.MetaFileName))
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}

	files, err := collectBundleFiles(bundleDir)
	if err != nil {
		return err
	}

	if err := archive.ArchiveBundle(ctx, meta, files); err != nil {
		return err
	}
	resp.Archived++

	if pub != nil {
		event := adapter.FromCaptureMeta(meta, storagePath(meta))
		if err := pub.Publish(ctx, event); err != nil {
			resp.Failures = append(resp.Failures, fmt.Sprintf("%s: publish: %v", bundleID, err))
		} else {
			resp.Published++
		}
	}

	if prune {
		if err := os.RemoveAll(bundleDir); err != nil {
			return fmt.Errorf("prune: %w", err)
		}
		resp.Pruned++
	}
	return nil
}

// collectBundleFiles reads every bundle file except the sidecar, which is
// archived as the flattened meta record instead.
func collectBundleFiles(bundleDir string) ([]store.BundleFile, error) {
	entries, err := os.ReadDir(bundleDir)
	if err != nil {
		return nil, fmt.Errorf("read bundle dir: %w", err)
	}

	var files []store.BundleFile
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == artifact.MetaFileName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(bundleDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		files = append(files, store.BundleFile{Name: entry.Name(), Data: data})
	}
	return files, nil
}

// storagePath renders the Hive partition path of a bundle's meta record.
func storagePath(meta *types.CaptureMeta) string {
	day := store.DeriveDay(time.Now())
	if t, err := time.Parse(time.RFC3339, meta.Timestamp); err == nil {
		day = store.DeriveDay(t)
	}
	return fmt.Sprintf("binary=%s/day=%s/bundle_id=%s", meta.Binary, day, meta.BundleID)
}

// buildAdapter creates the configured crash-event adapter, or nil when the
// config file declares none.
func buildAdapter(path string) (adapter.Adapter, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	retries := func(def int) int {
		if cfg.Adapter.Retries != nil {
			return *cfg.Adapter.Retries
		}
		return def
	}

	switch cfg.Adapter.Type {
	case "":
		return nil, nil
	case "webhook":
		a, err := webhook.New(webhook.Config{
			URL:     cfg.Adapter.URL,
			Headers: cfg.Adapter.Headers,
			Timeout: cfg.Adapter.Timeout.Duration,
			Retries: retries(webhook.DefaultRetries),
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	case "redis":
		a, err := redis.New(redis.Config{
			URL:     cfg.Adapter.URL,
			Channel: cfg.Adapter.Channel,
			Timeout: cfg.Adapter.Timeout.Duration,
			Retries: retries(redis.DefaultRetries),
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown adapter type %q", cfg.Adapter.Type)
	}
}
