// Package store archives crash bundles into Lode datasets.
//
// Bundles are written as Hive-partitioned records keyed by
// binary/day/bundle_id/kind, so the archive of a fleet of processes can
// be queried by executable, date, or individual crash without scanning
// everything.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/justapithecus/lode/lode"

	"github.com/justapithecus/faultline/types"
)

// DefaultDataset is the Lode dataset ID for crash archives.
const DefaultDataset = "faultline"

// RecordKind discriminator values.
const (
	// RecordKindMeta is the flattened capture record, one per bundle.
	RecordKindMeta = "crash_meta"
	// RecordKindArtifact is an archived artifact file, one per file.
	RecordKindArtifact = "artifact_blob"
)

// partitionKeys is the Hive layout shared by the write and read paths.
var partitionKeys = []string{"binary", "day", "bundle_id", "kind"}

// DeriveDay computes the partition day from a capture time.
// Format: YYYY-MM-DD in UTC.
func DeriveDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Config holds archive configuration.
type Config struct {
	// Dataset is the Lode dataset ID (defaults to DefaultDataset).
	Dataset string
}

func (c Config) dataset() string {
	if c.Dataset == "" {
		return DefaultDataset
	}
	return c.Dataset
}

// BundleFile is one artifact file being archived alongside its meta record.
type BundleFile struct {
	Name string
	Data []byte
}

// Archive is a Lode-backed crash bundle archive.
type Archive struct {
	dataset lode.Dataset
	config  Config
}

// NewArchive creates an archive with filesystem storage.
// The root parameter is the base directory for Hive-partitioned storage.
func NewArchive(cfg Config, root string) (*Archive, error) {
	return NewArchiveWithFactory(cfg, lode.NewFSFactory(root))
}

// NewArchiveWithFactory creates an archive with a custom store factory.
// Use lode.NewMemoryFactory() for testing.
func NewArchiveWithFactory(cfg Config, factory lode.StoreFactory) (*Archive, error) {
	ds, err := lode.NewDataset(
		lode.DatasetID(cfg.dataset()),
		factory,
		lode.WithHiveLayout(partitionKeys...),
		lode.WithCodec(lode.NewJSONLCodec()),
	)
	if err != nil {
		return nil, WrapInitError(err, cfg.dataset())
	}
	return &Archive{dataset: ds, config: cfg}, nil
}

// ArchiveBundle writes one crash bundle: the flattened capture record plus
// every artifact file that survived on disk. The meta record carries the
// bundle's day partition derived from its capture timestamp.
func (a *Archive) ArchiveBundle(ctx context.Context, meta *types.CaptureMeta, files []BundleFile) error {
	if meta == nil || meta.BundleID == "" {
		return fmt.Errorf("archive rejected: capture meta has no bundle id")
	}

	day := bundleDay(meta)
	records := make([]any, 0, 1+len(files))
	records = append(records, toMetaRecordMap(meta, day))
	for _, f := range files {
		records = append(records, toArtifactRecordMap(meta, day, f))
	}

	if _, err := a.dataset.Write(ctx, records, lode.Metadata{}); err != nil {
		return WrapWriteError(err, a.config.dataset()+"/"+meta.BundleID)
	}
	return nil
}

// Close releases archive resources.
func (a *Archive) Close() error {
	// Dataset doesn't require explicit close in current Lode API
	return nil
}

// bundleDay derives the day partition from the capture timestamp, falling
// back to the current day for records with an unparseable stamp.
func bundleDay(meta *types.CaptureMeta) string {
	if t, err := time.Parse(time.RFC3339, meta.Timestamp); err == nil {
		return DeriveDay(t)
	}
	return DeriveDay(time.Now())
}

// toMetaRecordMap flattens a capture record for Lode storage.
// Lode HiveLayout requires records as map[string]any.
func toMetaRecordMap(meta *types.CaptureMeta, day string) map[string]any {
	m := map[string]any{
		"record_kind":      RecordKindMeta,
		"contract_version": meta.ContractVersion,
		"bundle_id":        meta.BundleID,
		"binary":           meta.Binary,
		"pid":              meta.PID,
		"timestamp":        meta.Timestamp,
		"signal_number":    meta.Signal.Number,
		"signal_name":      meta.Signal.Name,
		"outcome":          string(meta.Outcome),
		"frame_count":      len(meta.Frames),
		"truncated_report": meta.TruncatedReport,
		"artifacts_ok":     meta.Artifacts.OK(),
		"day":              day,
		"kind":             "meta", // partition key
	}
	if meta.Message != "" {
		m["message"] = meta.Message
	}
	if meta.SkipReason != "" {
		m["skip_reason"] = meta.SkipReason
	}
	if len(meta.Metrics) > 0 {
		m["metrics"] = meta.Metrics
	}
	return m
}

// toArtifactRecordMap converts an archived artifact file to a map for storage.
func toArtifactRecordMap(meta *types.CaptureMeta, day string, f BundleFile) map[string]any {
	return map[string]any{
		"record_kind": RecordKindArtifact,
		"bundle_id":   meta.BundleID,
		"binary":      meta.Binary,
		"name":        f.Name,
		"size_bytes":  int64(len(f.Data)),
		"data":        f.Data,
		"day":         day,
		"kind":        "artifact", // partition key
	}
}
