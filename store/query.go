package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/justapithecus/lode/lode"
)

// ErrNoCrashFound is returned when no matching crash records exist.
var ErrNoCrashFound = errors.New("no crash records found")

// Filter narrows archive queries by partition values.
// Empty fields match everything.
type Filter struct {
	Binary   string
	Day      string
	BundleID string
}

// CrashSummary is the query-side view of one archived crash.
type CrashSummary struct {
	BundleID        string
	Binary          string
	Timestamp       string
	SignalNumber    int
	SignalName      string
	Message         string
	Outcome         string
	FrameCount      int
	TruncatedReport bool
	ArtifactsOK     bool
}

// ListCrashes returns archived crash records matching the filter,
// most recent first.
func (a *Archive) ListCrashes(ctx context.Context, filter Filter) ([]CrashSummary, error) {
	var out []CrashSummary
	err := a.eachMetaRecord(ctx, filter, func(record map[string]any) bool {
		out = append(out, toSummary(record))
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryCrash returns the full archived record for one bundle,
// or ErrNoCrashFound.
func (a *Archive) QueryCrash(ctx context.Context, bundleID string) (map[string]any, error) {
	var found map[string]any
	err := a.eachMetaRecord(ctx, Filter{BundleID: bundleID}, func(record map[string]any) bool {
		found = record
		return false
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCrashFound, bundleID)
	}
	return found, nil
}

// Stats aggregates archived crashes matching the filter.
type Stats struct {
	Total            int
	TruncatedReports int
	BySignal         map[string]int
	ByOutcome        map[string]int
	ByBinary         map[string]int
}

// QueryStats aggregates the archive into per-signal, per-outcome, and
// per-binary counts.
func (a *Archive) QueryStats(ctx context.Context, filter Filter) (*Stats, error) {
	stats := &Stats{
		BySignal:  make(map[string]int),
		ByOutcome: make(map[string]int),
		ByBinary:  make(map[string]int),
	}
	err := a.eachMetaRecord(ctx, filter, func(record map[string]any) bool {
		stats.Total++
		stats.BySignal[toString(record["signal_name"])]++
		stats.ByOutcome[toString(record["outcome"])]++
		stats.ByBinary[toString(record["binary"])]++
		if truncated, ok := record["truncated_report"].(bool); ok && truncated {
			stats.TruncatedReports++
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ArtifactData returns one archived artifact file's bytes,
// or ErrNoCrashFound when the bundle has no such file.
func (a *Archive) ArtifactData(ctx context.Context, bundleID, name string) ([]byte, error) {
	snapshots, err := a.dataset.Snapshots(ctx)
	if err != nil {
		return nil, WrapReadError(err, a.config.dataset()+"/snapshots")
	}

	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		if !snapshotMatchesFilter(snap, "bundle_id", bundleID) {
			continue
		}
		data, err := a.dataset.Read(ctx, snap.ID)
		if err != nil {
			return nil, WrapReadError(err, fmt.Sprintf("%s/snapshot/%s", a.config.dataset(), snap.ID))
		}
		for _, item := range data {
			record, ok := item.(map[string]any)
			if !ok || record["record_kind"] != RecordKindArtifact {
				continue
			}
			if toString(record["bundle_id"]) != bundleID || toString(record["name"]) != name {
				continue
			}
			return decodeBlob(record["data"])
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNoCrashFound, bundleID, name)
}

// eachMetaRecord walks crash_meta records latest-first, applying the
// partition filter at the manifest level and record fields authoritatively.
// The visit callback returns false to stop early.
func (a *Archive) eachMetaRecord(ctx context.Context, filter Filter, visit func(map[string]any) bool) error {
	snapshots, err := a.dataset.Snapshots(ctx)
	if err != nil {
		return WrapReadError(err, a.config.dataset()+"/snapshots")
	}

	// Iterate in reverse (latest first) — snapshots are ordered by creation time
	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		if !isMetaSnapshot(snap) {
			continue
		}
		if !snapshotMatchesFilter(snap, "binary", filter.Binary) {
			continue
		}
		if !snapshotMatchesFilter(snap, "day", filter.Day) {
			continue
		}
		if !snapshotMatchesFilter(snap, "bundle_id", filter.BundleID) {
			continue
		}

		data, err := a.dataset.Read(ctx, snap.ID)
		if err != nil {
			return WrapReadError(err, fmt.Sprintf("%s/snapshot/%s", a.config.dataset(), snap.ID))
		}

		// Manifest path filtering is a coarse pre-filter; record fields
		// are authoritative (snapshots can hold multiple partitions).
		for _, item := range data {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if record["record_kind"] != RecordKindMeta {
				continue
			}
			if filter.Binary != "" && toString(record["binary"]) != filter.Binary {
				continue
			}
			if filter.Day != "" && toString(record["day"]) != filter.Day {
				continue
			}
			if filter.BundleID != "" && toString(record["bundle_id"]) != filter.BundleID {
				continue
			}
			if !visit(record) {
				return nil
			}
		}
	}
	return nil
}

func toSummary(record map[string]any) CrashSummary {
	return CrashSummary{
		BundleID:        toString(record["bundle_id"]),
		Binary:          toString(record["binary"]),
		Timestamp:       toString(record["timestamp"]),
		SignalNumber:    toInt(record["signal_number"]),
		SignalName:      toString(record["signal_name"]),
		Message:         toString(record["message"]),
		Outcome:         toString(record["outcome"]),
		FrameCount:      toInt(record["frame_count"]),
		TruncatedReport: record["truncated_report"] == true,
		ArtifactsOK:     record["artifacts_ok"] == true,
	}
}

// isMetaSnapshot checks if a snapshot contains crash meta records by
// examining file paths for the kind=meta partition.
func isMetaSnapshot(snap *lode.DatasetSnapshot) bool {
	for _, f := range snap.Manifest.Files {
		if matchesPartitionValue(f.Path, "kind", "meta") {
			return true
		}
	}
	return false
}

// snapshotMatchesFilter checks if a snapshot's file paths match
// the given partition key=value filter.
func snapshotMatchesFilter(snap *lode.DatasetSnapshot, key, value string) bool {
	if value == "" {
		return true
	}
	for _, f := range snap.Manifest.Files {
		if matchesPartitionValue(f.Path, key, value) {
			return true
		}
	}
	return false
}

// matchesPartitionValue checks if a Hive-partitioned path contains an exact
// key=value segment. Segments are delimited by "/" in paths. This avoids
// substring false positives (e.g., bundle_id=crash-1 matching crash-10).
func matchesPartitionValue(path, key, value string) bool {
	segment := key + "=" + value
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if path[start:i] == segment {
				return true
			}
			start = i + 1
		}
	}
	return false
}

// decodeBlob handles both raw bytes and the base64 string the JSONL codec
// round-trips []byte through.
func decodeBlob(v any) ([]byte, error) {
	switch data := v.(type) {
	case []byte:
		return data, nil
	case string:
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("corrupt artifact blob: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("corrupt artifact blob: unexpected type %T", v)
	}
}

// toString converts a value to string, returning empty string for nil/non-string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toInt converts JSON-decoded numbers to int.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
