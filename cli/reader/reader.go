package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/justapithecus/faultline/artifact"
	"github.com/justapithecus/faultline/types"
	"github.com/justapithecus/faultline/wire"
)

// BundlePrefix is the directory-name prefix of crash bundles.
const BundlePrefix = "crash-"

// ErrBundleNotFound is returned when no bundle with the given ID exists
// under the report directory.
var ErrBundleNotFound = errors.New("crash bundle not found")

// DirReader reads crash bundles from a local report directory.
// Bundles without a readable sidecar are silently skipped during listing;
// a crashed writer may have left a partial bundle behind.
type DirReader struct {
	root string
}

// NewDirReader creates a reader over the given report directory.
func NewDirReader(root string) *DirReader {
	return &DirReader{root: root}
}

// Root returns the report directory this reader scans.
func (r *DirReader) Root() string {
	return r.root
}

// ListCrashes scans the report directory for crash bundles, most recent
// first. A missing report directory yields an empty listing, not an error.
func (r *DirReader) ListCrashes(opts ListCrashesOptions) ([]ListCrashItem, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read report directory %s: %w", r.root, err)
	}

	var items []ListCrashItem
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), BundlePrefix) {
			continue
		}
		meta, err := r.readMeta(entry.Name())
		if err != nil {
			continue
		}
		item, err := SummarizeMeta(meta)
		if err != nil {
			continue
		}
		if opts.Binary != "" && item.Binary != opts.Binary {
			continue
		}
		if opts.Signal != "" && item.Signal != opts.Signal {
			continue
		}
		items = append(items, item)
	}

	// Bundle IDs embed the capture timestamp, so lexical descending order
	// is chronological latest-first.
	sort.Slice(items, func(i, j int) bool {
		return items[i].BundleID > items[j].BundleID
	})

	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	return items, nil
}

// InspectCrash loads the full view of one bundle by ID.
func (r *DirReader) InspectCrash(bundleID string) (*InspectCrashResponse, error) {
	meta, err := r.readMeta(bundleID)
	if err != nil {
		return nil, err
	}

	reportPath := filepath.Join(r.root, bundleID, artifact.ReportFileName)
	if _, err := os.Stat(reportPath); err != nil {
		reportPath = ""
	}

	return InspectFromMeta(meta, reportPath)
}

// ReadReport returns the crash report text of one bundle.
func (r *DirReader) ReadReport(bundleID string) (string, error) {
	path := filepath.Join(r.root, bundleID, artifact.ReportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrBundleNotFound, bundleID)
		}
		return "", fmt.Errorf("read report for %s: %w", bundleID, err)
	}
	return string(data), nil
}

// Stats aggregates every readable bundle under the report directory.
func (r *DirReader) Stats() (*CrashStats, error) {
	items, err := r.ListCrashes(ListCrashesOptions{})
	if err != nil {
		return nil, err
	}

	stats := &CrashStats{
		BySignal: make(map[string]int),
		ByBinary: make(map[string]int),
	}
	for _, item := range items {
		stats.Total++
		stats.BySignal[item.Signal]++
		stats.ByBinary[item.Binary]++
		switch types.OutcomeStatus(item.Outcome) {
		case types.OutcomeCaptured:
			stats.Captured++
		case types.OutcomePartial:
			stats.Partial++
		case types.OutcomeSkipped:
			stats.Skipped++
		}
		meta, err := r.readMeta(item.BundleID)
		if err == nil && meta.TruncatedReport {
			stats.TruncatedReports++
		}
	}
	return stats, nil
}

// readMeta loads and decodes one bundle's sidecar.
func (r *DirReader) readMeta(bundleID string) (*types.CaptureMeta, error) {
	path := filepath.Join(r.root, bundleID, artifact.MetaFileName)
	meta, err := wire.ReadMetaFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBundleNotFound, bundleID)
		}
		return nil, fmt.Errorf("read sidecar for %s: %w", bundleID, err)
	}
	return meta, nil
}
