package metrics

import (
	"sync"
	"testing"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.IncHandlersArmed()
	c.IncCaptureStarted()
	c.AddFramesWalked(12)
	c.AddFramesResolved(10)
	c.IncArtifactAttempted()
	c.IncArtifactAttempted()
	c.IncArtifactSucceeded()
	c.IncArtifactFailed()
	c.IncTruncatedReport()
	c.IncCaptureCompleted()

	snap := c.Snapshot()
	if snap.CapturesStarted != 1 || snap.CapturesCompleted != 1 {
		t.Errorf("lifecycle counters = %+v", snap)
	}
	if snap.FramesWalked != 12 || snap.FramesResolved != 10 {
		t.Errorf("frame counters = %+v", snap)
	}
	if snap.ArtifactsAttempted != 2 || snap.ArtifactsSucceeded != 1 || snap.ArtifactsFailed != 1 {
		t.Errorf("artifact counters = %+v", snap)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.IncCaptureStarted()
	c.AddFramesWalked(5)
	if snap := c.Snapshot(); snap.CapturesStarted != 0 {
		t.Errorf("nil collector snapshot = %+v", snap)
	}
}

func TestSnapshotMapOmitsZeros(t *testing.T) {
	c := NewCollector()
	c.IncCaptureSkipped()

	m := c.Snapshot().Map()
	if m["captures_skipped"] != 1 {
		t.Errorf("captures_skipped = %d, want 1", m["captures_skipped"])
	}
	if _, ok := m["frames_walked"]; ok {
		t.Error("zero counter present in map")
	}
}

func TestCollectorConcurrentIncrements(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncArtifactAttempted()
		}()
	}
	wg.Wait()
	if got := c.Snapshot().ArtifactsAttempted; got != 50 {
		t.Errorf("ArtifactsAttempted = %d, want 50", got)
	}
}
