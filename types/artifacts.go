package types

// ArtifactKind identifies one of the three capture artifacts.
type ArtifactKind string

const (
	// ArtifactReport is the crash report text file.
	ArtifactReport ArtifactKind = "report"
	// ArtifactSnapshot is the collaborator-written application state snapshot.
	ArtifactSnapshot ArtifactKind = "snapshot"
	// ArtifactScreenshot is the collaborator-written visual capture.
	ArtifactScreenshot ArtifactKind = "screenshot"
)

// ArtifactRecord tracks one artifact attempt.
// Each record is written by a different producer and failures are
// independent: one failing must not prevent the others from being attempted.
type ArtifactRecord struct {
	// Kind identifies the artifact.
	Kind ArtifactKind `msgpack:"kind" json:"kind"`
	// Attempted is true once the producer was invoked.
	Attempted bool `msgpack:"attempted" json:"attempted"`
	// Path is the written file path, empty on failure.
	Path string `msgpack:"path,omitempty" json:"path,omitempty"`
	// OK is true when the artifact was written successfully.
	OK bool `msgpack:"ok" json:"ok"`
}

// ArtifactSet holds the three independent artifact records of a capture.
type ArtifactSet struct {
	Report     ArtifactRecord `msgpack:"report" json:"report"`
	Snapshot   ArtifactRecord `msgpack:"snapshot" json:"snapshot"`
	Screenshot ArtifactRecord `msgpack:"screenshot" json:"screenshot"`
}

// All returns the records in fixed order (report, snapshot, screenshot).
func (s *ArtifactSet) All() []ArtifactRecord {
	return []ArtifactRecord{s.Report, s.Snapshot, s.Screenshot}
}

// OK reports whether all three artifacts were written successfully.
// Any combination of partial success is a valid, fully-specified outcome;
// this flag only summarizes it.
func (s *ArtifactSet) OK() bool {
	return s.Report.OK && s.Snapshot.OK && s.Screenshot.OK
}

// Paths returns the non-empty artifact paths in fixed order.
func (s *ArtifactSet) Paths() []string {
	var paths []string
	for _, rec := range s.All() {
		if rec.Path != "" {
			paths = append(paths, rec.Path)
		}
	}
	return paths
}
