package reader

// Reader abstracts read-only access to crash bundles for CLI commands.
// Implementations must not mutate bundle contents.
type Reader interface {
	ListCrashes(opts ListCrashesOptions) ([]ListCrashItem, error)
	InspectCrash(bundleID string) (*InspectCrashResponse, error)
	ReadReport(bundleID string) (string, error)
	Stats() (*CrashStats, error)
}

var _ Reader = (*DirReader)(nil)
