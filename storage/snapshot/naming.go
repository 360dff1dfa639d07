package snapshot

import (
	"strings"

	"github.com/revelaction/treedoc/file"
	"github.com/revelaction/treedoc/storage"
)

const (
	DefaultSourceExt   = ".yaml"
	DefaultSnapshotExt = ".snap"
)

// ExtNaming names snapshots by extension substitution, keeping any
// compression suffix: doc.yaml.gz has its snapshot at doc.snap.gz.
type ExtNaming struct {
	Source   string
	Snapshot string
}

var _ storage.Naming = ExtNaming{}

// DefaultNaming maps .yaml sources to .snap snapshots.
func DefaultNaming() ExtNaming {
	return ExtNaming{Source: DefaultSourceExt, Snapshot: DefaultSnapshotExt}
}

// IsSnapshot reports whether path, minus any compression suffix, ends in
// the snapshot extension.
func (n ExtNaming) IsSnapshot(path string) bool {
	base, _ := splitCompression(path)
	return strings.HasSuffix(base, n.Snapshot)
}

// IsSource reports whether path, minus any compression suffix, ends in the
// source extension.
func (n ExtNaming) IsSource(path string) bool {
	base, _ := splitCompression(path)
	return strings.HasSuffix(base, n.Source) && !n.IsSnapshot(path)
}

// SnapshotPath replaces the source extension of source with the snapshot
// extension. A source without the source extension gets the snapshot
// extension appended.
func (n ExtNaming) SnapshotPath(source string) string {
	base, comp := splitCompression(source)
	base = strings.TrimSuffix(base, n.Source)
	return base + n.Snapshot + comp
}

func splitCompression(path string) (string, string) {
	comp := file.CompressionSuffix(path)
	return strings.TrimSuffix(path, comp), comp
}
