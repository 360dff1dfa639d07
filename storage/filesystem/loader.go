package filesystem

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/storage"
	"github.com/revelaction/treedoc/storage/snapshot"
	"github.com/revelaction/treedoc/storage/yaml"
)

// Loader loads tree documents, keeping a snapshot next to each source it
// parses so later loads of the snapshot skip parsing.
type Loader struct {
	Codec     storage.TreeCodec
	Snapshots storage.SnapshotCodec
	Naming    storage.Naming
	Policy    storage.Policy
	Logger    *zap.SugaredLogger
}

var _ storage.DocReader = (*Loader)(nil)

// NewLoader returns a Loader for YAML sources with gob snapshots, default
// naming and the given policy (HashPolicy if nil).
func NewLoader(policy storage.Policy, logger *zap.SugaredLogger) *Loader {
	if policy == nil {
		policy = snapshot.HashPolicy{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Loader{
		Codec:     yaml.Codec{},
		Snapshots: snapshot.Codec{},
		Naming:    snapshot.DefaultNaming(),
		Policy:    policy,
		Logger:    logger,
	}
}

// Load returns the document at path. A snapshot path is decoded directly
// when the policy accepts it; a stale snapshot is rebuilt from its recorded
// source. A source path is parsed and a fresh snapshot is written beside it.
func (l *Loader) Load(path string) (*document.Document, error) {
	if l.Naming.IsSnapshot(path) {
		return l.loadSnapshot(path)
	}
	return l.loadSource(path)
}

// LoadCached loads the snapshot of source if one exists, else source.
func (l *Loader) LoadCached(source string) (*document.Document, error) {
	if l.Naming.IsSnapshot(source) {
		return l.loadSnapshot(source)
	}

	snap := l.Naming.SnapshotPath(source)
	if _, err := os.Stat(snap); err == nil {
		return l.loadSnapshot(snap)
	}
	return l.loadSource(source)
}

func (l *Loader) loadSnapshot(path string) (*document.Document, error) {
	snap, err := l.Snapshots.Read(path)
	if err != nil {
		return nil, err
	}

	snap.Stamp.Source = resolveSource(snap.Stamp.Source, path)
	valid, err := l.Policy.Valid(snap.Stamp)
	if err != nil {
		return nil, errors.Wrapf(err, "validate snapshot %s", path)
	}
	if valid {
		l.Logger.Debugw("snapshot hit", "snapshot", path, "source", snap.Stamp.Source)
		return snap.Doc, nil
	}

	l.Logger.Infow("stale snapshot, reparsing source", "snapshot", path, "source", snap.Stamp.Source)
	return l.loadSource(snap.Stamp.Source)
}

// loadSource stamps the source before parsing it, so an edit racing the
// parse leaves a snapshot that is already stale.
func (l *Loader) loadSource(path string) (*document.Document, error) {
	snapPath := l.Naming.SnapshotPath(path)
	stamp, stampErr := l.Policy.Stamp(path)

	doc, err := l.Codec.Read(path)
	if err != nil {
		return nil, err
	}

	if stampErr != nil {
		l.Logger.Warnw("could not write snapshot", "source", path, "snapshot", snapPath, "error", stampErr)
		return doc, nil
	}

	if err := l.writeSnapshot(doc, stamp, snapPath); err != nil {
		l.Logger.Warnw("could not write snapshot", "source", path, "snapshot", snapPath, "error", err)
	}
	return doc, nil
}

func (l *Loader) writeSnapshot(doc *document.Document, stamp storage.Stamp, snapPath string) error {
	source := stamp.Source
	stamp.Source = relativeSource(source, snapPath)

	if err := l.Snapshots.Write(storage.Snapshot{Stamp: stamp, Doc: doc}, snapPath); err != nil {
		return err
	}

	l.Logger.Debugw("snapshot written", "source", source, "snapshot", snapPath)
	return nil
}

// relativeSource expresses source relative to the directory of snapPath.
// Stamps store this form; resolveSource inverts it.
func relativeSource(source, snapPath string) string {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return source
	}

	absDir, err := filepath.Abs(filepath.Dir(snapPath))
	if err != nil {
		return absSource
	}

	rel, err := filepath.Rel(absDir, absSource)
	if err != nil {
		return absSource
	}
	return rel
}

// resolveSource turns a stamped source back into a path usable from the
// current working directory.
func resolveSource(source, snapPath string) string {
	if source == "" || filepath.IsAbs(source) {
		return source
	}
	return filepath.Join(filepath.Dir(snapPath), source)
}
