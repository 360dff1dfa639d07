package storage

import (
	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/extract"
)

var (
	// ErrNotFound marks a missing document or corpus entry.
	ErrNotFound = errors.New("not found")

	// ErrMalformed marks content a codec could not decode.
	ErrMalformed = errors.New("malformed input")
)

// TreeCodec reads and writes the source tree-document format.
type TreeCodec interface {
	// Read parses the file at path into a Document.
	Read(path string) (*document.Document, error)

	// Write serializes doc to path in the same format.
	Write(doc *document.Document, path string) error
}

// Stamp identifies the source a snapshot was made from and its state at
// that time.
type Stamp struct {
	Source  string
	ModTime int64
	Digest  string
}

// Snapshot is a stamped, fast-to-reload copy of a Document.
type Snapshot struct {
	Stamp Stamp
	Doc   *document.Document
}

// SnapshotCodec reads and writes snapshots.
type SnapshotCodec interface {
	Read(path string) (Snapshot, error)
	Write(snap Snapshot, path string) error
}

// Naming decides which paths are snapshots and where the snapshot of a
// source lives.
type Naming interface {
	// IsSnapshot reports whether path names a snapshot.
	IsSnapshot(path string) bool

	// IsSource reports whether path names a source document.
	IsSource(path string) bool

	// SnapshotPath returns the snapshot path for a source path.
	SnapshotPath(source string) string
}

// Policy decides whether a snapshot may be served instead of its source.
type Policy interface {
	// Stamp records the state of source for a new snapshot.
	Stamp(source string) (Stamp, error)

	// Valid reports whether a snapshot stamped with s is still current.
	Valid(s Stamp) (bool, error)
}

// DocReader loads documents by path.
type DocReader interface {
	Load(path string) (*document.Document, error)
}

// CorpusWriter persists extracted token sentences of a document.
type CorpusWriter interface {
	Write(title, lang, sel string, sents [][]extract.Token) (int64, error)
}

// CorpusReader reads back stored token sentences.
type CorpusReader interface {
	// List returns the stored documents, without their sentences.
	List() ([]CorpusDoc, error)

	// Read returns the token sentences of a stored document.
	Read(id int64) ([][]extract.Token, error)
}

// CorpusDoc describes one stored document.
type CorpusDoc struct {
	Id       int64
	Title    string
	Language string
	Selector string
}
