// Package snapshot stores documents in a compact binary form next to their
// source, and decides when such a snapshot may stand in for the source.
package snapshot

import (
	"encoding/gob"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/file"
	"github.com/revelaction/treedoc/storage"
)

// Version is bumped whenever the wire records change.
const Version = 1

type wireSnapshot struct {
	Version int
	Stamp   storage.Stamp
	Bundles []wireBundle
}

type wireBundle struct {
	Zones []wireZone
}

type wireZone struct {
	Language    string
	Selector    string
	Sentence    string
	HasSentence bool
	ANodes      []wireANode
	TNodes      []wireTNode
}

type wireANode struct {
	ID, Form, Lemma, Tag string
	Ord, Parent          int
}

type wireTNode struct {
	ID, TLemma, Formeme, LexRF string
	Ord, Parent                int
}

// Codec is the gob storage.SnapshotCodec. Paths ending in .gz or .xz are
// compressed.
type Codec struct{}

var _ storage.SnapshotCodec = Codec{}

// Read decodes the snapshot at path.
func (Codec) Read(path string) (storage.Snapshot, error) {
	fh, err := file.Open(path)
	if err != nil {
		return storage.Snapshot{}, err
	}
	defer fh.Close()

	return Decode(fh, path)
}

// Decode reads a snapshot from r. name is used in errors.
func Decode(r io.Reader, name string) (storage.Snapshot, error) {
	var ws wireSnapshot
	if err := gob.NewDecoder(r).Decode(&ws); err != nil {
		return storage.Snapshot{}, errors.Mark(errors.Wrapf(err, "decode snapshot %s", name), storage.ErrMalformed)
	}

	if ws.Version != Version {
		return storage.Snapshot{}, errors.Mark(
			errors.Newf("snapshot %s: version %d, want %d", name, ws.Version, Version),
			storage.ErrMalformed)
	}

	return storage.Snapshot{Stamp: ws.Stamp, Doc: fromWire(ws.Bundles)}, nil
}

// Write encodes snap to path, replacing any existing file atomically.
func (Codec) Write(snap storage.Snapshot, path string) error {
	return file.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, snap)
	})
}

// Encode writes snap to w.
func Encode(w io.Writer, snap storage.Snapshot) error {
	ws := wireSnapshot{
		Version: Version,
		Stamp:   snap.Stamp,
		Bundles: toWire(snap.Doc),
	}
	if err := gob.NewEncoder(w).Encode(ws); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	return nil
}

func toWire(doc *document.Document) []wireBundle {
	bundles := make([]wireBundle, 0, doc.Len())
	for _, b := range doc.Bundles {
		wb := wireBundle{Zones: make([]wireZone, 0, len(b.Zones))}
		for _, z := range b.Zones {
			wz := wireZone{
				Language:    z.Language,
				Selector:    z.Selector,
				Sentence:    z.Sentence,
				HasSentence: z.HasSentence,
			}
			for _, n := range z.ATree.Nodes {
				wz.ANodes = append(wz.ANodes, wireANode{
					ID: n.ID, Form: n.Form, Lemma: n.Lemma, Tag: n.Tag,
					Ord: n.Ord, Parent: n.Parent,
				})
			}
			for _, n := range z.TTree.Nodes {
				wz.TNodes = append(wz.TNodes, wireTNode{
					ID: n.ID, TLemma: n.TLemma, Formeme: n.Formeme, LexRF: n.LexRF,
					Ord: n.Ord, Parent: n.Parent,
				})
			}
			wb.Zones = append(wb.Zones, wz)
		}
		bundles = append(bundles, wb)
	}
	return bundles
}

func fromWire(bundles []wireBundle) *document.Document {
	doc := document.New()
	for _, wb := range bundles {
		b := doc.NewBundle()
		for _, wz := range wb.Zones {
			z := &document.Zone{
				Language:    wz.Language,
				Selector:    wz.Selector,
				Sentence:    wz.Sentence,
				HasSentence: wz.HasSentence,
			}
			for _, n := range wz.ANodes {
				z.ATree.AddNode(&document.ANode{
					ID: n.ID, Form: n.Form, Lemma: n.Lemma, Tag: n.Tag,
					Ord: n.Ord, Parent: n.Parent,
				})
			}
			for _, n := range wz.TNodes {
				z.TTree.AddNode(&document.TNode{
					ID: n.ID, TLemma: n.TLemma, Formeme: n.Formeme, LexRF: n.LexRF,
					Ord: n.Ord, Parent: n.Parent,
				})
			}
			b.Zones = append(b.Zones, z)
		}
	}
	return doc
}
