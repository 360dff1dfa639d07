package filesystem

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/storage"
)

// DocEntry is one document file of a DocStore.
type DocEntry struct {
	Id   int
	Path string

	// Doc is nil until loaded.
	Doc *document.Document
}

// DocStore is a directory of tree documents, loaded through a Loader.
type DocStore struct {
	docDir string
	loader *Loader

	docs []DocEntry
}

// NewDocStore lists the source documents of docDir, sorted by name. A
// source whose snapshot is also present is listed once.
func NewDocStore(docDir string, loader *Loader) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read doc dir %s", docDir)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || !loader.Naming.IsSource(f.Name()) {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	docs := make([]DocEntry, 0, len(names))
	for i, name := range names {
		docs = append(docs, DocEntry{Id: i, Path: filepath.Join(docDir, name)})
	}

	return &DocStore{docDir: docDir, loader: loader, docs: docs}, nil
}

// NewDocStoreFromPaths builds a store over explicit paths, in the given
// order. Paths are not checked until loaded.
func NewDocStoreFromPaths(paths []string, loader *Loader) *DocStore {
	docs := make([]DocEntry, 0, len(paths))
	for i, p := range paths {
		docs = append(docs, DocEntry{Id: i, Path: p})
	}
	return &DocStore{loader: loader, docs: docs}
}

// List returns the entries of the store.
func (h *DocStore) List() []DocEntry {
	return h.docs
}

// Read returns the document with the given id, loading it if needed.
func (h *DocStore) Read(id int) (*document.Document, error) {
	if id < 0 || id >= len(h.docs) {
		return nil, errors.Wrapf(storage.ErrNotFound, "doc id %d out of range", id)
	}

	entry := &h.docs[id]
	if entry.Doc != nil {
		return entry.Doc, nil
	}

	doc, err := h.loader.LoadCached(entry.Path)
	if err != nil {
		return nil, err
	}
	entry.Doc = doc
	return doc, nil
}

// LoadAll loads every document. Missing files are skipped and returned in
// missing; any other failure stops the load. cb, if set, is called before
// each file.
func (h *DocStore) LoadAll(cb func(total int, name string)) (missing []string, err error) {
	total := len(h.docs)
	for i := range h.docs {
		entry := &h.docs[i]
		if cb != nil {
			cb(total, entry.Path)
		}

		if _, err := h.Read(entry.Id); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				h.loader.Logger.Warnw("skipping missing document", "path", entry.Path)
				missing = append(missing, entry.Path)
				continue
			}
			return missing, err
		}
	}

	return missing, nil
}
