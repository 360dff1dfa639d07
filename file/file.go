// Package file opens document and dialogue-act files, transparently handling
// gzip and xz compression by filename suffix and non-UTF-8 text encodings.
package file

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const (
	GzipSuffix = ".gz"
	XzSuffix   = ".xz"
)

// CompressionSuffix returns ".gz" or ".xz" if path carries one, else "".
func CompressionSuffix(path string) string {
	switch {
	case strings.HasSuffix(path, GzipSuffix):
		return GzipSuffix
	case strings.HasSuffix(path, XzSuffix):
		return XzSuffix
	}
	return ""
}

// stream closes its layers innermost first.
type stream struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stream) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, decompressing .gz and .xz files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	switch CompressionSuffix(path) {
	case GzipSuffix:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "gzip reader %s", path)
		}
		return &stream{Reader: gzr, closers: []io.Closer{gzr, f}}, nil
	case XzSuffix:
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "xz reader %s", path)
		}
		return &stream{Reader: xzr, closers: []io.Closer{f}}, nil
	}

	return f, nil
}

// OpenText opens path like Open and decodes it from the named encoding
// (e.g. "latin1", "windows-1250") to UTF-8. An empty name or any UTF-8
// alias skips decoding.
func OpenText(path, encoding string) (io.ReadCloser, error) {
	if isUTF8(encoding) {
		return Open(path)
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", encoding)
	}

	rc, err := Open(path)
	if err != nil {
		return nil, err
	}

	return &stream{
		Reader:  transform.NewReader(rc, enc.NewDecoder()),
		closers: []io.Closer{rc},
	}, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "utf8":
		return true
	}
	return false
}

// Create creates or truncates path for writing, compressing .gz and .xz
// files. Close must be called to flush the compressor.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return wrapWriter(f, path)
}

func wrapWriter(f *os.File, path string) (io.WriteCloser, error) {
	switch CompressionSuffix(path) {
	case GzipSuffix:
		gzw := gzip.NewWriter(f)
		return &stream{Writer: gzw, closers: []io.Closer{gzw, f}}, nil
	case XzSuffix:
		xzw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "xz writer %s", path)
		}
		return &stream{Writer: xzw, closers: []io.Closer{xzw, f}}, nil
	}
	return f, nil
}

// WriteAtomic writes path through fn. Data goes to a temporary file in the
// same directory, which is renamed over path only after fn and every close
// succeed; on any failure the temporary file is removed and path is left
// untouched. Compression follows the suffix of path.
func WriteAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp for %s", path)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "chmod %s", tmpName)
	}

	w, err := wrapWriter(tmp, path)
	if err != nil {
		return err
	}

	if err := fn(w); err != nil {
		w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmpName)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "rename %s", path)
	}
	return nil
}
