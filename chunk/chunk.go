// Package chunk splits a slice into consecutive fixed-size batches on demand.
package chunk

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// Chunker is a single-pass cursor over the n-sized chunks of a slice. Each
// call to Next produces one chunk; once exhausted, a new Chunker is needed.
type Chunker[T any] struct {
	seq []T
	n   int
	pos int
}

// New returns a Chunker over seq with chunks of n elements. The last chunk
// holds the remainder.
func New[T any](seq []T, n int) (*Chunker[T], error) {
	if n <= 0 {
		return nil, errors.Newf("chunk size must be positive, got %d", n)
	}
	return &Chunker[T]{seq: seq, n: n}, nil
}

// HasNext reports whether Next would return a chunk.
func (c *Chunker[T]) HasNext() bool {
	return c.pos < len(c.seq)
}

// Next returns the next chunk. The chunk shares memory with the input but
// its capacity is clipped, so appending to it never overwrites the input.
func (c *Chunker[T]) Next() ([]T, bool) {
	if !c.HasNext() {
		return nil, false
	}

	end := min(c.pos+c.n, len(c.seq))
	out := c.seq[c.pos:end:end]
	c.pos = end
	return out, true
}

// All drains the cursor as an iterator. Ranging over it a second time
// yields nothing.
func (c *Chunker[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			ch, ok := c.Next()
			if !ok || !yield(ch) {
				return
			}
		}
	}
}
