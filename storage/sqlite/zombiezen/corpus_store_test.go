package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/storage"
)

func newStore(t *testing.T) *CorpusStore {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, CreateCorpusTables(pool))
	// idempotent
	require.NoError(t, CreateCorpusTables(pool))
	return NewCorpusStore(pool)
}

func TestCorpusStoreWriteRead(t *testing.T) {
	store := newStore(t)

	sents := [][]extract.Token{
		{{Form: "#PersPron", Tag: "PP"}, {Form: "jím", Tag: "VB"}},
		{},
		{{Form: "ahoj", Tag: "II"}},
	}

	id, err := store.Write("train.yaml", "cs", "gen", sents)
	require.NoError(t, err)

	got, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, sents, got)

	id2, err := store.Write("dev.yaml", "en", "", nil)
	require.NoError(t, err)

	docs, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []storage.CorpusDoc{
		{Id: id, Title: "train.yaml", Language: "cs", Selector: "gen"},
		{Id: id2, Title: "dev.yaml", Language: "en", Selector: ""},
	}, docs)

	empty, err := store.Read(id2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCorpusStoreReadMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Read(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
