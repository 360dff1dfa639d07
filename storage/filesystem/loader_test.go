package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/storage"
	"github.com/revelaction/treedoc/storage/snapshot"
	"github.com/revelaction/treedoc/storage/yaml"
)

const sourceV1 = `bundles:
  - zones:
      - language: cs
        selector: gen
        sentence: Jím jídlo
        atree:
          - id: a2
            ord: 2
            form: jím
            tag: VB
            children:
              - {id: a1, ord: 1, form: X, tag: PP}
              - {id: a3, ord: 3, form: jídlo, tag: NN}
        ttree:
          - id: t1
            ord: 2
            t_lemma: jíst
            formeme: "v:fin"
            a/lex.rf: a2
            children:
              - {id: t2, ord: 1, t_lemma: "#PersPron", formeme: drop, a/lex.rf: a1}
              - {id: t3, ord: 3, t_lemma: jídlo, formeme: "n:4", a/lex.rf: a3}
`

const sourceV2 = `bundles:
  - zones:
      - language: cs
        selector: gen
        sentence: Ahoj
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func bumpModTime(t *testing.T, path string) {
	t.Helper()
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
}

func observedLoader(policy storage.Policy) (*Loader, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoader(policy, zap.New(core).Sugar()), logs
}

func sentences(t *testing.T, l *Loader, path string) []string {
	t.Helper()
	doc, err := l.Load(path)
	require.NoError(t, err)
	sents, err := extract.Sentences(doc, "cs", "gen")
	require.NoError(t, err)
	return sents
}

func TestLoadSourceWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "train.yaml", sourceV1)
	l, _ := observedLoader(nil)

	fromSource, err := l.Load(src)
	require.NoError(t, err)

	snapPath := filepath.Join(dir, "train.snap")
	require.FileExists(t, snapPath)

	fromSnap, err := l.Load(snapPath)
	require.NoError(t, err)
	assert.Equal(t, fromSource, fromSnap)

	toks, err := extract.Tokens(fromSnap, "cs", "gen")
	require.NoError(t, err)
	assert.Equal(t, "#PersPron", toks[0][0].Form)
}

func TestLoadCompressedSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "train.yaml.gz")
	l := NewLoader(nil, nil)

	doc, err := l.Load(writeSource(t, dir, "plain.yaml", sourceV1))
	require.NoError(t, err)
	require.NoError(t, l.Codec.Write(doc, src))

	back, err := l.Load(src)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
	assert.FileExists(t, filepath.Join(dir, "train.snap.gz"))
}

func TestStaleSnapshotIsRebuilt(t *testing.T) {
	for _, p := range []storage.Policy{snapshot.HashPolicy{}, snapshot.ModTimePolicy{}} {
		t.Run(fmt.Sprintf("%T", p), func(t *testing.T) {
			dir := t.TempDir()
			src := writeSource(t, dir, "train.yaml", sourceV1)
			snapPath := filepath.Join(dir, "train.snap")
			l, logs := observedLoader(p)

			_, err := l.Load(src)
			require.NoError(t, err)

			require.NoError(t, os.WriteFile(src, []byte(sourceV2), 0o644))
			bumpModTime(t, src)

			assert.Equal(t, []string{"Ahoj"}, sentences(t, l, snapPath))
			assert.Equal(t, 1, logs.FilterMessage("stale snapshot, reparsing source").Len())

			// the rebuilt snapshot is current again
			assert.Equal(t, []string{"Ahoj"}, sentences(t, l, snapPath))
			assert.Equal(t, 1, logs.FilterMessage("stale snapshot, reparsing source").Len())
		})
	}
}

func TestTrustPolicyServesStaleSnapshot(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "train.yaml", sourceV1)
	l, _ := observedLoader(snapshot.TrustPolicy{})

	_, err := l.Load(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, []byte(sourceV2), 0o644))

	assert.Equal(t, []string{"Jím jídlo"}, sentences(t, l, filepath.Join(dir, "train.snap")))
	assert.Equal(t, []string{"Ahoj"}, sentences(t, l, src), "source loads always reparse")
}

func TestLoadCached(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "train.yaml", sourceV1)
	l, logs := observedLoader(nil)

	_, err := l.LoadCached(src)
	require.NoError(t, err)
	assert.Equal(t, 0, logs.FilterMessage("snapshot hit").Len())

	_, err = l.LoadCached(src)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("snapshot hit").Len())
}

func TestLoadMissingSource(t *testing.T) {
	l := NewLoader(nil, nil)
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "train.snap", "garbage")

	_, err := NewLoader(nil, nil).Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrMalformed))
}

type badNaming struct{ snapshot.ExtNaming }

func (n badNaming) SnapshotPath(source string) string {
	return filepath.Join(filepath.Dir(source), "no-such-dir", "x.snap")
}

func TestSnapshotWriteFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "train.yaml", sourceV1)
	l, logs := observedLoader(nil)
	l.Naming = badNaming{snapshot.DefaultNaming()}

	doc, err := l.Load(src)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, 1, logs.FilterMessage("could not write snapshot").Len())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestStampSourceIsRelativeToSnapshot(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	writeSource(t, dirA, "train.yaml", sourceV1)
	snapPath := filepath.Join(dirA, "train.snap")
	l, logs := observedLoader(snapshot.HashPolicy{})

	chdir(t, dirA)
	assert.Equal(t, []string{"Jím jídlo"}, sentences(t, l, "train.yaml"))

	snap, err := snapshot.Codec{}.Read(snapPath)
	require.NoError(t, err)
	assert.Equal(t, "train.yaml", snap.Stamp.Source)

	require.NoError(t, os.WriteFile(filepath.Join(dirA, "train.yaml"), []byte(sourceV2), 0o644))

	chdir(t, dirB)
	assert.Equal(t, []string{"Ahoj"}, sentences(t, l, snapPath))
	assert.Equal(t, 1, logs.FilterMessage("stale snapshot, reparsing source").Len())

	// rebuilt from dirB, the stamp still points next to the snapshot
	snap, err = snapshot.Codec{}.Read(snapPath)
	require.NoError(t, err)
	assert.Equal(t, "train.yaml", snap.Stamp.Source)
	assert.Equal(t, []string{"Ahoj"}, sentences(t, l, snapPath))
	assert.Equal(t, 1, logs.FilterMessage("snapshot hit").Len())
}

func TestMovedSnapshotPairStaysValidated(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	src := writeSource(t, dirA, "train.yaml", sourceV1)
	l := NewLoader(snapshot.HashPolicy{}, nil)

	_, err := l.Load(src)
	require.NoError(t, err)

	for _, name := range []string{"train.yaml", "train.snap"} {
		require.NoError(t, os.Rename(filepath.Join(dirA, name), filepath.Join(dirB, name)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "train.yaml"), []byte(sourceV2), 0o644))

	assert.Equal(t, []string{"Ahoj"}, sentences(t, l, filepath.Join(dirB, "train.snap")))
}

// editingCodec replaces the source file right after parsing it.
type editingCodec struct {
	storage.TreeCodec
	content string
}

func (c editingCodec) Read(path string) (*document.Document, error) {
	doc, err := c.TreeCodec.Read(path)
	if err != nil {
		return nil, err
	}
	return doc, os.WriteFile(path, []byte(c.content), 0o644)
}

func TestSourceEditedDuringParseLeavesStaleSnapshot(t *testing.T) {
	for _, p := range []storage.Policy{snapshot.HashPolicy{}, snapshot.ModTimePolicy{}} {
		t.Run(fmt.Sprintf("%T", p), func(t *testing.T) {
			dir := t.TempDir()
			src := writeSource(t, dir, "train.yaml", sourceV1)
			l, logs := observedLoader(p)
			l.Codec = editingCodec{TreeCodec: yaml.Codec{}, content: sourceV2}

			assert.Equal(t, []string{"Jím jídlo"}, sentences(t, l, src))
			bumpModTime(t, src)

			l.Codec = yaml.Codec{}
			assert.Equal(t, []string{"Ahoj"}, sentences(t, l, filepath.Join(dir, "train.snap")))
			assert.Equal(t, 1, logs.FilterMessage("stale snapshot, reparsing source").Len())
		})
	}
}
