package browse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/storage/yaml"
)

const source = `bundles:
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
      - language: en
        sentence: I eat food
  - zones:
      - language: cs
        selector: gen
        sentence: Ahoj
`

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	doc, err := yaml.Decode(strings.NewReader(source), "browse.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	h := NewHandler(doc, "cs", "gen", &out)
	h.Renderer.HasPrefix = false
	return h, &out
}

func TestExec(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"len", "len", "2\n"},
		{"all sentences", "sent", "Jím jídlo\nAhoj\n"},
		{"one sentence", "sent 1", "Ahoj\n"},
		{"tokens resolve placeholder", "tokens 0", "#PersPron jím jídlo\n"},
		{"tree", "tree 0", "(jíst/v:fin (#PersPron/drop) (jídlo/n:4))\n"},
		{"zones", "zones 0", "cs_gen en\n"},
		{"empty line", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := newHandler(t)
			require.NoError(t, h.Exec(tt.in))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestExecSwitchZone(t *testing.T) {
	h, out := newHandler(t)

	require.NoError(t, h.Exec("zone en"))
	assert.Equal(t, "en", h.Language)
	assert.Equal(t, "", h.Selector)

	out.Reset()
	require.NoError(t, h.Exec("sent 0"))
	assert.Equal(t, "I eat food\n", out.String())

	err := h.Exec("sent 1")
	assert.True(t, errors.Is(err, document.ErrZoneNotFound))
}

func TestExecErrors(t *testing.T) {
	h, _ := newHandler(t)

	assert.True(t, errors.Is(h.Exec("quit"), ErrQuit))
	assert.Error(t, h.Exec("tokens"))
	assert.Error(t, h.Exec("tokens x"))
	assert.Error(t, h.Exec("tree 2"))
	assert.Error(t, h.Exec("tree -1"))
	assert.Error(t, h.Exec("zone"))
	assert.Error(t, h.Exec("parse 0"))
}

func TestCompleter(t *testing.T) {
	h, _ := newHandler(t)

	complete := func(text string) []string {
		buf := prompt.NewBuffer()
		buf.InsertText(text, false, true)
		var names []string
		for _, s := range h.completer(*buf.Document()) {
			names = append(names, s.Text)
		}
		return names
	}

	assert.Equal(t, []string{"tokens", "tree"}, complete("t"))
	assert.Equal(t, []string{"zones", "zone"}, complete("zo"))
	assert.Empty(t, complete(""))
	assert.Empty(t, complete("tree 1"))
}

func TestExecNumbersByBundleIndex(t *testing.T) {
	h, out := newHandler(t)
	h.Renderer.HasPrefix = true

	require.NoError(t, h.Exec("sent 1"))
	assert.Equal(t, "    1 ✍  Ahoj\n", out.String())

	out.Reset()
	require.NoError(t, h.Exec("tokens 1"))
	assert.Equal(t, "    1 ✍  \n", out.String())

	out.Reset()
	require.NoError(t, h.Exec("tree 0"))
	assert.Equal(t, "    0 ✍  (jíst/v:fin (#PersPron/drop) (jídlo/n:4))\n", out.String())

	out.Reset()
	require.NoError(t, h.Exec("sent"))
	assert.Equal(t, "    0 ✍  Jím jídlo\n    1 ✍  Ahoj\n", out.String())
	assert.Zero(t, h.Renderer.Start)
}
