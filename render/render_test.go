package render

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/revelaction/treedoc/da"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/file"
)

var tokens = [][]extract.Token{
	{{Form: "the", Tag: "DT"}, {Form: "food", Tag: "NN"}},
	{},
	{{Form: "X", Tag: "NNP"}},
}

func TestTextRendererTokens(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTokens(&buf, tokens); err != nil {
		t.Fatal(err)
	}

	want := "the food\n\nX\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestTextRendererTagged(t *testing.T) {
	var buf bytes.Buffer
	r, err := New("tagged", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Tokens(tokens[:1]); err != nil {
		t.Fatal(err)
	}

	want := "the/DT food/NN\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestTextRendererPrefix(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf, HasPrefix: true}
	if err := r.Sentences([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	want := "    0 ✍  a\n    1 ✍  b\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestTextRendererDialogueActs(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf}
	acts := []da.DialogueAct{{{Type: "inform", Slot: "food", Value: "chinese"}, {Type: "hello"}}}
	if err := r.DialogueActs(acts); err != nil {
		t.Fatal(err)
	}

	want := "inform(food=\"chinese\")&hello()\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	for _, f := range SupportedFormats() {
		if _, err := New(f, &bytes.Buffer{}); err != nil {
			t.Errorf("format %q: %v", f, err)
		}
	}

	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWriteTokensReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.txt.gz")
	fh, err := file.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteTokens(fh, tokens); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := extract.ReadTokens(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(tokens) {
		t.Fatalf("expected %d sentences, got %d", len(tokens), len(got))
	}
	for i := range tokens {
		if len(got[i]) != len(tokens[i]) {
			t.Fatalf("sentence %d: expected %d tokens, got %d", i, len(tokens[i]), len(got[i]))
		}
		for j := range tokens[i] {
			if got[i][j].Form != tokens[i][j].Form {
				t.Errorf("sentence %d token %d: expected %q, got %q", i, j, tokens[i][j].Form, got[i][j].Form)
			}
		}
	}
}

func TestTextRendererStart(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{W: &buf, HasPrefix: true, Start: 7}
	if err := r.Sentences([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	want := "    7 ✍  a\n    8 ✍  b\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
