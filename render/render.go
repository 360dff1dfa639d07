package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/da"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/treedata"
)

const (
	Defaultformat = "plain"
)

var (
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	Off       = "\033[0m"
)

func SupportedFormats() []string {
	return []string{"plain", "tagged", "json"}
}

// Renderer writes the projections of a document.
type Renderer interface {
	Sentences(sents []string) error
	Tokens(sents [][]extract.Token) error
	Trees(trees []*treedata.TreeData) error
	DialogueActs(acts []da.DialogueAct) error
}

// New returns the Renderer for format. An empty format selects
// Defaultformat.
func New(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "", "plain":
		return &TextRenderer{W: w}, nil
	case "tagged":
		return &TextRenderer{W: w, Tagged: true}, nil
	case "json":
		return NewJSONRenderer(w), nil
	}

	return nil, errors.Newf("unsupported format %q, want one of %s", format, strings.Join(SupportedFormats(), ", "))
}

type TextRenderer struct {
	W io.Writer

	// HasPrefix numbers each line with its position in the document
	HasPrefix bool

	// Start is the number of the first line
	Start int

	// Tagged writes tokens as form/tag pairs
	Tagged bool

	HasColor bool
}

var _ Renderer = (*TextRenderer)(nil)

func (r *TextRenderer) Sentences(sents []string) error {
	for i, s := range sents {
		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(i), s); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) Tokens(sents [][]extract.Token) error {
	for i, sent := range sents {
		parts := make([]string, len(sent))
		for j, tk := range sent {
			parts[j] = r.token(tk)
		}
		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(i), strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) Trees(trees []*treedata.TreeData) error {
	for i, td := range trees {
		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(i), td); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) DialogueActs(acts []da.DialogueAct) error {
	for i, act := range acts {
		if _, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(i), act); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) token(tk extract.Token) string {
	if !r.Tagged {
		return tk.Form
	}

	if r.HasColor {
		return tk.Form + "/" + Green256 + tk.Tag + Off
	}
	return tk.Form + "/" + tk.Tag
}

func (r *TextRenderer) prefix(i int) string {
	if !r.HasPrefix {
		return ""
	}

	if r.HasColor {
		return fmt.Sprintf("%s%5d%s ✍  ", Grey256, r.Start+i, Off)
	}
	return fmt.Sprintf("%5d ✍  ", r.Start+i)
}

// WriteTokens writes the forms of each sentence space separated, one
// sentence per line, the format ReadTokens reads back.
func WriteTokens(w io.Writer, sents [][]extract.Token) error {
	return (&TextRenderer{W: w}).Tokens(sents)
}
