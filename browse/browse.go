// Package browse is an interactive prompt over a single tree document.
package browse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/render"
	"github.com/revelaction/treedoc/treedata"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

type command struct {
	name        string
	description string
}

var commands = []command{
	{"sent", "sentence of bundle <i>, all bundles without index"},
	{"tokens", "tokens of bundle <i>"},
	{"tree", "t-tree of bundle <i>"},
	{"zones", "zone labels of bundle <i>"},
	{"zone", "switch to zone <lang> [selector]"},
	{"len", "number of bundles"},
	{"quit", "leave"},
}

type Handler struct {
	Doc      *document.Document
	Language string
	Selector string
	Renderer *render.TextRenderer
	Out      io.Writer
}

func NewHandler(doc *document.Document, lang, sel string, out io.Writer) *Handler {
	return &Handler{
		Doc:      doc,
		Language: lang,
		Selector: sel,
		Renderer: &render.TextRenderer{W: out, HasPrefix: true},
		Out:      out,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: Toggle tags, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🌳 ", h.completer,
			prompt.OptionTitle("treedoc browse"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.Tagged = !h.Renderer.Tagged
					fmt.Fprintf(h.Out, "Tags set to %t\n", h.Renderer.Tagged)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasPrefix = !h.Renderer.HasPrefix
					fmt.Fprintf(h.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		history = append(history, in)
		err := h.Exec(in)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %v\n", err)
		}
	}
}

// Exec runs one prompt line.
func (h *Handler) Exec(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "quit", "exit":
		return ErrQuit
	case "len":
		_, err := fmt.Fprintln(h.Out, h.Doc.Len())
		return err
	case "zone":
		if len(args) == 0 || len(args) > 2 {
			return errors.New("usage: zone <lang> [selector]")
		}
		h.Language, h.Selector = args[0], ""
		if len(args) == 2 {
			h.Selector = args[1]
		}
		_, err := fmt.Fprintf(h.Out, "zone set to %s\n", document.ZoneLabel(h.Language, h.Selector))
		return err
	case "zones":
		_, b, err := h.bundle(args)
		if err != nil {
			return err
		}
		labels := make([]string, len(b.Zones))
		for i, z := range b.Zones {
			labels[i] = z.Label()
		}
		_, err = fmt.Fprintln(h.Out, strings.Join(labels, " "))
		return err
	case "sent":
		if len(args) == 0 {
			sents, err := extract.Sentences(h.Doc, h.Language, h.Selector)
			if err != nil {
				return err
			}
			return h.Renderer.Sentences(sents)
		}
		i, z, err := h.zone(args)
		if err != nil {
			return err
		}
		return h.at(i).Sentences([]string{z.Sentence})
	case "tokens":
		i, z, err := h.zone(args)
		if err != nil {
			return err
		}
		tokens, err := extract.Tokens(single(z), h.Language, h.Selector)
		if err != nil {
			return err
		}
		return h.at(i).Tokens(tokens)
	case "tree":
		i, z, err := h.zone(args)
		if err != nil {
			return err
		}
		return h.at(i).Trees([]*treedata.TreeData{treedata.FromTTree(&z.TTree)})
	}

	return errors.Newf("unknown command %q", name)
}

func (h *Handler) bundle(args []string) (int, *document.Bundle, error) {
	if len(args) != 1 {
		return 0, nil, errors.New("a bundle index is required")
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, errors.Wrapf(err, "bad bundle index %q", args[0])
	}

	if i < 0 || i >= h.Doc.Len() {
		return 0, nil, errors.Newf("bundle index %d out of range [0, %d)", i, h.Doc.Len())
	}

	return i, h.Doc.Bundles[i], nil
}

func (h *Handler) zone(args []string) (int, *document.Zone, error) {
	i, b, err := h.bundle(args)
	if err != nil {
		return 0, nil, err
	}
	z, err := b.Zone(h.Language, h.Selector)
	return i, z, err
}

// at returns a copy of the renderer numbering its first line i.
func (h *Handler) at(i int) *render.TextRenderer {
	r := *h.Renderer
	r.Start = i
	return &r
}

// single wraps one zone in a document so the extract projections apply.
func single(z *document.Zone) *document.Document {
	doc := document.New()
	doc.NewBundle().Zones = []*document.Zone{z}
	return doc
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()

	if befCursor == "" || strings.Contains(befCursor, " ") {
		return s
	}

	for _, c := range commands {
		if strings.HasPrefix(c.name, befCursor) {
			s = append(s, prompt.Suggest{Text: c.name, Description: c.description})
		}
	}

	return s
}
