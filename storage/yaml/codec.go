// Package yaml reads and writes tree documents as YAML. Trees are nested:
// every node lists its children.
//
//	bundles:
//	  - zones:
//	      - language: cs
//	        selector: gen
//	        sentence: Jím jídlo
//	        atree:
//	          - {id: a2, ord: 2, form: jím, tag: VB, children: [...]}
//	        ttree:
//	          - {id: t1, ord: 2, t_lemma: jíst, formeme: "v:fin", a/lex.rf: a2}
package yaml

import (
	"io"

	"github.com/cockroachdb/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/file"
	"github.com/revelaction/treedoc/storage"
)

type yamlDoc struct {
	Bundles []yamlBundle `yaml:"bundles"`
}

type yamlBundle struct {
	Zones []yamlZone `yaml:"zones"`
}

type yamlZone struct {
	Language string      `yaml:"language"`
	Selector string      `yaml:"selector,omitempty"`
	Sentence *string     `yaml:"sentence,omitempty"`
	ATree    []yamlANode `yaml:"atree,omitempty"`
	TTree    []yamlTNode `yaml:"ttree,omitempty"`
}

type yamlANode struct {
	ID       string      `yaml:"id,omitempty"`
	Ord      int         `yaml:"ord"`
	Form     string      `yaml:"form"`
	Lemma    string      `yaml:"lemma,omitempty"`
	Tag      string      `yaml:"tag,omitempty"`
	Children []yamlANode `yaml:"children,omitempty"`
}

type yamlTNode struct {
	ID       string      `yaml:"id,omitempty"`
	Ord      int         `yaml:"ord"`
	TLemma   string      `yaml:"t_lemma"`
	Formeme  string      `yaml:"formeme,omitempty"`
	LexRF    string      `yaml:"a/lex.rf,omitempty"`
	Children []yamlTNode `yaml:"children,omitempty"`
}

// Codec is the YAML storage.TreeCodec. Paths ending in .gz or .xz are
// compressed.
type Codec struct{}

var _ storage.TreeCodec = Codec{}

// Read parses the YAML document at path.
func (Codec) Read(path string) (*document.Document, error) {
	fh, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return Decode(fh, path)
}

// Decode parses a YAML document from r. name is used in errors.
func Decode(r io.Reader, name string) (*document.Document, error) {
	var yd yamlDoc
	if err := yamlv3.NewDecoder(r).Decode(&yd); err != nil {
		if errors.Is(err, io.EOF) {
			return document.New(), nil
		}
		return nil, errors.Mark(errors.Wrapf(err, "decode %s", name), storage.ErrMalformed)
	}

	doc := document.New()
	for _, yb := range yd.Bundles {
		b := doc.NewBundle()
		for _, yz := range yb.Zones {
			z := b.GetOrCreateZone(yz.Language, yz.Selector)
			if yz.Sentence != nil {
				z.SetSentence(*yz.Sentence)
			}
			addANodes(&z.ATree, yz.ATree, document.NoParent)
			addTNodes(&z.TTree, yz.TTree, document.NoParent)
		}
	}
	return doc, nil
}

func addANodes(t *document.ATree, nodes []yamlANode, parent int) {
	for _, yn := range nodes {
		idx := t.AddNode(&document.ANode{
			ID:     yn.ID,
			Ord:    yn.Ord,
			Form:   yn.Form,
			Lemma:  yn.Lemma,
			Tag:    yn.Tag,
			Parent: parent,
		})
		addANodes(t, yn.Children, idx)
	}
}

func addTNodes(t *document.TTree, nodes []yamlTNode, parent int) {
	for _, yn := range nodes {
		idx := t.AddNode(&document.TNode{
			ID:      yn.ID,
			Ord:     yn.Ord,
			TLemma:  yn.TLemma,
			Formeme: yn.Formeme,
			LexRF:   yn.LexRF,
			Parent:  parent,
		})
		addTNodes(t, yn.Children, idx)
	}
}

// Write serializes doc as YAML to path. The file is replaced atomically.
func (Codec) Write(doc *document.Document, path string) error {
	return file.WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, doc)
	})
}

// Encode writes doc as YAML to w.
func Encode(w io.Writer, doc *document.Document) error {
	yd := yamlDoc{Bundles: make([]yamlBundle, 0, doc.Len())}
	for _, b := range doc.Bundles {
		yb := yamlBundle{Zones: make([]yamlZone, 0, len(b.Zones))}
		for _, z := range b.Zones {
			yz := yamlZone{
				Language: z.Language,
				Selector: z.Selector,
				ATree:    aChildren(&z.ATree, document.NoParent),
				TTree:    tChildren(&z.TTree, document.NoParent),
			}
			if z.HasSentence {
				s := z.Sentence
				yz.Sentence = &s
			}
			yb.Zones = append(yb.Zones, yz)
		}
		yd.Bundles = append(yd.Bundles, yb)
	}

	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yd); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

func aChildren(t *document.ATree, parent int) []yamlANode {
	var out []yamlANode
	for _, i := range t.Children(parent) {
		n := t.Nodes[i]
		out = append(out, yamlANode{
			ID:       n.ID,
			Ord:      n.Ord,
			Form:     n.Form,
			Lemma:    n.Lemma,
			Tag:      n.Tag,
			Children: aChildren(t, i),
		})
	}
	return out
}

func tChildren(t *document.TTree, parent int) []yamlTNode {
	var out []yamlTNode
	for _, i := range t.Children(parent) {
		n := t.Nodes[i]
		out = append(out, yamlTNode{
			ID:       n.ID,
			Ord:      n.Ord,
			TLemma:   n.TLemma,
			Formeme:  n.Formeme,
			LexRF:    n.LexRF,
			Children: tChildren(t, i),
		})
	}
	return out
}
