// Package extract projects tree documents into sentences, token lists and
// tree data, one entry per bundle, in bundle order.
package extract

import (
	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/treedata"
)

// Placeholder is the surface form of an elided token (e.g. a dropped
// pronoun). Its real form is recovered from the lexical t-node.
const Placeholder = "X"

// Token is a surface word form with its POS tag.
type Token struct {
	Form string `json:"form"`
	Tag  string `json:"tag"`
}

// Sentences returns the sentence of the lang/sel zone of every bundle. An
// unset sentence yields "".
func Sentences(doc *document.Document, lang, sel string) ([]string, error) {
	out := make([]string, 0, doc.Len())
	err := eachZone(doc, lang, sel, func(z *document.Zone) {
		out = append(out, z.Sentence)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TTrees returns the t-tree of the lang/sel zone of every bundle.
func TTrees(doc *document.Document, lang, sel string) ([]*document.TTree, error) {
	out := make([]*document.TTree, 0, doc.Len())
	err := eachZone(doc, lang, sel, func(z *document.Zone) {
		out = append(out, &z.TTree)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Trees returns the t-tree of the lang/sel zone of every bundle converted to
// TreeData.
func Trees(doc *document.Document, lang, sel string) ([]*treedata.TreeData, error) {
	out := make([]*treedata.TreeData, 0, doc.Len())
	err := eachZone(doc, lang, sel, func(z *document.Zone) {
		out = append(out, treedata.FromTTree(&z.TTree))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Tokens returns the a-tree tokens of the lang/sel zone of every bundle, in
// surface order. Placeholder forms are replaced by the t_lemma of the first
// t-node (t-tree pre-order) whose a/lex.rf points at the a-node; with no such
// t-node the placeholder is kept.
func Tokens(doc *document.Document, lang, sel string) ([][]Token, error) {
	out := make([][]Token, 0, doc.Len())
	err := eachZone(doc, lang, sel, func(z *document.Zone) {
		out = append(out, zoneTokens(z))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func zoneTokens(z *document.Zone) []Token {
	anodes := z.ATree.Ordered()
	sent := make([]Token, 0, len(anodes))
	for _, a := range anodes {
		sent = append(sent, Token{Form: resolveForm(z, a), Tag: a.Tag})
	}
	return sent
}

func resolveForm(z *document.Zone, a *document.ANode) string {
	if a.Form != Placeholder {
		return a.Form
	}

	if refs := z.Referencing(a); len(refs) > 0 {
		return refs[0].TLemma
	}
	return a.Form
}

func eachZone(doc *document.Document, lang, sel string, fn func(*document.Zone)) error {
	for i, b := range doc.Bundles {
		z, err := b.Zone(lang, sel)
		if err != nil {
			return errors.Wrapf(err, "bundle %d", i)
		}
		fn(z)
	}
	return nil
}
