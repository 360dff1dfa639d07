package document

// Zone is one language/selector annotation layer of a bundle.
type Zone struct {
	Language string
	Selector string

	// Sentence is only meaningful when HasSentence is true.
	Sentence    string
	HasSentence bool

	ATree ATree
	TTree TTree
}

// Label returns the zone name, e.g. "en_gen".
func (z *Zone) Label() string {
	return ZoneLabel(z.Language, z.Selector)
}

// SetSentence sets the sentence unconditionally. Used by codecs when
// building a zone; callers mutating documents use AddText.
func (z *Zone) SetSentence(s string) {
	z.Sentence = s
	z.HasSentence = true
}

// Referencing returns the t-nodes whose a/lex.rf points at a, in t-tree
// pre-order. The first element is the authoritative lexical t-node.
func (z *Zone) Referencing(a *ANode) []*TNode {
	if a == nil || a.ID == "" {
		return nil
	}

	var refs []*TNode
	for _, t := range z.TTree.PreOrder() {
		if t.LexRF == a.ID {
			refs = append(refs, t)
		}
	}
	return refs
}
