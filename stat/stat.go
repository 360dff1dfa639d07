package stat

import (
	"github.com/revelaction/treedoc/extract"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// NumPlaceholders counts tokens still carrying the placeholder form
	// after extraction, i.e. with no referencing lexical t-node.
	NumPlaceholders int
	TagDis          map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		TagDis:               map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of one document to the stats. It can be
// called once per document of a corpus.
func (h *Handler) Aggregate(sents [][]extract.Token) {
	h.stats.NumSentences += len(sents)
	//
	for _, sentence := range sents {
		h.stats.NumTokens += len(sentence)
		h.stats.TokensPerSentenceDis[len(sentence)]++
		for _, tk := range sentence {
			if tk.Form == extract.Placeholder {
				h.stats.NumPlaceholders++
			}
			if tk.Tag != "" {
				h.stats.TagDis[tk.Tag]++
			}
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
