package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/treedoc/da"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/treedata"
)

// JSONRenderer writes each projection as one JSON array.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type jsonTree struct {
	Nodes   []treedata.Node `json:"nodes"`
	Parents []int           `json:"parents"`
	Text    string          `json:"text"`
}

func (r *JSONRenderer) Sentences(sents []string) error {
	if sents == nil {
		sents = []string{}
	}
	return r.encode(sents)
}

func (r *JSONRenderer) Tokens(sents [][]extract.Token) error {
	if sents == nil {
		sents = [][]extract.Token{}
	}
	return r.encode(sents)
}

func (r *JSONRenderer) Trees(trees []*treedata.TreeData) error {
	out := make([]jsonTree, len(trees))
	for i, td := range trees {
		out[i] = jsonTree{Nodes: td.Nodes, Parents: td.Parents, Text: td.String()}
	}
	return r.encode(out)
}

func (r *JSONRenderer) DialogueActs(acts []da.DialogueAct) error {
	if acts == nil {
		acts = []da.DialogueAct{}
	}
	return r.encode(acts)
}

func (r *JSONRenderer) encode(v any) error {
	return json.NewEncoder(r.W).Encode(v)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
