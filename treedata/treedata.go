// Package treedata is a compact, library-neutral tree representation built
// from t-trees. Generators and evaluation code work on TreeData instead of
// the document model.
package treedata

import (
	"sort"
	"strings"

	"github.com/revelaction/treedoc/document"
)

// Node carries the attributes of a t-node that generators consume.
type Node struct {
	TLemma  string `json:"t_lemma"`
	Formeme string `json:"formeme"`
}

// TreeData is a tree stored as parallel slices. Index 0 is the technical
// root, with parent -1. All other nodes are in surface (Ord) order.
type TreeData struct {
	Nodes   []Node `json:"nodes"`
	Parents []int  `json:"parents"`
}

// New returns a tree holding only the technical root.
func New() *TreeData {
	return &TreeData{
		Nodes:   []Node{{}},
		Parents: []int{-1},
	}
}

// FromTTree converts a t-tree. Parent links are remapped to positions in
// the returned tree; nodes whose parent index is broken hang under the root.
func FromTTree(t *document.TTree) *TreeData {
	td := New()
	if t == nil || len(t.Nodes) == 0 {
		return td
	}

	order := make([]int, len(t.Nodes))
	for i := range order {
		order[i] = i
	}
	sortByOrd(order, t)

	pos := make(map[int]int, len(order))
	for i, idx := range order {
		pos[idx] = i + 1
	}

	for _, idx := range order {
		n := t.Nodes[idx]
		td.Nodes = append(td.Nodes, Node{TLemma: n.TLemma, Formeme: n.Formeme})

		parent, ok := pos[n.Parent]
		if !ok {
			parent = 0
		}
		td.Parents = append(td.Parents, parent)
	}
	return td
}

// Len returns the number of nodes, including the technical root.
func (td *TreeData) Len() int {
	return len(td.Nodes)
}

// Children returns the positions of the direct children of node i.
func (td *TreeData) Children(i int) []int {
	var out []int
	for k, p := range td.Parents {
		if p == i {
			out = append(out, k)
		}
	}
	return out
}

// String renders the tree in bracketed form, e.g.
// "(be/v:fin (food/n:subj) (good/adj:compl))".
func (td *TreeData) String() string {
	var sb strings.Builder
	for i, c := range td.Children(0) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		td.write(&sb, c)
	}
	return sb.String()
}

func (td *TreeData) write(sb *strings.Builder, i int) {
	n := td.Nodes[i]
	sb.WriteByte('(')
	sb.WriteString(n.TLemma)
	if n.Formeme != "" {
		sb.WriteByte('/')
		sb.WriteString(n.Formeme)
	}
	for _, c := range td.Children(i) {
		sb.WriteByte(' ')
		td.write(sb, c)
	}
	sb.WriteByte(')')
}

func sortByOrd(order []int, t *document.TTree) {
	sort.SliceStable(order, func(i, j int) bool {
		return t.Nodes[order[i]].Ord < t.Nodes[order[j]].Ord
	})
}
