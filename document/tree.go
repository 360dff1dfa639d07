package document

import (
	"sort"
)

// NoParent marks a node hanging directly under the technical root.
const NoParent = -1

// ANode is a surface (analytical) node.
type ANode struct {
	ID    string
	Ord   int
	Form  string
	Lemma string
	Tag   string

	// Parent is an index into ATree.Nodes, or NoParent.
	Parent int
}

// ATree is the surface syntax tree of a zone, stored flat. The technical
// root is implicit.
type ATree struct {
	Nodes []*ANode
}

// AddNode appends a node and returns its index.
func (t *ATree) AddNode(n *ANode) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// Ordered returns all nodes in surface order (by Ord, stable).
func (t *ATree) Ordered() []*ANode {
	nodes := make([]*ANode, len(t.Nodes))
	copy(nodes, t.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Ord < nodes[j].Ord
	})
	return nodes
}

// Children returns the indexes of the direct children of node i, or of the
// technical root when i is NoParent.
func (t *ATree) Children(i int) []int {
	return children(len(t.Nodes), i, func(k int) (int, int) {
		return t.Nodes[k].Parent, t.Nodes[k].Ord
	})
}

// TNode is a deep-syntax (tectogrammatical) node.
type TNode struct {
	ID      string
	Ord     int
	TLemma  string
	Formeme string

	// LexRF is the a/lex.rf reference: the ID of the a-node in the same zone
	// that realizes this node on the surface. Empty when there is none.
	LexRF string

	// Parent is an index into TTree.Nodes, or NoParent.
	Parent int
}

// TTree is the deep syntax tree of a zone, stored flat. The technical root
// is implicit.
type TTree struct {
	Nodes []*TNode
}

// AddNode appends a node and returns its index.
func (t *TTree) AddNode(n *TNode) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// Children returns the indexes of the direct children of node i, or of the
// technical root when i is NoParent.
func (t *TTree) Children(i int) []int {
	return children(len(t.Nodes), i, func(k int) (int, int) {
		return t.Nodes[k].Parent, t.Nodes[k].Ord
	})
}

// PreOrder returns all nodes depth-first, parents before children,
// siblings by Ord. Nodes not reachable from the technical root (broken
// parent indexes) are appended at the end in slice order.
func (t *TTree) PreOrder() []*TNode {
	out := make([]*TNode, 0, len(t.Nodes))
	seen := make([]bool, len(t.Nodes))

	var walk func(parent int)
	walk = func(parent int) {
		for _, c := range t.Children(parent) {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, t.Nodes[c])
			walk(c)
		}
	}
	walk(NoParent)

	for i, n := range t.Nodes {
		if !seen[i] {
			out = append(out, n)
		}
	}
	return out
}

// children collects indexes whose parent is p, sorted by ord.
func children(n, p int, at func(int) (parent, ord int)) []int {
	var idx []int
	for k := 0; k < n; k++ {
		if parent, _ := at(k); parent == p {
			idx = append(idx, k)
		}
	}
	sort.SliceStable(idx, func(i, j int) bool {
		_, oi := at(idx[i])
		_, oj := at(idx[j])
		return oi < oj
	})
	return idx
}
