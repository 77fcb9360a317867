// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

// Node is a reference to a vertex of a decision diagram in a Manager. The
// least significant bit is the complement tag, used only for BDD edges, and
// the other bits give the slot of the vertex in the node table. The zero
// value is not a valid node; it is returned together with every error.
type Node int

// slot numbers of the nodes that are always present in a manager.
const (
	slotOne  = 1
	slotZero = 2
)

const (
	nodeOne   Node = slotOne << 1
	nodeFalse Node = nodeOne | 1
	nodeZero  Node = slotZero << 1
)

func mknode(slot int) Node {
	return Node(slot << 1)
}

func (n Node) slot() int {
	return int(n >> 1)
}

// complemented reports whether edge n carries the complement tag.
func (n Node) complemented() bool {
	return n&1 == 1
}

func (n Node) regular() Node {
	return n &^ 1
}

func (n Node) not() Node {
	return n ^ 1
}

// notif complements n when c is true.
func (n Node) notif(c bool) Node {
	if c {
		return n ^ 1
	}
	return n
}

// ddnode is an entry in the node table. Free slots have index set to
// _FREEINDEX and use then to chain the free list.
type ddnode struct {
	index int32   // variable index, or _CONSTINDEX for terminals
	ref   int32   // number of owning edges (parents and external holds)
	dead  bool    // true if ref dropped to zero and the children were released
	mark  bool    // used during traversals
	then  Node    // true branch, or next free slot
	els   Node    // false branch
	value float64 // value of a terminal
}

// pair is the key of a node in the unique table of its level.
type pair [2]Node

// ************************************************************

func (m *Manager) ismarked(n Node) bool {
	return m.nodes[n.slot()].mark
}

func (m *Manager) marknode(n Node) {
	m.nodes[n.slot()].mark = true
}

func (m *Manager) unmarknode(n Node) {
	m.nodes[n.slot()].mark = false
}

// markrec marks all the nodes reachable from n and returns the number of
// nodes that were not already marked.
func (m *Manager) markrec(n Node) int {
	if m.ismarked(n) {
		return 0
	}
	m.marknode(n)
	if m.isconst(n) {
		return 1
	}
	return 1 + m.markrec(m.nodes[n.slot()].then) + m.markrec(m.nodes[n.slot()].els)
}

func (m *Manager) unmarkall() {
	for k := range m.nodes {
		m.nodes[k].mark = false
	}
}
