// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"math"
)

// bddnode returns the canonical node (index, then, els). A complemented then
// branch is moved to the result, so that the then branch stored in the table
// is always regular.
func (m *Manager) bddnode(index int32, then, els Node) (Node, error) {
	if then.complemented() {
		res, err := m.uniqueInter(index, then.not(), els.not())
		if err != nil {
			return 0, err
		}
		return res.not(), nil
	}
	return m.uniqueInter(index, then, els)
}

// uniqueInter returns the unique node (index, then, els), creating it if
// necessary. A new node holds a reference on each of its children but has no
// reference itself; the caller must reference it before its next allocating
// call. The call fails with errReordered if it triggered an automatic
// reordering, and with ErrMemory if the table cannot grow.
func (m *Manager) uniqueInter(index int32, then, els Node) (Node, error) {
	// check whether children are equal, in which case we can skip the node
	if then == els {
		return then, nil
	}
	m.uniqueAccess++
	level := m.perm[index]
	key := pair{then, els}
	if s, ok := m.subtables[level][key]; ok {
		m.uniqueHit++
		if m.nodes[s].dead {
			m.reclaim(mknode(s))
		}
		return mknode(s), nil
	}
	m.uniqueMiss++
	if m.nextdyn > 0 && !m.inreorder && m.live() >= m.nextdyn {
		if err := m.autoreorder(); err != nil {
			return 0, err
		}
		return 0, errReordered
	}
	// If no existing node, we build one. If there is no available spot we try
	// garbage collection and, as a last resort, resizing the node table.
	s, err := m.allocslot()
	if err != nil {
		return 0, err
	}
	m.nodes[s] = ddnode{index: index, then: then, els: els}
	m.subtables[level][key] = s
	m.ref(then)
	m.ref(els)
	m.produced++
	return mknode(s), nil
}

// addconst returns the unique terminal with value v.
func (m *Manager) addconst(v float64) (Node, error) {
	if s, ok := m.consts[v]; ok {
		if m.nodes[s].dead {
			m.reclaim(mknode(s))
		}
		return mknode(s), nil
	}
	s, err := m.allocslot()
	if err != nil {
		return 0, err
	}
	m.nodes[s] = ddnode{index: _CONSTINDEX, value: v}
	m.consts[v] = s
	m.produced++
	return mknode(s), nil
}

// live returns the number of nodes in the tables that are not dead.
func (m *Manager) live() int {
	return len(m.nodes) - m.freenum - m.dead
}

// allocslot returns the index of a free slot in the node table. We never
// collect nodes during a reordering.
func (m *Manager) allocslot() (int, error) {
	if m.freepos == 0 {
		if !m.inreorder {
			m.gbc()
		}
		// We also test if we are under the threshold for resizing.
		if m.freepos == 0 || (m.freenum*100)/len(m.nodes) <= m.minfreenodes {
			if err := m.noderesize(); err != nil && m.freepos == 0 {
				return 0, err
			}
		}
	}
	s := m.freepos
	m.freepos = m.nodes[s].then.slot()
	m.freenum--
	return s, nil
}

// reserve makes sure that at least n slots are free without collecting
// nodes.
func (m *Manager) reserve(n int) error {
	for m.freenum < n {
		if err := m.noderesize(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) noderesize() error {
	oldsize := len(m.nodes)
	nodesize := len(m.nodes)
	if (oldsize >= m.maxnodesize) && (m.maxnodesize > 0) {
		return fmt.Errorf("already at max capacity (%d nodes): %w", m.maxnodesize, ErrMemory)
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if m.maxnodeincrease > 0 && nodesize > (oldsize+m.maxnodeincrease) {
		nodesize = oldsize + m.maxnodeincrease
	}
	if (nodesize > m.maxnodesize) && (m.maxnodesize > 0) {
		nodesize = m.maxnodesize
	}
	if nodesize <= oldsize {
		return fmt.Errorf("unable to grow node table (%d nodes): %w", oldsize, ErrMemory)
	}

	tmp := m.nodes
	m.nodes = make([]ddnode, nodesize)
	copy(m.nodes, tmp)

	for n := oldsize; n < nodesize; n++ {
		m.nodes[n] = ddnode{
			index: _FREEINDEX,
			then:  mknode(n + 1),
		}
	}
	m.nodes[nodesize-1].then = mknode(m.freepos)
	m.freepos = oldsize
	m.freenum += (nodesize - oldsize)

	m.cacheresize(len(m.nodes))
	m.log.V(1).Info("resize", "from", oldsize, "to", nodesize)
	return nil
}

// reclaim brings back a dead node found in a table or in the cache, together
// with the dead nodes below it. The node itself keeps a zero count, so that
// it can be referenced by the caller like a newly created node.
func (m *Manager) reclaim(n Node) {
	nd := &m.nodes[n.slot()]
	nd.dead = false
	m.dead--
	m.reclaimed++
	if nd.index == _CONSTINDEX {
		return
	}
	then, els := nd.then, nd.els
	m.rehold(then)
	m.rehold(els)
}

// rehold gives back to n the reference of a parent that was reclaimed.
func (m *Manager) rehold(n Node) {
	if m.nodes[n.slot()].dead {
		m.reclaim(n)
	}
	m.ref(n)
}
