// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	history []gcpoint // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes     int // Total number of allocated nodes in the nodetable
	freenodes int // Number of free nodes in the nodetable before collection
	collected int // Number of nodes reclaimed by the collection
}

// *************************************************************************

// Ref increases the reference count on node n and returns n so that calls
// can be easily chained together. A call to Ref can never raise an error;
// we silently ignore invalid nodes.
func (m *Manager) Ref(n Node) Node {
	if m.checkptr(n) != nil {
		return n
	}
	if m.nodes[n.slot()].dead {
		m.reclaim(n)
	}
	m.ref(n)
	return n
}

// Deref decreases the reference count on node n. When the count reaches
// zero, the node becomes dead and releases its children; it is reclaimed
// during the next garbage collection, unless it is used again before.
func (m *Manager) Deref(n Node) {
	if m.checkptr(n) != nil {
		return
	}
	m.deref(n)
}

// GC explicitly starts garbage collection of dead nodes. It also invalidates
// the cache entries mentioning them.
func (m *Manager) GC() {
	m.gbc()
}

// *************************************************************************

func (m *Manager) ref(n Node) {
	nd := &m.nodes[n.slot()]
	if nd.ref < _MAXREFCOUNT {
		nd.ref++
	}
}

// unref decreases the count of n without releasing its children. It is used
// to hand over a result to the caller, which references it immediately.
func (m *Manager) unref(n Node) {
	nd := &m.nodes[n.slot()]
	if nd.ref < _MAXREFCOUNT && nd.ref > 0 {
		nd.ref--
	}
}

// deref is the recursive dereference: when the count of a node reaches zero,
// we dereference its children.
func (m *Manager) deref(n Node) {
	nd := &m.nodes[n.slot()]
	if nd.ref >= _MAXREFCOUNT {
		return
	}
	if nd.ref <= 0 {
		if _DEBUG {
			m.log.Info("dereferencing a node without references", "node", n)
		}
		return
	}
	nd.ref--
	if nd.ref > 0 {
		return
	}
	nd.dead = true
	m.dead++
	if nd.index != _CONSTINDEX {
		then, els := nd.then, nd.els
		m.deref(then)
		m.deref(els)
	}
}

// *************************************************************************

// gbc is the garbage collector called for reclaiming memory, inside a call to
// allocslot, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move. Nodes without references that were never
// released (a defect in the caller) are released first.
func (m *Manager) gbc() {
	m.log.V(1).Info("starting GC", "nodes", len(m.nodes), "free", m.freenum, "dead", m.dead)
	point := gcpoint{
		nodes:     len(m.nodes),
		freenodes: m.freenum,
	}
	for s := 3; s < len(m.nodes); s++ {
		nd := &m.nodes[s]
		if nd.index != _FREEINDEX && nd.ref == 0 && !nd.dead {
			nd.ref = 1
			m.deref(mknode(s))
		}
	}
	// we invalidate the cache entries touching a node that will be collected
	m.cacheflushdead()
	m.freepos = 0
	m.freenum = 0
	// we do a pass through the nodes list to void the dead nodes. After
	// finishing this pass, m.freepos points to the first free position in
	// m.nodes, or it is 0 if we found none.
	for s := len(m.nodes) - 1; s > 2; s-- {
		nd := &m.nodes[s]
		if nd.index != _FREEINDEX && nd.ref > 0 {
			continue
		}
		if nd.index == _CONSTINDEX {
			delete(m.consts, nd.value)
			point.collected++
		} else if nd.index != _FREEINDEX {
			delete(m.subtables[m.perm[nd.index]], pair{nd.then, nd.els})
			point.collected++
		}
		m.nodes[s] = ddnode{
			index: _FREEINDEX,
			then:  mknode(m.freepos),
		}
		m.freepos = s
		m.freenum++
	}
	m.dead = 0
	m.gcstat.history = append(m.gcstat.history, point)
	m.log.V(1).Info("end GC", "free", m.freenum, "collected", point.collected)
	if _LOGLEVEL > 0 && m.log.V(2).Enabled() {
		m.logTable()
	}
}

// *************************************************************************

// holds keeps a reference on the intermediate results of a recursive step
// and releases all of them when the step returns, whatever the exit path. A
// recursive step declares
//
//	h := m.hold()
//	defer h.release()
//
// calls h.keep on each sub-result before its next allocating call, and
// returns h.result(res).
type holds struct {
	m    *Manager
	n    int
	held [8]Node
}

func (m *Manager) hold() holds {
	return holds{m: m}
}

// keep references n until the end of the step and returns n.
func (h *holds) keep(n Node) Node {
	h.m.ref(n)
	h.held[h.n] = n
	h.n++
	return n
}

// replace keeps n in place of the last node kept, which is released. The
// reference on n is taken first, since n may share nodes with the previous
// one.
func (h *holds) replace(n Node) Node {
	h.m.ref(n)
	h.m.deref(h.held[h.n-1])
	h.held[h.n-1] = n
	return n
}

// release drops all the references taken with keep.
func (h *holds) release() {
	for i := h.n - 1; i >= 0; i-- {
		h.m.deref(h.held[i])
	}
	h.n = 0
}

// result releases the intermediate results while protecting res, which is
// handed over to the caller without reference (like a new node).
func (h *holds) result(res Node) Node {
	h.m.ref(res)
	h.release()
	h.m.unref(res)
	return res
}
