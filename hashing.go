// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash: no collisions
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for the operation cache is #(f, g, h + op). Since nodes
// are even numbers (or odd for complemented edges) we spread the operation
// tag over the high bits of h.

func (m *Manager) cachehash(op cacheid, f, g, h Node) int {
	return _TRIPLE(int(f), int(g), int(h)^(int(op)<<20), len(m.cache.table))
}

// cacheLookup returns the result stored for (op, f, g, h), if any. A dead
// result is reclaimed before being returned, so that it can be used like a
// new node.
func (m *Manager) cacheLookup(op cacheid, f, g, h Node) (Node, bool) {
	entry := &m.cache.table[m.cachehash(op, f, g, h)]
	if entry.op != op || entry.f != f || entry.g != g || entry.h != h {
		m.opMiss++
		return 0, false
	}
	m.opHit++
	if m.nodes[entry.res.slot()].dead {
		m.reclaim(entry.res)
	}
	return entry.res, true
}

// cacheInsert overwrites the entry for (op, f, g, h) with res.
func (m *Manager) cacheInsert(op cacheid, f, g, h, res Node) {
	m.opInsert++
	m.cache.table[m.cachehash(op, f, g, h)] = cacheData{
		op:  op,
		f:   f,
		g:   g,
		h:   h,
		res: res,
	}
}
