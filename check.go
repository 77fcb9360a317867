// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"

	"go.uber.org/multierr"
)

// Check verifies the consistency of the node table and returns all the
// violations found, or nil. It checks that nodes are canonical (no redundant
// test, unique entry in the table of their level, regular then edge), that
// children are below their parent in the current order, that live nodes only
// point to live nodes with enough references, and that the free list and
// the counters are accurate. Check is slow and meant for testing.
func (m *Manager) Check() error {
	var err error
	parents := make([]int32, len(m.nodes))
	free, dead := 0, 0
	for s := 1; s < len(m.nodes); s++ {
		nd := m.nodes[s]
		switch {
		case nd.index == _FREEINDEX:
			free++
			continue
		case nd.dead:
			dead++
			if nd.ref != 0 {
				err = multierr.Append(err, fmt.Errorf("dead node %d has %d references", s, nd.ref))
			}
		}
		if nd.index == _CONSTINDEX {
			if c, ok := m.consts[nd.value]; !ok || c != s {
				err = multierr.Append(err, fmt.Errorf("constant %g (node %d) not in the table of constants", nd.value, s))
			}
			continue
		}
		if nd.index < 0 || int(nd.index) >= len(m.vars) {
			err = multierr.Append(err, fmt.Errorf("node %d has an invalid variable %d", s, nd.index))
			continue
		}
		level := m.perm[nd.index]
		if c, ok := m.subtables[level][pair{nd.then, nd.els}]; !ok || c != s {
			err = multierr.Append(err, fmt.Errorf("node %d not in the unique table of level %d", s, level))
		}
		if nd.then == nd.els {
			err = multierr.Append(err, fmt.Errorf("node %d has two equal branches", s))
		}
		if nd.then.complemented() {
			err = multierr.Append(err, fmt.Errorf("node %d has a complemented then edge", s))
		}
		for _, c := range [2]Node{nd.then, nd.els} {
			cs := c.slot()
			if cs <= 0 || cs >= len(m.nodes) || m.nodes[cs].index == _FREEINDEX {
				err = multierr.Append(err, fmt.Errorf("node %d has a child %d outside of the table", s, c))
				continue
			}
			if m.level(c) <= level {
				err = multierr.Append(err, fmt.Errorf("node %d (level %d) has a child %d at level %d", s, level, c, m.level(c)))
			}
			if nd.dead {
				continue
			}
			if m.nodes[cs].dead {
				err = multierr.Append(err, fmt.Errorf("live node %d has a dead child %d", s, c))
			}
			parents[cs]++
		}
	}
	for s := 1; s < len(m.nodes); s++ {
		nd := m.nodes[s]
		if nd.index != _FREEINDEX && nd.ref < _MAXREFCOUNT && nd.ref < parents[s] {
			err = multierr.Append(err, fmt.Errorf("node %d has %d references for %d parents", s, nd.ref, parents[s]))
		}
	}
	for level, t := range m.subtables {
		for key, s := range t {
			nd := m.nodes[s]
			if nd.index == _FREEINDEX || m.perm[nd.index] != int32(level) || nd.then != key[0] || nd.els != key[1] {
				err = multierr.Append(err, fmt.Errorf("stale entry for node %d in unique table of level %d", s, level))
			}
		}
	}
	if free != m.freenum {
		err = multierr.Append(err, fmt.Errorf("found %d free nodes, expected %d", free, m.freenum))
	}
	if dead != m.dead {
		err = multierr.Append(err, fmt.Errorf("found %d dead nodes, expected %d", dead, m.dead))
	}
	for k, v := range m.invperm {
		if m.perm[v] != int32(k) {
			err = multierr.Append(err, fmt.Errorf("variable %d at level %d has level %d", v, k, m.perm[v]))
		}
	}
	return err
}
