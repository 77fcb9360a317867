// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Eval returns the value of f for the given assignment of the variables,
// indexed by variable. The value of a BDD is 1 (true) or 0 (false).
func (m *Manager) Eval(f Node, assignment []bool) (float64, error) {
	if err := m.checkptr(f); err != nil {
		return 0, fmt.Errorf("eval: %w", err)
	}
	if len(assignment) < len(m.vars) {
		return 0, fmt.Errorf("eval: assignment of size %d for %d variables: %w", len(assignment), len(m.vars), ErrInvalidArgument)
	}
	for !m.isconst(f) {
		if assignment[m.index(f)] {
			f = m.thenof(f)
		} else {
			f = m.elseof(f)
		}
	}
	return m.value(f), nil
}

// Support returns the sorted list of variables that f depends on.
func (m *Manager) Support(f Node) ([]int, error) {
	if err := m.checkptr(f); err != nil {
		return nil, fmt.Errorf("support: %w", err)
	}
	seen := make([]bool, len(m.vars))
	m.markrec(f.regular())
	for k := range m.nodes {
		if m.nodes[k].mark && m.nodes[k].index != _CONSTINDEX {
			seen[m.nodes[k].index] = true
		}
	}
	m.unmarkall()
	res := []int{}
	for k, v := range seen {
		if v {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res, nil
}

// DagSize returns the number of distinct nodes, constants included, used by
// the diagrams in n. Complemented edges share their nodes with the regular
// ones.
func (m *Manager) DagSize(n ...Node) int {
	res := 0
	for _, v := range n {
		if m.checkptr(v) != nil {
			continue
		}
		res += m.markrec(v.regular())
	}
	m.unmarkall()
	return res
}

// Cofactor returns the restriction of f where variable i has value v. It
// works both for ADDs and BDDs.
func (m *Manager) Cofactor(f Node, i int, v bool) (Node, error) {
	if err := m.checkops("cofactor", f); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(m.vars) {
		return 0, fmt.Errorf("cofactor: unknown variable (%d): %w", i, ErrInvalidArgument)
	}
	key := Node(i << 1)
	if v {
		key |= 1
	}
	return m.guard("cofactor", func() (Node, error) {
		return m.cofactor(f, int32(i), key)
	})
}

// cofactor is the recursive step of Cofactor. The variable and its value are
// packed in key, used in the operation cache.
func (m *Manager) cofactor(f Node, i int32, key Node) (Node, error) {
	if m.isconst(f) || m.level(f) > m.perm[i] {
		return f, nil
	}
	if m.index(f) == i {
		if key.complemented() {
			return m.thenof(f), nil
		}
		return m.elseof(f), nil
	}
	comp := f.complemented()
	f = f.regular()
	if res, ok := m.cacheLookup(cacheid_COFACTOR, f, 0, key); ok {
		return res.notif(comp), nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	t, err := m.cofactor(m.thenof(f), i, key)
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.cofactor(m.elseof(f), i, key)
	if err != nil {
		return 0, err
	}
	h.keep(e)
	res, err := m.bddnode(m.index(f), t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_COFACTOR, f, 0, key, res)
	return h.result(res).notif(comp), nil
}
