// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Orderer computes a new variable order from the current one. An order lists
// the variable indices from the top level to the bottom level. Orderer is
// used for automatic reordering; see option Autodyn.
type Orderer func(order []int) []int

// Order returns the current variable order, from the top level to the bottom
// level.
func (m *Manager) Order() []int {
	res := make([]int, len(m.invperm))
	for k, v := range m.invperm {
		res[k] = int(v)
	}
	return res
}

// Reorder moves the manager to a new variable order, given from the top
// level to the bottom level. Nodes are modified in place, meaning that every
// Node obtained before the call still denotes the same function afterward.
// Dead nodes are collected first and the operation cache is flushed.
func (m *Manager) Reorder(order []int) error {
	if len(order) != len(m.vars) {
		return fmt.Errorf("reorder: order of size %d for %d variables: %w", len(order), len(m.vars), ErrInvalidArgument)
	}
	check := slices.Clone(order)
	slices.Sort(check)
	for k, v := range check {
		if v != k {
			return fmt.Errorf("reorder: %v is not a permutation of the variables: %w", order, ErrInvalidArgument)
		}
	}
	m.gbc()
	m.cachereset()
	m.inreorder = true
	defer func() { m.inreorder = false }()
	m.log.V(1).Info("start reordering", "from", m.Order(), "to", order, "live", m.live())
	// we bubble each variable up to its new level
	for l, v := range order {
		for cur := m.perm[v]; cur > int32(l); cur-- {
			if err := m.swaplevels(cur - 1); err != nil {
				return fmt.Errorf("reorder: %w", err)
			}
		}
	}
	m.reorderings++
	m.log.V(1).Info("end reordering", "live", m.live(), "reorderings", m.reorderings)
	return nil
}

// swaplevels exchanges the variables at level i and i+1. Let x be the upper
// variable and y the lower one. Nodes of x that do not depend on y keep
// their identity and simply move down one level. A node f of x with a child
// depending on y is rewritten in place into
//
//	y ? (x ? f11 : f01) : (x ? f10 : f00)
//
// where fab is the cofactor of f for x = a and y = b. The nodes of y stay in
// their table, which moves up one level.
func (m *Manager) swaplevels(i int32) error {
	// dead nodes are never rewritten, so we collect them first
	if m.dead > 0 {
		m.gbc()
	}
	x := m.invperm[i]
	y := m.invperm[i+1]
	xt := m.subtables[i]
	dependsOnY := func(n Node) bool {
		return !m.isconst(n) && m.index(n) == y
	}

	newx := make(map[pair]int, len(xt))
	moved := []int{}
	for key, s := range xt {
		if dependsOnY(key[0]) || dependsOnY(key[1]) {
			moved = append(moved, s)
			continue
		}
		newx[key] = s
	}
	// each rewritten node needs at most two new nodes
	if err := m.reserve(2 * len(moved)); err != nil {
		return err
	}

	m.perm[x], m.perm[y] = i+1, i
	m.invperm[i], m.invperm[i+1] = y, x
	m.subtables[i], m.subtables[i+1] = m.subtables[i+1], newx

	for _, s := range moved {
		t, e := m.nodes[s].then, m.nodes[s].els
		f11, f10 := t, t
		if dependsOnY(t) {
			f11, f10 = m.thenof(t), m.elseof(t)
		}
		f01, f00 := e, e
		if dependsOnY(e) {
			f01, f00 = m.thenof(e), m.elseof(e)
		}
		g1, err := m.bddnode(x, f11, f01)
		if err != nil {
			return err
		}
		m.ref(g1)
		g0, err := m.bddnode(x, f10, f00)
		if err != nil {
			return err
		}
		m.ref(g0)
		m.nodes[s].index = y
		m.nodes[s].then = g1
		m.nodes[s].els = g0
		m.subtables[i][pair{g1, g0}] = s
		m.deref(t)
		m.deref(e)
	}
	return nil
}

// autoreorder is called during an allocation when the number of live nodes
// reaches the threshold of option Autodyn.
func (m *Manager) autoreorder() error {
	order := m.orderer(m.Order())
	m.log.V(1).Info("automatic reordering", "live", m.live(), "threshold", m.nextdyn)
	if err := m.Reorder(order); err != nil {
		return fmt.Errorf("autodyn: %w", err)
	}
	for m.nextdyn <= m.live() {
		m.nextdyn *= 2
	}
	return nil
}
