// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// IsCube reports whether n is an ADD cube, that is a conjunction of positive
// literals where every node on the then path has the constant 0 as else
// branch. The constant 1 is the empty cube.
func (m *Manager) IsCube(n Node) bool {
	if m.checkptr(n) != nil {
		return false
	}
	return m.checkPositiveCube(n)
}

// checkPositiveCube does not check that variables are not repeated, which
// cannot happen with nodes built through the unique tables.
func (m *Manager) checkPositiveCube(cube Node) bool {
	if cube.complemented() {
		return false
	}
	if cube == nodeOne {
		return true
	}
	if m.isconst(cube) {
		return false
	}
	if m.elseof(cube) == nodeZero {
		return m.checkPositiveCube(m.thenof(cube))
	}
	return false
}

// CubeVars returns the variables of an ADD cube, from the top level to the
// bottom level. We return an error if n is not a cube.
func (m *Manager) CubeVars(n Node) ([]int, error) {
	if err := m.checkptr(n); err != nil {
		return nil, fmt.Errorf("cubevars: %w", err)
	}
	if !m.checkPositiveCube(n) {
		return nil, fmt.Errorf("cubevars: node %d is not a positive cube: %w", n, ErrInvalidArgument)
	}
	res := []int{}
	for ; n != nodeOne; n = m.thenof(n) {
		res = append(res, int(m.index(n)))
	}
	return res, nil
}

// AddCube returns the ADD cube of the variables in varset, that is the 0-1
// ADD equal to 1 exactly when all the variables are true. Duplicates are
// ignored and the empty set gives the constant 1.
func (m *Manager) AddCube(varset []int) (Node, error) {
	vars, err := m.sortvars("addcube", varset)
	if err != nil {
		return 0, err
	}
	return m.guard("addcube", func() (Node, error) {
		return m.cube(vars, nodeOne, nodeZero)
	})
}

// BddCube returns the BDD of the conjunction of the variables in varset.
func (m *Manager) BddCube(varset []int) (Node, error) {
	vars, err := m.sortvars("bddcube", varset)
	if err != nil {
		return 0, err
	}
	return m.guard("bddcube", func() (Node, error) {
		return m.cube(vars, nodeOne, nodeFalse)
	})
}

// sortvars checks the variables in varset and returns them without
// duplicates.
func (m *Manager) sortvars(name string, varset []int) ([]int, error) {
	vars := slices.Clone(varset)
	for _, v := range vars {
		if v < 0 || v >= len(m.vars) {
			return nil, fmt.Errorf("%s: unknown variable (%d): %w", name, v, ErrInvalidArgument)
		}
	}
	slices.Sort(vars)
	return slices.Compact(vars), nil
}

// cube builds the conjunction bottom-up, following the current order. This
// is done inside the guard since levels may change between two attempts.
func (m *Manager) cube(vars []int, one, zero Node) (Node, error) {
	vars = slices.Clone(vars)
	slices.SortFunc(vars, func(a, b int) bool {
		return m.perm[a] > m.perm[b]
	})
	h := m.hold()
	defer h.release()
	res := h.keep(one)
	for _, v := range vars {
		n, err := m.bddnode(int32(v), res, zero)
		if err != nil {
			return 0, err
		}
		res = h.replace(n)
	}
	return h.result(res), nil
}
