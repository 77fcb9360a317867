// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"math"
)

// Permutation is the type of association lists used to substitute variables
// in a decision diagram. Permutations are specific to the manager that
// created them.
type Permutation struct {
	id    int     // unique identifier used for caching intermediate results
	image []int32 // map the index of old variables to the index of new variables
}

func (r *Permutation) String() string {
	res := "permutation["
	first := true
	for k, v := range r.image {
		if k != int(v) {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

// NewPermutation returns a Permutation for substituting variable oldvars[k]
// with newvars[k]. We return an error if the two slices do not have the same
// length or if we find the same index twice in oldvars. All values must be in
// [0..Varnum). The substitution does not need to be one-to-one; for
// instance, after abstracting the variables in newvars, we can rename the
// variables of oldvars with them.
func (m *Manager) NewPermutation(oldvars []int, newvars []int) (*Permutation, error) {
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("newpermutation: unmatched length of slices: %w", ErrInvalidArgument)
	}
	if m.permid == (math.MaxInt32 >> 2) {
		return nil, fmt.Errorf("newpermutation: too many permutations created: %w", ErrMemory)
	}
	m.permid++
	res := &Permutation{id: m.permid}
	varnum := len(m.vars)
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("newpermutation: invalid variable in oldvars (%d): %w", v, ErrInvalidArgument)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("newpermutation: invalid variable in newvars (%d): %w", newvars[k], ErrInvalidArgument)
		}
		if support[v] {
			return nil, fmt.Errorf("newpermutation: duplicate variable (%d) in oldvars: %w", v, ErrInvalidArgument)
		}
		support[v] = true
		res.image[v] = int32(newvars[k])
	}
	return res, nil
}

// ************************************************************

// Permute computes the ADD obtained from f by substituting each variable
// with its image in p.
func (m *Manager) Permute(f Node, p *Permutation) (Node, error) {
	return m.substitute("permute", f, p, false)
}

// BddPermute computes the BDD obtained from f by substituting each variable
// with its image in p.
func (m *Manager) BddPermute(f Node, p *Permutation) (Node, error) {
	return m.substitute("bddpermute", f, p, true)
}

// SwapVariables exchanges the variables x[k] and y[k] in the ADD f.
func (m *Manager) SwapVariables(f Node, x, y []int) (Node, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("swapvariables: unmatched length of slices: %w", ErrInvalidArgument)
	}
	oldvars := append(append([]int{}, x...), y...)
	newvars := append(append([]int{}, y...), x...)
	p, err := m.NewPermutation(oldvars, newvars)
	if err != nil {
		return 0, fmt.Errorf("swapvariables: %w", err)
	}
	return m.substitute("swapvariables", f, p, false)
}

func (m *Manager) substitute(name string, f Node, p *Permutation, bdd bool) (Node, error) {
	if err := m.checkops(name, f); err != nil {
		return 0, err
	}
	if p == nil || len(p.image) != len(m.vars) {
		return 0, fmt.Errorf("%s: permutation from another manager: %w", name, ErrInvalidArgument)
	}
	return m.guard(name, func() (Node, error) {
		return m.permute(f, p, bdd)
	})
}

// permute rebuilds f from the bottom, using if-then-else with the projection
// of the new variable, since the image of a variable may be anywhere in the
// order.
func (m *Manager) permute(f Node, p *Permutation, bdd bool) (Node, error) {
	if m.isconst(f) {
		return f, nil
	}
	op := cacheid_PERMUTE
	if bdd {
		op = cacheid_BDDPERMUTE
	}
	// negation commutes with substitution
	comp := f.complemented()
	f = f.regular()
	if res, ok := m.cacheLookup(op, f, 0, Node(p.id)); ok {
		return res.notif(comp), nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	t, err := m.permute(m.thenof(f), p, bdd)
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.permute(m.elseof(f), p, bdd)
	if err != nil {
		return 0, err
	}
	h.keep(e)
	var res Node
	v := p.image[m.index(f)]
	if bdd {
		res, err = m.ite(m.bddvars[v], t, e)
	} else {
		res, err = m.addite(m.vars[v], t, e)
	}
	if err != nil {
		return 0, err
	}
	m.cacheInsert(op, f, 0, Node(p.id), res)
	return h.result(res).notif(comp), nil
}
