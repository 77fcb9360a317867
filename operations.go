// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"math"
)

// checkops returns an error if one of the operands is not a valid node.
func (m *Manager) checkops(name string, n ...Node) error {
	for k, v := range n {
		if err := m.checkptr(v); err != nil {
			return fmt.Errorf("%s (operand %d): %w", name, k, err)
		}
	}
	return nil
}

// Apply performs all of the basic binary operations on ADDs, such as sum,
// product, minimum, ... The result has one reference owned by the caller.
// The available operators are:
//
//	OPplus         f + g
//	OPtimes        f * g
//	OPminus        f - g
//	OPdivide       f / g
//	OPmin          minimum of f and g
//	OPmax          maximum of f and g
//	OPor           disjunction of two 0-1 ADDs
//	OPminExcept0   minimum of f and g, where 0 stands for "no value"
//
// An operation with an undefined result on terminals (NaN) fails with
// ErrInvalidArgument.
func (m *Manager) Apply(f, g Node, op AddOp) (Node, error) {
	if op < 0 || int(op) >= len(opnames) {
		return 0, fmt.Errorf("apply: unknown operator (%d): %w", op, ErrInvalidArgument)
	}
	if err := m.checkops("apply "+op.String(), f, g); err != nil {
		return 0, err
	}
	return m.guard(op.String(), func() (Node, error) {
		return m.apply(f, g, op)
	})
}

// applyterm deals with the terminal cases of apply. We return true as second
// result when the result is known.
func (m *Manager) applyterm(f, g Node, op AddOp) (Node, bool, error) {
	fc := m.isconst(f)
	gc := m.isconst(g)
	switch op {
	case OPplus:
		if f == nodeZero {
			return g, true, nil
		}
		if g == nodeZero {
			return f, true, nil
		}
	case OPtimes:
		if f == nodeZero || g == nodeZero {
			return nodeZero, true, nil
		}
		if f == nodeOne {
			return g, true, nil
		}
		if g == nodeOne {
			return f, true, nil
		}
	case OPminus:
		if f == g {
			return nodeZero, true, nil
		}
		if g == nodeZero {
			return f, true, nil
		}
	case OPdivide:
		if f == nodeZero {
			return nodeZero, true, nil
		}
		if g == nodeOne {
			return f, true, nil
		}
	case OPmin, OPmax:
		if f == g {
			return f, true, nil
		}
	case OPor:
		if f == nodeOne || g == nodeOne {
			return nodeOne, true, nil
		}
		if fc {
			return g, true, nil
		}
		if gc {
			return f, true, nil
		}
		if f == g {
			return f, true, nil
		}
	case OPminExcept0:
		if f == nodeZero || f == g {
			return g, true, nil
		}
		if g == nodeZero {
			return f, true, nil
		}
	}
	if fc && gc {
		v := opres(op, m.value(f), m.value(g))
		if math.IsNaN(v) {
			return 0, true, fmt.Errorf("%s(%g, %g) is undefined: %w", op, m.value(f), m.value(g), ErrInvalidArgument)
		}
		res, err := m.addconst(v)
		return res, true, err
	}
	return 0, false, nil
}

func (m *Manager) apply(f, g Node, op AddOp) (Node, error) {
	if res, ok, err := m.applyterm(f, g, op); ok {
		return res, err
	}
	if op.commutative() && f > g {
		f, g = g, f
	}
	if res, ok := m.cacheLookup(cacheid_APPLY, f, g, Node(op)); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	level := min2(m.level(f), m.level(g))
	ft, fe := m.cofactors(f, level)
	gt, ge := m.cofactors(g, level)
	t, err := m.apply(ft, gt, op)
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.apply(fe, ge, op)
	if err != nil {
		return 0, err
	}
	h.keep(e)
	res, err := m.uniqueInter(m.invperm[level], t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_APPLY, f, g, Node(op), res)
	return h.result(res), nil
}

// ************************************************************

// Negate returns the ADD -f.
func (m *Manager) Negate(f Node) (Node, error) {
	if err := m.checkops("negate", f); err != nil {
		return 0, err
	}
	return m.guard("negate", func() (Node, error) {
		return m.negate(f)
	})
}

func (m *Manager) negate(f Node) (Node, error) {
	if m.isconst(f) {
		return m.addconst(-m.value(f))
	}
	if res, ok := m.cacheLookup(cacheid_NEGATE, f, 0, 0); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	t, err := m.negate(m.thenof(f))
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.negate(m.elseof(f))
	if err != nil {
		return 0, err
	}
	h.keep(e)
	res, err := m.uniqueInter(m.index(f), t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_NEGATE, f, 0, 0, res)
	return h.result(res), nil
}

// ************************************************************

// Compare returns the BDD of the assignments where the relation op holds
// between the values of the ADDs f and g. For instance Compare(f, g, CMPle)
// is true exactly when f <= g.
func (m *Manager) Compare(f, g Node, op CmpOp) (Node, error) {
	if op < 0 || int(op) >= len(cmpnames) {
		return 0, fmt.Errorf("compare: unknown operator (%d): %w", op, ErrInvalidArgument)
	}
	if err := m.checkops("compare "+op.String(), f, g); err != nil {
		return 0, err
	}
	return m.guard("compare "+op.String(), func() (Node, error) {
		return m.compare(f, g, op)
	})
}

func (m *Manager) compare(f, g Node, op CmpOp) (Node, error) {
	if f == g {
		return nodeOne, nil
	}
	if m.isconst(f) && m.isconst(g) {
		return m.From(cmpres(op, m.value(f), m.value(g))), nil
	}
	if res, ok := m.cacheLookup(cacheid_COMPARE, f, g, Node(op)); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	level := min2(m.level(f), m.level(g))
	ft, fe := m.cofactors(f, level)
	gt, ge := m.cofactors(g, level)
	t, err := m.compare(ft, gt, op)
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.compare(fe, ge, op)
	if err != nil {
		return 0, err
	}
	h.keep(e)
	res, err := m.bddnode(m.invperm[level], t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_COMPARE, f, g, Node(op), res)
	return h.result(res), nil
}

// ************************************************************

// AddIte, short for if-then-else operator, computes the ADD equal to g when
// f is 1 and to h when f is 0. The condition f must be a 0-1 ADD.
func (m *Manager) AddIte(f, g, h Node) (Node, error) {
	if err := m.checkops("addite", f, g, h); err != nil {
		return 0, err
	}
	return m.guard("addite", func() (Node, error) {
		return m.addite(f, g, h)
	})
}

func (m *Manager) addite(f, g, h Node) (Node, error) {
	switch {
	case f == nodeOne:
		return g, nil
	case f == nodeZero:
		return h, nil
	case m.isconst(f):
		return 0, fmt.Errorf("condition has a leaf with value %g: %w", m.nodes[f.slot()].value, ErrInvalidArgument)
	case g == h:
		return g, nil
	case (g == nodeOne) && (h == nodeZero):
		return f, nil
	}
	if res, ok := m.cacheLookup(cacheid_ADDITE, f, g, h); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	hd := m.hold()
	defer hd.release()
	level := min3(m.level(f), m.level(g), m.level(h))
	ft, fe := m.cofactors(f, level)
	gt, ge := m.cofactors(g, level)
	ht, he := m.cofactors(h, level)
	t, err := m.addite(ft, gt, ht)
	if err != nil {
		return 0, err
	}
	hd.keep(t)
	e, err := m.addite(fe, ge, he)
	if err != nil {
		return 0, err
	}
	hd.keep(e)
	res, err := m.uniqueInter(m.invperm[level], t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_ADDITE, f, g, h, res)
	return hd.result(res), nil
}

// ************************************************************

// Ite, short for if-then-else operator, computes the BDD for the expression
// [(f /\ g) \/ (not f /\ h)] more efficiently than doing the three operations
// separately.
func (m *Manager) Ite(f, g, h Node) (Node, error) {
	if err := m.checkops("ite", f, g, h); err != nil {
		return 0, err
	}
	return m.guard("ite", func() (Node, error) {
		return m.ite(f, g, h)
	})
}

func (m *Manager) ite(f, g, h Node) (Node, error) {
	for _, n := range [3]Node{f, g, h} {
		if m.isconst(n) && n != nodeOne && n != nodeFalse {
			return 0, fmt.Errorf("operand has a leaf with value %g: %w", m.nodes[n.slot()].value, ErrInvalidArgument)
		}
	}
	// we replace occurrences of f in the branches by constants
	switch {
	case g == f:
		g = nodeOne
	case g == f.not():
		g = nodeFalse
	}
	switch {
	case h == f:
		h = nodeFalse
	case h == f.not():
		h = nodeOne
	}
	switch {
	case f == nodeOne:
		return g, nil
	case f == nodeFalse:
		return h, nil
	case g == h:
		return g, nil
	case (g == nodeOne) && (h == nodeFalse):
		return f, nil
	case (g == nodeFalse) && (h == nodeOne):
		return f.not(), nil
	}
	// normalization: f and g are regular, the complement moves to the result
	if f.complemented() {
		f, g, h = f.not(), h, g
	}
	comp := g.complemented()
	if comp {
		g, h = g.not(), h.not()
	}
	if res, ok := m.cacheLookup(cacheid_BDDITE, f, g, h); ok {
		return res.notif(comp), nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	hd := m.hold()
	defer hd.release()
	level := min3(m.level(f), m.level(g), m.level(h))
	ft, fe := m.cofactors(f, level)
	gt, ge := m.cofactors(g, level)
	ht, he := m.cofactors(h, level)
	t, err := m.ite(ft, gt, ht)
	if err != nil {
		return 0, err
	}
	hd.keep(t)
	e, err := m.ite(fe, ge, he)
	if err != nil {
		return 0, err
	}
	hd.keep(e)
	res, err := m.bddnode(m.invperm[level], t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_BDDITE, f, g, h, res)
	return hd.result(res).notif(comp), nil
}

// ************************************************************

// BddToAdd converts a BDD into the 0-1 ADD with the same support.
func (m *Manager) BddToAdd(f Node) (Node, error) {
	if err := m.checkops("bddtoadd", f); err != nil {
		return 0, err
	}
	return m.guard("bddtoadd", func() (Node, error) {
		return m.bddtoadd(f)
	})
}

func (m *Manager) bddtoadd(f Node) (Node, error) {
	switch f {
	case nodeOne:
		return nodeOne, nil
	case nodeFalse:
		return nodeZero, nil
	}
	if m.isconst(f) {
		return 0, fmt.Errorf("operand has a leaf with value %g: %w", m.nodes[f.slot()].value, ErrInvalidArgument)
	}
	if res, ok := m.cacheLookup(cacheid_BDDTOADD, f, 0, 0); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}
	h := m.hold()
	defer h.release()
	t, err := m.bddtoadd(m.thenof(f))
	if err != nil {
		return 0, err
	}
	h.keep(t)
	e, err := m.bddtoadd(m.elseof(f))
	if err != nil {
		return 0, err
	}
	h.keep(e)
	res, err := m.uniqueInter(m.index(f), t, e)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(cacheid_BDDTOADD, f, 0, 0, res)
	return h.result(res), nil
}

// ************************************************************

func min2(p, q int32) int32 {
	if p <= q {
		return p
	}
	return q
}

// min3 returns the smallest value between p, q and r. This is used to compute
// the top level of three operands.
func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r { // p <= q && p <= r
			return p
		}
		return r // r < p <= q
	}
	if q <= r { // q < p && q <= r
		return q
	}
	return r // r < q < p
}
