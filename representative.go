// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "fmt"

// MinAbstractRepresentative returns a BDD selecting, for every assignment of
// the variables not in cube, one assignment of the variables in cube where f
// reaches the value of MinAbstract(f, cube). When several assignments reach
// the minimum we prefer the else branch, so that cube variables are false
// whenever possible.
func (m *Manager) MinAbstractRepresentative(f, cube Node) (Node, error) {
	return m.abstractRepresentative("minabstractrepresentative", f, cube, ABSmin)
}

// MaxAbstractRepresentative is the same as MinAbstractRepresentative, but for
// the maximum.
func (m *Manager) MaxAbstractRepresentative(f, cube Node) (Node, error) {
	return m.abstractRepresentative("maxabstractrepresentative", f, cube, ABSmax)
}

func (m *Manager) abstractRepresentative(name string, f, cube Node, kind Abstraction) (Node, error) {
	if err := m.checkops(name, f, cube); err != nil {
		return 0, err
	}
	if !m.checkPositiveCube(cube) {
		return 0, fmt.Errorf("%s: node %d is not a positive cube: %w", name, cube, ErrInvalidArgument)
	}
	return m.guard(name, func() (Node, error) {
		return m.representative(f, cube, kind)
	})
}

// representative is the recursive step of the representative extraction for
// kind ABSmin or ABSmax. The result is a BDD over the variables of the cube
// and of f.
func (m *Manager) representative(f, cube Node, kind Abstraction) (Node, error) {
	if m.isconst(cube) {
		return nodeOne, nil
	}

	h := m.hold()
	defer h.release()

	// Abstract a variable that does not appear in f. We force the variable
	// to false to make the representative unique.
	if m.isconst(f) || m.level(f) > m.level(cube) {
		res, err := m.representative(f, m.thenof(cube), kind)
		if err != nil {
			return 0, err
		}
		h.keep(res)
		res, err = m.bddnode(m.index(cube), nodeFalse, res)
		if err != nil {
			return 0, err
		}
		return h.result(res), nil
	}

	op := cacheid_MINREP
	cmp := CMPle
	if kind == ABSmax {
		op = cacheid_MAXREP
		cmp = CMPge
	}
	if res, ok := m.cacheLookup(op, f, cube, 0); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}

	T := m.thenof(f)
	E := m.elseof(f)

	if m.index(f) != m.index(cube) {
		// pass-through case, level(f) < level(cube)
		res1, err := m.representative(E, cube, kind)
		if err != nil {
			return 0, err
		}
		h.keep(res1)
		res2, err := m.representative(T, cube, kind)
		if err != nil {
			return 0, err
		}
		h.keep(res2)
		res, err := m.bddnode(m.index(f), res2, res1)
		if err != nil {
			return 0, err
		}
		m.cacheInsert(op, f, cube, 0, res)
		return h.result(res), nil
	}

	tail := m.thenof(cube)
	res1, err := m.representative(E, tail, kind)
	if err != nil {
		return 0, err
	}
	h.keep(res1)
	res2, err := m.representative(T, tail, kind)
	if err != nil {
		return 0, err
	}
	h.keep(res2)
	left, err := m.abstract(E, tail, kind)
	if err != nil {
		return 0, err
	}
	h.keep(left)
	right, err := m.abstract(T, tail, kind)
	if err != nil {
		return 0, err
	}
	h.keep(right)
	// tmp is true where the else branch is at least as good as the then branch
	tmp, err := m.compare(left, right, cmp)
	if err != nil {
		return 0, err
	}
	h.keep(tmp)
	res1Inf, err := m.ite(tmp, res1, nodeFalse)
	if err != nil {
		return 0, err
	}
	h.keep(res1Inf)
	res2Inf, err := m.ite(tmp.not(), res2, nodeFalse)
	if err != nil {
		return 0, err
	}
	h.keep(res2Inf)
	res, err := m.bddnode(m.index(f), res2Inf, res1Inf)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(op, f, cube, 0, res)
	return h.result(res), nil
}
