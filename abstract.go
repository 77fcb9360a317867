// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "fmt"

// Abstraction is the kind of variable elimination performed by Abstract. Each
// kind eliminates the variables of a cube by combining the two cofactors of f
// with a binary operator.
type Abstraction int

const (
	ABSexist      Abstraction = iota // Sum of the cofactors
	ABSuniv                          // Product of the cofactors
	ABSor                            // Disjunction of the cofactors (0-1 ADDs)
	ABSmin                           // Minimum of the cofactors
	ABSmax                           // Maximum of the cofactors
	ABSminExcept0                    // Minimum of the cofactors, ignoring zeros
)

var absnames = [6]string{
	ABSexist:      "exist",
	ABSuniv:       "univ",
	ABSor:         "or",
	ABSmin:        "min",
	ABSmax:        "max",
	ABSminExcept0: "minExcept0",
}

func (kind Abstraction) String() string {
	if kind < 0 || int(kind) >= len(absnames) {
		return "unknown"
	}
	return absnames[kind]
}

// absop is the operator used to combine the cofactors of an abstraction.
var absop = [6]AddOp{
	ABSexist:      OPplus,
	ABSuniv:       OPtimes,
	ABSor:         OPor,
	ABSmin:        OPmin,
	ABSmax:        OPmax,
	ABSminExcept0: OPminExcept0,
}

var abscache = [6]cacheid{
	ABSexist:      cacheid_EXIST,
	ABSuniv:       cacheid_UNIV,
	ABSor:         cacheid_OR,
	ABSmin:        cacheid_MIN,
	ABSmax:        cacheid_MAX,
	ABSminExcept0: cacheid_MINEXCEPT0,
}

// ************************************************************

// ExistAbstract abstracts all the variables in cube from f by summing over
// all possible values taken by the variables.
func (m *Manager) ExistAbstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSexist)
}

// UnivAbstract abstracts all the variables in cube from f by taking the
// product over all possible values taken by the variables.
func (m *Manager) UnivAbstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSuniv)
}

// OrAbstract abstracts all the variables in cube from the 0-1 ADD f by taking
// the disjunction over all possible values taken by the variables.
func (m *Manager) OrAbstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSor)
}

// MinAbstract abstracts all the variables in cube from f by taking the
// minimum over all possible values taken by the variables.
func (m *Manager) MinAbstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSmin)
}

// MaxAbstract abstracts all the variables in cube from f by taking the
// maximum over all possible values taken by the variables.
func (m *Manager) MaxAbstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSmax)
}

// MinExcept0Abstract abstracts all the variables in cube from f by taking the
// minimum over all possible values taken by the variables, where the value 0
// stands for "undefined" and is only kept when all the values are 0.
func (m *Manager) MinExcept0Abstract(f, cube Node) (Node, error) {
	return m.Abstract(f, cube, ABSminExcept0)
}

// Abstract eliminates the variables of cube from f using the abstraction
// kind. The cube must be a conjunction of positive literals, built for
// instance with AddCube, otherwise we return ErrInvalidArgument. The result
// has one reference owned by the caller.
func (m *Manager) Abstract(f, cube Node, kind Abstraction) (Node, error) {
	if kind < 0 || int(kind) >= len(absnames) {
		return 0, fmt.Errorf("abstract: unknown abstraction (%d): %w", kind, ErrInvalidArgument)
	}
	name := kind.String() + "abstract"
	if err := m.checkops(name, f, cube); err != nil {
		return 0, err
	}
	if !m.checkPositiveCube(cube) {
		return 0, fmt.Errorf("%s: node %d is not a positive cube: %w", name, cube, ErrInvalidArgument)
	}
	return m.guard(name, func() (Node, error) {
		return m.abstract(f, cube, kind)
	})
}

// abstract is the recursive step shared by all the abstractions. The cube is
// known to be valid.
func (m *Manager) abstract(f, cube Node, kind Abstraction) (Node, error) {
	switch kind {
	case ABSuniv:
		if f == nodeZero || f == nodeOne || cube == nodeOne {
			return f, nil
		}
	case ABSor:
		if m.isconst(f) || cube == nodeOne {
			return f, nil
		}
	default:
		if f == nodeZero || m.isconst(cube) {
			return f, nil
		}
	}

	h := m.hold()
	defer h.release()

	// Abstract a variable that does not appear in f. For sum and product we
	// have to account for the two values of the variable.
	if m.level(f) > m.level(cube) {
		res, err := m.abstract(f, m.thenof(cube), kind)
		if err != nil {
			return 0, err
		}
		if kind != ABSexist && kind != ABSuniv {
			return res, nil
		}
		h.keep(res)
		res, err = m.apply(res, res, absop[kind])
		if err != nil {
			return 0, err
		}
		return h.result(res), nil
	}

	if res, ok := m.cacheLookup(abscache[kind], f, cube, 0); ok {
		return res, nil
	}
	if err := m.poll(); err != nil {
		return 0, err
	}

	T := m.thenof(f)
	E := m.elseof(f)

	// If the two indices are the same, so are their levels.
	if m.index(f) == m.index(cube) {
		tail := m.thenof(cube)
		res1, err := m.abstract(T, tail, kind)
		if err != nil {
			return 0, err
		}
		if kind == ABSor && res1 == nodeOne {
			m.cacheInsert(abscache[kind], f, cube, 0, res1)
			return res1, nil
		}
		h.keep(res1)
		res2, err := m.abstract(E, tail, kind)
		if err != nil {
			return 0, err
		}
		h.keep(res2)
		res, err := m.apply(res1, res2, absop[kind])
		if err != nil {
			return 0, err
		}
		m.cacheInsert(abscache[kind], f, cube, 0, res)
		return h.result(res), nil
	}

	// otherwise level(f) < level(cube)
	res1, err := m.abstract(T, cube, kind)
	if err != nil {
		return 0, err
	}
	h.keep(res1)
	res2, err := m.abstract(E, cube, kind)
	if err != nil {
		return 0, err
	}
	h.keep(res2)
	res, err := m.uniqueInter(m.index(f), res1, res2)
	if err != nil {
		return 0, err
	}
	m.cacheInsert(abscache[kind], f, cube, 0, res)
	return h.result(res), nil
}
