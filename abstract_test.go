// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

var allAbstractions = []Abstraction{ABSexist, ABSuniv, ABSor, ABSmin, ABSmax, ABSminExcept0}

// brute computes the abstraction of f over the variables in cube by
// enumerating all the assignments; the result is indexed like in fromTable.
func brute(t testing.TB, m *Manager, f Node, cube []int, kind Abstraction) []float64 {
	varnum := m.Varnum()
	res := make([]float64, 1<<varnum)
	incube := 0
	for _, v := range cube {
		incube |= 1 << v
	}
	for k := range res {
		if k&incube != 0 {
			continue
		}
		first := true
		acc := 0.0
		// enumerate all the subsets of the cube variables
		for sub := incube; ; sub = (sub - 1) & incube {
			v := eval(t, m, f, k|sub)
			if first {
				acc = v
				first = false
			} else {
				acc = opres(absop[kind], acc, v)
			}
			if sub == 0 {
				break
			}
		}
		for sub := incube; ; sub = (sub - 1) & incube {
			res[k|sub] = acc
			if sub == 0 {
				break
			}
		}
	}
	return res
}

//********************************************************************************************

// TestMinMaxScenario uses f = ite(x, ite(y,3,5), ite(y,2,8)) with order x < y.
func TestMinMaxScenario(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	x, y := m.vars[0], m.vars[1]
	c := func(v float64) Node { return mk(m.Constant(v)) }
	f := mk(m.AddIte(x, mk(m.AddIte(y, c(3), c(5))), mk(m.AddIte(y, c(2), c(8)))))
	cube := mk(m.AddCube([]int{1}))
	assert.Equal(t, mk(m.AddIte(x, c(3), c(2))), mk(m.MinAbstract(f, cube)))
	assert.Equal(t, mk(m.AddIte(x, c(5), c(8))), mk(m.MaxAbstract(f, cube)))
	// the minimum is always reached for y, the maximum for not y
	minrep := mk(m.MinAbstractRepresentative(f, cube))
	assert.Equal(t, m.bddvars[1], minrep)
	maxrep := mk(m.MaxAbstractRepresentative(f, cube))
	assert.Equal(t, m.Not(m.bddvars[1]), maxrep)
	assert.NoError(t, m.Check())
}

// TestBooleanScenario uses the function f(x,y) = x or y and abstracts both
// variables.
func TestBooleanScenario(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	f := mk(m.Apply(m.vars[0], m.vars[1], OPor))
	cube := mk(m.AddCube([]int{0, 1}))
	assert.Equal(t, mk(m.Constant(3)), mk(m.ExistAbstract(f, cube)))
	assert.Equal(t, m.One(), mk(m.OrAbstract(f, cube)))
	assert.Equal(t, m.Zero(), mk(m.UnivAbstract(f, cube)))
	assert.Equal(t, m.Zero(), mk(m.MinAbstract(f, cube)))
	assert.Equal(t, m.One(), mk(m.MaxAbstract(f, cube)))
	assert.Equal(t, m.One(), mk(m.MinExcept0Abstract(f, cube)))
}

func TestEmptyCube(t *testing.T) {
	m := newTestManager(t, 3)
	f := fromTable(t, m, []float64{0, 1, 2, 0, 4, 0, 6, 7})
	for _, kind := range allAbstractions {
		res, err := m.Abstract(f, m.One(), kind)
		assert.NoError(t, err)
		assert.Equal(t, f, res, "%s", kind)
	}
	rep, err := m.MinAbstractRepresentative(f, m.One())
	assert.NoError(t, err)
	assert.Equal(t, m.True(), rep)
}

// TestAbstractions compares all the abstractions with a brute force
// computation, for every cube over 3 variables.
func TestAbstractions(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	f := fromTable(t, m, []float64{0, 1, 2, 0, 4, 0, 6, 7})
	b := mk(m.Apply(m.vars[0], mk(m.Apply(m.vars[1], m.vars[2], OPtimes)), OPor))
	cubes := [][]int{{0}, {1}, {2}, {0, 1}, {0, 2}, {1, 2}, {0, 1, 2}, {2, 0}}
	for _, vars := range cubes {
		cube := mk(m.AddCube(vars))
		for _, kind := range allAbstractions {
			g := f
			if kind == ABSor {
				g = b
			}
			res, err := m.Abstract(g, cube, kind)
			assert.NoError(t, err)
			expected := brute(t, m, g, vars, kind)
			for k, v := range expected {
				assert.Equal(t, v, eval(t, m, res, k), "%s over %v on assignment %d", kind, vars, k)
			}
			m.Deref(res)
		}
		m.Deref(cube)
	}
	assert.NoError(t, m.Check())
}

// TestAdditivity checks that abstracting x amounts to summing the two
// cofactors of x.
func TestAdditivity(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	f := fromTable(t, m, []float64{1, 2, 4, 8})
	cube := mk(m.AddCube([]int{0}))
	f0 := mk(m.Cofactor(f, 0, false))
	f1 := mk(m.Cofactor(f, 0, true))
	assert.Equal(t, mk(m.Apply(f0, f1, OPplus)), mk(m.ExistAbstract(f, cube)))
	assert.Equal(t, mk(m.Apply(f0, f1, OPtimes)), mk(m.UnivAbstract(f, cube)))
}

// TestOrAbsorption checks that abstracting variables that do not occur in f
// has no effect for the idempotent abstractions.
func TestOrAbsorption(t *testing.T) {
	m := newTestManager(t, 4)
	mk := must(t)
	f := mk(m.Apply(m.vars[0], m.vars[2], OPor))
	cube := mk(m.AddCube([]int{1, 3}))
	assert.Equal(t, f, mk(m.OrAbstract(f, cube)))
	assert.Equal(t, f, mk(m.MinAbstract(f, cube)))
	assert.Equal(t, f, mk(m.MaxAbstract(f, cube)))
	// sum and product account for the 4 values of the abstracted variables
	assert.Equal(t, mk(m.Apply(f, mk(m.Constant(4)), OPtimes)), mk(m.ExistAbstract(f, cube)))
	assert.Equal(t, f, mk(m.UnivAbstract(f, cube)))
}

// TestMinMaxDuality checks that min(f) == -max(-f).
func TestMinMaxDuality(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	f := fromTable(t, m, []float64{3, -1, 2, 0, 4, 0, 6, -7})
	for _, vars := range [][]int{{0}, {1, 2}, {0, 1, 2}} {
		cube := mk(m.AddCube(vars))
		nf := mk(m.Negate(f))
		expected := mk(m.Negate(mk(m.MaxAbstract(nf, cube))))
		assert.Equal(t, expected, mk(m.MinAbstract(f, cube)))
	}
}

// checkRepresentative checks that rep selects exactly one assignment of the
// variables in incube for every assignment of the other variables, and that
// f reaches the value of ext on this assignment.
func checkRepresentative(t testing.TB, m *Manager, f, rep, ext Node, incube int, msg string) {
	t.Helper()
	for k := 0; k < 1<<m.Varnum(); k++ {
		if k&incube != 0 {
			continue
		}
		count := 0
		for sub := incube; ; sub = (sub - 1) & incube {
			if eval(t, m, rep, k|sub) == 1 {
				count++
				assert.Equal(t, eval(t, m, ext, k), eval(t, m, f, k|sub), "%s on assignment %d", msg, k|sub)
			}
			if sub == 0 {
				break
			}
		}
		assert.Equal(t, 1, count, "%s on assignment %d", msg, k)
	}
}

// TestRepresentative checks that the representative selects exactly one
// assignment of the cube variables reaching the extremal value, for every
// assignment of the other variables.
func TestRepresentative(t *testing.T) {
	m := newTestManager(t, 4)
	mk := must(t)
	f := fromTable(t, m, []float64{3, 1, 2, 1, 4, 0, 6, 0, 5, 5, 5, 5, 2, 9, 1, 2})
	for _, vars := range [][]int{{0}, {1, 3}, {0, 2}, {2, 3}, {0, 1, 2, 3}} {
		cube := mk(m.AddCube(vars))
		incube := 0
		for _, v := range vars {
			incube |= 1 << v
		}
		rep := mk(m.MinAbstractRepresentative(f, cube))
		checkRepresentative(t, m, f, rep, mk(m.MinAbstract(f, cube)), incube, fmt.Sprintf("min over %v", vars))
		rep = mk(m.MaxAbstractRepresentative(f, cube))
		checkRepresentative(t, m, f, rep, mk(m.MaxAbstract(f, cube)), incube, fmt.Sprintf("max over %v", vars))
	}
	assert.NoError(t, m.Check())
}

// TestRepresentativeTies checks that ties are broken in favor of the else
// branch.
func TestRepresentativeTies(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	c := mk(m.Constant(4))
	cube := mk(m.AddCube([]int{0, 1}))
	rep := mk(m.MinAbstractRepresentative(c, cube))
	assert.Equal(t, mk(m.And(m.Not(m.bddvars[0]), m.Not(m.bddvars[1]))), rep)
	f := fromTable(t, m, []float64{2, 2, 1, 1})
	rep = mk(m.MaxAbstractRepresentative(f, cube))
	assert.Equal(t, mk(m.And(m.Not(m.bddvars[0]), m.Not(m.bddvars[1]))), rep)
}

func TestMinExcept0(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	f := fromTable(t, m, []float64{0, 3, 0, 0})
	cube := mk(m.AddCube([]int{0}))
	assert.Equal(t, mk(m.AddIte(m.vars[1], m.Zero(), mk(m.Constant(3)))), mk(m.MinExcept0Abstract(f, cube)))
	assert.Equal(t, m.Zero(), mk(m.MinAbstract(f, cube)))
	// zero leaves are ignored over the whole cube, not only on its last
	// variable
	f = fromTable(t, m, []float64{4, 0, 6, 2})
	cube = mk(m.AddCube([]int{0, 1}))
	assert.Equal(t, mk(m.Constant(2)), mk(m.MinExcept0Abstract(f, cube)))
	assert.Equal(t, m.Zero(), mk(m.MinExcept0Abstract(m.Zero(), cube)))
}

func TestInvalidCube(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	f := fromTable(t, m, []float64{0, 1, 2, 0, 4, 0, 6, 7})
	invalid := []Node{
		mk(m.Constant(2)),
		m.Zero(),
		m.False(),
		m.bddvars[0],
		m.Not(m.vars[0]),
		mk(m.Apply(m.vars[0], m.vars[1], OPor)),
		mk(m.Apply(m.vars[0], mk(m.Constant(2)), OPtimes)),
	}
	for _, cube := range invalid {
		assert.False(t, m.IsCube(cube))
		for _, kind := range allAbstractions {
			_, err := m.Abstract(f, cube, kind)
			assert.True(t, errors.Is(err, ErrInvalidArgument), "%s with cube %s", kind, m.Print(cube))
		}
		_, err := m.MaxAbstractRepresentative(f, cube)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
	_, err := m.Abstract(f, m.One(), Abstraction(12))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.NoError(t, m.Check())
}

func TestCubes(t *testing.T) {
	m := newTestManager(t, 4)
	mk := must(t)
	cube := mk(m.AddCube([]int{3, 1, 1}))
	assert.True(t, m.IsCube(cube))
	vars, err := m.CubeVars(cube)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3}, vars)
	assert.Equal(t, mk(m.Product(m.vars[1], m.vars[3])), cube)
	bcube := mk(m.BddCube([]int{1, 3}))
	assert.Equal(t, mk(m.And(m.bddvars[1], m.bddvars[3])), bcube)
	assert.Equal(t, cube, mk(m.BddToAdd(bcube)))
	_, err = m.AddCube([]int{4})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.CubeVars(m.vars[0] | 1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, m.IsCube(m.One()))
}

func TestAbstractInfinity(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	f := fromTable(t, m, []float64{math.Inf(1), 2, 3, math.Inf(1)})
	cube := mk(m.AddCube([]int{0, 1}))
	assert.Equal(t, mk(m.Constant(2)), mk(m.MinAbstract(f, cube)))
	assert.Equal(t, mk(m.Constant(math.Inf(1))), mk(m.ExistAbstract(f, cube)))
}
