// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

//********************************************************************************************

func TestMin3(t *testing.T) {
	var min3Tests = []struct {
		p, q, r  int32
		expected int32
	}{
		{3, 2, 3, 2},
		{4, 4, 4, 4},
		{2, 3, 3, 2},
		{3, 2, 2, 2},
		{3, 3, 2, 2},
		{1, 2, 3, 1},
	}
	for _, tt := range min3Tests {
		actual := min3(tt.p, tt.q, tt.r)
		if actual != tt.expected {
			t.Errorf("min3(%d, %d, %d): expected %d, actual %d", tt.p, tt.q, tt.r, tt.expected, actual)
		}
	}
}

//********************************************************************************************

// TestApply compares the result of Apply with a pointwise evaluation of the
// operator on all the assignments.
func TestApply(t *testing.T) {
	m := newTestManager(t, 3)
	f := fromTable(t, m, []float64{0, 1, 2, 0, 4, 0, 6, 7})
	g := fromTable(t, m, []float64{1, 0, 2, 3, 0, 5, -1, 7})
	for _, op := range []AddOp{OPplus, OPtimes, OPminus, OPmin, OPmax, OPminExcept0} {
		res, err := m.Apply(f, g, op)
		assert.NoError(t, err, "%s", op)
		for k := 0; k < 8; k++ {
			expected := opres(op, eval(t, m, f, k), eval(t, m, g, k))
			assert.Equal(t, expected, eval(t, m, res, k), "%s on assignment %d", op, k)
		}
		m.Deref(res)
	}
	assert.NoError(t, m.Check())
}

func TestApplyTerminalCases(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	x := m.vars[0]
	assert.Equal(t, x, mk(m.Apply(x, m.Zero(), OPplus)))
	assert.Equal(t, m.Zero(), mk(m.Apply(x, m.Zero(), OPtimes)))
	assert.Equal(t, x, mk(m.Apply(m.One(), x, OPtimes)))
	assert.Equal(t, m.Zero(), mk(m.Apply(x, x, OPminus)))
	assert.Equal(t, x, mk(m.Apply(x, m.One(), OPdivide)))
	assert.Equal(t, m.One(), mk(m.Apply(x, m.One(), OPor)))
	c6 := mk(m.Constant(6))
	c3 := mk(m.Constant(3))
	assert.Equal(t, mk(m.Constant(2)), mk(m.Apply(c6, c3, OPdivide)))
	assert.Equal(t, c3, mk(m.Apply(m.Zero(), c3, OPminExcept0)))
	// 0/0 is undefined
	_, err := m.Apply(m.Zero(), m.Zero(), OPdivide)
	assert.NoError(t, err)
	inf := mk(m.Constant(math.Inf(1)))
	_, err = m.Apply(inf, inf, OPminus)
	assert.NoError(t, err)
	_, err = m.Apply(inf, mk(m.Constant(math.Inf(-1))), OPplus)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.Apply(x, x, AddOp(42))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNegate(t *testing.T) {
	m := newTestManager(t, 3)
	values := []float64{0, 1, 2, -3, 4, 0, 6, 7}
	f := fromTable(t, m, values)
	nf := must(t)(m.Negate(f))
	for k, v := range values {
		assert.Equal(t, -v, eval(t, m, nf, k))
	}
	assert.Equal(t, f, must(t)(m.Negate(nf)))
}

func TestCompare(t *testing.T) {
	m := newTestManager(t, 3)
	f := fromTable(t, m, []float64{0, 1, 2, 3, 4, 5, 6, 7})
	g := fromTable(t, m, []float64{7, 1, 5, 3, 3, 5, 1, 7})
	for _, op := range []CmpOp{CMPle, CMPge, CMPeq} {
		res := must(t)(m.Compare(f, g, op))
		for k := 0; k < 8; k++ {
			expected := 0.0
			if cmpres(op, eval(t, m, f, k), eval(t, m, g, k)) {
				expected = 1
			}
			assert.Equal(t, expected, eval(t, m, res, k), "%s on assignment %d", op, k)
		}
		m.Deref(res)
	}
	assert.Equal(t, m.True(), must(t)(m.Compare(f, f, CMPle)))
	assert.NoError(t, m.Check())
}

func TestAddIte(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	c := mk(m.Apply(m.vars[0], m.vars[2], OPor))
	g := fromTable(t, m, []float64{0, 1, 2, 3, 4, 5, 6, 7})
	h := fromTable(t, m, []float64{7, 6, 5, 4, 3, 2, 1, 0})
	res := mk(m.AddIte(c, g, h))
	for k := 0; k < 8; k++ {
		expected := eval(t, m, h, k)
		if eval(t, m, c, k) == 1 {
			expected = eval(t, m, g, k)
		}
		assert.Equal(t, expected, eval(t, m, res, k))
	}
	assert.Equal(t, c, mk(m.AddIte(c, m.One(), m.Zero())))
	for k := 0; k < 8; k++ {
		a := assignment(k, 3)
		assert.Equal(t, b2f(a[0] || a[2]), eval(t, m, c, k))
	}
}

//********************************************************************************************

func TestIte(t *testing.T) {
	m := newTestManager(t, 4)
	mk := must(t)
	n1 := mk(m.BddCube([]int{0, 2, 3}))
	n2 := mk(m.BddCube([]int{0, 3}))
	lhs := mk(m.Ite(n1, n2, m.Not(n2)))
	rhs := mk(m.Or(mk(m.And(n1, n2)), mk(m.And(m.Not(n1), m.Not(n2)))))
	assert.Equal(t, m.True(), mk(m.Equiv(lhs, rhs)))
	assert.Equal(t, lhs, rhs)
	assert.Equal(t, m.False(), mk(m.Xor(lhs, rhs)))
	assert.Equal(t, m.True(), mk(m.Imp(n1, n2)))
	assert.NoError(t, m.Check())
}

// TestBddOperations checks the Boolean operators against a pointwise
// evaluation.
func TestBddOperations(t *testing.T) {
	m := newTestManager(t, 4)
	mk := must(t)
	x := m.bddvars
	f := mk(m.Or(mk(m.And(x[0], m.Not(x[1]))), mk(m.Xor(x[2], x[3]))))
	g := mk(m.Imp(x[1], mk(m.Equiv(x[0], x[3]))))
	and := mk(m.And(f, g))
	or := mk(m.Or(f, g))
	ite := mk(m.Ite(x[2], f, g))
	for k := 0; k < 16; k++ {
		a := assignment(k, 4)
		fv := (a[0] && !a[1]) || (a[2] != a[3])
		gv := !a[1] || (a[0] == a[3])
		assert.Equal(t, b2f(fv), eval(t, m, f, k))
		assert.Equal(t, b2f(gv), eval(t, m, g, k))
		assert.Equal(t, b2f(fv && gv), eval(t, m, and, k))
		assert.Equal(t, b2f(fv || gv), eval(t, m, or, k))
		if a[2] {
			assert.Equal(t, b2f(fv), eval(t, m, ite, k))
		} else {
			assert.Equal(t, b2f(gv), eval(t, m, ite, k))
		}
	}
	assert.NoError(t, m.Check())
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func TestBddToAdd(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	f := mk(m.Or(m.bddvars[0], m.Not(m.bddvars[2])))
	a := mk(m.BddToAdd(f))
	expected := mk(m.Apply(m.vars[0], mk(m.Apply(m.One(), m.vars[2], OPminus)), OPor))
	assert.Equal(t, expected, a)
	assert.Equal(t, m.Zero(), mk(m.BddToAdd(m.False())))
	assert.Equal(t, m.One(), mk(m.BddToAdd(m.True())))
}

// TestConstantOperands checks that operations on 0-1 ADDs or BDDs reject
// leaves with any other value, at the root or deeper in the diagram.
func TestConstantOperands(t *testing.T) {
	m := newTestManager(t, 2)
	mk := must(t)
	two := mk(m.Constant(2))
	three := mk(m.Constant(3))
	deep := mk(m.AddIte(m.vars[0], two, m.Zero()))
	m.GC()
	live := m.live()

	_, err := m.AddIte(two, three, m.Zero())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.AddIte(two, three, three)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.AddIte(deep, m.vars[1], three)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = m.BddToAdd(m.Zero())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.BddToAdd(deep)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = m.Ite(two, m.True(), m.False())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.Ite(m.bddvars[0], m.Zero(), m.False())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.Ite(m.bddvars[0], three, three)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = m.And(m.bddvars[1], deep)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	m.GC()
	assert.Equal(t, live, m.live())
	assert.NoError(t, m.Check())
}

func TestSum(t *testing.T) {
	m := newTestManager(t, 3)
	mk := must(t)
	s := mk(m.Sum(m.vars[0], m.vars[1], m.vars[2]))
	for k := 0; k < 8; k++ {
		a := assignment(k, 3)
		assert.Equal(t, b2f(a[0])+b2f(a[1])+b2f(a[2]), eval(t, m, s, k))
	}
	assert.Equal(t, m.Zero(), mk(m.Sum()))
	assert.Equal(t, m.One(), mk(m.Product()))
	assert.Equal(t, m.vars[1], mk(m.Product(m.vars[1])))
	assert.NoError(t, m.Check())
}
