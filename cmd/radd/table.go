// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalzilio/radd"
)

// parseTable reads a comma separated list of values. The number of values
// must be a power of two; the value at position k is the value of the
// function when variable i is true iff bit i of k is set. We return the
// values and the number of variables.
func parseTable(s string) ([]float64, int, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for k, v := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid value at position %d: %v", k, err)
		}
		values[k] = f
	}
	varnum := 0
	for 1<<varnum < len(values) {
		varnum++
	}
	if 1<<varnum != len(values) {
		return nil, 0, fmt.Errorf("the number of values (%d) is not a power of two", len(values))
	}
	return values, varnum, nil
}

// buildTable returns the ADD with the given table of values.
func buildTable(m *radd.Manager, values []float64) (radd.Node, error) {
	varnum := m.Varnum()
	var build func(i, k int) (radd.Node, error)
	build = func(i, k int) (radd.Node, error) {
		if i == varnum {
			return m.Constant(values[k])
		}
		th, err := build(i+1, k|1<<i)
		if err != nil {
			return 0, err
		}
		defer m.Deref(th)
		el, err := build(i+1, k)
		if err != nil {
			return 0, err
		}
		defer m.Deref(el)
		x, err := m.IthVar(i)
		if err != nil {
			return 0, err
		}
		return m.AddIte(x, th, el)
	}
	return build(0, 0)
}

// writeTable prints the values of f, one line for each assignment of the
// variables not in skip. Variables in skip are printed as "-".
func writeTable(w io.Writer, m *radd.Manager, f radd.Node, skip []int) error {
	varnum := m.Varnum()
	skipped := make([]bool, varnum)
	for _, v := range skip {
		skipped[v] = true
	}
	cells := make([]string, varnum)
	assignment := make([]bool, varnum)
	for k := 0; k < 1<<varnum; k++ {
		dup := false
		for i := 0; i < varnum; i++ {
			assignment[i] = (k>>i)&1 == 1
			switch {
			case skipped[i] && assignment[i]:
				dup = true
			case skipped[i]:
				cells[i] = "-"
			case assignment[i]:
				cells[i] = "1"
			default:
				cells[i] = "0"
			}
		}
		if dup {
			continue
		}
		v, err := m.Eval(f, assignment)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s : %g\n", strings.Join(cells, " "), v); err != nil {
			return err
		}
	}
	return nil
}
