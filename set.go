// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

// And returns the logical 'and' of a sequence of BDDs.
func (m *Manager) And(n ...Node) (Node, error) {
	return m.fold("and", nodeOne, n, func(f, g Node) (Node, error) {
		return m.ite(f, g, nodeFalse)
	})
}

// Or returns the logical 'or' of a sequence of BDDs.
func (m *Manager) Or(n ...Node) (Node, error) {
	return m.fold("or", nodeFalse, n, func(f, g Node) (Node, error) {
		return m.ite(f, nodeOne, g)
	})
}

// Imp returns the logical 'implication' between two BDDs.
func (m *Manager) Imp(n1, n2 Node) (Node, error) {
	if err := m.checkops("imp", n1, n2); err != nil {
		return 0, err
	}
	return m.guard("imp", func() (Node, error) {
		return m.ite(n1, n2, nodeOne)
	})
}

// Equiv returns the logical 'bi-implication' between two BDDs.
func (m *Manager) Equiv(n1, n2 Node) (Node, error) {
	if err := m.checkops("equiv", n1, n2); err != nil {
		return 0, err
	}
	return m.guard("equiv", func() (Node, error) {
		return m.ite(n1, n2, n2.not())
	})
}

// Xor returns the exclusive or of two BDDs.
func (m *Manager) Xor(n1, n2 Node) (Node, error) {
	if err := m.checkops("xor", n1, n2); err != nil {
		return 0, err
	}
	return m.guard("xor", func() (Node, error) {
		return m.ite(n1, n2.not(), n2)
	})
}

// Sum returns the sum of a sequence of ADDs.
func (m *Manager) Sum(n ...Node) (Node, error) {
	return m.fold("sum", nodeZero, n, func(f, g Node) (Node, error) {
		return m.apply(f, g, OPplus)
	})
}

// Product returns the product of a sequence of ADDs.
func (m *Manager) Product(n ...Node) (Node, error) {
	return m.fold("product", nodeOne, n, func(f, g Node) (Node, error) {
		return m.apply(f, g, OPtimes)
	})
}

// Equal tests equivalence between nodes. Since diagrams are canonical, two
// nodes are equivalent if and only if they are equal.
func (m *Manager) Equal(n1, n2 Node) bool {
	return n1 == n2
}

// fold combines the nodes in n from left to right, starting from unit.
func (m *Manager) fold(name string, unit Node, n []Node, op func(f, g Node) (Node, error)) (Node, error) {
	if err := m.checkops(name, n...); err != nil {
		return 0, err
	}
	return m.guard(name, func() (Node, error) {
		h := m.hold()
		defer h.release()
		res := h.keep(unit)
		for _, v := range n {
			r, err := op(res, v)
			if err != nil {
				return 0, err
			}
			res = h.replace(r)
		}
		return h.result(res), nil
	})
}
