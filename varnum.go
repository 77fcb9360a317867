// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "fmt"

// setVarnum sets the number of variables. We call this function only once
// during initialization and generate the projection functions used for
// IthVar and BddVar. Projection functions are pinned in the node table.
func (m *Manager) setVarnum(num int) error {
	for k := 0; k < num; k++ {
		m.perm[k] = int32(k)
		m.invperm[k] = int32(k)
		m.subtables[k] = make(map[pair]int)
	}
	for k := int32(0); k < int32(num); k++ {
		v0, err := m.uniqueInter(k, nodeOne, nodeZero)
		if err != nil {
			return fmt.Errorf("cannot allocate new variable %d: %w", k, err)
		}
		m.nodes[v0.slot()].ref = _MAXREFCOUNT
		m.vars[k] = v0
		v1, err := m.uniqueInter(k, nodeOne, nodeFalse)
		if err != nil {
			return fmt.Errorf("cannot allocate new variable %d: %w", k, err)
		}
		m.nodes[v1.slot()].ref = _MAXREFCOUNT
		m.bddvars[k] = v1
	}
	return nil
}
