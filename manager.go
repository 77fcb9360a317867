// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"fmt"
	"math"
	"time"
)

// Manager owns all the nodes of a session: one unique table per level, a
// table of terminals, the operation cache, the variable order, and the
// counters used to trigger garbage collection and reordering.
//
// A Manager is not safe for concurrent use. All the operations on a given
// manager must be serialized by the caller; garbage collection and
// reordering happen as side effects of ordinary calls.
//
// Every Node returned by an exported method carries one reference owned by
// the caller, which should be released with Deref when the node is no longer
// needed. Operands must be referenced (or be constants and projection
// variables, which are never collected) for the duration of a call.
type Manager struct {
	nodes       []ddnode          // List of all the nodes. Slots 1 and 2 are the constants one and zero
	subtables   []map[pair]int    // Unicity tables, one for each level
	consts      map[float64]int   // Unicity table for terminals
	perm        []int32           // Level of each variable index
	invperm     []int32           // Variable index at each level
	vars        []Node            // ADD projection functions, indexed by variable
	bddvars     []Node            // BDD projection functions, indexed by variable
	freenum     int               // Number of free nodes
	freepos     int               // First free node (0 if none)
	dead        int               // Number of dead nodes still in the tables
	produced    int               // Total number of new nodes ever produced
	nextdyn     int               // live nodes threshold for the next automatic reordering
	reorderings int               // number of reorderings since creation
	inreorder   bool              // true while moving to a new order
	polltick    int               // recursive steps left before the next deadline check
	permid      int               // last identifier given to a Permutation
	cache                         // Operation cache
	uniqueStat                    // Information about the unique tables
	gcstat                        // Information about garbage collections
	configs                       // Configurable parameters
}

// uniqueStat stores status information about the unique tables.
type uniqueStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	reclaimed    int // dead nodes brought back to life
}

// New returns a manager for decision diagrams over varnum variables, with
// the variable order initially equal to the order of indices. We return an
// error if varnum is out of range.
func New(varnum int, options ...Option) (*Manager, error) {
	if varnum < 0 || varnum > _MAXVAR {
		return nil, fmt.Errorf("bad number of variables (%d): %w", varnum, ErrInvalidArgument)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	if config.timeout > 0 {
		config.deadline = time.Now().Add(config.timeout)
	}
	m := &Manager{configs: *config}
	m.nodes = make([]ddnode, m.nodesize)
	for k := range m.nodes {
		m.nodes[k] = ddnode{
			index: _FREEINDEX,
			then:  mknode(k + 1),
		}
	}
	m.nodes[len(m.nodes)-1].then = 0
	// slot 0 is never used, slots 1 and 2 are the constants
	m.nodes[0] = ddnode{index: _CONSTINDEX, ref: _MAXREFCOUNT, value: math.NaN()}
	m.nodes[slotOne] = ddnode{index: _CONSTINDEX, ref: _MAXREFCOUNT, value: 1}
	m.nodes[slotZero] = ddnode{index: _CONSTINDEX, ref: _MAXREFCOUNT, value: 0}
	m.consts = map[float64]int{1: slotOne, 0: slotZero}
	m.freepos = 3
	m.freenum = len(m.nodes) - 3
	m.cacheinit(m.cachesize, m.cacheratio)
	m.perm = make([]int32, varnum)
	m.invperm = make([]int32, varnum)
	m.subtables = make([]map[pair]int, varnum)
	m.vars = make([]Node, varnum)
	m.bddvars = make([]Node, varnum)
	if err := m.setVarnum(varnum); err != nil {
		return nil, err
	}
	m.nextdyn = m.autodyn
	m.gcstat.history = []gcpoint{}
	m.log.V(1).Info("new manager", "varnum", varnum, "nodes", len(m.nodes), "cache", len(m.cache.table))
	return m, nil
}

// ************************************************************

// Varnum returns the number of variables of the manager.
func (m *Manager) Varnum() int {
	return len(m.vars)
}

// One returns the constant 1. It is both the ADD constant one and the BDD
// constant true.
func (m *Manager) One() Node {
	return nodeOne
}

// Zero returns the ADD constant 0. It is different from False.
func (m *Manager) Zero() Node {
	return nodeZero
}

// True returns the BDD constant true (the same node as One).
func (m *Manager) True() Node {
	return nodeOne
}

// False returns the BDD constant false, the complement of True.
func (m *Manager) False() Node {
	return nodeFalse
}

// From returns a BDD constant from a boolean value.
func (m *Manager) From(v bool) Node {
	if v {
		return nodeOne
	}
	return nodeFalse
}

// Constant returns the ADD terminal with value v. NaN is not a valid value.
func (m *Manager) Constant(v float64) (Node, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("constant: NaN value: %w", ErrInvalidArgument)
	}
	return m.guard("constant", func() (Node, error) {
		return m.addconst(v)
	})
}

// IthVar returns the ADD projection function of variable i, that is the 0-1
// ADD equal to 1 when variable i is true. Projection functions are never
// collected.
func (m *Manager) IthVar(i int) (Node, error) {
	if i < 0 || i >= len(m.vars) {
		return 0, fmt.Errorf("ithvar: unknown variable (%d): %w", i, ErrInvalidArgument)
	}
	return m.vars[i], nil
}

// BddVar returns the BDD projection function of variable i.
func (m *Manager) BddVar(i int) (Node, error) {
	if i < 0 || i >= len(m.bddvars) {
		return 0, fmt.Errorf("bddvar: unknown variable (%d): %w", i, ErrInvalidArgument)
	}
	return m.bddvars[i], nil
}

// NBddVar returns the negation of the BDD projection function of variable i.
func (m *Manager) NBddVar(i int) (Node, error) {
	n, err := m.BddVar(i)
	if err != nil {
		return 0, err
	}
	return n.not(), nil
}

// Not returns the negation of a BDD. It never allocates, thanks to
// complement edges. It should not be used on ADDs.
func (m *Manager) Not(n Node) Node {
	return m.Ref(n.not())
}

// IsComplement reports whether n is a complemented BDD edge.
func (m *Manager) IsComplement(n Node) bool {
	return n.complemented()
}

// Regular returns n without its complement tag.
func (m *Manager) Regular(n Node) Node {
	return n.regular()
}

// IsConstant reports whether n is a terminal node.
func (m *Manager) IsConstant(n Node) bool {
	return m.isconst(n)
}

// Value returns the value of a terminal. The value of False is 0. We return
// an error if n is not a terminal.
func (m *Manager) Value(n Node) (float64, error) {
	if err := m.checkptr(n); err != nil {
		return 0, fmt.Errorf("value: %w", err)
	}
	if !m.isconst(n) {
		return 0, fmt.Errorf("value: node %d is not a constant: %w", n, ErrInvalidArgument)
	}
	if n.complemented() {
		return 1 - m.nodes[n.slot()].value, nil
	}
	return m.nodes[n.slot()].value, nil
}

// Index returns the variable tested at the root of n, or -1 for a constant.
func (m *Manager) Index(n Node) int {
	if m.checkptr(n) != nil || m.isconst(n) {
		return -1
	}
	return int(m.nodes[n.slot()].index)
}

// Level returns the position of variable i in the current order, or -1 if i
// is out of range.
func (m *Manager) Level(i int) int {
	if i < 0 || i >= len(m.perm) {
		return -1
	}
	return int(m.perm[i])
}

// Then returns the true branch of n (n itself for a constant). Complement
// tags are propagated to the branches.
func (m *Manager) Then(n Node) Node {
	if m.checkptr(n) != nil || m.isconst(n) {
		return n
	}
	return m.thenof(n)
}

// Else returns the false branch of n (n itself for a constant).
func (m *Manager) Else(n Node) Node {
	if m.checkptr(n) != nil || m.isconst(n) {
		return n
	}
	return m.elseof(n)
}

// MakeNode returns the canonical node testing variable index, with branches
// then and els. It returns then when the two branches are equal. The
// variable must come before the variables of the branches in the current
// order.
func (m *Manager) MakeNode(index int, then, els Node) (Node, error) {
	if index < 0 || index >= len(m.vars) {
		return 0, fmt.Errorf("makenode: unknown variable (%d): %w", index, ErrInvalidArgument)
	}
	if err := m.checkptr(then); err != nil {
		return 0, fmt.Errorf("makenode: %w", err)
	}
	if err := m.checkptr(els); err != nil {
		return 0, fmt.Errorf("makenode: %w", err)
	}
	level := m.perm[index]
	if level >= m.level(then) || level >= m.level(els) {
		return 0, fmt.Errorf("makenode: variable %d is not above its branches: %w", index, ErrInvalidArgument)
	}
	return m.guard("makenode", func() (Node, error) {
		if level != m.perm[index] {
			return 0, fmt.Errorf("makenode: variable %d moved below its branches: %w", index, ErrInvalidArgument)
		}
		return m.bddnode(int32(index), then, els)
	})
}

// ************************************************************

// checkptr returns an error if n is not a valid node of the manager.
func (m *Manager) checkptr(n Node) error {
	s := n.slot()
	switch {
	case s <= 0 || s >= len(m.nodes):
		return fmt.Errorf("node %d outside of the table: %w", n, ErrInvalidArgument)
	case m.nodes[s].index == _FREEINDEX:
		return fmt.Errorf("node %d is not in use: %w", n, ErrInvalidArgument)
	case n.complemented() && m.isconst(n) && s != slotOne:
		return fmt.Errorf("complemented ADD constant %d: %w", n, ErrInvalidArgument)
	}
	return nil
}

func (m *Manager) isconst(n Node) bool {
	return m.nodes[n.slot()].index == _CONSTINDEX
}

// index returns the variable index of n (_CONSTINDEX for constants).
func (m *Manager) index(n Node) int32 {
	return m.nodes[n.slot()].index
}

// level returns the position of the variable of n in the current order.
// Constants have the highest level.
func (m *Manager) level(n Node) int32 {
	idx := m.nodes[n.slot()].index
	if idx == _CONSTINDEX {
		return _CONSTINDEX
	}
	return m.perm[idx]
}

func (m *Manager) thenof(n Node) Node {
	return m.nodes[n.slot()].then.notif(n.complemented())
}

func (m *Manager) elseof(n Node) Node {
	return m.nodes[n.slot()].els.notif(n.complemented())
}

// cofactors returns the branches of n with respect to the variable at
// level, or n twice if n does not test this variable.
func (m *Manager) cofactors(n Node, level int32) (Node, Node) {
	if m.level(n) != level {
		return n, n
	}
	return m.thenof(n), m.elseof(n)
}

// value returns the value of the terminal n, taking complement into account.
func (m *Manager) value(n Node) float64 {
	if n.complemented() {
		return 1 - m.nodes[n.slot()].value
	}
	return m.nodes[n.slot()].value
}
