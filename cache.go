// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package radd

import "fmt"

// ************************************************************
// cache is used for caching the results of all the recursive operations
// (apply, ite, abstractions, ...). Entries are tagged with a cacheid.
type cache struct {
	ratio int // value (%) used to resize the cache as a factor of the number of nodes
	table []cacheData
	cacheStat
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	opHit    int // entries found in the operation cache
	opMiss   int // entries not found in the operation cache
	opInsert int // entries written in the operation cache
	flushes  int // number of times the whole cache was invalidated
}

// cacheData is a unit of information stored in the cache. An entry with a
// zero f is empty since 0 is not a valid node.
type cacheData struct {
	op  cacheid
	f   Node
	g   Node
	h   Node
	res Node
}

// ************************************************************

func (m *Manager) cacheinit(size, ratio int) {
	m.cache.ratio = ratio
	if ratio > 0 {
		size = len(m.nodes) * ratio / 100
	}
	if size <= 0 {
		size = len(m.nodes)/5 + 1
	}
	// we never check if the creation of the slice panic because of lack of memory
	m.cache.table = make([]cacheData, primeGte(size))
}

// cacheresize is called after a resize of the node table. Entries are
// preserved when the size of the cache does not depend on the size of the
// node table, since nodes never move.
func (m *Manager) cacheresize(nodesize int) {
	if m.cache.ratio <= 0 {
		return
	}
	size := primeGte(nodesize * m.cache.ratio / 100)
	if size <= len(m.cache.table) {
		return
	}
	m.cache.table = make([]cacheData, size)
}

// cachereset invalidates all the entries. This is required after a
// reordering, where the identity of nodes changes.
func (m *Manager) cachereset() {
	for k := range m.cache.table {
		m.cache.table[k] = cacheData{}
	}
	m.cache.flushes++
}

// cacheflushdead invalidates the entries mentioning a node without
// references, that is a node about to be collected.
func (m *Manager) cacheflushdead() {
	for k := range m.cache.table {
		e := &m.cache.table[k]
		if e.f == 0 {
			continue
		}
		if m.nodes[e.f.slot()].ref == 0 || m.nodes[e.g.slot()].ref == 0 || m.nodes[e.res.slot()].ref == 0 {
			*e = cacheData{}
			continue
		}
		// h is an operator, not a node, except for if-then-else
		if (e.op == cacheid_ADDITE || e.op == cacheid_BDDITE) && m.nodes[e.h.slot()].ref == 0 {
			*e = cacheData{}
		}
	}
}

// ************************************************************

// Prints information about the cache performance. Hit and miss count is given
// for the operation cache.
func (c cacheStat) String() string {
	res := fmt.Sprintf("Operator Hits:  %d\n", c.opHit)
	res += fmt.Sprintf("Operator Miss:  %d\n", c.opMiss)
	res += fmt.Sprintf("Insertions:     %d\n", c.opInsert)
	res += fmt.Sprintf("Flushes:        %d", c.flushes)
	return res
}

// Prints information about the unique tables: the number of accesses, the
// number of times a node was (not) found there and the number of dead nodes
// brought back to life.
func (c uniqueStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Reclaimed:      %d", c.reclaimed)
	return res
}
