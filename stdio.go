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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// stats returns information about the node table
func (m *Manager) stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", len(m.vars))
	res += fmt.Sprintf("Allocated:  %d\n", len(m.nodes))
	res += fmt.Sprintf("Produced:   %d\n", m.produced)
	r := (float64(m.freenum) / float64(len(m.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", m.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(m.nodes)-m.freenum, (100.0 - r))
	res += fmt.Sprintf("Dead:       %d\n", m.dead)
	res += fmt.Sprintf("Constants:  %d\n", len(m.consts))
	res += fmt.Sprintf("Cache:      %d entries", len(m.cache.table))
	return res
}

func (m *Manager) gcstats() string {
	res := fmt.Sprintf("# of GC:    %d\n", len(m.gcstat.history))
	collected := 0
	for _, g := range m.gcstat.history {
		collected += g.collected
	}
	res += fmt.Sprintf("Collected:  %d\n", collected)
	res += fmt.Sprintf("Reorders:   %d", m.reorderings)
	return res
}

// Stats returns a textual representation of the statistics of the manager:
// size of the node table, garbage collections, reorderings and cache usage.
func (m *Manager) Stats() string {
	res := m.stats() + "\n==============\n" + m.gcstats()
	res += "\n==============\n" + m.cache.cacheStat.String()
	res += "\n==============\n" + m.uniqueStat.String()
	return res
}

// PrintStats outputs a textual representation of the manager statistics.
func (m *Manager) PrintStats() {
	fmt.Println("==============")
	fmt.Println(m.Stats())
	if _DEBUG {
		fmt.Println("==============")
		m.logTable()
	}
	fmt.Println("==============")
}

// ******************************************************************************************************

// Print returns a one-line description of node n.
func (m *Manager) Print(n Node) string {
	if err := m.checkptr(n); err != nil {
		return fmt.Sprintf("Error (%s)", err)
	}
	switch {
	case n == nodeOne:
		return "True"
	case n == nodeFalse:
		return "False"
	case m.isconst(n):
		return strconv.FormatFloat(m.value(n), 'g', -1, 64)
	}
	neg := ""
	if n.complemented() {
		neg = "~"
	}
	return fmt.Sprintf("%s(%d[%d] ? %d : %d)", neg, n.slot(), m.index(n), m.nodes[n.slot()].then, m.nodes[n.slot()].els)
}

// PrintSet outputs a textual representation of the diagram with root n on the
// standard output.
func (m *Manager) PrintSet(n Node) error {
	return m.Fprint(os.Stdout, n)
}

// Fprint writes a table with one line for each node reachable from n, in the
// form: slot, variable, then edge, else edge. A "~" marks complemented edges.
func (m *Manager) Fprint(w io.Writer, n Node) error {
	if err := m.checkptr(n); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	slots := m.reachable(n)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "root: %s\n", edgename(n))
	for _, s := range slots {
		nd := m.nodes[s]
		if nd.index == _CONSTINDEX {
			fmt.Fprintf(tw, "%d\t[const\t] %g\n", s, nd.value)
			continue
		}
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%s\t : %s\n", s, nd.index, edgename(nd.then), edgename(nd.els))
	}
	return tw.Flush()
}

// reachable returns the sorted list of slots reachable from n.
func (m *Manager) reachable(n Node) []int {
	m.markrec(n.regular())
	res := []int{}
	for k := range m.nodes {
		if m.nodes[k].mark {
			res = append(res, k)
		}
	}
	m.unmarkall()
	return res
}

func edgename(n Node) string {
	if n.complemented() {
		return "~" + strconv.Itoa(n.slot())
	}
	return strconv.Itoa(n.slot())
}

// ******************************************************************************************************

// WriteDot writes a graph-like description of the diagrams with roots n using
// the DOT format. Variables are labelled with names[i] when available, and
// with their index otherwise. Else edges are dotted and complemented edges
// are drawn in red.
func (m *Manager) WriteDot(w io.Writer, names []string, n ...Node) error {
	for _, v := range n {
		if err := m.checkptr(v); err != nil {
			return fmt.Errorf("writedot: %w", err)
		}
	}
	for _, v := range n {
		m.markrec(v.regular())
	}
	levels := make(map[int32][]int)
	consts := []int{}
	for k := range m.nodes {
		if !m.nodes[k].mark {
			continue
		}
		if m.nodes[k].index == _CONSTINDEX {
			consts = append(consts, k)
			continue
		}
		l := m.perm[m.nodes[k].index]
		levels[l] = append(levels[l], k)
	}
	m.unmarkall()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	for k, v := range n {
		fmt.Fprintf(bw, "r%d [shape=plaintext, label=\"f%d\"];\n", k, k)
		fmt.Fprintf(bw, "r%d -> %d%s;\n", k, v.slot(), dotedge(v, "solid"))
	}
	keys := maps.Keys(levels)
	slices.Sort(keys)
	for _, l := range keys {
		fmt.Fprint(bw, "{ rank=same;")
		for _, s := range levels[l] {
			fmt.Fprintf(bw, " %d;", s)
		}
		fmt.Fprintln(bw, " }")
		for _, s := range levels[l] {
			nd := m.nodes[s]
			label := strconv.Itoa(int(nd.index))
			if int(nd.index) < len(names) {
				label = names[nd.index]
			}
			fmt.Fprintf(bw, "%d [label=%q];\n", s, label)
			fmt.Fprintf(bw, "%d -> %d%s;\n", s, nd.then.slot(), dotedge(nd.then, "solid"))
			fmt.Fprintf(bw, "%d -> %d%s;\n", s, nd.els.slot(), dotedge(nd.els, "dotted"))
		}
	}
	for _, s := range consts {
		fmt.Fprintf(bw, "%d [shape=box, label=\"%g\", style=filled, height=0.3, width=0.3];\n", s, m.nodes[s].value)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotedge(n Node, style string) string {
	if n.complemented() {
		return fmt.Sprintf(" [style=%s, color=red]", style)
	}
	return fmt.Sprintf(" [style=%s]", style)
}
