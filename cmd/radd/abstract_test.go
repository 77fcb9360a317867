// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestRunAbstract(t *testing.T) {
	g := NewGomegaWithT(t)

	var buf bytes.Buffer
	opts := &AbstractOpts{op: "max", table: "3,5,2,8", cube: []int{0}}
	g.Expect(runAbstract(&buf, opts)).Should(Succeed())
	g.Expect(buf.String()).Should(Equal("- 0 : 5\n- 1 : 8\n"))

	buf.Reset()
	opts = &AbstractOpts{op: "exist", table: "3,5,2,8", cube: []int{0, 1}}
	g.Expect(runAbstract(&buf, opts)).Should(Succeed())
	g.Expect(buf.String()).Should(Equal("- - : 18\n"))

	// the minimum is reached when x0 is false
	buf.Reset()
	opts = &AbstractOpts{op: "minrep", table: "3,5,2,8", cube: []int{0}}
	g.Expect(runAbstract(&buf, opts)).Should(Succeed())
	g.Expect(buf.String()).Should(Equal("0 0 : 1\n1 0 : 0\n0 1 : 1\n1 1 : 0\n"))

	buf.Reset()
	opts = &AbstractOpts{op: "maxrep", table: "3,5,2,8", cube: []int{0}}
	g.Expect(runAbstract(&buf, opts)).Should(Succeed())
	g.Expect(buf.String()).Should(Equal("0 0 : 0\n1 0 : 1\n0 1 : 0\n1 1 : 1\n"))
}

func TestRunAbstractOutputs(t *testing.T) {
	g := NewGomegaWithT(t)

	dir := t.TempDir()
	dot := filepath.Join(dir, "res.dot")
	config := writeConfig(t, "nodesize: 100\norder: [2, 1, 0]\n")
	var buf bytes.Buffer
	opts := &AbstractOpts{
		config: config,
		op:     "min",
		table:  "3,5,2,8,1,1,9,0",
		cube:   []int{1},
		dot:    dot,
		stats:  true,
	}
	g.Expect(runAbstract(&buf, opts)).Should(Succeed())
	g.Expect(buf.String()).Should(ContainSubstring("0 - 0 : 2\n1 - 0 : 5\n0 - 1 : 1\n1 - 1 : 0\n"))
	g.Expect(buf.String()).Should(ContainSubstring("Varnum:     3"))
	content, err := os.ReadFile(dot)
	g.Expect(err).Should(BeNil())
	g.Expect(string(content)).Should(HavePrefix("digraph G {"))
	g.Expect(string(content)).Should(ContainSubstring(`label="x0"`))
}

func TestRunAbstractErrors(t *testing.T) {
	g := NewGomegaWithT(t)

	var buf bytes.Buffer
	g.Expect(runAbstract(&buf, &AbstractOpts{op: "avg", table: "1,2"})).Should(MatchError(ContainSubstring("unknown operator")))
	g.Expect(runAbstract(&buf, &AbstractOpts{op: "exist", table: "1,2,3"})).Should(HaveOccurred())
	g.Expect(runAbstract(&buf, &AbstractOpts{op: "exist", table: "1,2", cube: []int{3}})).Should(HaveOccurred())
	g.Expect(runAbstract(&buf, &AbstractOpts{op: "exist", table: "1,2", config: "missing.yaml"})).Should(HaveOccurred())
	g.Expect(buf.String()).Should(BeEmpty())
}
