// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dalzilio/radd"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type AbstractOpts struct {
	config  string
	op      string
	table   string
	cube    []int
	dot     string
	stats   bool
	verbose int
}

var abstractopts = AbstractOpts{}

func NewAbstractCmd() *cobra.Command {

	abstractCmd := &cobra.Command{
		Use:   "abstract",
		Short: "abstract variables from an ADD given by its table of values",
		Long: `abstract variables from an ADD given by its table of values. The operator is one of exist (sum), univ (product), or, min, max, minExcept0, or one of minrep and maxrep to compute the BDD of the assignments where the minimum (or maximum) is reached`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbstract(cmd.OutOrStdout(), &abstractopts)
		},
	}

	abstractCmd.Flags().StringVarP(&abstractopts.config, "config", "c", "", "manager configuration file (yaml)")
	abstractCmd.Flags().StringVarP(&abstractopts.op, "op", "o", "exist", "abstraction operator")
	abstractCmd.Flags().StringVarP(&abstractopts.table, "table", "t", "", "comma separated list of values, variable i is true iff bit i of the position is set")
	abstractCmd.Flags().IntSliceVarP(&abstractopts.cube, "vars", "x", nil, "variables to abstract")
	abstractCmd.Flags().StringVarP(&abstractopts.dot, "dot", "d", "", "write the result in the DOT format in this file")
	abstractCmd.Flags().BoolVarP(&abstractopts.stats, "stats", "s", false, "print statistics about the manager")
	abstractCmd.Flags().CountVarP(&abstractopts.verbose, "verbose", "v", "log the activity of the manager (can be repeated)")
	_ = abstractCmd.MarkFlagRequired("table")
	return abstractCmd
}

// newLogger forwards the messages of the manager to logrus.
func newLogger(verbose int) logr.Logger {
	if verbose > 0 {
		log.SetLevel(log.DebugLevel)
	}
	return funcr.New(func(prefix, args string) {
		log.Debugf("%s %s", prefix, args)
	}, funcr.Options{Verbosity: verbose})
}

func parseOperator(op string) (radd.Abstraction, bool, error) {
	switch op {
	case "minrep":
		return radd.ABSmin, true, nil
	case "maxrep":
		return radd.ABSmax, true, nil
	}
	for kind := radd.ABSexist; kind <= radd.ABSminExcept0; kind++ {
		if kind.String() == op {
			return kind, false, nil
		}
	}
	return 0, false, fmt.Errorf("unknown operator %q", op)
}

func runAbstract(w io.Writer, opts *AbstractOpts) error {
	kind, rep, err := parseOperator(opts.op)
	if err != nil {
		return err
	}
	values, varnum, err := parseTable(opts.table)
	if err != nil {
		return err
	}
	cfg := &Config{}
	if opts.config != "" {
		if cfg, err = LoadConfig(opts.config); err != nil {
			return err
		}
	}
	options, err := cfg.Options(newLogger(opts.verbose))
	if err != nil {
		return err
	}
	m, err := radd.New(varnum, options...)
	if err != nil {
		return err
	}
	if len(cfg.Order) > 0 {
		if err := m.Reorder(cfg.Order); err != nil {
			return err
		}
	}
	f, err := buildTable(m, values)
	if err != nil {
		return err
	}
	cube, err := m.AddCube(opts.cube)
	if err != nil {
		return err
	}
	log.Debugf("abstracting %v from an ADD with %d nodes using %s", opts.cube, m.DagSize(f), opts.op)
	var res radd.Node
	skip := opts.cube
	switch {
	case rep && kind == radd.ABSmin:
		res, err = m.MinAbstractRepresentative(f, cube)
		skip = nil
	case rep:
		res, err = m.MaxAbstractRepresentative(f, cube)
		skip = nil
	default:
		res, err = m.Abstract(f, cube, kind)
	}
	if err != nil {
		return err
	}
	if err := writeTable(w, m, res, skip); err != nil {
		return err
	}
	if opts.dot != "" {
		file, err := os.Create(opts.dot)
		if err != nil {
			return err
		}
		defer file.Close()
		names := make([]string, varnum)
		for i := range names {
			names[i] = fmt.Sprintf("x%d", i)
		}
		if err := m.WriteDot(file, names, res); err != nil {
			return fmt.Errorf("could not write %s: %v", opts.dot, err)
		}
	}
	if opts.stats {
		fmt.Fprintln(w, m.Stats())
	}
	return nil
}
