// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "radd",
	Short: "radd is a tool for computing with algebraic decision diagrams",
	Long:  `The tool builds an ADD from an explicit table of values, abstracts a set of variables using sum, product, disjunction, min or max, and prints the result as a table or in the DOT format`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	rootCmd.AddCommand(NewAbstractCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
