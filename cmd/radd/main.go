// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command radd builds an algebraic decision diagram from a table of values
// and applies one of the abstraction operators of package radd.
package main

func main() {
	Execute()
}
