// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package radd defines a Manager for Algebraic Decision Diagrams (ADD) and
Binary Decision Diagrams (BDD), two data structures used to efficiently
represent functions over a fixed set of Boolean variables. An ADD maps every
assignment of the variables to a number (a float64), while a BDD maps every
assignment to a Boolean. The library is mostly used to build and then
"abstract" large functions, meaning eliminating variables by summing (or
multiplying, or taking the minimum, ...) over their possible values.

Basics

Each Manager has a fixed number of variables, Varnum, declared when it is
initialized (using the method New) and each variable is represented by an
(integer) index in the interval [0..Varnum). Variables are ordered; the
position of a variable in the current order is called its level. Initially
the level of a variable is its index, but the order can be changed using
Reorder, or automatically when the manager is created with option Autodyn.

Most operations return a Node; that is a reference to a "vertex" in the
manager that includes a variable index, and the address of the then and
else branches for this node. The constant 1 is shared by ADDs (the value 1)
and BDDs (the value true). BDDs use complement edges, so that the negation
of a BDD is computed in constant time; the BDD constant false is the
complement of true and is different from the ADD constant 0. Use BddToAdd to
convert a BDD into a 0-1 ADD.

Abstractions

Variables are abstracted using a cube, a conjunction of positive literals
built with AddCube. Methods ExistAbstract, UnivAbstract, OrAbstract,
MinAbstract, MaxAbstract and MinExcept0Abstract combine the two cofactors of
each variable of the cube using respectively sum, product, disjunction,
minimum, maximum and minimum ignoring zeros. The methods
MinAbstractRepresentative and MaxAbstractRepresentative return a BDD that
selects, for every assignment of the other variables, one assignment of the
variables of the cube reaching the minimum (maximum).

Memory management

Nodes are reference counted. Every Node returned by an exported method
carries one reference owned by the caller that should be released, with
Deref, when the node is no longer needed. Nodes without references are
"dead" and are reclaimed during garbage collection, which occurs when the
node table is full, unless they are found again (in the unique tables or in
the operation cache) before. Constants 0 and 1, and the projection functions
returned by IthVar and BddVar, are never reclaimed.

A Manager is not safe for concurrent use. Garbage collection and reordering
of variables may occur during any operation that creates nodes; an
operation interrupted by an automatic reordering is transparently restarted.
Operations can also fail with ErrTimeout when a deadline has been set, or
with ErrMemory when the node table cannot grow anymore (see option
Maxnodesize).

Use of build tags

To get access to better statistics about the node table, as well as to
unlock logging of some operations, you can compile your executable with the
build tag `debug`. Otherwise the Manager logs through the logr.Logger set
with option Logger.
*/
package radd
