// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "math"

// AddOp describes the binary operations available on an Apply. All operators
// work on ADDs; OPor is only meaningful for 0-1 ADDs.
type AddOp int

const (
	OPplus       AddOp = iota // Sum
	OPtimes                   // Product
	OPminus                   // Difference
	OPdivide                  // Division
	OPmin                     // Minimum
	OPmax                     // Maximum
	OPor                      // Disjunction of 0-1 ADDs
	OPminExcept0              // Minimum, where 0 stands for a missing value
)

var opnames = [8]string{
	OPplus:       "plus",
	OPtimes:      "times",
	OPminus:      "minus",
	OPdivide:     "divide",
	OPmin:        "min",
	OPmax:        "max",
	OPor:         "or",
	OPminExcept0: "minExcept0",
}

func (op AddOp) String() string {
	if op < 0 || int(op) >= len(opnames) {
		return "unknown"
	}
	return opnames[op]
}

// commutative operators are normalized before a cache lookup
func (op AddOp) commutative() bool {
	return op != OPminus && op != OPdivide
}

// opres returns the value of op on two terminals.
func opres(op AddOp, a, b float64) float64 {
	switch op {
	case OPplus:
		return a + b
	case OPtimes:
		return a * b
	case OPminus:
		return a - b
	case OPdivide:
		return a / b
	case OPmin:
		return math.Min(a, b)
	case OPmax:
		return math.Max(a, b)
	case OPor:
		if a != 0 || b != 0 {
			return 1
		}
		return 0
	case OPminExcept0:
		switch {
		case a == 0:
			return b
		case b == 0:
			return a
		}
		return math.Min(a, b)
	}
	return math.NaN()
}

// CmpOp describes the relational operators accepted by Compare. The result
// of a comparison is a BDD.
type CmpOp int

const (
	CMPle CmpOp = iota // Less than or equal
	CMPge              // Greater than or equal
	CMPeq              // Equal
)

var cmpnames = [3]string{
	CMPle: "le",
	CMPge: "ge",
	CMPeq: "eq",
}

func (op CmpOp) String() string {
	if op < 0 || int(op) >= len(cmpnames) {
		return "unknown"
	}
	return cmpnames[op]
}

func cmpres(op CmpOp, a, b float64) bool {
	switch op {
	case CMPle:
		return a <= b
	case CMPge:
		return a >= b
	}
	return a == b
}

// ************************************************************

// cacheid is the operation tag of an entry in the operation cache.
type cacheid int

// Hash value modifiers to distinguish between entries in the cache. The
// operator of Apply and Compare is stored in the third operand.
const (
	cacheid_NONE cacheid = iota
	cacheid_APPLY
	cacheid_NEGATE
	cacheid_COMPARE
	cacheid_ADDITE
	cacheid_BDDITE
	cacheid_BDDTOADD
	cacheid_EXIST
	cacheid_UNIV
	cacheid_OR
	cacheid_MIN
	cacheid_MAX
	cacheid_MINEXCEPT0
	cacheid_MINREP
	cacheid_MAXREP
	cacheid_COFACTOR
	cacheid_PERMUTE
	cacheid_BDDPERMUTE
)
