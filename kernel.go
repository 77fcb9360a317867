// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "math"

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of variables in a manager. Variable indices
// are stored on 31 bits, the remaining value is reserved for constants.
const _MAXVAR int = 0x1FFFFF

// _CONSTINDEX is the index (and level) given to terminal nodes. Constants
// always sit below every variable in the order.
const _CONSTINDEX int32 = math.MaxInt32

// _FREEINDEX marks an unused slot in the node table.
const _FREEINDEX int32 = -1

// _MAXREFCOUNT is the saturation value of reference counts. A node reaching
// this value is stuck in the table (this is how constants and projection
// variables are pinned).
const _MAXREFCOUNT int32 = math.MaxInt32 >> 1

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize. It is approx. one million nodes (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DEFAULTCACHESIZE is the number of cache entries used when no Cachesize
// option is given.
const _DEFAULTCACHESIZE int = 10000

// _DEFAULTPOLL is the number of recursive steps between two deadline checks.
const _DEFAULTPOLL int = 1 << 10
