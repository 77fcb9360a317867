// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"time"

	"github.com/go-logr/logr"
)

// configs is used to store the values of different parameters of a Manager.
type configs struct {
	varnum          int           // number of variables
	nodesize        int           // initial number of nodes in the table
	cachesize       int           // initial cache size
	cacheratio      int           // ratio (%) between cache size and node table, 0 if size constant
	maxnodesize     int           // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int           // Maximum number of nodes that can be added to the table at each resize (0 if no limit)
	minfreenodes    int           // Minimum number of nodes (%) that should be left after GC before triggering a resize
	pollinterval    int           // number of recursive steps between deadline checks
	deadline        time.Time     // zero if no deadline
	timeout         time.Duration // relative deadline, computed when the manager is created
	ontimeout       func(*Manager)
	autodyn         int     // live nodes threshold for automatic reordering (0 if disabled)
	orderer         Orderer // computes the new order during automatic reordering
	log             logr.Logger
}

// Option is the type of configuration options accepted by New.
type Option func(*configs)

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.cachesize = _DEFAULTCACHESIZE
	c.pollinterval = _DEFAULTPOLL
	c.log = logr.Discard()
	// we build enough nodes to include the constants and the projection
	// functions (ADD and BDD) of every variable
	c.nodesize = 2*varnum + 3
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the table can
// increase during computation. By default we create a table large enough to
// include the constants and the projection functions of every variable.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+3 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the table. An operation trying to
// raise the number of nodes above this limit fails with ErrMemory. The default
// value (0) means that there is no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. Below this
// limit we typically double the size of the node list each time we need to
// resize it. The default value is about a million nodes. Set the value to zero
// to avoid imposing a limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in New
// it sets the ratio of free nodes (%) that has to be left after a Garbage
// Collection event. With a ratio of, say 25, we resize the table if the number
// of free nodes is less than 25% of the capacity of the table. The default
// value is 20%.
func Minfreenodes(ratio int) Option {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the initial number of entries in the operation cache. The default value
// is 10 000. See also the Cacheratio config.
func Cachesize(size int) Option {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" (%) so that the cache can grow each time we resize
// the node table. With a cache ratio of r, we have r available entries in the
// cache for every 100 slots in the node table. The default value (0) means
// that the cache size never grows.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// Logger is a configuration option (function) that sets the logger used by
// the manager. The default is logr.Discard().
func Logger(log logr.Logger) Option {
	return func(c *configs) {
		c.log = log
	}
}

// Deadline is a configuration option (function) that sets an absolute
// deadline for all the operations of the manager. See SetDeadline.
func Deadline(t time.Time) Option {
	return func(c *configs) {
		c.deadline = t
	}
}

// Timeout is a configuration option (function) that sets a deadline d after
// the creation of the manager.
func Timeout(d time.Duration) Option {
	return func(c *configs) {
		c.timeout = d
	}
}

// TimeoutHandler is a configuration option (function) that registers a
// function called once, at the end of each exported operation that fails
// because the deadline expired.
func TimeoutHandler(f func(*Manager)) Option {
	return func(c *configs) {
		c.ontimeout = f
	}
}

// Pollinterval is a configuration option (function) that sets the number of
// recursive steps between two checks of the deadline. The deadline is also
// checked when an operation starts.
func Pollinterval(steps int) Option {
	return func(c *configs) {
		if steps > 0 {
			c.pollinterval = steps
		}
	}
}

// Autodyn is a configuration option (function) that enables automatic
// reordering. When the number of live nodes goes above threshold during an
// allocation, the manager calls f to obtain a new variable order, moves to
// this order, and restarts the current operation. The threshold is doubled
// after each reordering.
func Autodyn(threshold int, f Orderer) Option {
	return func(c *configs) {
		if threshold > 0 && f != nil {
			c.autodyn = threshold
			c.orderer = f
		}
	}
}
