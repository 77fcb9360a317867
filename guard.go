// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import (
	"errors"
	"fmt"
	"time"
)

// guard runs op, the recursive step of an exported operation, until it
// completes without a reordering of the variables. A failed attempt has
// already released all its intermediate results, so we can restart from the
// original operands, which are protected by the caller. On success we return
// the result with one reference owned by the caller. When the deadline
// expires, the timeout handler is called exactly once.
func (m *Manager) guard(name string, op func() (Node, error)) (Node, error) {
	for {
		m.polltick = m.pollinterval
		var res Node
		var err error
		if m.expired() {
			err = ErrTimeout
		} else {
			res, err = op()
		}
		switch {
		case err == nil:
			m.ref(res)
			if _DEBUG {
				if err := m.Check(); err != nil {
					m.log.Error(err, "inconsistent tables after operation", "op", name)
				}
				m.log.V(2).Info("operation done", "op", name, "result", res)
			}
			return res, nil
		case errors.Is(err, errReordered):
			m.log.V(1).Info("variables reordered during operation, restarting", "op", name)
			continue
		case errors.Is(err, ErrTimeout):
			m.log.V(1).Info("deadline exceeded", "op", name, "deadline", m.deadline)
			if m.ontimeout != nil {
				m.ontimeout(m)
			}
		default:
			m.log.Error(err, "operation failed", "op", name)
		}
		return 0, fmt.Errorf("%s: %w", name, err)
	}
}

// poll counts one recursive step and checks the deadline every pollinterval
// steps.
func (m *Manager) poll() error {
	if m.deadline.IsZero() {
		return nil
	}
	m.polltick--
	if m.polltick > 0 {
		return nil
	}
	m.polltick = m.pollinterval
	if m.expired() {
		return ErrTimeout
	}
	return nil
}

func (m *Manager) expired() bool {
	return !m.deadline.IsZero() && time.Now().After(m.deadline)
}

// SetDeadline sets an absolute deadline for all the following operations of
// the manager. An operation still running after t fails with ErrTimeout. The
// zero value of time.Time removes the deadline.
func (m *Manager) SetDeadline(t time.Time) {
	m.deadline = t
}

// Deadline returns the current deadline, or the zero time if none.
func (m *Manager) Deadline() time.Time {
	return m.deadline
}
