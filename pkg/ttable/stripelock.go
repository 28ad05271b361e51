package ttable

import (
	"math/bits"

	"github.com/herohde/wpnsolver/pkg/spinlock"
)

// StripeLocks is an array of spinlocks of power-of-two length, used to
// protect a much larger shared array (the transposition table) without
// serializing all workers behind a single lock. The lock protecting slot i
// is locks[i mod len(locks)] -- a bit-mask since the length is a power of two.
//
// The stripe count should exceed the expected worker count by a wide margin
// to keep contention stochastic rather than systematic.
type StripeLocks struct {
	locks []spinlock.Spinlock
	mask  uint64
}

// NewStripeLocks creates a stripe lock array with at least n locks, rounded
// up to the next power of two.
func NewStripeLocks(n int) *StripeLocks {
	if n < 1 {
		n = 1
	}
	count := nextPow2(uint64(n))
	return &StripeLocks{
		locks: make([]spinlock.Spinlock, count),
		mask:  count - 1,
	}
}

// For returns the spinlock guarding the slot with the given table index.
func (s *StripeLocks) For(index uint64) *spinlock.Spinlock {
	return &s.locks[index&s.mask]
}

// Len returns the number of stripes.
func (s *StripeLocks) Len() int {
	return len(s.locks)
}

func nextPow2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(v-1)
}
