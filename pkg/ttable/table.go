// Package ttable implements the shared, lock-striped transposition table
// that mediates all work reuse between proof-number search workers. It is
// the sole inter-worker communication channel (see pkg/worker).
package ttable

import (
	"context"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/seekerror/logw"
)

// DefaultStripeCount is used when callers don't have an opinion. It
// comfortably exceeds any realistic worker count, so contention on a given
// stripe stays stochastic rather than systematic.
const DefaultStripeCount = 1 << 16

// entry is a fixed-size, POD transposition table slot. Capacity is a fixed
// entry count derived from a configured megabyte budget.
type entry struct {
	Black, White othellopn.Bitboard
	Side         othellopn.Side
	Proof        othellopn.ProofNumber
	Disproof     othellopn.ProofNumber
	Valid        bool
}

// Table is the shared transposition table: {black, white, side, proof,
// disproof, valid}, open-addressed and keyed by hashing (black, white)
// modulo the entry count. Replacement policy is always-replace: any
// two-bucket or depth-preferred scheme would require atomically comparing
// old-vs-new, amplifying lock-hold time for no correctness gain, since
// weak-PN propagation tends to converge monotonically.
type Table struct {
	entries []entry
	mask    uint64
	stripes *StripeLocks

	hits, stores, lookups atomic.Uint64
}

// New allocates a Table sized to hold approximately sizeMB megabytes of
// entries (rounded up to the next power of two), guarded by stripeCount
// spinlocks.
func New(ctx context.Context, sizeMB uint64, stripeCount int) *Table {
	entrySize := uint64(unsafe.Sizeof(entry{}))
	n := nextPow2((sizeMB << 20) / entrySize)
	if n == 0 {
		n = 1
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v entries, %v stripes", sizeMB, n, stripeCount)

	return &Table{
		entries: make([]entry, n),
		mask:    n - 1,
		stripes: NewStripeLocks(stripeCount),
	}
}

// index hashes (black, white) and reduces modulo the entry count.
func (t *Table) index(black, white othellopn.Bitboard) uint64 {
	return mix(uint64(black), uint64(white)) & t.mask
}

// mix combines the two boards with a multiplicative step and an avalanche
// finalizer, so that neighboring positions don't cluster into neighboring
// slots.
func mix(black, white uint64) uint64 {
	h := black*0x9E3779B97F4A7C15 + white
	return avalanche(h)
}

// avalanche is the MurmurHash3 fmix64 finalizer: each output bit depends on
// every input bit.
func avalanche(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xFF51AFD7ED558CCD
	x ^= x >> 33
	x *= 0xC4CEB9FE1A85EC53
	x ^= x >> 33
	return x
}

// Lookup performs an atomic read of the slot under its stripe lock. A hit
// requires the full key (black, white, side) to match -- this is what makes
// the always-replace policy sound under heavy contention: a hash collision
// degrades to a benign miss rather than a false positive.
func (t *Table) Lookup(black, white othellopn.Bitboard, side othellopn.Side) (proof, disproof othellopn.ProofNumber, ok bool) {
	idx := t.index(black, white)
	lock := t.stripes.For(idx)

	lock.Lock()
	e := t.entries[idx]
	lock.Unlock()

	t.lookups.Add(1)
	if e.Valid && e.Black == black && e.White == white && e.Side == side {
		t.hits.Add(1)
		return e.Proof, e.Disproof, true
	}
	return 0, 0, false
}

// Store unconditionally overwrites the slot under its stripe lock.
func (t *Table) Store(black, white othellopn.Bitboard, side othellopn.Side, proof, disproof othellopn.ProofNumber) {
	idx := t.index(black, white)
	lock := t.stripes.For(idx)

	lock.Lock()
	t.entries[idx] = entry{Black: black, White: white, Side: side, Proof: proof, Disproof: disproof, Valid: true}
	lock.Unlock()

	t.stores.Add(1)
}

// Len returns the entry count.
func (t *Table) Len() int {
	return len(t.entries)
}

// SizeBytes returns the table's allocation size in bytes.
func (t *Table) SizeBytes() uint64 {
	return uint64(len(t.entries)) * uint64(unsafe.Sizeof(entry{}))
}

// Hits returns the number of successful lookups so far. Relaxed counter: not
// required for correctness, only for reporting.
func (t *Table) Hits() uint64 {
	return t.hits.Load()
}

// Stores returns the number of stores so far.
func (t *Table) Stores() uint64 {
	return t.stores.Load()
}

// Lookups returns the number of Lookup calls so far, hit or miss.
func (t *Table) Lookups() uint64 {
	return t.lookups.Load()
}

// HitRate returns the fraction of lookups that hit, in [0;1]. 0 if there
// have been no lookups yet.
func (t *Table) HitRate() float64 {
	lookups := t.lookups.Load()
	if lookups == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(lookups)
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%v entries, %v hits, %v stores]", len(t.entries), t.Hits(), t.Stores())
}
