// Package worker implements Lazy-SMP worker orchestration: independent
// per-thread root searches that share nothing but the transposition table,
// differing only in their initial proof/disproof threshold stagger. The
// first worker to resolve its root commits the result; the rest observe the
// shared "solved" flag and return.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/herohde/wpnsolver/pkg/ttable"
	"github.com/herohde/wpnsolver/pkg/wpn"
	"github.com/seekerror/logw"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a parallel solve, plus reporting statistics.
type Result struct {
	Outcome othellopn.Outcome
	Nodes   uint64
	Hits    uint64
	Stores  uint64
}

// Run spawns threads independent workers, each running its own root search
// over pos against the shared table tt, until the first worker resolves the
// root or deadline elapses. Workers differ only in their initial threshold,
// staggered as 1+(id mod 4) -- the sole source of search diversity in this
// Lazy SMP style: different starting thresholds cause different expansion
// orders, different TT writes, and thus cross-pollination between
// otherwise-independent searches.
func Run(ctx context.Context, pos othellopn.Position, threads int, deadline time.Time, tt *ttable.Table) Result {
	wctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	var solved atomic.Bool
	var nodes atomic.Uint64
	var outcome atomic.Int32 // othellopn.Outcome, Unknown==0 by construction

	g, gctx := errgroup.WithContext(wctx)
	for id := 0; id < threads; id++ {
		id := id
		g.Go(func() error {
			runWorker(gctx, id, pos, tt, &solved, &nodes, &outcome)
			return nil
		})
	}
	_ = g.Wait()

	logw.Infof(ctx, "Solve complete: outcome=%v nodes=%v %v", othellopn.Outcome(outcome.Load()), nodes.Load(), tt)

	return Result{
		Outcome: othellopn.Outcome(outcome.Load()),
		Nodes:   nodes.Load(),
		Hits:    tt.Hits(),
		Stores:  tt.Stores(),
	}
}

// runWorker runs a single worker's root search to completion (resolved, or
// cancelled by deadline/solved) and, if it resolved the position, attempts
// to commit the result via a single compare-and-swap on solved. Losing the
// race is not an error: the winner's value stands and this worker's result
// is simply discarded.
func runWorker(ctx context.Context, id int, pos othellopn.Position, tt *ttable.Table, solved *atomic.Bool, nodes *atomic.Uint64, outcome *atomic.Int32) {
	root := searchtree.New(pos)
	sctx := &wpn.Context{TT: tt, Solved: solved, Nodes: nodes}

	init := othellopn.ProofNumber(1 + id%4)
	result := wpn.SolveRoot(ctx, sctx, root, init, init)

	if result != othellopn.Unknown && solved.CompareAndSwap(false, true) {
		outcome.Store(int32(result))
	}
}
