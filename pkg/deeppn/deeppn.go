// Package deeppn implements the sequential Deep-PN reference variant, kept
// for historical and experimental interest only: a single-threaded
// proof-number search using the classical sum/min update rule (not the WPN
// min+branch rule of pkg/wpn), with most-proving-child selection biased by
// a depth-proximity term gated by a constant R. It shares no code path with
// the parallel WPN core and has its own transposition table; it exists
// beside the primary engine as an unwired alternate, the way this
// repository keeps other historical engine variants alongside the one it
// ships.
//
// DPN scoring: score(proof, depth) = proof + (R-1)*depth. At R=1 the depth
// term vanishes and selection collapses to plain proof-number search. All
// children of a node share one depth, so for R>1 the term adds the same
// amount to every candidate and changes the selection only where scores
// clamp at PNInf.
package deeppn

import (
	"context"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// DefaultR is the gating constant at which DPN degenerates to plain PN.
const DefaultR = 1

// Solver runs a sequential Deep-PN search to a root resolution.
type Solver struct {
	R     othellopn.ProofNumber
	table map[key]entry
	nodes uint64
}

type key struct {
	black, white uint64
	side         othellopn.Side
}

type entry struct {
	proof, disproof othellopn.ProofNumber
}

// NewSolver creates a Deep-PN solver gated by r. r must be >= 1.
func NewSolver(r othellopn.ProofNumber) *Solver {
	if r < 1 {
		r = DefaultR
	}
	return &Solver{R: r, table: make(map[key]entry)}
}

// Nodes returns the number of node visits made by the most recent Solve call.
func (s *Solver) Nodes() uint64 { return s.nodes }

// Solve runs proof-number search from pos to completion (root proven,
// disproven, or ctx cancelled) and returns the root's classified outcome.
func (s *Solver) Solve(ctx context.Context, pos othellopn.Position) othellopn.Outcome {
	root := searchtree.New(pos)
	s.nodes = 1 // the root visit
	s.expand(root)
	s.update(root)
	s.store(root)

	for !root.IsProven() && !root.IsDisproven() {
		if contextx.IsCancelled(ctx) {
			return othellopn.Unknown
		}
		s.develop(ctx, root, 0)
	}
	return othellopn.ClassifyRoot(root.Proof, root.Disproof)
}

// develop expands the most-proving node reachable from n (selected by DPN
// score) and propagates the update back to n.
func (s *Solver) develop(ctx context.Context, n *searchtree.Node, depth othellopn.ProofNumber) {
	s.nodes++

	if !n.IsExpanded() {
		s.expand(n)
		s.update(n)
		s.store(n)
		return
	}

	mpc := s.mostProvingChild(n, depth+1)
	if mpc == nil {
		return
	}
	if contextx.IsCancelled(ctx) {
		return
	}

	if mpc.Pos.IsGameOver() {
		classifyTerminal(mpc)
		s.store(mpc)
	} else {
		s.develop(ctx, mpc, depth+1)
	}

	s.update(n)
	s.store(n)
}

// mostProvingChild selects the child minimizing the DPN score for n's side
// to play: proof-seeking for an OR-node (Black to play), disproof-seeking
// for an AND-node.
func (s *Solver) mostProvingChild(n *searchtree.Node, childDepth othellopn.ProofNumber) *searchtree.Node {
	var best *searchtree.Node
	var bestScore othellopn.ProofNumber

	or := othellopn.SideToPlay(n.Pos.Black, n.Pos.White, n.Pos.Side) == othellopn.Black
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.IsProven() || c.IsDisproven() {
			continue
		}
		var v othellopn.ProofNumber
		if or {
			v = c.Proof
		} else {
			v = c.Disproof
		}
		score := dpnScore(v, childDepth, s.R)
		if best == nil || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// dpnScore implements score(v, depth) = v + (R-1)*depth.
func dpnScore(v, depth, r othellopn.ProofNumber) othellopn.ProofNumber {
	if r <= 1 {
		return v
	}
	return othellopn.Clamp(v + (r-1)*depth)
}

func (s *Solver) expand(n *searchtree.Node) {
	if n.Pos.IsGameOver() {
		classifyTerminal(n)
		return
	}
	moves := n.Pos.LegalMoves()
	for moves != 0 {
		m := moves.LastPopSquare()
		moves &^= othellopn.BitMask(m)

		c := searchtree.New(n.Pos.Apply(m))
		if e, ok := s.table[posKey(c.Pos)]; ok {
			c.Proof, c.Disproof = e.proof, e.disproof
		}
		if c.Pos.IsGameOver() {
			classifyTerminal(c)
		}
		n.AddChild(c)
	}
}

func (s *Solver) store(n *searchtree.Node) {
	s.table[posKey(n.Pos)] = entry{proof: n.Proof, disproof: n.Disproof}
}

func posKey(pos othellopn.Position) key {
	return key{black: uint64(pos.Black), white: uint64(pos.White), side: pos.Side}
}

// update applies the classical PN sum/min rule: OR-nodes take the min child
// proof and sum child disproof; AND-nodes mirror it. This is deliberately
// the historical PNS rule, not the WPN min+branch rule of pkg/wpn.
func (s *Solver) update(n *searchtree.Node) {
	if !n.IsExpanded() {
		return
	}
	if othellopn.SideToPlay(n.Pos.Black, n.Pos.White, n.Pos.Side) == othellopn.Black {
		proof := othellopn.PNInf
		var disproofSum othellopn.ProofNumber
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Proof < proof {
				proof = c.Proof
			}
			disproofSum = othellopn.Clamp(disproofSum + c.Disproof)
		}
		n.Proof, n.Disproof = othellopn.Clamp(proof), disproofSum
	} else {
		disproof := othellopn.PNInf
		var proofSum othellopn.ProofNumber
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Disproof < disproof {
				disproof = c.Disproof
			}
			proofSum = othellopn.Clamp(proofSum + c.Proof)
		}
		n.Proof, n.Disproof = proofSum, othellopn.Clamp(disproof)
	}
}

func classifyTerminal(n *searchtree.Node) {
	if n.IsProven() || n.IsDisproven() {
		return
	}
	if othellopn.MaterialWinner(n.Pos.Black, n.Pos.White) == othellopn.Black {
		n.Proof, n.Disproof = 0, othellopn.PNInf
	} else {
		n.Proof, n.Disproof = othellopn.PNInf, 0
	}
}
