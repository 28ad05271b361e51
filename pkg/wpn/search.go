// Package wpn implements the Weak Proof Number search algorithm: recursive
// AND/OR expansion with proof/disproof number propagation, against a shared
// transposition table.
package wpn

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/herohde/wpnsolver/pkg/ttable"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Context holds the state shared across all nodes of a single worker's
// search: the transposition table, the two cooperative cancellation signals
// (solved and, via ctx, the time deadline), and the relaxed node counter.
type Context struct {
	TT     *ttable.Table
	Solved *atomic.Bool
	Nodes  *atomic.Uint64
}

// IsTerminal reports whether n is terminal: already proven or disproven, or
// the underlying position has ended the game. A proven draw (PNInf, PNInf)
// is deliberately *not* treated as terminal here -- a draw keeps getting
// visited until the rising thresholds dismiss it, rather than being
// short-circuited.
func IsTerminal(n *searchtree.Node) bool {
	if n.IsProven() || n.IsDisproven() {
		return true
	}
	return n.Pos.IsGameOver()
}

// classify assigns (proof, disproof) to a game-over node: a win for the side
// we search for (Black, by convention) is (0, PNInf); anything else -- a
// White win or a material draw -- is (PNInf, 0), since the search only
// answers the strict "does Black win" question. It is a no-op if n is
// already proven or disproven.
func classify(n *searchtree.Node) {
	if n.IsProven() || n.IsDisproven() {
		return
	}
	if othellopn.MaterialWinner(n.Pos.Black, n.Pos.White) == othellopn.Black {
		n.Proof, n.Disproof = 0, othellopn.PNInf
	} else {
		n.Proof, n.Disproof = othellopn.PNInf, 0
	}
}

// expand generates n's children by iterating the resolved active side's
// legal moves. Only called on a non-terminal node, so the active side is
// guaranteed at least one legal move (IsGameOver already ruled out the
// all-pass case).
func expand(n *searchtree.Node) {
	moves := n.Pos.LegalMoves()
	for moves != 0 {
		m := moves.LastPopSquare()
		moves &^= othellopn.BitMask(m)

		n.AddChild(searchtree.New(n.Pos.Apply(m)))
	}
}

// refresh overwrites c's (proof, disproof) with the TT's current values, if
// present, then reclassifies c if it has since become terminal.
func refresh(tt *ttable.Table, c *searchtree.Node) {
	if proof, disproof, ok := tt.Lookup(c.Pos.Black, c.Pos.White, c.Pos.Side); ok {
		c.Proof, c.Disproof = proof, disproof
	}
	if IsTerminal(c) {
		classify(c)
	}
}

// store writes n's current (proof, disproof) to the shared table.
func store(tt *ttable.Table, n *searchtree.Node) {
	tt.Store(n.Pos.Black, n.Pos.White, n.Pos.Side, n.Proof, n.Disproof)
}

// update applies the weak-PN AND/OR update rule to n from its current
// children. OR-nodes are positions where Black is to play; AND-nodes are
// positions where White is to play.
func update(n *searchtree.Node) {
	if othellopn.SideToPlay(n.Pos.Black, n.Pos.White, n.Pos.Side) == othellopn.Black {
		updateOR(n)
	} else {
		updateAND(n)
	}
}

func updateOR(n *searchtree.Node) {
	proof := othellopn.PNInf
	var disproofMax, branch othellopn.ProofNumber

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Proof < proof {
			proof = c.Proof
		}
		if c.Disproof > disproofMax {
			disproofMax = c.Disproof
		}
		if c.Proof != 0 && c.Disproof != 0 {
			branch++
		}
	}
	n.Proof = othellopn.Clamp(proof)
	n.Disproof = othellopn.Clamp(disproofMax + branch)
}

func updateAND(n *searchtree.Node) {
	var proofMax othellopn.ProofNumber
	disproof := othellopn.PNInf
	var branch othellopn.ProofNumber

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Proof > proofMax {
			proofMax = c.Proof
		}
		if c.Disproof < disproof {
			disproof = c.Disproof
		}
		if c.Proof != 0 && c.Disproof != 0 {
			branch++
		}
	}
	n.Proof = othellopn.Clamp(proofMax + branch)
	n.Disproof = othellopn.Clamp(disproof)
}

// sortChildren orders n's children by ascending proof (OR-nodes) or
// ascending disproof (AND-nodes), so the head of the list is the
// most-proving child.
func sortChildren(n *searchtree.Node) {
	children := n.Children()
	if len(children) < 2 {
		return
	}

	if othellopn.SideToPlay(n.Pos.Black, n.Pos.White, n.Pos.Side) == othellopn.Black {
		sort.SliceStable(children, func(i, j int) bool { return children[i].Proof < children[j].Proof })
	} else {
		sort.SliceStable(children, func(i, j int) bool { return children[i].Disproof < children[j].Disproof })
	}
	n.Relink(children)
}

// Search runs the recursive proof-number search procedure at n, with the
// given proof/disproof termination thresholds. It mutates n (and its
// subtree) in place and returns once the node is resolved, its threshold is
// met, an update changes its (proof, disproof) pair, or a cancellation
// signal (sctx.Solved or ctx's deadline) fires.
func Search(ctx context.Context, sctx *Context, n *searchtree.Node, proofLimit, disproofLimit othellopn.ProofNumber) {
	if sctx.Solved.Load() || contextx.IsCancelled(ctx) {
		return
	}
	sctx.Nodes.Add(1)

	if proof, disproof, ok := sctx.TT.Lookup(n.Pos.Black, n.Pos.White, n.Pos.Side); ok {
		n.Proof, n.Disproof = proof, disproof
	}
	if n.Proof >= proofLimit || n.Disproof >= disproofLimit {
		return
	}
	if IsTerminal(n) {
		classify(n)
		store(sctx.TT, n)
		return
	}

	for {
		if !n.IsExpanded() {
			expand(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			refresh(sctx.TT, c)
		}

		oldProof, oldDisproof := n.Proof, n.Disproof
		update(n)

		if n.Proof != oldProof || n.Disproof != oldDisproof {
			store(sctx.TT, n)
			return
		}
		if n.Proof >= proofLimit || n.Disproof >= disproofLimit {
			store(sctx.TT, n)
			return
		}
		if IsTerminal(n) {
			classify(n)
			store(sctx.TT, n)
			return
		}

		sortChildren(n)
		Search(ctx, sctx, n.FirstChild, proofLimit, disproofLimit)
	}
}
