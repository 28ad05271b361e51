package wpn

import (
	"context"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// SolveRoot drives root with a rising (proof_limit, disproof_limit) pair:
// starting from (initialProof, initialDisproof), each time Search returns
// without resolving the root, the limits are raised to
// max(current, root.proof+1) / max(current, root.disproof+1), clamped to
// PNInf. It loops until the root is terminal or a stop condition fires, then
// classifies the final result.
func SolveRoot(ctx context.Context, sctx *Context, root *searchtree.Node, initialProof, initialDisproof othellopn.ProofNumber) othellopn.Outcome {
	proofLimit, disproofLimit := initialProof, initialDisproof

	for {
		if sctx.Solved.Load() || contextx.IsCancelled(ctx) {
			return othellopn.Unknown
		}

		Search(ctx, sctx, root, proofLimit, disproofLimit)

		if IsTerminal(root) {
			classify(root)
			break
		}
		if sctx.Solved.Load() || contextx.IsCancelled(ctx) {
			break
		}

		proofLimit = raise(proofLimit, root.Proof)
		disproofLimit = raise(disproofLimit, root.Disproof)
	}

	return othellopn.ClassifyRoot(root.Proof, root.Disproof)
}

// raise returns max(limit, value+1), clamped to PNInf.
func raise(limit, value othellopn.ProofNumber) othellopn.ProofNumber {
	next := othellopn.Clamp(value + 1)
	if next > limit {
		return next
	}
	return limit
}
