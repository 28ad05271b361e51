package wpn_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/herohde/wpnsolver/pkg/ttable"
	"github.com/herohde/wpnsolver/pkg/wpn"
	"github.com/stretchr/testify/assert"
)

func newContext(ctx context.Context) *wpn.Context {
	var nodes atomic.Uint64
	var solved atomic.Bool
	return &wpn.Context{TT: ttable.New(ctx, 1, 16), Solved: &solved, Nodes: &nodes}
}

func sq(file, rank int) int { return rank*8 + file }

// trivialBlackWin is 63 black discs and one empty square, Black to move.
// Black wins regardless of the move played.
func trivialBlackWin() othellopn.Position {
	var black othellopn.Bitboard
	for i := 0; i < 64; i++ {
		if i != 0 {
			black |= othellopn.BitMask(i)
		}
	}
	pos, err := othellopn.NewPosition(black, othellopn.EmptyBitboard, othellopn.Black)
	if err != nil {
		panic(err)
	}
	return pos
}

func TestSolveRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("trivial black win resolves to Win", func(t *testing.T) {
		sctx := newContext(ctx)
		root := searchtree.New(trivialBlackWin())

		outcome := wpn.SolveRoot(ctx, sctx, root, 1, 1)
		assert.Equal(t, othellopn.Win, outcome)
	})

	t.Run("no legal moves for either side is immediately terminal", func(t *testing.T) {
		// An arrangement with no empty squares adjacent to any opposite-color
		// boundary: split the board down the middle with no contested edge.
		var black, white othellopn.Bitboard
		for r := 0; r < 8; r++ {
			for f := 0; f < 4; f++ {
				black |= othellopn.BitMask(sq(f, r))
			}
			for f := 4; f < 8; f++ {
				white |= othellopn.BitMask(sq(f, r))
			}
		}
		assert.True(t, othellopn.IsGameOver(black, white))

		pos, err := othellopn.NewPosition(black, white, othellopn.Black)
		assert.NoError(t, err)

		sctx := newContext(ctx)
		root := searchtree.New(pos)

		outcome := wpn.SolveRoot(ctx, sctx, root, 1, 1)
		assert.NotEqual(t, othellopn.Unknown, outcome)
		assert.True(t, root.IsProven() || root.IsDisproven() || (root.Proof >= othellopn.PNInf && root.Disproof >= othellopn.PNInf))
	})

	t.Run("is terminal excludes the proven-draw pair by design", func(t *testing.T) {
		// The standard start: the game is not over, so only the (proof,
		// disproof) pair can make the node terminal.
		black := othellopn.BitMask(sq(4, 3)) | othellopn.BitMask(sq(3, 4))
		white := othellopn.BitMask(sq(3, 3)) | othellopn.BitMask(sq(4, 4))
		pos, err := othellopn.NewPosition(black, white, othellopn.Black)
		assert.NoError(t, err)

		n := searchtree.New(pos)
		n.Proof, n.Disproof = othellopn.PNInf, othellopn.PNInf
		assert.False(t, wpn.IsTerminal(n))
	})
}
