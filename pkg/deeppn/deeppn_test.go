package deeppn_test

import (
	"context"
	"testing"

	"github.com/herohde/wpnsolver/pkg/deeppn"
	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/stretchr/testify/assert"
)

func sq(file, rank int) int { return rank*8 + file }

func trivialBlackWin(t *testing.T) othellopn.Position {
	t.Helper()

	var black othellopn.Bitboard
	for i := 1; i < 64; i++ {
		black |= othellopn.BitMask(i)
	}
	pos, err := othellopn.NewPosition(black, othellopn.EmptyBitboard, othellopn.Black)
	assert.NoError(t, err)
	return pos
}

func splitBoard(t *testing.T) othellopn.Position {
	t.Helper()

	var black, white othellopn.Bitboard
	for r := 0; r < 8; r++ {
		for f := 0; f < 4; f++ {
			black |= othellopn.BitMask(sq(f, r))
		}
		for f := 4; f < 8; f++ {
			white |= othellopn.BitMask(sq(f, r))
		}
	}
	pos, err := othellopn.NewPosition(black, white, othellopn.Black)
	assert.NoError(t, err)
	return pos
}

func TestSolver(t *testing.T) {
	ctx := context.Background()

	t.Run("R=1 resolves a trivial win like plain PN", func(t *testing.T) {
		s := deeppn.NewSolver(deeppn.DefaultR)
		outcome := s.Solve(ctx, trivialBlackWin(t))
		assert.Equal(t, othellopn.Win, outcome)
		assert.Greater(t, s.Nodes(), uint64(0))
	})

	t.Run("a material draw resolves to Lose", func(t *testing.T) {
		s := deeppn.NewSolver(deeppn.DefaultR)
		outcome := s.Solve(ctx, splitBoard(t))
		assert.Equal(t, othellopn.Lose, outcome)
	})

	t.Run("R greater than 1 reaches the same verdict as R=1", func(t *testing.T) {
		s1 := deeppn.NewSolver(1)
		o1 := s1.Solve(ctx, trivialBlackWin(t))

		s2 := deeppn.NewSolver(4)
		o2 := s2.Solve(ctx, trivialBlackWin(t))

		assert.Equal(t, o1, o2)
	})

	t.Run("R below 1 falls back to the default", func(t *testing.T) {
		s := deeppn.NewSolver(0)
		assert.Equal(t, othellopn.ProofNumber(deeppn.DefaultR), s.R)
	})
}
