package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/ttable"
	"github.com/herohde/wpnsolver/pkg/worker"
	"github.com/stretchr/testify/assert"
)

func standardStart() (black, white othellopn.Bitboard) {
	white = othellopn.BitMask(sq(3, 3)) | othellopn.BitMask(sq(4, 4))
	black = othellopn.BitMask(sq(4, 3)) | othellopn.BitMask(sq(3, 4))
	return black, white
}

// TestScenarios covers representative end-to-end positions: a full-game
// draw from the standard start, trivial and near-trivial material wins, a
// small endgame, a pass/pass terminal, and thread-count agreement.
func TestScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("standard start resolves to a draw (full game, slow)", func(t *testing.T) {
		if testing.Short() {
			t.Skip("full-game solve from the standard start is too slow for -short")
		}

		black, white := standardStart()
		pos, err := othellopn.NewPosition(black, white, othellopn.Black)
		assert.NoError(t, err)

		tt := ttable.New(ctx, 256, ttable.DefaultStripeCount)
		r := worker.Run(ctx, pos, 8, time.Now().Add(10*time.Minute), tt)
		assert.Equal(t, othellopn.DrawOutcome, r.Outcome)
	})

	t.Run("63 discs for black, 1 empty: win regardless of move", func(t *testing.T) {
		pos := trivialBlackWin(t)

		tt := ttable.New(ctx, 1, 16)
		r := worker.Run(ctx, pos, 4, time.Now().Add(5*time.Second), tt)
		assert.Equal(t, othellopn.Win, r.Outcome)
	})

	t.Run("small endgame resolves deterministically within a second", func(t *testing.T) {
		// "--------OOOOOOOO--------------------------------------XXXXXXXX"
		var black, white othellopn.Bitboard
		for f := 0; f < 8; f++ {
			white |= othellopn.BitMask(sq(f, 1))
			black |= othellopn.BitMask(sq(f, 7))
		}
		pos, err := othellopn.NewPosition(black, white, othellopn.Black)
		assert.NoError(t, err)

		tt := ttable.New(ctx, 16, 1024)
		r := worker.Run(ctx, pos, 4, time.Now().Add(time.Second), tt)
		assert.NotEqual(t, othellopn.Unknown, r.Outcome)
	})

	t.Run("proven win position resolves to Win", func(t *testing.T) {
		pos, err := othellopn.NewPosition(0x00000000124A1000, 0x3EBDFFED8DB5AF87, othellopn.Black)
		assert.NoError(t, err)

		tt := ttable.New(ctx, 64, 4096)
		r := worker.Run(ctx, pos, 8, time.Now().Add(30*time.Second), tt)
		assert.Equal(t, othellopn.Win, r.Outcome)
	})

	t.Run("neither side has a legal move is immediately terminal", func(t *testing.T) {
		pos := splitBoard(t)
		assert.True(t, pos.IsGameOver())

		tt := ttable.New(ctx, 1, 16)
		r := worker.Run(ctx, pos, 1, time.Now().Add(time.Second), tt)
		assert.NotEqual(t, othellopn.Unknown, r.Outcome)
	})

	t.Run("thread counts 1, 2, 8 agree", func(t *testing.T) {
		pos := splitBoard(t)

		var results []othellopn.Outcome
		for _, threads := range []int{1, 2, 8} {
			tt := ttable.New(ctx, 1, 16)
			r := worker.Run(ctx, pos, threads, time.Now().Add(5*time.Second), tt)
			results = append(results, r.Outcome)
		}
		for _, o := range results {
			assert.Equal(t, results[0], o)
		}
	})
}
