package othellopn

import "fmt"

// Position is the triple (black, white, side-to-move) that is the
// transposition table key. Positions are constructed once from input and are
// immutable thereafter; search nodes carry them by value.
type Position struct {
	Black, White Bitboard
	Side         Side
}

// NewPosition validates and constructs a Position. The only invariant checked
// here is the one that must hold for every reachable board state:
// black & white == 0.
func NewPosition(black, white Bitboard, side Side) (Position, error) {
	if black&white != 0 {
		return Position{}, fmt.Errorf("othellopn: overlapping discs: black=%#x white=%#x", uint64(black), uint64(white))
	}
	return Position{Black: black, White: white, Side: side}, nil
}

// Pieces returns the (player, opponent) bitboards for the position's
// nominal side to move.
func (p Position) Pieces() (Bitboard, Bitboard) {
	return piecesOf(p.Black, p.White, p.Side)
}

// ActiveSide resolves p.Side against a possible pass, per SideToPlay.
func (p Position) ActiveSide() Side {
	return SideToPlay(p.Black, p.White, p.Side)
}

// IsGameOver reports whether this position ends the game.
func (p Position) IsGameOver() bool {
	return IsGameOver(p.Black, p.White)
}

// Apply plays the move at sq for the resolved active side and returns the
// resulting child position, whose nominal side is the opponent of the mover
// (a further pass is resolved lazily, the next time ActiveSide is queried).
func (p Position) Apply(sq int) Position {
	active := p.ActiveSide()
	player, opponent := piecesOf(p.Black, p.White, active)
	np, no := Apply(player, opponent, sq)

	var black, white Bitboard
	if active == Black {
		black, white = np, no
	} else {
		black, white = no, np
	}
	return Position{Black: black, White: white, Side: active.Opponent()}
}

// LegalMoves returns the legal moves for the resolved active side.
func (p Position) LegalMoves() Bitboard {
	active := p.ActiveSide()
	player, opponent := piecesOf(p.Black, p.White, active)
	return LegalMoves(player, opponent)
}

func (p Position) String() string {
	return fmt.Sprintf("{black=%#x white=%#x side=%v}", uint64(p.Black), uint64(p.White), p.Side)
}
