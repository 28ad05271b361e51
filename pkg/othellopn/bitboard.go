// Package othellopn contains the Othello board representation and the bitboard
// kernel used by the proof-number search: move generation, disc flipping and
// terminal tests. Each bit represents the appearance of a disc on that square,
// with bit 63 = the last square and bit 0 = the first (file = bit&7, rank = bit>>3).
package othellopn

import (
	"math/bits"
	"strings"
)

// Bitboard is a bit-wise representation of the Othello board. It relies on
// CPU-support for certain operations, such as popcount and bitscan.
type Bitboard uint64

const (
	EmptyBitboard Bitboard = 0
	FullBitboard  Bitboard = 0xFFFFFFFFFFFFFFFF

	NumSquares = 64
)

const (
	notFileA Bitboard = 0xFEFEFEFEFEFEFEFE // clears bit&7 == 0
	notFileH Bitboard = 0x7F7F7F7F7F7F7F7F // clears bit&7 == 7
)

func (b Bitboard) IsSet(sq int) bool {
	return b&BitMask(sq) != 0
}

// PopCount returns the population count of the bitboard, i.e., number of discs.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LastPopSquare returns the index of the least-significant 1. Returns 64 if zero.
func (b Bitboard) LastPopSquare() int {
	return bits.TrailingZeros64(uint64(b))
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for sq := 0; sq < NumSquares; sq++ {
		if sq != 0 && sq%8 == 0 {
			sb.WriteRune('/')
		}
		if b.IsSet(sq) {
			sb.WriteRune('X')
		} else {
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// BitMask returns a bitboard with the given square populated.
func BitMask(sq int) Bitboard {
	return Bitboard(1) << uint(sq)
}

// direction is one of the eight ray directions used for move generation and
// disc flipping. shift advances a bitboard one step in the direction, masking
// off the source squares that would wrap around a board edge.
type direction struct {
	shift func(b Bitboard) Bitboard
}

var directions [8]direction

func init() {
	directions = [8]direction{
		{shift: func(b Bitboard) Bitboard { return b << 8 }},                // N
		{shift: func(b Bitboard) Bitboard { return b >> 8 }},                // S
		{shift: func(b Bitboard) Bitboard { return (b & notFileH) << 1 }},   // E
		{shift: func(b Bitboard) Bitboard { return (b & notFileA) >> 1 }},   // W
		{shift: func(b Bitboard) Bitboard { return (b & notFileH) << 9 }},   // NE
		{shift: func(b Bitboard) Bitboard { return (b & notFileA) << 7 }},   // NW
		{shift: func(b Bitboard) Bitboard { return (b & notFileH) >> 7 }},   // SE
		{shift: func(b Bitboard) Bitboard { return (b & notFileA) >> 9 }},   // SW
	}
}

// LegalMoves computes the bitboard of move destinations for player against
// opponent, using a Kogge-Stone-style shift-and-mask routine run in parallel
// across all eight directions. Five iterated shifts saturate any line length
// up to 6 (the longest possible run between two player discs on an 8x8 board).
func LegalMoves(player, opponent Bitboard) Bitboard {
	empty := ^(player | opponent)

	var moves Bitboard
	for _, d := range directions {
		candidates := d.shift(player) & opponent
		for i := 0; i < 5; i++ {
			candidates |= d.shift(candidates) & opponent
		}
		moves |= d.shift(candidates) & empty
	}
	return moves
}

// CanPlay reports whether pos is a legal move for player against opponent.
func CanPlay(player, opponent Bitboard, pos int) bool {
	return LegalMoves(player, opponent).IsSet(pos)
}

// FlipMask returns the bitboard of discs that would flip if player plays pos
// against opponent. For each of the eight directions, it walks outward from
// pos over opponent discs and, if it finds a player disc bounding the line,
// includes the whole run; otherwise the line contributes no flips. Edge
// files/ranks never wrap because direction.shift already masks them.
func FlipMask(player, opponent Bitboard, pos int) Bitboard {
	start := BitMask(pos)

	var flips Bitboard
	for _, d := range directions {
		var line Bitboard
		candidates := d.shift(start) & opponent
		for candidates != 0 {
			line |= candidates
			next := d.shift(candidates)
			if next&player != 0 {
				flips |= line
				break
			}
			candidates = next & opponent
		}
	}
	return flips
}

// Apply plays pos for player against opponent and returns the resulting
// (player, opponent) bitboards.
func Apply(player, opponent Bitboard, pos int) (Bitboard, Bitboard) {
	flips := FlipMask(player, opponent, pos)
	return player | BitMask(pos) | flips, opponent ^ flips
}

// SideToPlay resolves a single pass transparently: if nominal has a legal
// move, it is returned unchanged; otherwise its opponent is returned. Callers
// must already know the game is not over (neither side has a move).
func SideToPlay(black, white Bitboard, nominal Side) Side {
	player, opponent := piecesOf(black, white, nominal)
	if LegalMoves(player, opponent) != 0 {
		return nominal
	}
	return nominal.Opponent()
}

// piecesOf returns (player, opponent) bitboards for the given side.
func piecesOf(black, white Bitboard, side Side) (Bitboard, Bitboard) {
	if side == Black {
		return black, white
	}
	return white, black
}

// IsGameOver reports whether the game has ended: the board is full, or
// neither side has a legal move.
func IsGameOver(black, white Bitboard) bool {
	if black|white == FullBitboard {
		return true
	}
	return LegalMoves(black, white) == 0 && LegalMoves(white, black) == 0
}

// MaterialWinner returns the side with strictly more discs, or Draw on a tie.
func MaterialWinner(black, white Bitboard) Side {
	bc, wc := black.PopCount(), white.PopCount()
	switch {
	case bc > wc:
		return Black
	case wc > bc:
		return White
	default:
		return Draw
	}
}
