// Package posfile reads and writes the position file format: either a
// two-line board+side form, or a single-line hex triple. The CLI driver
// only reads; the writer exists for tests (and any future
// position-generation tooling) to materialize positions without embedding
// giant 64-character literals redundantly.
package posfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/herohde/wpnsolver/pkg/othellopn"
)

// Parse reads a position from r, accepting either the two-line board+side
// form or the single-line hex triple form.
func Parse(r io.Reader) (othellopn.Position, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256), 256)

	if !scanner.Scan() {
		return othellopn.Position{}, fmt.Errorf("posfile: empty input")
	}
	first := strings.TrimRight(scanner.Text(), "\r\n")

	if fields := strings.Fields(first); len(fields) == 3 {
		return parseHex(fields)
	}

	if len(first) != othellopn.NumSquares {
		return othellopn.Position{}, fmt.Errorf("posfile: board line must be %v characters, got %v", othellopn.NumSquares, len(first))
	}
	if !scanner.Scan() {
		return othellopn.Position{}, fmt.Errorf("posfile: missing side-to-move line")
	}
	sideLine := strings.TrimSpace(scanner.Text())

	black, white, err := parseBoard(first)
	if err != nil {
		return othellopn.Position{}, err
	}

	tok := strings.Fields(sideLine)
	if len(tok) == 0 {
		return othellopn.Position{}, fmt.Errorf("posfile: empty side-to-move line")
	}
	side, ok := othellopn.ParseSide(tok[0])
	if !ok {
		return othellopn.Position{}, fmt.Errorf("posfile: invalid side-to-move %q", tok[0])
	}

	return othellopn.NewPosition(black, white, side)
}

// ParseFile opens path and parses a position from it.
func ParseFile(path string) (othellopn.Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return othellopn.Position{}, fmt.Errorf("posfile: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func parseBoard(line string) (black, white othellopn.Bitboard, err error) {
	for i, r := range line {
		switch r {
		case 'X', 'x', '*':
			black |= othellopn.BitMask(i)
		case 'O', 'o', '0':
			white |= othellopn.BitMask(i)
		case '-', '.':
			// empty
		default:
			return 0, 0, fmt.Errorf("posfile: invalid board character %q at position %v", r, i)
		}
	}
	return black, white, nil
}

func parseHex(fields []string) (othellopn.Position, error) {
	black, err := strconv.ParseUint(fields[0], 0, 64)
	if err != nil {
		return othellopn.Position{}, fmt.Errorf("posfile: invalid black hex %q: %w", fields[0], err)
	}
	white, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return othellopn.Position{}, fmt.Errorf("posfile: invalid white hex %q: %w", fields[1], err)
	}

	var side othellopn.Side
	switch fields[2] {
	case "+1":
		side = othellopn.Black
	case "-1":
		side = othellopn.White
	default:
		return othellopn.Position{}, fmt.Errorf("posfile: invalid side token %q, expected +1 or -1", fields[2])
	}

	return othellopn.NewPosition(othellopn.Bitboard(black), othellopn.Bitboard(white), side)
}

// Format renders pos in the two-line board+side form.
func Format(pos othellopn.Position) string {
	var sb strings.Builder
	for i := 0; i < othellopn.NumSquares; i++ {
		switch {
		case pos.Black.IsSet(i):
			sb.WriteByte('X')
		case pos.White.IsSet(i):
			sb.WriteByte('O')
		default:
			sb.WriteByte('-')
		}
	}
	sb.WriteByte('\n')
	if pos.Side == othellopn.Black {
		sb.WriteString("Black\n")
	} else {
		sb.WriteString("White\n")
	}
	return sb.String()
}

// FormatHex renders pos in the single-line hex triple form.
func FormatHex(pos othellopn.Position) string {
	sideTok := "+1"
	if pos.Side == othellopn.White {
		sideTok = "-1"
	}
	return fmt.Sprintf("0x%016X 0x%016X %v", uint64(pos.Black), uint64(pos.White), sideTok)
}
