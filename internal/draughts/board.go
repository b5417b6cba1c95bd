package draughts

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the fixed board dimension.
const Size = 8

var (
	ErrOutOfRange = errors.New("square out of range")
	ErrBadLayout  = errors.New("bad board layout")
)

// Board is an 8x8 grid, row-major. Row 0 is white's home edge, row 7 black's.
type Board [Size][Size]Cell

// StandardRows is the opening layout, row 0 first.
var StandardRows = []string{
	".w.w.w.w",
	"w.w.w.w.",
	".w.w.w.w",
	"........",
	"........",
	"b.b.b.b.",
	".b.b.b.b",
	"b.b.b.b.",
}

// OnBoard reports whether (row, col) addresses a square.
func OnBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (b *Board) Get(row, col int) (Cell, error) {
	if !OnBoard(row, col) {
		return Empty, fmt.Errorf("get (%d,%d): %w", row, col, ErrOutOfRange)
	}
	return b[row][col], nil
}

// Set overwrites a square. Rule legality is the caller's concern.
func (b *Board) Set(row, col int, c Cell) error {
	if !OnBoard(row, col) {
		return fmt.Errorf("set (%d,%d): %w", row, col, ErrOutOfRange)
	}
	b[row][col] = c
	return nil
}

func (b *Board) at(sq Square) Cell { return b[sq.Row][sq.Col] }

func (b *Board) put(sq Square, c Cell) { b[sq.Row][sq.Col] = c }

// FromRows builds a board from up to 8 rows of up to 8 layout characters.
// Cells not covered by rows are empty.
func FromRows(rows []string) (Board, error) {
	var b Board
	if len(rows) > Size {
		return b, fmt.Errorf("%d rows: %w", len(rows), ErrBadLayout)
	}
	for i, row := range rows {
		if len(row) > Size {
			return b, fmt.Errorf("row %d has %d columns: %w", i, len(row), ErrBadLayout)
		}
		for j := 0; j < len(row); j++ {
			c, ok := CellFromChar(row[j])
			if !ok {
				return b, fmt.Errorf("row %d col %d: unexpected %q: %w", i, j, row[j], ErrBadLayout)
			}
			b[i][j] = c
		}
	}
	return b, nil
}

// ParseText reads the output of Text back into a board.
func ParseText(s string) (Board, error) {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return Board{}, nil
	}
	return FromRows(strings.Split(s, "\n"))
}

// Text is the canonical serialization: one newline-terminated line per row.
func (b Board) Text() string {
	var sb strings.Builder
	sb.Grow(Size * (Size + 1))
	for i := range b {
		for j := range b[i] {
			sb.WriteByte(b[i][j].Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b Board) String() string { return b.Text() }

// Rows returns the board as eight layout strings.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for i := range b {
		var row [Size]byte
		for j := range b[i] {
			row[j] = b[i][j].Char()
		}
		rows[i] = string(row[:])
	}
	return rows
}

// Mirror reflects the board across its horizontal axis and swaps colours.
func (b Board) Mirror() Board {
	var m Board
	for i := range b {
		for j := range b[i] {
			m[Size-1-i][j] = b[i][j].swapped()
		}
	}
	return m
}

// Count returns the number of pieces of each side.
func (b Board) Count() (black, white int) {
	for i := range b {
		for j := range b[i] {
			switch side, ok := b[i][j].Side(); {
			case !ok:
			case side == Black:
				black++
			default:
				white++
			}
		}
	}
	return black, white
}
