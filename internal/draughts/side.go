package draughts

import "fmt"

// Side identifies a player colour. The zero value is Black, which moves first.
type Side uint8

const (
	Black Side = iota
	White
)

func (s Side) Opponent() Side {
	if s == Black {
		return White
	}
	return Black
}

// Char returns 'b' or 'w'.
func (s Side) Char() byte {
	if s == White {
		return 'w'
	}
	return 'b'
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// forward is the row delta of a man's advance.
func (s Side) forward() int {
	if s == White {
		return 1
	}
	return -1
}

// KingRow is the row on which a man of this side is crowned.
func (s Side) KingRow() int {
	if s == White {
		return Size - 1
	}
	return 0
}

// ParseSide accepts "b", "black", "w" and "white".
func ParseSide(v string) (Side, error) {
	switch v {
	case "b", "black", "B", "Black":
		return Black, nil
	case "w", "white", "W", "White":
		return White, nil
	}
	return Black, fmt.Errorf("unknown side %q", v)
}
