package draughts

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	BlackMan
	BlackKing
	WhiteMan
	WhiteKing
)

// Char returns the layout character for c: '.', 'b', 'B', 'w' or 'W'.
func (c Cell) Char() byte {
	switch c {
	case BlackMan:
		return 'b'
	case BlackKing:
		return 'B'
	case WhiteMan:
		return 'w'
	case WhiteKing:
		return 'W'
	default:
		return '.'
	}
}

func (c Cell) String() string { return string(c.Char()) }

// CellFromChar is the inverse of Char. ok is false for unknown characters.
func CellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case '.':
		return Empty, true
	case 'b':
		return BlackMan, true
	case 'B':
		return BlackKing, true
	case 'w':
		return WhiteMan, true
	case 'W':
		return WhiteKing, true
	default:
		return Empty, false
	}
}

// Side reports the owner of the piece. ok is false for Empty.
func (c Cell) Side() (Side, bool) {
	switch c {
	case BlackMan, BlackKing:
		return Black, true
	case WhiteMan, WhiteKing:
		return White, true
	default:
		return Black, false
	}
}

func (c Cell) IsKing() bool { return c == BlackKing || c == WhiteKing }

func (c Cell) IsMan() bool { return c == BlackMan || c == WhiteMan }

// Crowned returns the king of the same colour. Kings and Empty are unchanged.
func (c Cell) Crowned() Cell {
	switch c {
	case BlackMan:
		return BlackKing
	case WhiteMan:
		return WhiteKing
	default:
		return c
	}
}

// swapped exchanges colours, keeping rank.
func (c Cell) swapped() Cell {
	switch c {
	case BlackMan:
		return WhiteMan
	case BlackKing:
		return WhiteKing
	case WhiteMan:
		return BlackMan
	case WhiteKing:
		return BlackKing
	default:
		return c
	}
}

// belongsTo reports whether c is a piece of side s.
func (c Cell) belongsTo(s Side) bool {
	owner, ok := c.Side()
	return ok && owner == s
}
