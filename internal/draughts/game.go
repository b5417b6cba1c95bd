package draughts

// Game holds one board, the side to move and the open jump sequence, if any.
// A Game is not safe for concurrent use; hosts serialize calls per instance.
type Game struct {
	board  Board
	turn   Side
	jumper Square
	inJump bool
	rule   PromotionRule
}

// New returns a game in the standard opening position with black to move.
func New(opts ...Option) *Game {
	b, _ := FromRows(StandardRows)
	return NewFromBoard(b, Black, opts...)
}

func NewFromBoard(b Board, turn Side, opts ...Option) *Game {
	g := &Game{board: b, turn: turn}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewFromRows builds a game from a FromRows layout.
func NewFromRows(rows []string, turn Side, opts ...Option) (*Game, error) {
	b, err := FromRows(rows)
	if err != nil {
		return nil, err
	}
	return NewFromBoard(b, turn, opts...), nil
}

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

func (g *Game) Turn() Side { return g.turn }

// TurnChar returns 'b' or 'w'.
func (g *Game) TurnChar() byte { return g.turn.Char() }

func (g *Game) Rule() PromotionRule { return g.rule }

// ActiveJumper reports the piece that must continue a jump sequence.
func (g *Game) ActiveJumper() (Square, bool) {
	return g.jumper, g.inJump
}

// At returns the layout character at (row, col), or '?' off the board.
func (g *Game) At(row, col int) byte {
	if !OnBoard(row, col) {
		return '?'
	}
	return g.board[row][col].Char()
}

func (g *Game) Clone() *Game {
	c := *g
	return &c
}

func (g *Game) endTurn() {
	g.inJump = false
	g.jumper = Square{}
	g.turn = g.turn.Opponent()
}
