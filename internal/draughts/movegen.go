package draughts

// Legal moves are resolved one ply at a time. A jump sequence is continued
// through the active jumper instead of being enumerated up front.

type direction struct{ dr, dc int }

var (
	northWest = direction{-1, -1}
	northEast = direction{-1, 1}
	southWest = direction{1, -1}
	southEast = direction{1, 1}

	blackManDirs = []direction{northWest, northEast}
	whiteManDirs = []direction{southWest, southEast}
	kingDirs     = []direction{northWest, northEast, southWest, southEast}
)

func directions(c Cell) []direction {
	switch c {
	case BlackMan:
		return blackManDirs
	case WhiteMan:
		return whiteManDirs
	case BlackKing, WhiteKing:
		return kingDirs
	}
	return nil
}

// LegalMoves returns the moves available from (row, col) for the side to
// move. The result is empty for off-board, empty or opponent squares, for any
// square other than the active jumper, and for a piece without a capture
// while another piece of the same side has one.
func (g *Game) LegalMoves(row, col int) []Move {
	if !OnBoard(row, col) {
		return nil
	}
	from := Square{Row: row, Col: col}
	piece := g.board.at(from)
	if !piece.belongsTo(g.turn) {
		return nil
	}
	if g.inJump && g.jumper != from {
		return nil
	}
	if jumps := g.captures(from, piece); len(jumps) > 0 {
		return jumps
	}
	if g.inJump {
		return nil
	}
	if g.captureElsewhere(from) {
		return nil
	}
	return g.steps(from, piece)
}

func (g *Game) steps(from Square, piece Cell) []Move {
	var moves []Move
	for _, d := range directions(piece) {
		to := from.step(d, 1)
		if to.valid() && g.board.at(to) == Empty {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (g *Game) captures(from Square, piece Cell) []Move {
	side, ok := piece.Side()
	if !ok {
		return nil
	}
	var moves []Move
	for _, d := range directions(piece) {
		over, to := from.step(d, 1), from.step(d, 2)
		if !to.valid() {
			continue
		}
		if g.board.at(over).belongsTo(side.Opponent()) && g.board.at(to) == Empty {
			victim := over
			moves = append(moves, Move{From: from, To: to, Captured: &victim})
		}
	}
	return moves
}

// captureElsewhere reports whether any piece of the side to move other than
// the one at skip has a capture. The active jumper is not consulted.
func (g *Game) captureElsewhere(skip Square) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := Square{Row: r, Col: c}
			if sq == skip {
				continue
			}
			piece := g.board.at(sq)
			if !piece.belongsTo(g.turn) {
				continue
			}
			if len(g.captures(sq, piece)) > 0 {
				return true
			}
		}
	}
	return false
}

// MovablePieces lists the squares whose LegalMoves are non-empty, row-major.
func (g *Game) MovablePieces() []Square {
	var out []Square
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(g.LegalMoves(r, c)) > 0 {
				out = append(out, Square{Row: r, Col: c})
			}
		}
	}
	return out
}

// AllLegalMoves concatenates LegalMoves over every square, row-major.
func (g *Game) AllLegalMoves() []Move {
	var out []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out = append(out, g.LegalMoves(r, c)...)
		}
	}
	return out
}

// Outcome reports a loss for the side to move when it has no legal move.
func (g *Game) Outcome() Outcome {
	if len(g.MovablePieces()) > 0 {
		return Ongoing
	}
	if g.turn == Black {
		return WhiteWon
	}
	return BlackWon
}
