package draughts

// ApplyMove plays m for the side to move. m must be one of
// LegalMoves(m.From.Row, m.From.Col). On error the game is unchanged.
//
// After a capture the landing piece becomes the active jumper; the turn only
// passes once it has no further capture. Promotion timing follows the game's
// PromotionRule.
func (g *Game) ApplyMove(m Move) error {
	if !g.isLegal(m) {
		return &MoveError{Err: ErrIllegalMove, Move: m, Reason: "not among legal moves"}
	}
	piece := g.board.at(m.From)
	side, _ := piece.Side()
	if g.board.at(m.To) != Empty {
		return &MoveError{Err: ErrInvariant, Move: m, Reason: "destination occupied"}
	}
	if m.Captured != nil && !g.board.at(*m.Captured).belongsTo(side.Opponent()) {
		return &MoveError{Err: ErrInvariant, Move: m, Reason: "captured square holds no opponent"}
	}

	g.board.put(m.From, Empty)
	g.board.put(m.To, piece)

	promote := piece.IsMan() && m.To.Row == side.KingRow()
	if promote && g.rule == CrownImmediately {
		g.board.put(m.To, piece.Crowned())
	}

	if m.Captured != nil {
		g.board.put(*m.Captured, Empty)
		g.jumper, g.inJump = m.To, true
		if len(g.LegalMoves(m.To.Row, m.To.Col)) == 0 {
			g.endTurn()
		}
	} else {
		g.endTurn()
	}

	if promote {
		g.board.put(m.To, piece.Crowned())
	}
	return nil
}

func (g *Game) isLegal(m Move) bool {
	for _, legal := range g.LegalMoves(m.From.Row, m.From.Col) {
		if legal.Equal(m) {
			return true
		}
	}
	return false
}
