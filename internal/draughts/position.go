package draughts

import "fmt"

// Position is the complete engine state, used to persist and rebuild a Game.
type Position struct {
	Board  Board
	Turn   Side
	Jumper *Square
	Rule   PromotionRule
}

func (g *Game) Position() Position {
	p := Position{Board: g.board, Turn: g.turn, Rule: g.rule}
	if g.inJump {
		sq := g.jumper
		p.Jumper = &sq
	}
	return p
}

// Restore rebuilds a Game from p. A jumper must be on the board and hold a
// piece of the side to move.
func Restore(p Position) (*Game, error) {
	g := &Game{board: p.Board, turn: p.Turn, rule: p.Rule}
	if p.Jumper != nil {
		sq := *p.Jumper
		if !sq.valid() {
			return nil, fmt.Errorf("jumper %s off board: %w", sq, ErrBadPosition)
		}
		if !p.Board.at(sq).belongsTo(p.Turn) {
			return nil, fmt.Errorf("jumper %s holds no %s piece: %w", sq, p.Turn, ErrBadPosition)
		}
		g.jumper, g.inJump = sq, true
	}
	return g, nil
}
