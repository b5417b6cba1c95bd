package draughts

import (
	"fmt"
	"strings"
)

// PromotionRule decides when a man reaching the king row is crowned
// relative to the continuation check of a jump sequence.
type PromotionRule uint8

const (
	// CrownAfterMove decides continuation with the piece as it moved and
	// crowns afterwards, so reaching the king row always ends the turn.
	CrownAfterMove PromotionRule = iota

	// CrownImmediately crowns on landing; the new king may keep jumping.
	CrownImmediately
)

func (r PromotionRule) String() string {
	if r == CrownImmediately {
		return "immediate"
	}
	return "after_move"
}

// ParsePromotionRule accepts the String forms. Empty selects CrownAfterMove.
func ParsePromotionRule(v string) (PromotionRule, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "after_move", "after-move":
		return CrownAfterMove, nil
	case "immediate", "immediately":
		return CrownImmediately, nil
	}
	return CrownAfterMove, fmt.Errorf("unknown promotion rule %q", v)
}

// Option configures a Game.
type Option func(*Game)

func WithPromotionRule(r PromotionRule) Option {
	return func(g *Game) { g.rule = r }
}

// Outcome is the result of a game as seen from the current position.
type Outcome uint8

const (
	Ongoing Outcome = iota
	BlackWon
	WhiteWon
)

func (o Outcome) String() string {
	switch o {
	case BlackWon:
		return "black"
	case WhiteWon:
		return "white"
	default:
		return "ongoing"
	}
}

// Winner returns the winning side once the game is over.
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case BlackWon:
		return Black, true
	case WhiteWon:
		return White, true
	}
	return Black, false
}
