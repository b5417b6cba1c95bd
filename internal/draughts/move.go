package draughts

import "fmt"

// Square addresses a board cell.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

func (s Square) valid() bool { return OnBoard(s.Row, s.Col) }

func (s Square) step(d direction, n int) Square {
	return Square{Row: s.Row + n*d.dr, Col: s.Col + n*d.dc}
}

// Move is one atomic relocation. Captured is set for a jump.
// A multi-jump sequence is played as consecutive capturing Moves.
type Move struct {
	From     Square  `json:"from"`
	To       Square  `json:"to"`
	Captured *Square `json:"captured,omitempty"`
}

func (m Move) IsCapture() bool { return m.Captured != nil }

// Equal compares moves by value.
func (m Move) Equal(o Move) bool {
	if m.From != o.From || m.To != o.To {
		return false
	}
	if m.Captured == nil || o.Captured == nil {
		return m.Captured == nil && o.Captured == nil
	}
	return *m.Captured == *o.Captured
}

func (m Move) String() string {
	if m.Captured != nil {
		return fmt.Sprintf("%s x%s %s", m.From, m.Captured, m.To)
	}
	return fmt.Sprintf("%s-%s", m.From, m.To)
}
