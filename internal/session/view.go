package session

import (
	"strings"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/notation"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

// ToState converts a snapshot to its public form.
func ToState(s *Snapshot) *draughtsdto.SessionState {
	if s == nil {
		return nil
	}
	st := &draughtsdto.SessionState{
		ID:        s.ID,
		Rows:      strings.Split(strings.TrimSuffix(s.Board, "\n"), "\n"),
		Turn:      s.Turn,
		Rule:      s.Rule,
		Status:    string(s.Status),
		Winner:    s.Winner,
		Plies:     s.Plies,
		Movable:   []draughtsdto.Square{},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Jumper != nil {
		j := SquareToDTO(*s.Jumper)
		st.Jumper = &j
	}
	if s.LastMove != nil {
		mv := MoveToDTO(*s.LastMove)
		st.LastMove = &mv
	}
	if s.Status == StatusActive {
		if g, err := s.Game(); err == nil {
			for _, sq := range g.MovablePieces() {
				st.Movable = append(st.Movable, SquareToDTO(sq))
			}
		}
	}
	return st
}

func SquareToDTO(sq draughts.Square) draughtsdto.Square {
	return draughtsdto.Square{Row: sq.Row, Col: sq.Col}
}

func MoveToDTO(m draughts.Move) draughtsdto.Move {
	out := draughtsdto.Move{From: SquareToDTO(m.From), To: SquareToDTO(m.To), Notation: notation.Format(m)}
	if m.Captured != nil {
		c := SquareToDTO(*m.Captured)
		out.Captured = &c
	}
	return out
}

func MovesToDTO(ms []draughts.Move) []draughtsdto.Move {
	out := make([]draughtsdto.Move, 0, len(ms))
	for _, m := range ms {
		out = append(out, MoveToDTO(m))
	}
	return out
}

// MoveFromDTO converts a wire move. Notation is ignored.
func MoveFromDTO(m draughtsdto.Move) draughts.Move {
	out := draughts.Move{
		From: draughts.Square{Row: m.From.Row, Col: m.From.Col},
		To:   draughts.Square{Row: m.To.Row, Col: m.To.Col},
	}
	if m.Captured != nil {
		out.Captured = &draughts.Square{Row: m.Captured.Row, Col: m.Captured.Col}
	}
	return out
}

// Summary converts a MoveResult to its public form.
func Summary(r *MoveResult) *draughtsdto.MoveSummary {
	return &draughtsdto.MoveSummary{
		State:    ToState(r.Snapshot),
		Move:     MoveToDTO(r.Move),
		TurnOver: r.TurnOver,
		Finished: r.Finished,
	}
}
