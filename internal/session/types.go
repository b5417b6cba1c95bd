package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/park285/draughts-server/internal/draughts"
)

// Status represents a session lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrExists            = errors.New("session already exists")
	ErrFinished          = errors.New("session finished")
	ErrTooManySessions   = errors.New("too many sessions")
	ErrConcurrentUpdate  = errors.New("concurrent session update")
	ErrInvalidInput      = errors.New("invalid session input")
	ErrCorruptedSnapshot = errors.New("corrupted session snapshot")
)

// Snapshot is the persisted live state of one session. History is not kept.
type Snapshot struct {
	ID        string           `json:"id"`
	Board     string           `json:"board"`
	Turn      string           `json:"turn"`
	Jumper    *draughts.Square `json:"jumper,omitempty"`
	Rule      string           `json:"rule"`
	Status    Status           `json:"status"`
	Winner    string           `json:"winner,omitempty"`
	Plies     int              `json:"plies"`
	LastMove  *draughts.Move   `json:"last_move,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Game rebuilds the engine state held by s.
func (s *Snapshot) Game() (*draughts.Game, error) {
	board, err := draughts.ParseText(s.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
	}
	turn, err := draughts.ParseSide(s.Turn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
	}
	rule, err := draughts.ParsePromotionRule(s.Rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
	}
	g, err := draughts.Restore(draughts.Position{Board: board, Turn: turn, Jumper: s.Jumper, Rule: rule})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
	}
	return g, nil
}

// record copies the engine state of g into s and settles the status.
func (s *Snapshot) record(g *draughts.Game) {
	p := g.Position()
	s.Board = p.Board.Text()
	s.Turn = string(g.TurnChar())
	s.Jumper = p.Jumper
	s.Rule = p.Rule.String()
	if winner, over := g.Outcome().Winner(); over {
		s.Status = StatusFinished
		s.Winner = winner.String()
	}
}

func (s *Snapshot) clone() *Snapshot {
	c := *s
	if s.Jumper != nil {
		j := *s.Jumper
		c.Jumper = &j
	}
	if s.LastMove != nil {
		m := *s.LastMove
		if m.Captured != nil {
			sq := *m.Captured
			m.Captured = &sq
		}
		c.LastMove = &m
	}
	return &c
}
