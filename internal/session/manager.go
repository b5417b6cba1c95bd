package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/notation"
	"github.com/park285/draughts-server/internal/obslog"
)

// Options tunes a Manager. MaxSessions <= 0 means unlimited.
type Options struct {
	MaxSessions int
	DefaultRule draughts.PromotionRule
}

// Manager owns the session lifecycle on top of a Store. Every move runs
// inside Store.Update, so moves on one session are serialized.
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
	newID func() string
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts, now: time.Now, newID: uuid.NewString}
}

// CreateOptions describes a new session. Empty Rows selects the standard
// opening position; Turn defaults to black and Rule to the manager default.
type CreateOptions struct {
	Rows []string
	Turn string
	Rule string
}

// MoveResult is the outcome of one applied move.
type MoveResult struct {
	Snapshot *Snapshot
	Move     draughts.Move
	TurnOver bool
	Finished bool
}

func (m *Manager) Create(ctx context.Context, req CreateOptions) (*Snapshot, error) {
	if m.opts.MaxSessions > 0 {
		n, err := m.store.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count sessions: %w", err)
		}
		if n >= m.opts.MaxSessions {
			return nil, ErrTooManySessions
		}
	}

	g, err := m.newGame(req)
	if err != nil {
		return nil, err
	}
	now := m.now()
	snap := &Snapshot{
		ID:        m.newID(),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	snap.record(g)

	if err := m.store.Create(ctx, snap); err != nil {
		return nil, err
	}
	obslog.L().Info("session_create",
		zap.String("session_id", snap.ID),
		zap.String("turn", snap.Turn),
		zap.String("rule", snap.Rule),
		zap.Bool("custom_layout", len(req.Rows) > 0),
	)
	return snap, nil
}

func (m *Manager) newGame(req CreateOptions) (*draughts.Game, error) {
	rule := m.opts.DefaultRule
	if strings.TrimSpace(req.Rule) != "" {
		r, err := draughts.ParsePromotionRule(req.Rule)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		rule = r
	}
	if len(req.Rows) == 0 {
		if strings.TrimSpace(req.Turn) != "" {
			return nil, fmt.Errorf("%w: turn requires rows", ErrInvalidInput)
		}
		return draughts.New(draughts.WithPromotionRule(rule)), nil
	}
	turn := draughts.Black
	if strings.TrimSpace(req.Turn) != "" {
		t, err := draughts.ParseSide(strings.TrimSpace(req.Turn))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		turn = t
	}
	g, err := draughts.NewFromRows(req.Rows, turn, draughts.WithPromotionRule(rule))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return g, nil
}

func (m *Manager) State(ctx context.Context, id string) (*Snapshot, error) {
	return m.store.Load(ctx, id)
}

// At returns the layout character at (row, col), '?' when off the board.
func (m *Manager) At(ctx context.Context, id string, row, col int) (byte, error) {
	_, g, err := m.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return g.At(row, col), nil
}

// LegalMoves lists the moves of the piece at (row, col).
func (m *Manager) LegalMoves(ctx context.Context, id string, row, col int) ([]draughts.Move, error) {
	_, g, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.LegalMoves(row, col), nil
}

// Movable lists the squares whose piece has a legal move.
func (m *Manager) Movable(ctx context.Context, id string) ([]draughts.Square, error) {
	_, g, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.MovablePieces(), nil
}

func (m *Manager) load(ctx context.Context, id string) (*Snapshot, *draughts.Game, error) {
	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	g, err := snap.Game()
	if err != nil {
		return nil, nil, err
	}
	return snap, g, nil
}

// Apply applies mv. A jump sent without its captured square is completed
// from the legal moves of its source.
func (m *Manager) Apply(ctx context.Context, id string, mv draughts.Move) (*MoveResult, error) {
	return m.apply(ctx, id, func(g *draughts.Game) (draughts.Move, error) {
		if mv.Captured != nil {
			return mv, nil
		}
		for _, legal := range g.LegalMoves(mv.From.Row, mv.From.Col) {
			if legal.To == mv.To {
				return legal, nil
			}
		}
		return mv, nil
	})
}

// ApplyNotation decodes text such as "c3-d4" against the current position
// and applies it.
func (m *Manager) ApplyNotation(ctx context.Context, id, text string) (*MoveResult, error) {
	return m.apply(ctx, id, func(g *draughts.Game) (draughts.Move, error) {
		return notation.Decode(g, text)
	})
}

func (m *Manager) apply(ctx context.Context, id string, pick func(*draughts.Game) (draughts.Move, error)) (*MoveResult, error) {
	var res MoveResult
	snap, err := m.store.Update(ctx, id, func(cur *Snapshot) error {
		if cur.Status == StatusFinished {
			return ErrFinished
		}
		g, err := cur.Game()
		if err != nil {
			return err
		}
		mv, err := pick(g)
		if err != nil {
			return err
		}
		mover := g.Turn()
		if err := g.ApplyMove(mv); err != nil {
			return err
		}
		cur.record(g)
		cur.Plies++
		cur.LastMove = &mv
		cur.UpdatedAt = m.now()

		res.Move = mv
		res.TurnOver = g.Turn() != mover
		res.Finished = cur.Status == StatusFinished
		return nil
	})
	if err != nil {
		m.logRejected(id, err)
		return nil, err
	}
	res.Snapshot = snap

	obslog.L().Info("session_move",
		zap.String("session_id", id),
		zap.String("move", notation.Format(res.Move)),
		zap.Int("plies", snap.Plies),
		zap.Bool("turn_over", res.TurnOver),
	)
	if res.Finished {
		obslog.L().Info("session_finished",
			zap.String("session_id", id),
			zap.String("winner", snap.Winner),
			zap.Int("plies", snap.Plies),
		)
	}
	return &res, nil
}

func (m *Manager) logRejected(id string, err error) {
	var me *draughts.MoveError
	switch {
	case errors.As(err, &me):
		lvl := obslog.L().Info
		if errors.Is(err, draughts.ErrInvariant) {
			lvl = obslog.L().Error
		}
		lvl("session_move_rejected",
			zap.String("session_id", id),
			zap.String("move", me.Move.String()),
			zap.String("reason", me.Reason),
			zap.Error(err),
		)
	case errors.Is(err, notation.ErrBadNotation), errors.Is(err, draughts.ErrIllegalMove),
		errors.Is(err, ErrFinished), errors.Is(err, ErrNotFound):
		obslog.L().Info("session_move_rejected", zap.String("session_id", id), zap.Error(err))
	default:
		obslog.L().Warn("session_move_failed", zap.String("session_id", id), zap.Error(err))
	}
}

// Close removes the session.
func (m *Manager) Close(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	obslog.L().Info("session_close", zap.String("session_id", id))
	return nil
}
