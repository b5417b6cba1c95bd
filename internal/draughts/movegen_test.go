package draughts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sq(r, c int) Square { return Square{Row: r, Col: c} }

func step(fr, fc, tr, tc int) Move { return Move{From: sq(fr, fc), To: sq(tr, tc)} }

func jump(fr, fc, tr, tc, cr, cc int) Move {
	captured := sq(cr, cc)
	return Move{From: sq(fr, fc), To: sq(tr, tc), Captured: &captured}
}

func mustGame(t *testing.T, turn Side, rows ...string) *Game {
	t.Helper()
	g, err := NewFromRows(rows, turn)
	if err != nil {
		t.Fatalf("NewFromRows: %v", err)
	}
	return g
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name string
		turn Side
		rows []string
		at   Square
		want []Move
	}{
		{
			name: "white man steps forward",
			turn: White,
			rows: []string{".w.", "..."},
			at:   sq(0, 1),
			want: []Move{step(0, 1, 1, 0), step(0, 1, 1, 2)},
		},
		{
			name: "black man steps toward row 0",
			turn: Black,
			rows: []string{"...", ".b."},
			at:   sq(1, 1),
			want: []Move{step(1, 1, 0, 0), step(1, 1, 0, 2)},
		},
		{
			name: "capture replaces steps",
			turn: White,
			rows: []string{".w.", "..b"},
			at:   sq(0, 1),
			want: []Move{jump(0, 1, 2, 3, 1, 2)},
		},
		{
			name: "blocked landing is not a capture",
			turn: White,
			rows: []string{".w..", "..b.", "...b"},
			at:   sq(0, 1),
			want: []Move{step(0, 1, 1, 0)},
		},
		{
			name: "capture elsewhere forbids steps",
			turn: White,
			rows: []string{".w...w", "..b..."},
			at:   sq(0, 5),
			want: nil,
		},
		{
			name: "capture kept when others capture too",
			turn: White,
			rows: []string{".w.w", "..b.b"},
			at:   sq(0, 3),
			want: []Move{jump(0, 3, 2, 1, 1, 2), jump(0, 3, 2, 5, 1, 4)},
		},
		{
			name: "man does not capture backwards",
			turn: White,
			rows: []string{"", "..b", "...w"},
			at:   sq(2, 3),
			want: []Move{step(2, 3, 3, 2), step(2, 3, 3, 4)},
		},
		{
			name: "king steps in four directions",
			turn: Black,
			rows: []string{"", "", "", "...B"},
			at:   sq(3, 3),
			want: []Move{step(3, 3, 2, 2), step(3, 3, 2, 4), step(3, 3, 4, 2), step(3, 3, 4, 4)},
		},
		{
			name: "king captures backwards",
			turn: Black,
			rows: []string{"", "", "", "...B", "....w"},
			at:   sq(3, 3),
			want: []Move{jump(3, 3, 5, 5, 4, 4)},
		},
		{
			name: "man captures a king",
			turn: Black,
			rows: []string{"", "", "", "", "..W", "...b"},
			at:   sq(5, 3),
			want: []Move{jump(5, 3, 3, 1, 4, 2)},
		},
		{
			name: "landing off board",
			turn: Black,
			rows: []string{"", "w", ".b"},
			at:   sq(2, 1),
			want: []Move{step(2, 1, 1, 2)},
		},
		{
			name: "opponent piece",
			turn: Black,
			rows: []string{".w.", "..."},
			at:   sq(0, 1),
			want: nil,
		},
		{
			name: "empty square",
			turn: Black,
			rows: []string{".w.", "..."},
			at:   sq(1, 1),
			want: nil,
		},
		{
			name: "off board",
			turn: Black,
			rows: []string{"b"},
			at:   sq(-1, 0),
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGame(t, tc.turn, tc.rows...)
			got := g.LegalMoves(tc.at.Row, tc.at.Col)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("LegalMoves%s mismatch (-want +got):\n%s", tc.at, diff)
			}
		})
	}
}

func TestOpeningMoves(t *testing.T) {
	g := New()
	movable := g.MovablePieces()
	want := []Square{sq(5, 0), sq(5, 2), sq(5, 4), sq(5, 6)}
	if diff := cmp.Diff(want, movable); diff != "" {
		t.Fatalf("MovablePieces mismatch (-want +got):\n%s", diff)
	}
	if n := len(g.AllLegalMoves()); n != 7 {
		t.Fatalf("opening has %d moves, want 7", n)
	}
	if g.Outcome() != Ongoing {
		t.Fatalf("opening outcome = %s", g.Outcome())
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		turn Side
		rows []string
		want Outcome
	}{
		{"black has no pieces", Black, []string{".w"}, WhiteWon},
		{"white has no pieces", White, []string{"", "", "", "", "", "", "", "b"}, BlackWon},
		{"white is blocked", White, []string{"w.", ".b", "..b"}, BlackWon},
		{"both can move", Black, []string{".w", "", "", "b"}, Ongoing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGame(t, tc.turn, tc.rows...)
			if got := g.Outcome(); got != tc.want {
				t.Fatalf("Outcome = %s, want %s", got, tc.want)
			}
		})
	}
}
