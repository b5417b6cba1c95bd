package draughts

import (
	"errors"
	"strings"
	"testing"
)

func TestStandardLayout(t *testing.T) {
	g := New()
	want := strings.Join(StandardRows, "\n") + "\n"
	if got := g.Board().Text(); got != want {
		t.Fatalf("standard board mismatch:\n%s!=\n%s", got, want)
	}
	if g.Turn() != Black || g.TurnChar() != 'b' {
		t.Fatalf("expected black to move, got %s", g.Turn())
	}
	if _, ok := g.ActiveJumper(); ok {
		t.Fatalf("fresh game has an active jumper")
	}
	black, white := g.Board().Count()
	if black != 12 || white != 12 {
		t.Fatalf("piece count = %d/%d, want 12/12", black, white)
	}
}

func TestFromRowsPadsWithEmpty(t *testing.T) {
	b, err := FromRows([]string{".w.", "..b"})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	want := ".w......\n" +
		"..b.....\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n"
	if got := b.Text(); got != want {
		t.Fatalf("Text mismatch:\n%s!=\n%s", got, want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	rows := []string{
		".w.W....",
		"........",
		"...b....",
		"B.......",
		"........",
		".....w..",
		"........",
		"b......b",
	}
	b, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	back, err := ParseText(b.Text())
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if back != b {
		t.Fatalf("round trip mismatch:\n%s!=\n%s", back.Text(), b.Text())
	}
	if got := strings.Join(b.Rows(), ","); got != strings.Join(rows, ",") {
		t.Fatalf("Rows = %s", got)
	}
}

func TestFromRowsRejectsBadLayout(t *testing.T) {
	cases := map[string][]string{
		"too many rows": {"", "", "", "", "", "", "", "", ""},
		"row too wide":  {"........."},
		"unknown char":  {"..x"},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromRows(rows); !errors.Is(err, ErrBadLayout) {
				t.Fatalf("expected ErrBadLayout, got %v", err)
			}
		})
	}
}

func TestGetSetRange(t *testing.T) {
	var b Board
	if err := b.Set(3, 4, WhiteKing); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c, err := b.Get(3, 4)
	if err != nil || c != WhiteKing {
		t.Fatalf("Get = %v, %v", c, err)
	}
	for _, sq := range []Square{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if _, err := b.Get(sq.Row, sq.Col); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Get%s: expected ErrOutOfRange, got %v", sq, err)
		}
		if err := b.Set(sq.Row, sq.Col, BlackMan); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Set%s: expected ErrOutOfRange, got %v", sq, err)
		}
	}
}

func TestAtSentinel(t *testing.T) {
	g := New()
	if got := g.At(0, 1); got != 'w' {
		t.Fatalf("At(0,1) = %q", got)
	}
	if got := g.At(5, 0); got != 'b' {
		t.Fatalf("At(5,0) = %q", got)
	}
	if got := g.At(3, 3); got != '.' {
		t.Fatalf("At(3,3) = %q", got)
	}
	for _, sq := range []Square{{-1, 0}, {8, 8}, {0, 9}} {
		if got := g.At(sq.Row, sq.Col); got != '?' {
			t.Fatalf("At%s = %q, want '?'", sq, got)
		}
	}
}

func TestMirror(t *testing.T) {
	b, _ := FromRows([]string{"b.W", "...", "", "", "", "", "", ".w.B"})
	m := b.Mirror()
	want, _ := FromRows([]string{".b.W", "", "", "", "", "", "...", "w.B"})
	if m != want {
		t.Fatalf("Mirror mismatch:\n%s!=\n%s", m.Text(), want.Text())
	}
	if m.Mirror() != b {
		t.Fatalf("Mirror is not an involution")
	}
}
