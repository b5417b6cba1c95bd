package notation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/park285/draughts-server/internal/draughts"
)

func TestSquareRoundTrip(t *testing.T) {
	for r := 0; r < draughts.Size; r++ {
		for c := 0; c < draughts.Size; c++ {
			sq := draughts.Square{Row: r, Col: c}
			name := FormatSquare(sq)
			back, err := ParseSquare(name)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", name, err)
			}
			if back != sq {
				t.Fatalf("%s -> %q -> %s", sq, name, back)
			}
		}
	}
	if got := FormatSquare(draughts.Square{Row: 7, Col: 0}); got != "a1" {
		t.Fatalf("FormatSquare(7,0) = %q, want a1", got)
	}
	if got := FormatSquare(draughts.Square{Row: 0, Col: 7}); got != "h8" {
		t.Fatalf("FormatSquare(0,7) = %q, want h8", got)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "a1", "a9-b8", "i1-h2", "a1-", "c3 d4 e5", "zz-a1"} {
		if _, err := Parse(in); !errors.Is(err, ErrBadNotation) {
			t.Errorf("Parse(%q): expected ErrBadNotation, got %v", in, err)
		}
	}
}

func TestDecode(t *testing.T) {
	g := draughts.New()
	m, err := Decode(g, "c3-d4")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := draughts.Move{From: draughts.Square{Row: 5, Col: 2}, To: draughts.Square{Row: 4, Col: 3}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("Decode mismatch (-want +got):\n%s", diff)
	}
	if _, err := Decode(g, "c3 b4"); err != nil {
		t.Fatalf("Decode space form: %v", err)
	}
	if _, err := Decode(g, "c3-c4"); !errors.Is(err, draughts.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestDecodeCapture(t *testing.T) {
	g, err := draughts.NewFromRows([]string{".w.", "..b"}, draughts.White)
	if err != nil {
		t.Fatalf("NewFromRows: %v", err)
	}
	m, err := Decode(g, "b8xd6")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !m.IsCapture() || *m.Captured != (draughts.Square{Row: 1, Col: 2}) {
		t.Fatalf("expected capture of (1,2), got %s", m)
	}
	if got := Format(m); got != "b8xd6" {
		t.Fatalf("Format = %q", got)
	}
}
