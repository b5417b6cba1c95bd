// Package notation reads and writes moves as square names such as "c3-d4"
// (step) or "c3xe5" (jump). Files a-h are columns 0-7; ranks 1-8 are rows
// 7-0, so black starts on ranks 1-3.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/park285/draughts-server/internal/draughts"
)

var ErrBadNotation = errors.New("bad move notation")

func FormatSquare(s draughts.Square) string {
	if !draughts.OnBoard(s.Row, s.Col) {
		return "??"
	}
	return string([]byte{byte('a' + s.Col), byte('1' + (draughts.Size - 1 - s.Row))})
}

func ParseSquare(v string) (draughts.Square, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if len(v) != 2 {
		return draughts.Square{}, fmt.Errorf("square %q: %w", v, ErrBadNotation)
	}
	col := int(v[0] - 'a')
	row := draughts.Size - 1 - int(v[1]-'1')
	if v[0] < 'a' || v[1] < '1' || !draughts.OnBoard(row, col) {
		return draughts.Square{}, fmt.Errorf("square %q: %w", v, ErrBadNotation)
	}
	return draughts.Square{Row: row, Col: col}, nil
}

// Format renders m as "from-to" or "fromxto".
func Format(m draughts.Move) string {
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return FormatSquare(m.From) + sep + FormatSquare(m.To)
}

// Parsed is the syntactic content of a move string.
type Parsed struct {
	From    draughts.Square
	To      draughts.Square
	Capture bool
}

// Parse accepts "c3-d4", "c3xe5" and "c3 d4".
func Parse(text string) (Parsed, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	var p Parsed
	var from, to string
	switch {
	case strings.Contains(t, "x"):
		from, to, _ = strings.Cut(t, "x")
		p.Capture = true
	case strings.Contains(t, "-"):
		from, to, _ = strings.Cut(t, "-")
	default:
		fields := strings.Fields(t)
		if len(fields) != 2 {
			return p, fmt.Errorf("%q: %w", text, ErrBadNotation)
		}
		from, to = fields[0], fields[1]
	}
	var err error
	if p.From, err = ParseSquare(from); err != nil {
		return p, err
	}
	if p.To, err = ParseSquare(to); err != nil {
		return p, err
	}
	return p, nil
}

// Decode resolves text against the legal moves of g. A well-formed move that
// is not currently legal yields draughts.ErrIllegalMove.
func Decode(g *draughts.Game, text string) (draughts.Move, error) {
	p, err := Parse(text)
	if err != nil {
		return draughts.Move{}, err
	}
	for _, m := range g.LegalMoves(p.From.Row, p.From.Col) {
		if m.To == p.To {
			return m, nil
		}
	}
	return draughts.Move{}, fmt.Errorf("%s: %w", strings.TrimSpace(text), draughts.ErrIllegalMove)
}
