package presenter

import (
	"strings"

	"github.com/park285/draughts-server/internal/draughts"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/notation"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

const files = "abcdefgh"

// View is the read surface a board needs to be drawn.
type View interface {
	At(row, col int) byte
	TurnChar() byte
}

type jumperView interface {
	ActiveJumper() (draughts.Square, bool)
}

// Formatter renders boards and game status as plain text.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

// Board draws v with files along the top and bottom and ranks on both sides.
func (f *Formatter) Board(v View) string {
	var sb strings.Builder
	header := "  " + strings.Join(strings.Split(files, ""), " ") + "\n"
	sb.WriteString(header)
	for r := 0; r < draughts.Size; r++ {
		rank := byte('1' + (draughts.Size - 1 - r))
		sb.WriteByte(rank)
		for c := 0; c < draughts.Size; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(v.At(r, c))
		}
		sb.WriteByte(' ')
		sb.WriteByte(rank)
		sb.WriteByte('\n')
	}
	sb.WriteString(header)
	return sb.String()
}

// Status names the side to move and the square that must keep jumping.
func (f *Formatter) Status(v View) string {
	side := sideName(v.TurnChar())
	if jv, ok := v.(jumperView); ok {
		if sq, active := jv.ActiveJumper(); active {
			return f.cat.Text("cli.jumper", map[string]any{"Side": side, "Square": notation.FormatSquare(sq)})
		}
	}
	return f.cat.Text("cli.turn", map[string]any{"Side": side})
}

func (f *Formatter) Moves(ms []draughts.Move) string {
	if len(ms) == 0 {
		return f.cat.Text("cli.no_moves", nil)
	}
	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, notation.Format(m))
	}
	return f.cat.Text("cli.moves", map[string]any{"Moves": strings.Join(names, " ")})
}

func (f *Formatter) Winner(side draughts.Side) string {
	return f.cat.Text("cli.winner", map[string]any{"Side": side.String()})
}

func (f *Formatter) Prompt(v View) string {
	return f.cat.Text("cli.prompt", map[string]any{"Side": sideName(v.TurnChar())})
}

// Game renders the board followed by the status line.
func (f *Formatter) Game(v View) string {
	return f.Board(v) + f.Status(v) + "\n"
}

// State renders a session received over the wire.
func (f *Formatter) State(st *draughtsdto.SessionState) string {
	if st == nil {
		return ""
	}
	v := stateView{st}
	out := f.Board(v)
	if st.Winner != "" {
		return out + f.cat.Text("cli.winner", map[string]any{"Side": st.Winner}) + "\n"
	}
	return out + f.Status(v) + "\n"
}

func sideName(c byte) string {
	if c == 'w' {
		return draughts.White.String()
	}
	return draughts.Black.String()
}

// stateView adapts a SessionState to View.
type stateView struct{ st *draughtsdto.SessionState }

func (s stateView) At(row, col int) byte {
	if row < 0 || row >= len(s.st.Rows) || col < 0 || col >= len(s.st.Rows[row]) {
		return '?'
	}
	return s.st.Rows[row][col]
}

func (s stateView) TurnChar() byte {
	if s.st.Turn == "" {
		return 'b'
	}
	return s.st.Turn[0]
}

func (s stateView) ActiveJumper() (draughts.Square, bool) {
	if s.st.Jumper == nil {
		return draughts.Square{}, false
	}
	return draughts.Square{Row: s.st.Jumper.Row, Col: s.st.Jumper.Col}, true
}
