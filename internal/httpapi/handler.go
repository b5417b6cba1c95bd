package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/obslog"
	"github.com/park285/draughts-server/internal/session"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

const maxBody = 1 << 16

// Handler exposes the session manager as a JSON API under /api.
type Handler struct {
	mgr *session.Manager
	cat *msgcat.Catalog
}

func New(mgr *session.Manager, cat *msgcat.Catalog) *Handler {
	return &Handler{mgr: mgr, cat: cat}
}

// Register mounts the API routes and /health on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/games", h.create)
	mux.HandleFunc("GET /api/games/{id}", h.state)
	mux.HandleFunc("GET /api/games/{id}/at", h.at)
	mux.HandleFunc("GET /api/games/{id}/moves", h.moves)
	mux.HandleFunc("POST /api/games/{id}/moves", h.apply)
	mux.HandleFunc("DELETE /api/games/{id}", h.close)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req draughtsdto.CreateGameRequest
	if err := readJSON(r, &req); err != nil {
		h.fail(w, "", err)
		return
	}
	snap, err := h.mgr.Create(r.Context(), session.CreateOptions{Rows: req.Rows, Turn: req.Turn, Rule: req.Rule})
	if err != nil {
		h.fail(w, "", err)
		return
	}
	writeJSON(w, http.StatusCreated, session.ToState(snap))
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap, err := h.mgr.State(r.Context(), id)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, session.ToState(snap))
}

func (h *Handler) at(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	row, col, err := squareQuery(r)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	c, err := h.mgr.At(r.Context(), id, row, col)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, draughtsdto.CellResponse{Row: row, Col: col, Cell: string(c)})
}

func (h *Handler) moves(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	row, col, err := squareQuery(r)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	moves, err := h.mgr.LegalMoves(r.Context(), id, row, col)
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, draughtsdto.MovesResponse{
		From:  draughtsdto.Square{Row: row, Col: col},
		Moves: session.MovesToDTO(moves),
	})
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req draughtsdto.ApplyMoveRequest
	if err := readJSON(r, &req); err != nil {
		h.fail(w, id, err)
		return
	}
	var (
		res *session.MoveResult
		err error
	)
	switch {
	case req.Move != nil:
		res, err = h.mgr.Apply(r.Context(), id, session.MoveFromDTO(*req.Move))
	case strings.TrimSpace(req.Notation) != "":
		res, err = h.mgr.ApplyNotation(r.Context(), id, req.Notation)
	default:
		err = fmt.Errorf("%w: move or notation required", session.ErrInvalidInput)
	}
	if err != nil {
		h.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Summary(res))
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.mgr.Close(r.Context(), id); err != nil {
		h.fail(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, id string, err error) {
	de := session.Describe(h.cat, id, err)
	status := statusFor(de.Code)
	if status >= http.StatusInternalServerError {
		obslog.L().Error("http_request_failed", zap.String("session_id", id), zap.Error(err))
	}
	writeJSON(w, status, de)
}

func statusFor(code string) int {
	switch code {
	case draughtsdto.CodeBadRequest, draughtsdto.CodeBadNotation:
		return http.StatusBadRequest
	case draughtsdto.CodeNotFound:
		return http.StatusNotFound
	case draughtsdto.CodeIllegalMove:
		return http.StatusUnprocessableEntity
	case draughtsdto.CodeFinished, draughtsdto.CodeConcurrentUpdate:
		return http.StatusConflict
	case draughtsdto.CodeTooManySessions:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func squareQuery(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	row, err := strconv.Atoi(q.Get("row"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row: %v", session.ErrInvalidInput, err)
	}
	col, err := strconv.Atoi(q.Get("col"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: col: %v", session.ErrInvalidInput, err)
	}
	return row, col, nil
}

// readJSON decodes an optional body. An empty body leaves v untouched.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", session.ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obslog.L().Debug("http_write_failed", zap.Error(err))
	}
}
