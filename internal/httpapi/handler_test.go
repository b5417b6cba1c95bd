package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/session"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

func newTestMux(t *testing.T, opts session.Options) *http.ServeMux {
	t.Helper()
	mgr := session.NewManager(session.NewMemoryStore(time.Hour), opts)
	mux := http.NewServeMux()
	New(mgr, msgcat.MustDefault()).Register(mux)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestGameLifecycle(t *testing.T) {
	mux := newTestMux(t, session.Options{})

	var st draughtsdto.SessionState
	if code := do(t, mux, http.MethodPost, "/api/games", nil, &st); code != http.StatusCreated {
		t.Fatalf("create status %d", code)
	}
	base := "/api/games/" + st.ID

	var cell draughtsdto.CellResponse
	if code := do(t, mux, http.MethodGet, base+"/at?row=5&col=0", nil, &cell); code != http.StatusOK || cell.Cell != "b" {
		t.Fatalf("at: %d %+v", code, cell)
	}
	do(t, mux, http.MethodGet, base+"/at?row=9&col=0", nil, &cell)
	if cell.Cell != "?" {
		t.Fatalf("off-board cell = %q", cell.Cell)
	}

	var mv draughtsdto.MovesResponse
	if code := do(t, mux, http.MethodGet, base+"/moves?row=5&col=0", nil, &mv); code != http.StatusOK {
		t.Fatalf("moves status %d", code)
	}
	want := []string{"a3-b4"}
	var got []string
	for _, m := range mv.Moves {
		got = append(got, m.Notation)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}

	var sum draughtsdto.MoveSummary
	if code := do(t, mux, http.MethodPost, base+"/moves", draughtsdto.ApplyMoveRequest{Notation: "a3-b4"}, &sum); code != http.StatusOK {
		t.Fatalf("apply status %d", code)
	}
	if sum.State.Turn != "w" || !sum.TurnOver {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	if code := do(t, mux, http.MethodGet, base, nil, &st); code != http.StatusOK || st.Plies != 1 {
		t.Fatalf("state: %d %+v", code, st)
	}
	if code := do(t, mux, http.MethodDelete, base, nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete status %d", code)
	}
	var de draughtsdto.DomainError
	if code := do(t, mux, http.MethodGet, base, nil, &de); code != http.StatusNotFound || de.Code != draughtsdto.CodeNotFound {
		t.Fatalf("after delete: %d %+v", code, de)
	}
}

func TestErrorStatuses(t *testing.T) {
	mux := newTestMux(t, session.Options{MaxSessions: 1})

	var st draughtsdto.SessionState
	do(t, mux, http.MethodPost, "/api/games", draughtsdto.CreateGameRequest{Rows: []string{".w..", "..b.", "...."}, Turn: "w"}, &st)
	base := "/api/games/" + st.ID

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"full", http.MethodPost, "/api/games", nil, http.StatusServiceUnavailable, draughtsdto.CodeTooManySessions},
		{"bad query", http.MethodGet, base + "/moves?row=x&col=1", nil, http.StatusBadRequest, draughtsdto.CodeBadRequest},
		{"empty apply", http.MethodPost, base + "/moves", draughtsdto.ApplyMoveRequest{}, http.StatusBadRequest, draughtsdto.CodeBadRequest},
		{"bad notation", http.MethodPost, base + "/moves", draughtsdto.ApplyMoveRequest{Notation: "??"}, http.StatusBadRequest, draughtsdto.CodeBadNotation},
		{"capture required", http.MethodPost, base + "/moves", draughtsdto.ApplyMoveRequest{Notation: "b8-a7"}, http.StatusUnprocessableEntity, draughtsdto.CodeIllegalMove},
		{"unknown game", http.MethodGet, "/api/games/nope", nil, http.StatusNotFound, draughtsdto.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var de draughtsdto.DomainError
			if code := do(t, mux, tc.method, tc.path, tc.body, &de); code != tc.status || de.Code != tc.code {
				t.Fatalf("got %d %+v, want %d %s", code, de, tc.status, tc.code)
			}
			if de.Message == "" {
				t.Fatalf("empty message")
			}
		})
	}

	var sum draughtsdto.MoveSummary
	if code := do(t, mux, http.MethodPost, base+"/moves", draughtsdto.ApplyMoveRequest{Move: &draughtsdto.Move{
		From: draughtsdto.Square{Row: 0, Col: 1},
		To:   draughtsdto.Square{Row: 2, Col: 3},
	}}, &sum); code != http.StatusOK || !sum.Finished {
		t.Fatalf("winning jump: %d %+v", code, sum)
	}
	var de draughtsdto.DomainError
	if code := do(t, mux, http.MethodPost, base+"/moves", draughtsdto.ApplyMoveRequest{Notation: "d6-c7"}, &de); code != http.StatusConflict || de.Code != draughtsdto.CodeFinished {
		t.Fatalf("after finish: %d %+v", code, de)
	}
}

func TestHealth(t *testing.T) {
	mux := newTestMux(t, session.Options{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health: %d %q", rec.Code, rec.Body.String())
	}
}
