package wsserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/obslog"
	"github.com/park285/draughts-server/internal/session"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
	pingTimeout  = 3 * time.Second
)

type Options struct {
	// AllowedOrigins lists accepted Origin headers. Empty or "*" accepts any.
	AllowedOrigins []string
	PingInterval   time.Duration
}

// Server upgrades /ws requests and binds each connection to one session.
type Server struct {
	mgr          *session.Manager
	cat          *msgcat.Catalog
	allowAll     bool
	allowOrigins map[string]bool
	pingInterval time.Duration
}

func New(mgr *session.Manager, cat *msgcat.Catalog, opts Options) *Server {
	allow := map[string]bool{}
	all := len(opts.AllowedOrigins) == 0
	for _, a := range opts.AllowedOrigins {
		a = strings.TrimSpace(a)
		if a == "*" {
			all = true
		}
		if a != "" {
			allow[a] = true
		}
	}
	ping := opts.PingInterval
	if ping <= 0 {
		ping = 15 * time.Second
	}
	return &Server{mgr: mgr, cat: cat, allowAll: all, allowOrigins: allow, pingInterval: ping}
}

// conn is the per-connection state. Frames are handled one at a time.
type conn struct {
	srv   *Server
	ws    *websocket.Conn
	send  chan draughtsdto.Frame
	id    string
	owned bool
	log   *zap.Logger
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && !s.allowAll && !s.allowOrigins[origin] {
		obslog.L().Warn("ws_origin_rejected", zap.String("origin", origin))
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		obslog.L().Warn("ws_accept_failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &conn{
		srv:  s,
		ws:   ws,
		send: make(chan draughtsdto.Frame, sendBuffer),
		log:  obslog.L().With(zap.String("remote", r.RemoteAddr)),
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writeLoop(ctx)
	}()

	c.log.Info("ws_connected")
	if err := c.start(ctx); err != nil {
		c.fail(err)
	}
	c.readLoop(ctx)

	close(c.send)
	<-done
	c.release(context.Background())
	_ = ws.Close(websocket.StatusNormalClosure, "bye")
	c.log.Info("ws_disconnected", zap.String("session_id", c.id))
}

func (c *conn) start(ctx context.Context) error {
	snap, err := c.srv.mgr.Create(ctx, session.CreateOptions{})
	if err != nil {
		return err
	}
	c.id, c.owned = snap.ID, true
	c.push(draughtsdto.FrameState, session.ToState(snap))
	return nil
}

func (c *conn) readLoop(ctx context.Context) {
	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			return
		}
		var f draughtsdto.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.fail(fmt.Errorf("%w: malformed frame", session.ErrInvalidInput))
			continue
		}
		if err := c.handle(ctx, f); err != nil {
			c.fail(err)
		}
	}
}

func (c *conn) handle(ctx context.Context, f draughtsdto.Frame) error {
	switch f.T {
	case draughtsdto.FrameNew:
		var req draughtsdto.CreateGameRequest
		if err := decode(f.M, &req); err != nil {
			return err
		}
		snap, err := c.srv.mgr.Create(ctx, session.CreateOptions{Rows: req.Rows, Turn: req.Turn, Rule: req.Rule})
		if err != nil {
			return err
		}
		c.release(ctx)
		c.id, c.owned = snap.ID, true
		c.push(draughtsdto.FrameState, session.ToState(snap))

	case draughtsdto.FrameResume:
		var req draughtsdto.ResumeRequest
		if err := decode(f.M, &req); err != nil {
			return err
		}
		snap, err := c.srv.mgr.State(ctx, strings.TrimSpace(req.ID))
		if err != nil {
			return err
		}
		if snap.ID != c.id {
			c.release(ctx)
			c.id, c.owned = snap.ID, false
		}
		c.push(draughtsdto.FrameState, session.ToState(snap))

	case draughtsdto.FrameState:
		snap, err := c.srv.mgr.State(ctx, c.id)
		if err != nil {
			return err
		}
		c.push(draughtsdto.FrameState, session.ToState(snap))

	case draughtsdto.FrameMoves:
		var req draughtsdto.MovesRequest
		if err := decode(f.M, &req); err != nil {
			return err
		}
		moves, err := c.srv.mgr.LegalMoves(ctx, c.id, req.Row, req.Col)
		if err != nil {
			return err
		}
		c.push(draughtsdto.FrameMoves, draughtsdto.MovesResponse{
			From:  draughtsdto.Square{Row: req.Row, Col: req.Col},
			Moves: session.MovesToDTO(moves),
		})

	case draughtsdto.FrameApply:
		var req draughtsdto.ApplyMoveRequest
		if err := decode(f.M, &req); err != nil {
			return err
		}
		var (
			res *session.MoveResult
			err error
		)
		switch {
		case req.Move != nil:
			res, err = c.srv.mgr.Apply(ctx, c.id, session.MoveFromDTO(*req.Move))
		case strings.TrimSpace(req.Notation) != "":
			res, err = c.srv.mgr.ApplyNotation(ctx, c.id, req.Notation)
		default:
			err = fmt.Errorf("%w: apply needs move or notation", session.ErrInvalidInput)
		}
		if err != nil {
			return err
		}
		c.push(draughtsdto.FrameMoved, session.Summary(res))

	default:
		return fmt.Errorf("%w: unknown frame type %q", session.ErrInvalidInput, f.T)
	}
	return nil
}

// release closes the session when this connection created it.
func (c *conn) release(ctx context.Context) {
	if c.id == "" || !c.owned {
		return
	}
	if err := c.srv.mgr.Close(ctx, c.id); err != nil && !errors.Is(err, session.ErrNotFound) {
		c.log.Warn("ws_session_close_failed", zap.String("session_id", c.id), zap.Error(err))
	}
	c.id, c.owned = "", false
}

func (c *conn) fail(err error) {
	de := session.Describe(c.srv.cat, c.id, err)
	if de.Code == draughtsdto.CodeInternal {
		c.log.Error("ws_request_failed", zap.String("session_id", c.id), zap.Error(err))
	}
	c.push(draughtsdto.FrameError, de)
}

func (c *conn) push(t string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("ws_encode_failed", zap.String("type", t), zap.Error(err))
		return
	}
	select {
	case c.send <- draughtsdto.Frame{T: t, M: raw}:
	default:
		c.log.Warn("ws_send_dropped", zap.String("type", t))
	}
}

func (c *conn) writeLoop(ctx context.Context) {
	ping := time.NewTicker(c.srv.pingInterval)
	defer ping.Stop()
	for {
		select {
		case f, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.ws, f)
			cancel()
			if err != nil {
				c.log.Debug("ws_write_failed", zap.Error(err))
			}
		case <-ping.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := c.ws.Ping(pctx)
			cancel()
			if err != nil {
				c.log.Debug("ws_ping_failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", session.ErrInvalidInput, err)
	}
	return nil
}
