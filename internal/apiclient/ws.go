package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/draughts-server/pkg/draughtsdto"
)

// WSConn is a synchronous client for the /ws endpoint.
type WSConn struct {
	conn *websocket.Conn
}

// DialWS connects to wsURL. The server answers with a state frame for the
// session it created for this connection.
func DialWS(ctx context.Context, wsURL string, headers HeaderProvider) (*WSConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, wsURL, &websocket.DialOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
		HTTPHeader:      buildHeaders(headers),
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	return &WSConn{conn: conn}, nil
}

func (w *WSConn) Send(ctx context.Context, t string, payload any) error {
	f := draughtsdto.Frame{T: t}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal frame: %w", err)
		}
		f.M = raw
	}
	return wsjson.Write(ctx, w.conn, f)
}

// Next reads one frame. An error frame is returned as *APIError.
func (w *WSConn) Next(ctx context.Context) (draughtsdto.Frame, error) {
	var f draughtsdto.Frame
	if err := wsjson.Read(ctx, w.conn, &f); err != nil {
		return f, err
	}
	if f.T == draughtsdto.FrameError {
		e := &APIError{}
		if err := json.Unmarshal(f.M, &e.DomainError); err != nil {
			return f, fmt.Errorf("decode error frame: %w", err)
		}
		return f, e
	}
	return f, nil
}

// Expect reads one frame of type t and decodes its payload into out.
func (w *WSConn) Expect(ctx context.Context, t string, out any) error {
	f, err := w.Next(ctx)
	if err != nil {
		return err
	}
	if f.T != t {
		return fmt.Errorf("frame %q, want %q", f.T, t)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(f.M, out)
}

func (w *WSConn) Close() error {
	return w.conn.Close(websocket.StatusNormalClosure, "close")
}

func buildHeaders(h HeaderProvider) http.Header {
	hdr := http.Header{}
	if h == nil {
		return hdr
	}
	for k, v := range h() {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			continue
		}
		hdr.Set(k, v)
	}
	return hdr
}
