package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/draughts-server/internal/apiclient"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/obslog"
	"github.com/park285/draughts-server/internal/presenter"
	"github.com/park285/draughts-server/pkg/draughtsdto"
)

func main() {
	baseURL := os.Getenv("DRAUGHTS_BASE_URL")
	wsURL := os.Getenv("DRAUGHTS_WS_URL")
	origin := os.Getenv("DRAUGHTS_ORIGIN")

	if baseURL == "" {
		log.Fatal("DRAUGHTS_BASE_URL is required")
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	headers := func() map[string]string {
		m := map[string]string{}
		if origin != "" {
			m["Origin"] = origin
		}
		return m
	}

	client := apiclient.New(baseURL,
		apiclient.WithHeaderProvider(headers),
		apiclient.WithTimeout(8*time.Second),
	)
	f := presenter.NewFormatter(msgcat.MustDefault())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := checkREST(ctx, client, f); err != nil {
		logger.Fatal("rest check failed", zap.Error(err))
	}
	logger.Info("rest check ok")

	if wsURL == "" {
		logger.Info("DRAUGHTS_WS_URL not set; skipping WS check")
		return
	}
	if err := checkWS(ctx, wsURL, headers, f); err != nil {
		logger.Fatal("ws check failed", zap.Error(err))
	}
	logger.Info("ws check ok")
}

func checkREST(ctx context.Context, c *apiclient.Client, f *presenter.Formatter) error {
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	st, err := c.CreateGame(ctx, draughtsdto.CreateGameRequest{})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer func() { _ = c.Close(context.Background(), st.ID) }()

	if len(st.Movable) == 0 {
		return fmt.Errorf("no movable pieces in the opening")
	}
	from := st.Movable[0]
	moves, err := c.LegalMoves(ctx, st.ID, from.Row, from.Col)
	if err != nil {
		return fmt.Errorf("moves: %w", err)
	}
	if len(moves) == 0 {
		return fmt.Errorf("movable piece %+v has no moves", from)
	}
	sum, err := c.Apply(ctx, st.ID, draughtsdto.ApplyMoveRequest{Move: &moves[0]})
	if err != nil {
		return fmt.Errorf("apply %s: %w", moves[0].Notation, err)
	}
	if sum.State.Turn == st.Turn {
		return fmt.Errorf("turn did not pass after %s", moves[0].Notation)
	}
	fmt.Print(f.State(sum.State))
	return nil
}

func checkWS(ctx context.Context, wsURL string, headers apiclient.HeaderProvider, f *presenter.Formatter) error {
	ws, err := apiclient.DialWS(ctx, wsURL, headers)
	if err != nil {
		return err
	}
	defer ws.Close()

	var st draughtsdto.SessionState
	if err := ws.Expect(ctx, draughtsdto.FrameState, &st); err != nil {
		return fmt.Errorf("initial state: %w", err)
	}
	if len(st.Movable) == 0 {
		return fmt.Errorf("no movable pieces in the opening")
	}
	from := st.Movable[len(st.Movable)-1]
	if err := ws.Send(ctx, draughtsdto.FrameMoves, draughtsdto.MovesRequest{Row: from.Row, Col: from.Col}); err != nil {
		return err
	}
	var mv draughtsdto.MovesResponse
	if err := ws.Expect(ctx, draughtsdto.FrameMoves, &mv); err != nil {
		return fmt.Errorf("moves: %w", err)
	}
	if len(mv.Moves) == 0 {
		return fmt.Errorf("movable piece %+v has no moves", from)
	}
	if err := ws.Send(ctx, draughtsdto.FrameApply, draughtsdto.ApplyMoveRequest{Notation: mv.Moves[0].Notation}); err != nil {
		return err
	}
	var sum draughtsdto.MoveSummary
	if err := ws.Expect(ctx, draughtsdto.FrameMoved, &sum); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	fmt.Print(f.State(sum.State))
	if !strings.EqualFold(sum.State.ID, st.ID) {
		return fmt.Errorf("session changed from %s to %s", st.ID, sum.State.ID)
	}
	return nil
}
