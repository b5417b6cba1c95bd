package builder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/draughts-server/internal/config"
	"github.com/park285/draughts-server/internal/httpapi"
	"github.com/park285/draughts-server/internal/msgcat"
	"github.com/park285/draughts-server/internal/session"
	"github.com/park285/draughts-server/internal/wsserver"
)

type Deps struct {
	Manager *session.Manager
	Catalog *msgcat.Catalog
	Store   session.Store
	Redis   *redis.Client // nil with the in-memory store

	cfg *config.AppConfig
}

// New wires the session store, manager and message catalog from cfg.
// Redis backs the sessions when RedisURL is set; otherwise they live in memory.
func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	ttl := time.Duration(cfg.SessionTTLSec) * time.Second
	deps := &Deps{Catalog: cat, cfg: cfg}
	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, err := parseRedisURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		deps.Redis = rdb
		deps.Store = session.NewRedisStore(rdb, ttl)
		logger.Info("session_store", zap.String("kind", "redis"), zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	} else {
		deps.Store = session.NewMemoryStore(ttl)
		logger.Info("session_store", zap.String("kind", "memory"))
	}

	deps.Manager = session.NewManager(deps.Store, session.Options{
		MaxSessions: cfg.MaxSessions,
		DefaultRule: cfg.Rule(),
	})
	return deps, nil
}

// Handler mounts /ws, /api and /health.
func (d *Deps) Handler() http.Handler {
	mux := http.NewServeMux()
	httpapi.New(d.Manager, d.Catalog).Register(mux)
	mux.Handle("/ws", wsserver.New(d.Manager, d.Catalog, wsserver.Options{
		AllowedOrigins: d.cfg.AllowedOrigins,
		PingInterval:   time.Duration(d.cfg.PingIntervalSec) * time.Second,
	}))
	return mux
}

func (d *Deps) Close() error {
	if d == nil || d.Redis == nil {
		return nil
	}
	return d.Redis.Close()
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad db %q: %w", p, err)
		}
		db = n
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Username: u.User.Username(), Password: pass, DB: db}, nil
}
