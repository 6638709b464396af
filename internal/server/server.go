package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/config"
	"github.com/dukerupert/choreboard/internal/handler"
	"github.com/dukerupert/choreboard/internal/metrics"
	"github.com/dukerupert/choreboard/internal/middleware"
	ws "github.com/dukerupert/choreboard/internal/websocket"
)

type Server struct {
	db          *sql.DB
	svc         *board.Service
	hub         *ws.Hub
	userH       *handler.UserHandler
	groupH      *handler.GroupHandler
	choreH      *handler.ChoreHandler
	boardH      *handler.BoardHandler
	rateLimiter *middleware.RateLimiter
	rollover    *board.RolloverWatcher
	logger      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(db *sql.DB, clk clock.Clock, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	svc := board.NewService(db, clk, logger.With("component", "board"))

	rolloverLogger := logger.With("component", "rollover")
	rollover := board.NewRolloverWatcher(clk, cfg.RolloverInterval, func(prev, next string) {
		metrics.DayRollovers.Inc()
		rolloverLogger.Info("day rolled over", "from", prev, "to", next)
		hub.Broadcast(ws.NewMessage(ws.EntityBoard, ws.ActionRollover, "", map[string]any{"date": next}))
	})

	return &Server{
		db:          db,
		svc:         svc,
		hub:         hub,
		userH:       handler.NewUserHandler(svc, hub, logger.With("component", "user")),
		groupH:      handler.NewGroupHandler(svc, hub, logger.With("component", "chore_group")),
		choreH:      handler.NewChoreHandler(svc, hub, logger.With("component", "chore"), cfg.AutoCredit),
		boardH:      handler.NewBoardHandler(svc, hub, logger.With("component", "board_http")),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		rollover:    rollover,
		logger:      logger,
	}
}

const rateLimitSweep = 5 * time.Minute

// Start runs the day rollover watcher and the rate limiter sweep.
func (s *Server) Start(ctx context.Context) {
	s.rollover.Start(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		s.rateLimiter.Run(ctx, rateLimitSweep)
	}(s.done)
}

// Stop halts background work started by Start and waits for it to exit.
func (s *Server) Stop() {
	s.rollover.Stop()

	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	api := http.NewServeMux()
	s.registerAPIRoutes(api)

	limit := middleware.RateLimit(s.rateLimiter, middleware.RealIP)
	mux.Handle("/api/", limit(api))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	// Users
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("POST /api/users", s.userH.Create)
	mux.HandleFunc("PATCH /api/users/{id}", s.userH.Update)
	mux.HandleFunc("DELETE /api/users/{id}", s.userH.Delete)
	mux.HandleFunc("GET /api/users/{id}/chores", s.userH.Chores)
	mux.HandleFunc("GET /api/pool/chores", s.userH.PoolChores)

	// Ledger
	mux.HandleFunc("GET /api/users/{id}/balance/{currency}", s.userH.Balance)
	mux.HandleFunc("POST /api/users/{id}/balance/{currency}", s.userH.AdjustBalance)

	// Chore groups
	mux.HandleFunc("GET /api/groups", s.groupH.List)
	mux.HandleFunc("POST /api/groups", s.groupH.Create)
	mux.HandleFunc("PUT /api/groups/{id}", s.groupH.Update)
	mux.HandleFunc("DELETE /api/groups/{id}", s.groupH.Delete)

	// Completion
	mux.HandleFunc("POST /api/chores/{id}/toggle", s.choreH.Toggle)
	mux.HandleFunc("POST /api/chores/reset", s.choreH.Reset)

	// Board and snapshots
	mux.HandleFunc("GET /api/board", s.boardH.Board)
	mux.HandleFunc("GET /api/export", s.boardH.Export)
	mux.HandleFunc("POST /api/import", s.boardH.Import)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status, "today": s.svc.Today()})
}
