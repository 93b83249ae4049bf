// Package httpapi exposes snake sessions over HTTP with gin. Each session is
// a session.Loop driven by its own timer; clients send input signals and poll
// snapshots or PNG boards.
package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// Options configures a Server.
type Options struct {
	// IdleTimeout is how long a session may go without input before it is
	// stopped. Zero disables reaping.
	IdleTimeout time.Duration

	// Seed returns the food seed for a new session. Defaults to the clock.
	Seed func() int64
}

// DefaultOptions returns the options used by the http command.
func DefaultOptions() Options {
	return Options{IdleTimeout: 15 * time.Minute}
}

// Server serves the HTTP API.
type Server struct {
	ctx      context.Context
	registry *session.Registry
	store    snake.BestScoreStore
	live     *config.Live
	logger   *log.Logger
	opts     Options
	router   *gin.Engine
}

// New creates a server. Sessions it starts live until ctx is done, they are
// deleted, or they go idle. store may be nil.
func New(ctx context.Context, registry *session.Registry, store snake.BestScoreStore, live *config.Live, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Seed == nil {
		opts.Seed = func() int64 { return time.Now().UnixNano() }
	}
	s := &Server{
		ctx:      ctx,
		registry: registry,
		store:    store,
		live:     live,
		logger:   logger,
		opts:     opts,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.health)
	api := r.Group("/api")
	api.GET("/best", s.getBest)
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.POST("/sessions/:id/input", s.postInput)
	api.GET("/sessions/:id/board.png", s.getBoard)
	api.GET("/sessions/:id/stream", s.streamSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until the server context is done.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.opts.IdleTimeout > 0 {
		go s.reap()
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		s.logger.Error("server error", "error", err)
		return err
	case <-s.ctx.Done():
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	s.registry.StopAll()
	return err
}

// reap stops idle sessions until the server context is done.
func (s *Server) reap() {
	t := time.NewTicker(max(s.opts.IdleTimeout/4, time.Second))
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			if n := s.registry.ReapIdle(s.opts.IdleTimeout); n > 0 {
				s.logger.Info("Reaped idle sessions", "count", n, "active", s.registry.Count())
			}
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.registry.Count()})
}

func (s *Server) getBest(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, snake.BestScore{})
		return
	}
	rec, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to load best score", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load best score"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

type createResponse struct {
	ID       session.ID     `json:"id"`
	Snapshot snake.Snapshot `json:"snapshot"`
}

func (s *Server) createSession(c *gin.Context) {
	rules := snake.DefaultRules()
	if s.live != nil {
		rules = snake.RulesFromConfig(s.live.Get())
	}

	id := session.NewID()
	logger := s.logger.With("session", string(id))
	engine := snake.New(s.ctx, rules, s.store,
		snake.WithLogger(logger),
		snake.WithSeed(s.opts.Seed()),
	)
	l := s.registry.Start(s.ctx, id, engine, s.logger)

	logger.Info("Session created", "active", s.registry.Count())
	c.JSON(http.StatusCreated, createResponse{ID: id, Snapshot: l.Snapshot()})
}

// loop resolves the :id parameter, answering 404 when it is unknown.
func (s *Server) loop(c *gin.Context) (*session.Loop, bool) {
	l, ok := s.registry.Get(session.ID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	}
	return l, ok
}

func (s *Server) getSession(c *gin.Context) {
	l, ok := s.loop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, l.Snapshot())
}

type inputRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Value string `json:"value"`
}

func (s *Server) postInput(c *gin.Context) {
	l, ok := s.loop(c)
	if !ok {
		return
	}

	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := snake.ParseInput(req.Kind, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !l.Send(in) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session is busy or stopped"})
		return
	}
	// The loop applies inputs asynchronously; clients poll the snapshot.
	c.JSON(http.StatusAccepted, gin.H{"accepted": in.Kind.String()})
}

func (s *Server) getBoard(c *gin.Context) {
	l, ok := s.loop(c)
	if !ok {
		return
	}
	scale, err := strconv.Atoi(c.DefaultQuery("scale", "1"))
	if err != nil || scale < 1 || scale > render.MaxScale {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scale must be between 1 and " + strconv.Itoa(render.MaxScale)})
		return
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, l.Snapshot(), scale); err != nil {
		s.logger.Error("Failed to render board", "session", l.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render board"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// streamBuffer is how many snapshots a slow stream reader may fall behind
// before the oldest are dropped.
const streamBuffer = 16

// streamSession sends every published snapshot as a server-sent event until
// the client goes away or the session stops.
func (s *Server) streamSession(c *gin.Context) {
	l, ok := s.loop(c)
	if !ok {
		return
	}
	sub := l.Subscribe(streamBuffer)
	defer sub.Close()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("snapshot", l.Snapshot())
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case snap, ok := <-sub.C():
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	l, ok := s.loop(c)
	if !ok {
		return
	}
	l.Stop()
	s.registry.Unregister(l.ID())
	c.Status(http.StatusNoContent)
}
