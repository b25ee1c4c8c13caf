// Package server exposes the HTTP intake for comment-submit events.
// Registration of the real platform trigger is out of scope; this endpoint
// is the seam it calls into.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courierbot/internal/event"
	"courierbot/internal/relay"
	"courierbot/internal/store"
	logx "courierbot/pkg/logx"
)

type Config struct {
	Addr string // default ":8080"
}

type Server struct {
	engine *relay.Engine
	st     store.Store
	log    logx.Logger

	httpSrv *http.Server
}

func New(cfg Config, eng *relay.Engine, st store.Store, log logx.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	s := &Server{engine: eng, st: st, log: log}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/v1/events", s.handleEvent)
	r.GET("/healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router (for tests).
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) handleEvent(c *gin.Context) {
	var ev event.CommentEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	outcome, err := s.engine.Process(c.Request.Context(), ev)
	if err != nil {
		s.log.Error("event processing failed",
			logx.String("thread", ev.ThreadID),
			logx.String("comment", ev.CommentID),
			logx.String("outcome", string(outcome)),
			logx.Err(err),
		)
		switch {
		case errors.Is(err, relay.ErrDeliveryFailed), errors.Is(err, relay.ErrStoreUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			// Reply failures: the relay itself succeeded; report the outcome
			// but flag the degraded reply for the caller's logs.
			c.JSON(http.StatusOK, gin.H{"outcome": string(outcome), "warning": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": string(outcome)})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.st.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("http intake listening", logx.String("addr", s.httpSrv.Addr))
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
