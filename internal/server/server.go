// file: internal/server/server.go
// version: 1.5.0
// guid: 6f7a8b9c-0d1e-4f2a-8b3c-4d5e6f7a8b9c

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/ingest"
	"github.com/mixcrate/mixcrate/internal/metadata"
	"github.com/mixcrate/mixcrate/internal/metrics"
	"github.com/mixcrate/mixcrate/internal/server/middleware"
	"github.com/mixcrate/mixcrate/internal/session"
)

// Server represents the HTTP server handling Discord interactions.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine

	store    database.Store
	sessions *session.Manager
	pipeline *ingest.Pipeline
	discord  *discord.Client
	lastfm   *metadata.LastFMClient

	appID       string
	channelFile string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Options wires the server's collaborators.
type Options struct {
	Store    database.Store
	Sessions *session.Manager
	Pipeline *ingest.Pipeline
	Discord  *discord.Client
	LastFM   *metadata.LastFMClient

	AppID       string
	PublicKey   string
	ChannelFile string
	// DisableVerify skips signature checks. Local development only.
	DisableVerify bool
}

// NewServer creates a new server instance.
func NewServer(opts Options) *Server {
	router := gin.Default()
	router.Use(gin.Recovery())

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:      router,
		store:       opts.Store,
		sessions:    opts.Sessions,
		pipeline:    opts.Pipeline,
		discord:     opts.Discord,
		lastfm:      opts.LastFM,
		appID:       opts.AppID,
		channelFile: opts.ChannelFile,
	}

	server.setupRoutes(opts.PublicKey, opts.DisableVerify)

	return server
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until an interrupt signal arrives.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes.
func (s *Server) setupRoutes(publicKey string, disableVerify bool) {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/healthz", s.healthCheck)

	interactions := s.router.Group("/")
	if disableVerify {
		log.Printf("[WARN] interaction signature verification is DISABLED")
	} else {
		interactions.Use(middleware.VerifyInteraction(publicKey))
	}
	interactions.POST("/interactions", s.handleInteraction)
}

func (s *Server) healthCheck(c *gin.Context) {
	count, err := s.store.CountSongs()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "songs": count})
}
