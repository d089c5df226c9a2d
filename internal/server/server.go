package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealfinder/config"
	"github.com/pageza/mealfinder/internal/api"
	"github.com/pageza/mealfinder/internal/database"
	"github.com/pageza/mealfinder/internal/mealdb"
	"github.com/pageza/mealfinder/internal/router"
	"github.com/pageza/mealfinder/internal/service"
	"github.com/pageza/mealfinder/internal/session"
)

// SessionBackend is what the server keeps session pages in
type SessionBackend interface {
	session.Store
	session.Guard
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
}

// New creates a server around an already built set of dependencies
func New(cfg *config.Config, mealDB service.MealDB, sessions SessionBackend) *Server {
	gin.SetMode(config.GetEnvironment().GinMode())

	finder := service.NewFinderService(mealDB)
	engine := router.SetupRouter(
		api.NewPageHandler(finder, sessions, sessions),
		api.NewMealsHandler(finder),
		router.Options{
			CORSOrigins:   cfg.CORSOrigins,
			SessionMaxAge: int(cfg.SessionTTL / time.Second),
		},
	)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewFromConfig wires the recipe API client and the session backend
// described by cfg. Sessions live in Redis when it is configured and in
// memory otherwise.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	client := mealdb.NewClient(cfg.MealDBBaseURL, nil)

	var (
		sessions SessionBackend
		rdb      *redis.Client
	)
	if cfg.UseRedis() {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up session store: %w", err)
		}
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL, cfg.SearchLockTTL)
	} else {
		log.Printf("Redis not configured, keeping sessions in memory")
		sessions = session.NewMemoryStore(cfg.SessionTTL, cfg.SearchLockTTL)
	}

	srv := New(cfg, client, sessions)
	srv.redis = rdb
	return srv, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until the server is shut down
func (s *Server) Start() error {
	log.Printf("Meal Finder listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes the Redis client
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Run starts the server and shuts it down when ctx is done
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
