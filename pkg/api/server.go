// Package api serves TOC generation and outline extraction over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/md-toc/pkg/config"
)

// MaxDocumentBytes caps the size of a request body
const MaxDocumentBytes = 10 << 20

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API server for md-toc
type Server struct {
	router  chi.Router
	cfg     *config.Config
	comment string
	log     *logrus.Entry
}

// NewServer creates and configures the HTTP server. comment is placed in
// generated TOCs unless a request overrides it.
func NewServer(cfg *config.Config, comment string, logger *logrus.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		comment: comment,
		log:     logger.WithField("component", "api"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/toc", s.handleTOC)
		r.Post("/outline", s.handleOutline)
	})

	s.router = r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		s.log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
