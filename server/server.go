// Package server exposes the portfolio engine as the dashboard's JSON API:
// CSV uploads in, portfolio snapshots out.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/foliodash/folio"
	"github.com/foliodash/folio/ingest"
)

// uploadLimit caps the accepted CSV payload size.
const uploadLimit = 16 << 20 // 16 MiB

// Config holds server configuration.
type Config struct {
	Port int
	Log  zerolog.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	router *chi.Mux
	server *http.Server
	store  *Store
	log    zerolog.Logger
}

// New creates a server around the given store.
func New(cfg Config, store *Store) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		log:    cfg.Log.With().Str("component", "server").Logger(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))

	// The dashboard is served from a separate origin.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/upload/transactions", s.handleUploadTransactions)
		r.Post("/upload/prices", s.handleUploadPrices)
		r.Get("/portfolio", s.handlePortfolio)
	})
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUploadTransactions(w http.ResponseWriter, r *http.Request) {
	file, ok := s.uploadFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	txs, rowErrs, err := ingest.ReadTransactions(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	upload, err := s.store.SetTransactions(txs, rowErrs)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.log.Info().Str("upload", upload.ID).Int("rows", upload.Rows).
		Int("row_errors", len(rowErrs)).Msg("transactions uploaded")
	s.respondJSON(w, http.StatusOK, upload)
}

func (s *Server) handleUploadPrices(w http.ResponseWriter, r *http.Request) {
	file, ok := s.uploadFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	prices, rowErrs, err := ingest.ReadMarketPrices(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	upload, err := s.store.SetPrices(prices, rowErrs)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.log.Info().Str("upload", upload.ID).Int("rows", upload.Rows).
		Int("row_errors", len(rowErrs)).Msg("market prices uploaded")
	s.respondJSON(w, http.StatusOK, upload)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.store.Snapshot()
	if errors.Is(err, folio.ErrIncompleteData) {
		s.respondError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

// uploadFile extracts the "file" part of a multipart upload. On failure it
// writes the error response and reports false.
func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return nil, false
	}
	return file, true
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("writing response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
