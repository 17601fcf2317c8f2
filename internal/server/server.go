// Package server exposes the layout engine over HTTP.
//
// Routes:
//
//	POST /api/generate                       prompt → layout
//	POST /api/save                           store a design
//	GET  /api/list                           saved designs, newest first
//	GET  /api/get/{id}                       one saved design
//	POST /api/place                          layout → 2D + 3D placement
//	POST /api/render/{format}                layout → artifact bytes
//	POST /api/designs/{id}/publish/{format}  stored design → shared URL
//	GET  /api/version, /healthz
//	GET  /ws/preview                         live scene preview (websocket)
//	GET  /artifacts/*                        published files (disk store)
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/dreamhouse/internal/config"
	"github.com/matzehuels/dreamhouse/pkg/artifact"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// Deps are the collaborators a Server needs. Runner and Store are
// required; a nil Parser means regex parsing and a nil Artifacts store
// disables publishing.
type Deps struct {
	Runner    *pipeline.Runner
	Parser    prompt.Parser
	Store     store.Store
	Artifacts artifact.Store
	Logger    *log.Logger

	// Defaults seeds render options for every request.
	Defaults pipeline.Options
	Config   config.ServerConfig
}

// Server is the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	parser    prompt.Parser
	designs   store.Store
	artifacts artifact.Store
	logger    *log.Logger
	defaults  pipeline.Options
	cfg       config.ServerConfig
	upgrader  websocket.Upgrader
}

// New builds a server from deps.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runner := deps.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	parser := deps.Parser
	if parser == nil {
		parser = prompt.NewRegexParser()
	}
	s := &Server{
		runner:    runner,
		parser:    parser,
		designs:   deps.Store,
		artifacts: deps.Artifacts,
		logger:    logger.WithPrefix("http"),
		defaults:  deps.Defaults,
		cfg:       deps.Config,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 16384,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws/preview", s.handlePreview)
	r.Get("/artifacts/*", s.handleArtifact)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)

		r.Post("/generate", s.handleGenerate)
		r.Post("/save", s.handleSave)
		r.Get("/list", s.handleList)
		r.Get("/get/{id}", s.handleGet)
		r.Delete("/designs/{id}", s.handleDelete)

		r.Post("/place", s.handlePlace)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/designs/{id}/publish/{format}", s.handlePublish)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.cfg.Addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
