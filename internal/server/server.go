// Package server implements the labelator preview server.
//
// The server renders label sheets on the fly so a user can tune layout
// parameters in a browser before printing: the index page embeds a live
// SVG preview whose query string carries the layout parameters, and a
// render endpoint produces downloadable PDF/PNG/SVG documents.
//
// Rendered previews are memoized through a [cache.Cache] keyed by the
// full render input, so repeated parameter tweaks only re-render what
// actually changed.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mlandt/labelator/pkg/cache"
	"github.com/mlandt/labelator/pkg/sheet"
)

// downloadTTL is how long a rendered document stays downloadable.
const downloadTTL = time.Hour

// Config holds the preview server configuration.
type Config struct {
	Addr   string      // listen address (default ":8787")
	Sheet  sheet.Sheet // label-paper calibration (default sheet.Default())
	Cache  cache.Cache // render memoization (default cache.NewNullCache())
	Logger *log.Logger // defaults to log.Default()
}

// download is one rendered document held for pickup.
type download struct {
	name        string
	contentType string
	data        []byte
	createdAt   time.Time
}

// Server serves live label-sheet previews.
type Server struct {
	addr   string
	router *chi.Mux
	logger *log.Logger
	cache  cache.Cache
	sheet  sheet.Sheet

	mu        sync.Mutex
	downloads map[string]download
}

// New creates a preview server. Zero-valued config fields fall back to
// their defaults.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8787"
	}
	if cfg.Sheet.Rows == 0 {
		cfg.Sheet = sheet.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:      cfg.Addr,
		router:    chi.NewRouter(),
		logger:    cfg.Logger,
		cache:     cfg.Cache,
		sheet:     cfg.Sheet,
		downloads: make(map[string]download),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/preview.svg", s.handlePreview)
	s.router.Post("/render", s.handleRender)
	s.router.Get("/download/{id}", s.handleDownload)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Preview server listening on %s (sheet %s)", s.addr, s.sheet.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// store keeps a rendered document for pickup and prunes stale entries.
func (s *Server) store(id string, d download) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-downloadTTL)
	for key, old := range s.downloads {
		if old.createdAt.Before(cutoff) {
			delete(s.downloads, key)
		}
	}
	s.downloads[id] = d
}

// take fetches a stored document by id.
func (s *Server) take(id string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.downloads[id]
	return d, ok
}
