// Package server serves a generated site directory over HTTP. It never
// writes to the directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// NotFoundPage is served with status 404 for missing paths when present in
// the root.
const NotFoundPage = "notfound.html"

// NewHandler returns a read-only static file handler for root. Directory
// listings are never produced: a directory without index.html is a 404.
func NewHandler(root string) http.Handler {
	files := http.FileServer(http.Dir(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		name := path.Clean("/" + r.URL.Path)
		full := filepath.Join(root, filepath.FromSlash(name))
		info, err := os.Stat(full)
		switch {
		case err != nil:
			notFound(w, r, root)
			return
		case info.IsDir():
			if _, err := os.Stat(filepath.Join(full, "index.html")); err != nil {
				notFound(w, r, root)
				return
			}
		}

		slog.Debug("Serving", "path", r.URL.Path)
		files.ServeHTTP(w, r)
	})
}

func notFound(w http.ResponseWriter, r *http.Request, root string) {
	body, err := os.ReadFile(filepath.Join(root, NotFoundPage))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

// Server serves one directory on one address.
type Server struct {
	http *http.Server
	root string
}

// New returns a Server for root bound to addr.
func New(addr, root string) *Server {
	return &Server{
		root: root,
		http: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(root),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks until ctx is cancelled or the listener fails, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory '%s' not found, run generate first", s.root)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving site", "root", s.root, "url", "http://"+strings.TrimPrefix(s.http.Addr, "http://"))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve on '%s': %w", s.http.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
