// Package web serves the browser frontend: embedded static assets and a
// WebSocket endpoint that runs one game per connection.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/storage"
)

//go:embed assets
var embedded embed.FS

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml; charset=utf-8",
	".ico":  "image/x-icon",
	".txt":  "text/plain; charset=utf-8",
}

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8000").
	Address string

	// Root overrides the embedded assets with a directory on disk.
	Root string

	// DBPath is the path to the scores database. Empty disables scores.
	DBPath string

	// FrameRate is the session loop rate.
	FrameRate int

	// Snake is the base game configuration; query parameters may override
	// tps, history and rewind mode per connection.
	Snake config.SnakeConfig
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:   ":8000",
		DBPath:    "~/.warpsnake/scores.db",
		FrameRate: 60,
		Snake:     config.DefaultSnakeConfig(),
	}
}

// Server serves static assets and WebSocket play sessions.
type Server struct {
	config   ServerConfig
	assets   fs.FS
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	server   *http.Server

	// ctx is cancelled on shutdown; hijacked WebSocket connections are not
	// closed by http.Server.Shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "warpsnake-web",
	})

	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	cfg.Snake.Normalize()

	var assets fs.FS
	if cfg.Root != "" {
		info, err := os.Stat(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("web: asset root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("web: asset root %s is not a directory", cfg.Root)
		}
		assets = os.DirFS(cfg.Root)
	} else {
		sub, err := fs.Sub(embedded, "assets")
		if err != nil {
			return nil, fmt.Errorf("web: embedded assets: %w", err)
		}
		assets = sub
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
			// Continue without storage
			store = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		assets: assets,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Handler returns the HTTP handler serving assets and /ws. Paths are not
// cleaned by a mux; handleStatic rejects traversal itself.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			s.handleWS(w, r)
			return
		}
		s.handleStatic(w, r)
	})
}

// handleStatic serves GET and HEAD requests for assets.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		sendText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	p := r.URL.Path
	if !strings.HasPrefix(p, "/") || strings.ContainsRune(p, 0) {
		sendText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if p == "/healthz" {
		sendText(w, http.StatusOK, "ok")
		return
	}

	if p == "/" {
		p = "/index.html"
	}
	name := strings.TrimPrefix(p, "/")
	if !fs.ValidPath(name) {
		sendText(w, http.StatusNotFound, "Not Found")
		return
	}

	info, err := fs.Stat(s.assets, name)
	if err != nil || info.IsDir() {
		sendText(w, http.StatusNotFound, "Not Found")
		return
	}

	data, err := fs.ReadFile(s.assets, name)
	if err != nil {
		s.logger.Error("asset read failed", "path", name, "error", err)
		sendText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypeFor(name))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	setNoCache(h)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	//nolint:errcheck // Client may have gone away
	w.Write(data)
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func setNoCache(h http.Header) {
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
}

func sendText(w http.ResponseWriter, status int, text string) {
	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	setNoCache(h)
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	w.Write([]byte(text))
}

// ListenAndServe starts the web server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		_ = s.Shutdown()
		return fmt.Errorf("web: listen: %w", err)
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting connections and ends running sessions.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.cancel()
	err := s.server.Shutdown(ctx)

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
