package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, mutate func(*ServerConfig)) *Server {
	t.Helper()
	cfg := DefaultServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.DBPath = ""
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() {
		s.cancel()
		if s.store != nil {
			s.store.Close()
		}
	})
	return s
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStaticServer(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name        string
		method      string
		target      string
		status      int
		contentType string
		body        string
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK, "text/plain; charset=utf-8", "ok"},
		{"index", http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8", "<canvas"},
		{"script", http.MethodGet, "/app.js", http.StatusOK, "text/javascript; charset=utf-8", "WebSocket"},
		{"style", http.MethodGet, "/style.css", http.StatusOK, "text/css; charset=utf-8", "canvas"},
		{"missing", http.MethodGet, "/nope.png", http.StatusNotFound, "text/plain; charset=utf-8", "Not Found"},
		{"traversal", http.MethodGet, "/../server.go", http.StatusNotFound, "text/plain; charset=utf-8", "Not Found"},
		{"encoded traversal", http.MethodGet, "/%2e%2e/server.go", http.StatusNotFound, "text/plain; charset=utf-8", "Not Found"},
		{"post", http.MethodPost, "/", http.StatusMethodNotAllowed, "text/plain; charset=utf-8", "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, tt.method, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("Status = %d, expected %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, expected %q", ct, tt.contentType)
			}
			if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
				t.Errorf("Cache-Control = %q, expected no-store", cc)
			}
			if nosniff := rec.Header().Get("X-Content-Type-Options"); nosniff != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, expected nosniff", nosniff)
			}
			if !strings.Contains(rec.Body.String(), tt.body) {
				t.Errorf("Body does not contain %q", tt.body)
			}
		})
	}
}

func TestMethodNotAllowedSetsAllow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, http.MethodDelete, "/index.html")
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Allow = %q, expected %q", allow, "GET, HEAD")
	}
}

func TestHeadHasNoBody(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, http.MethodHead, "/index.html")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, expected 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD returned %d body bytes", rec.Body.Len())
	}
	if rec.Header().Get("Content-Length") == "" {
		t.Error("HEAD should report Content-Length")
	}
}

func TestBadPath(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "index.html"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400", rec.Code)
	}
}

func TestRootOverride(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("custom page"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "data.bin"), []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	s := newTestServer(t, func(c *ServerConfig) { c.Root = root })

	rec := serve(s, http.MethodGet, "/")
	if body, _ := io.ReadAll(rec.Body); string(body) != "custom page" {
		t.Errorf("Body = %q, expected custom page", body)
	}

	if rec := serve(s, http.MethodGet, "/sub"); rec.Code != http.StatusNotFound {
		t.Errorf("Directory status = %d, expected 404", rec.Code)
	}

	rec = serve(s, http.MethodGet, "/data.bin")
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("Content-Type = %q, expected application/octet-stream", ct)
	}
}

func TestRootMustExist(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.DBPath = ""
	cfg.Root = filepath.Join(t.TempDir(), "missing")

	if _, err := NewServer(cfg); err == nil {
		t.Error("NewServer should fail for a missing root")
	}
}
