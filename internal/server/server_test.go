package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>home</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "posts", "hello.html"), []byte("<h1>hello</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, NotFoundPage), []byte("<h1>lost</h1>"), 0o600))
	return root
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	h := NewHandler(siteRoot(t))

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{"root index", http.MethodGet, "/", http.StatusOK, "<h1>home</h1>"},
		{"post page", http.MethodGet, "/posts/hello.html", http.StatusOK, "<h1>hello</h1>"},
		{"missing file", http.MethodGet, "/posts/nope.html", http.StatusNotFound, "<h1>lost</h1>"},
		{"directory without index", http.MethodGet, "/posts/", http.StatusNotFound, "<h1>lost</h1>"},
		{"traversal stays in root", http.MethodGet, "/../../etc/passwd", http.StatusNotFound, "<h1>lost</h1>"},
		{"write rejected", http.MethodPost, "/index.html", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}
}

func TestHandler_NoNotFoundPage(t *testing.T) {
	root := siteRoot(t)
	require.NoError(t, os.Remove(filepath.Join(root, NotFoundPage)))

	rec := get(t, NewHandler(root), http.MethodGet, "/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_MissingRoot(t *testing.T) {
	s := New("127.0.0.1:0", filepath.Join(t.TempDir(), "absent"))
	err := s.ListenAndServe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New("127.0.0.1:0", siteRoot(t))
	require.NoError(t, s.ListenAndServe(ctx))
}
