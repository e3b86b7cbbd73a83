package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, ghostURL string) {
	t.Helper()
	t.Setenv("GHOST_URL", ghostURL)
	t.Setenv("GHOST_ADMIN_API_KEY", "abc:68656c6c6f")
	t.Setenv("MAX_RETRIES", "")
	t.Setenv("TIMEOUT_SECONDS", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestRun_UpdatesFeatureImage(t *testing.T) {
	var updated bool

	mux := http.NewServeMux()
	mux.HandleFunc("POST /ghost/api/admin/images/upload/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"images":[{"url":"https://blog.example.com/content/images/cover.png"}]}`))
	})
	mux.HandleFunc("GET /ghost/api/admin/posts/p1/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","title":"Hello","updated_at":"2024-03-01T10:00:00.000Z"}]}`))
	})
	mux.HandleFunc("PUT /ghost/api/admin/posts/p1/", func(w http.ResponseWriter, r *http.Request) {
		updated = true
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1"}]}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	setupEnv(t, srv.URL)

	image := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0o644))

	var stdout, stderr bytes.Buffer

	code := run([]string{"--post-id", "p1", "--image", image}, &stdout, &stderr)
	require.Equal(t, exitSuccess, code, "stderr: %s", stderr.String())

	assert.True(t, updated)
	assert.Contains(t, stdout.String(), "  Image: https://blog.example.com/content/images/cover.png\n")
}

func TestRun_MissingArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitUsage, run([]string{"--post-id", "p1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--image")
}

func TestRun_MissingImage(t *testing.T) {
	setupEnv(t, "https://blog.example.com")

	var stdout, stderr bytes.Buffer

	code := run([]string{"--post-id", "p1", "--image", filepath.Join(t.TempDir(), "none.png")}, &stdout, &stderr)
	assert.Equal(t, exitIO, code)
}
