package ghost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpipe/internal/apperr"
	"blogpipe/internal/logger"
)

const testKey = "abc:68656c6c6f"

func newTestClient(t *testing.T, handler http.HandlerFunc) *AdminClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewAdminClient(srv.URL+"/", testKey, 5*time.Second, logger.Discard())
	require.NoError(t, err)

	return client
}

func assertAdminHeaders(t *testing.T, r *http.Request) {
	t.Helper()

	auth := r.Header.Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Ghost "), "authorization header %q", auth)

	token := parseToken(t, strings.TrimPrefix(auth, "Ghost "), []byte("hello"))
	assert.Equal(t, "abc", token.Header["kid"])
	assert.Equal(t, AcceptVersion, r.Header.Get("Accept-Version"))
}

func TestAdminClient_CreatePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ghost/api/admin/posts/", r.URL.Path)
		assert.Equal(t, "html", r.URL.Query().Get("source"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assertAdminHeaders(t, r)

		var env postsEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		require.Len(t, env.Posts, 1)
		assert.Equal(t, "Hello", env.Posts[0].Title)
		assert.Equal(t, "<p>World</p>", env.Posts[0].HTML)
		assert.Equal(t, "draft", env.Posts[0].Status)
		assert.Equal(t, []Tag{{Name: "go"}}, env.Posts[0].Tags)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","url":"https://blog.example.com/hello/","status":"draft","title":"Hello"}]}`))
	})

	post, err := client.CreatePost(context.Background(), &Post{
		Title:  "Hello",
		HTML:   "<p>World</p>",
		Status: "draft",
		Tags:   TagsFromNames([]string{"go", " "}),
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "https://blog.example.com/hello/", post.URL)
	assert.Equal(t, "draft", post.Status)
}

func TestAdminClient_CreatePost_EmptyHTMLIsSent(t *testing.T) {
	var raw []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1"}]}`))
	})

	_, err := client.CreatePost(context.Background(), &Post{Title: "Hello", HTML: "", Status: "published"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"html":""`)
	assert.Contains(t, string(raw), `"featured":false`)
}

func TestAdminClient_CreatePost_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Validation error, cannot save post.","context":"Title is required","type":"ValidationError"}]}`))
	})

	_, err := client.CreatePost(context.Background(), &Post{Status: "published"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrPublish)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, []string{"Validation error, cannot save post. (Title is required)"}, apiErr.Messages)
	assert.Contains(t, err.Error(), "Title is required")
}

func TestAdminClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.CreatePost(context.Background(), &Post{Title: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "not json", apiErr.Body)
	assert.Empty(t, apiErr.Messages)
}

func TestAdminClient_EmptyPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts":[]}`))
	})

	_, err := client.CreatePost(context.Background(), &Post{Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrPublish)
	assert.ErrorIs(t, err, ErrNoPosts)
}

func TestAdminClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := NewAdminClient(base, testKey, time.Second, nil)
	require.NoError(t, err)

	_, err = client.CreatePost(context.Background(), &Post{Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrPublish)
}

func TestNewAdminClient_BadKey(t *testing.T) {
	_, err := NewAdminClient("https://blog.example.com", "not-a-key", time.Second, nil)
	assert.ErrorIs(t, err, apperr.ErrConfig)
}

func TestAdminClient_GetAndUpdatePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAdminHeaders(t, r)
		assert.Equal(t, "/ghost/api/admin/posts/p1/", r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"posts":[{"id":"p1","title":"Hello","status":"published","updated_at":"2024-03-01T10:00:00.000Z"}]}`))
		case http.MethodPut:
			assert.Empty(t, r.URL.Query().Get("source"))

			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), `"html"`)

			var env postsEnvelope
			require.NoError(t, json.Unmarshal(raw, &env))
			require.Len(t, env.Posts, 1)
			assert.Equal(t, "2024-03-01T10:00:00.000Z", env.Posts[0].UpdatedAt)
			assert.Equal(t, "https://blog.example.com/img.png", env.Posts[0].FeatureImage)

			_, _ = w.Write([]byte(`{"posts":[{"id":"p1","feature_image":"https://blog.example.com/img.png"}]}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	post, err := client.GetPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)

	post.FeatureImage = "https://blog.example.com/img.png"

	updated, err := client.UpdatePost(context.Background(), post)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/img.png", updated.FeatureImage)
}

func TestAdminClient_UpdatePostValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.UpdatePost(context.Background(), &Post{ID: "p1"})
	assert.ErrorIs(t, err, ErrMissingUpdatedAt)

	_, err = client.UpdatePost(context.Background(), &Post{UpdatedAt: "x"})
	assert.ErrorIs(t, err, ErrMissingPostID)

	_, err = client.GetPost(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingPostID)
}

func TestAdminClient_UploadImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ghost/api/admin/images/upload/", r.URL.Path)
		assertAdminHeaders(t, r)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "cover.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "fake png", string(data))
		assert.Equal(t, "image", r.FormValue("purpose"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"images":[{"url":"https://blog.example.com/content/images/cover.png","ref":"cover.png"}]}`))
	})

	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("fake png"), 0o644))

	url, err := client.UploadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com/content/images/cover.png", url)
}

func TestAdminClient_UploadImage_MissingFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.UploadImage(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, apperr.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
